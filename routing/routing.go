/*
Copyright (C) 2024 the HSAMI+ Core authors.
This file is part of hsami.

hsami is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hsami is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hsami.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package routing implements the unit-hydrograph generator and horizontal-routing
// submodule (§4.9), grounded on
// original_source/src/hsamiplus/hsami_hydrogramme.py and
// original_source/src/hsamiplus/hsami_ecoulement_horizontal.py.
package routing

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// UnitHydrograph builds a memoire-day-long, pasParJour-per-day unit hydrograph
// shaped by a Beta(mode, forme) law, peaking after mode days and truncated after
// memoire days, normalized to sum to 1.
func UnitHydrograph(mode, forme float64, pasParJour int, memoire float64) []float64 {
	n := int(memoire * float64(pasParJour))
	h := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		t := float64(i + 1)
		v := math.Pow(t, mode*forme) * math.Exp(-forme/float64(pasParJour)*t)
		h[i] = v
		sum += v
	}
	if sum > 0 {
		for i := range h {
			h[i] /= sum
		}
	}
	return h
}

// HydrographCell is one day-slot of in-transit water for the surface, intermediate
// and mhumide-surface routing channels.
type HydrographCell struct {
	Surface, Intermediate, MhumideSurface float64
}

// State is the mutable subset of watershed state this submodule owns.
type State struct {
	ReserveInter    float64
	EauHydrogrammes []HydrographCell // len(HydrogrammeSurface)
}

// Config carries the two (fixed, precomputed) unit hydrographs and the
// intermediate-reservoir drain rate.
type Config struct {
	VidangeReserveInter float64
	HydrogrammeSurface  []float64
	HydrogrammeInter    []float64
}

// Apport is the six-element laminated lateral inflow vector the reference calls
// "apport": base, intermediate-reservoir, surface, open-water, direct ice melt,
// mhumide-surface.
type Apport [6]float64

// Step runs one time step of horizontal routing, convolving apportVertical's
// surface and (when mhumide is enabled) mhumide-surface terms through the surface
// unit hydrograph, and the intermediate term through the intermediate-reservoir
// first-order recession.
func Step(cfg Config, s *State, nbPas int, apportVertical [6]float64, mhumide bool) Apport {
	n := len(cfg.HydrogrammeSurface)
	vidange := 1 - (1-cfg.VidangeReserveInter)/float64(nbPas)

	for i := 0; i < n; i++ {
		s.EauHydrogrammes[i].Surface += cfg.HydrogrammeSurface[i] * apportVertical[2]
	}
	if mhumide {
		for i := 0; i < n; i++ {
			s.EauHydrogrammes[i].MhumideSurface += cfg.HydrogrammeSurface[i] * apportVertical[5]
		}
	}

	apport := Apport{
		apportVertical[0],
		s.ReserveInter,
		s.EauHydrogrammes[0].Surface,
		apportVertical[3],
		apportVertical[4],
		s.EauHydrogrammes[0].MhumideSurface,
	}

	s.EauHydrogrammes[0].Intermediate = apportVertical[1]
	inter := make([]float64, n)
	for i := 0; i < n; i++ {
		inter[i] = s.EauHydrogrammes[i].Intermediate
	}
	eauInter := floats.Dot(inter, cfg.HydrogrammeInter)
	s.ReserveInter = s.ReserveInter*vidange + eauInter*(1-vidange)

	for i := 0; i < n-1; i++ {
		s.EauHydrogrammes[i].Surface = s.EauHydrogrammes[i+1].Surface
		s.EauHydrogrammes[i].MhumideSurface = s.EauHydrogrammes[i+1].MhumideSurface
	}
	if n > 0 {
		s.EauHydrogrammes[n-1].Surface = 0
		s.EauHydrogrammes[n-1].MhumideSurface = 0
	}

	for i := n - 1; i > 0; i-- {
		s.EauHydrogrammes[i].Intermediate = s.EauHydrogrammes[i-1].Intermediate
	}
	if n > 0 {
		s.EauHydrogrammes[0].Intermediate = 0
	}

	return apport
}
