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

// Package hsami implements the single-step driver and multi-step orchestrator of a
// lumped, conceptual hydrological model kernel: it turns a time series of
// meteorological forcings for a watershed into a time series of streamflow and
// water-balance diagnostics, by advancing a compact watershed state one step at a
// time through a fixed sequence of interchangeable physical-process submodules.
//
// Reading a project from storage, writing results, and the command-line entry point
// are external collaborators; see cmd/hsami and cliutl. This package consumes an
// already-validated Project and produces Results.
package hsami

// ParamLen is the fixed length of the parameter vector; positions are documented
// per-submodule where they are consumed (§6).
const ParamLen = 50

// Project is the immutable input to a run: everything the orchestrator and driver
// need to simulate one watershed (§3). It is never mutated by this package.
type Project struct {
	// Superficie is [total watershed km², reservoir km²]. A length-1 vector means
	// no reservoir is represented in area terms (reservoir area is then zero).
	Superficie []float64

	// Memoire is the routing memory, in days.
	Memoire int

	// Param is the 50-element parameter vector; positions are fixed (§6).
	Param [ParamLen]float64

	Modules Modules
	Physio  Physio

	// Meteo.Bassin and Meteo.Reservoir are equally-indexed daily meteorology
	// sequences for the watershed and the reservoir respectively.
	Meteo struct {
		Bassin    MeteoSeries
		Reservoir MeteoSeries
	}

	// Dates is aligned with Meteo.
	Dates []DateVector

	// NbPasParJour is the number of simulation steps per day.
	NbPasParJour int

	// HuSurface and HuInter are optional imposed unit hydrographs; if present,
	// their length must equal Memoire (a length mismatch is a warning, §7 kind 3,
	// and the imposed hydrograph is ignored in favor of the computed one).
	HuSurface []float64
	HuInter   []float64
}

// ReservoirArea is superficie[1], or 0 if no reservoir area was supplied.
func (p *Project) ReservoirArea() float64 {
	if len(p.Superficie) > 1 {
		return p.Superficie[1]
	}
	return 0
}

// WatershedArea is superficie[0].
func (p *Project) WatershedArea() float64 {
	if len(p.Superficie) > 0 {
		return p.Superficie[0]
	}
	return 0
}

// NbPasTotal is the total number of simulation steps, len(meteo.bassin).
func (p *Project) NbPasTotal() int {
	return len(p.Meteo.Bassin)
}

// RatioFixe is the land fraction used as the denominator for subsurface processes
// (§3 invariants): 1 - superficie[1]/superficie[0] when reservoir modelling is
// enabled, else 1.
func (p *Project) RatioFixe() float64 {
	if !p.Modules.Reservoir {
		return 1
	}
	area := p.WatershedArea()
	if area == 0 {
		return 1
	}
	return 1 - p.ReservoirArea()/area
}

// Validate and Warnings live in validate.go.
