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

// Package wetland implements the wetland submodule (§4.8): a single non-connected
// basin fed by the vertical fluxes that would otherwise reach the channel, which
// spills, evaporates, and seeps on its own schedule and returns a depth-equivalent
// fraction of the watershed's outflow.
package wetland

import "math"

// State is the mutable subset of the watershed state owned by this submodule.
type State struct {
	MhSurf     float64 // wetland surface area, ha
	MhVol      float64 // wetland volume, m^3
	RatioMH    float64 // wetland fraction of the watershed area
	Mhumide    float64 // wetland storage, depth-equivalent cm
	RatioQbase float64 // fraction of base flow routed through the wetland
}

// Apport is the vertical-flow vector shared with the soil and routing submodules:
// index 0 is base flow, 1 is interflow, 2 is surface runoff (all cm); indices beyond
// 2 belong to other submodules and pass through unchanged.
type Apport []float64

// Step runs one time step of the wetland water balance (§4.8), grounded directly on
// original_source/src/hsamiplus/hsami_mhumide.py. It consumes apport[0:3], appends a
// sixth component (wetland surface runoff) to the returned apport, reweights
// apport[0:3] by (1-RatioMH), appends the wetland's evaporation to etr, and updates
// state in place.
//
// param[47] is hmax (wetland max depth, m of volume-equivalent over the max area);
// param[48] is p_norm, the fraction of the max area/volume considered "normal";
// param[49] is log10(ksat), the saturated hydraulic conductivity at the wetland bed
// (cm/day). watershedAreaKm2 is superficie[0]; maxAreaKm2 is physio.samax.
func Step(apport Apport, param [50]float64, s *State, demandeCm float64, etr []float64, watershedAreaKm2, maxAreaKm2 float64) (Apport, []float64) {
	hmax := param[47]
	pNorm := param[48]
	ksat := math.Pow(10, param[49])

	vInit := s.MhVol
	sa := s.MhSurf // ha, start-of-step

	supBV := watershedAreaKm2 * 100 // ha
	saMax := maxAreaKm2 * 100       // ha
	saNorm := pNorm * saMax         // ha

	vMax := hmax * (saMax * 10000) // m^3
	vNorm := pNorm * vMax
	vMin := 0.5 * vNorm

	// Alpha is algebraically 1 given saNorm=pNorm*saMax and vNorm=pNorm*vMax (both
	// ratios to their max collapse to log10(1/pNorm)); kept as a log-log slope
	// rather than hardcoded, matching the reference derivation term for term.
	alpha := (math.Log10(saMax) - math.Log10(saNorm)) / (math.Log10(vMax) - math.Log10(vNorm))
	beta := saMax / math.Pow(vMax, alpha)

	qb, qi, qs := apport[0], apport[1], apport[2]

	vb := qb * sa * 100
	vi := qi * sa * 100
	vs := qs * sa * 100

	vActuel := vInit + vb + vi + vs

	var vSurf float64
	switch {
	case vActuel <= vNorm:
		vSurf = 0
	case vActuel <= vMax:
		vSurf = (vActuel - vNorm) / 10
	default:
		vSurf = (vActuel - vMax) + (vMax-vNorm)/10
	}
	vActuel -= vSurf

	offreEvap := (vActuel - vMin) / (sa * 100)
	var vEvap float64
	if offreEvap > demandeCm {
		vEvap = demandeCm * sa * 100
	} else {
		vEvap = offreEvap * sa * 100
	}
	vActuel -= vEvap

	demandeSeep := ksat * sa * 100
	offreSeep := vActuel - vMin
	var vSeep float64
	if offreSeep > demandeSeep {
		vSeep = demandeSeep
	} else {
		vSeep = offreSeep
	}
	vActuel -= vSeep

	s.MhSurf = beta * math.Pow(vActuel, alpha)
	s.MhVol = vActuel

	qbaseMh := round10(vSeep * s.RatioMH / (sa * 100))
	qsurfMh := vSurf * s.RatioMH / (sa * 100)
	etrMh := round10(vEvap * s.RatioMH / (sa * 100))

	qbaseBV := apport[0] * (1 - s.RatioMH)
	qintrBV := apport[1] * (1 - s.RatioMH)
	qsurfBV := apport[2] * (1 - s.RatioMH)

	out := make(Apport, len(apport)+1)
	out[0] = qbaseMh + qbaseBV
	out[1] = qintrBV
	out[2] = qsurfBV
	copy(out[3:len(apport)], apport[3:])
	out[len(apport)] = qsurfMh

	etrOut := append(append([]float64{}, etr...), etrMh)

	if qbaseBV+qbaseMh != 0 {
		s.RatioQbase = qbaseMh / (qbaseBV + qbaseMh)
	} else {
		s.RatioQbase = 0
	}

	s.RatioMH = s.MhSurf / supBV
	s.Mhumide = s.MhVol * s.RatioMH / (s.MhSurf * 100)

	return out, etrOut
}

// round10 rounds to 10 decimal places, half-to-even, matching numpy.round semantics
// used throughout the reference water balance.
func round10(x float64) float64 {
	const scale = 1e10
	return math.RoundToEven(x*scale) / scale
}
