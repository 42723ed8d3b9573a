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

package hsami

// EegLen is the fixed length of the shelf-ice deposition vector (§3: "eeg (vector of
// length 5000 holding per-km² shelf-ice water equivalent in cm)").
const EegLen = 5000

// State is the full, mutable watershed state carried across steps (§3). It is
// created once by the orchestrator and mutated exactly once per step by Step;
// submodules each own a documented subset of its fields (see the per-field comments
// below and §3 "Lifecycles").
//
// Per the design note on struct-of-arrays for banded snow, BandedSnow holds one
// slice per field rather than a slice of per-band structs, so the per-band
// arithmetic in the snow package stays a simple loop over parallel arrays.
type State struct {
	// EauHydrogrammes is a Memoire x 3 matrix of water in transit through the
	// surface, intermediate, and wetland-surface unit hydrographs (cm). Owned by
	// the routing submodule (§4.9).
	EauHydrogrammes [][3]float64

	// Lumped snow/frost scalars (owned by the snow submodule, §4.5), all in cm
	// except DerniereNeige (days).
	NeigeAuSol    float64 // SWE
	Fonte         float64 // liquid water retained in the pack
	NasTot        float64 // cumulative snowfall since season start
	FonteTot      float64 // cumulative melt
	DerniereNeige float64 // days since last snowfall
	Gel           float64 // frozen soil water

	// Soil (owned by the soil submodule, §4.7): Sol has length 1 for "hsami" and
	// length 2 for "3couches".
	Sol     []float64 // cm
	Nappe   float64   // groundwater, cm
	Reserve float64   // intermediate reserve, cm

	// Banded is non-nil when modules.een is "mdj" or "alt".
	Banded *BandedSnow

	// Wetland (owned by the wetland submodule, §4.8).
	MhSurf      float64 // ha
	MhVol       float64 // m^3
	RatioMH     float64 // wetland fraction of the watershed
	Mhumide     float64 // depth-equivalent, cm
	RatioQbase  float64 // fraction of base flow routed via the wetland

	// Reservoir ice (owned by the ice submodule, §4.4).
	CumDegGel                float64 // °C*day
	ObjGel                   float64 // °C*day, initially -200
	DernierGel               float64 // days since last freezing day
	ReservoirEpaisseurGlace  float64 // cm
	ReservoirEnergieGlace    float64 // J/m^2
	ReservoirSuperficie      float64 // km^2
	ReservoirSuperficieGlace float64 // km^2
	ReservoirSuperficieRef   float64 // km^2
	Eeg                      []float64 // length EegLen, cm per km^2

	// Surface-fraction ratios, updated each step by the ice/reservoir component
	// (§3 invariants).
	RatioBassin    float64 // land
	RatioReservoir float64 // open water
	RatioFixe      float64 // land share used for subsurface processes
}

// BandedSnow is the per-band snow record used by the "mdj"/"alt" engines (§3). Each
// field is a slice of length n = number of active bands, indexed in the same order
// as physio.Occupation ("mdj") or physio.ElevationBands/OccupationBande ("alt").
type BandedSnow struct {
	CouvertNeige  []float64 // pack depth, m
	DensiteNeige  []float64 // kg/m^3
	AlbedoNeige   []float64
	NeigeAuSol    []float64 // SWE, cm
	Fonte         []float64 // liquid water in pack, cm
	Gel           []float64 // frozen soil water, cm
	Sol           []float64 // soil moisture, cm (mirrors lumped Sol per band when banded)
	EnergieNeige  []float64 // J/m^2
	EnergieGlace  float64   // J/m^2, reservoir shelf-ice energy (scalar, shared across bands)
	DerniereNeige []float64 // days since last snowfall, per band
}

// NewBandedSnow allocates a zeroed banded-snow record for n bands.
func NewBandedSnow(n int) *BandedSnow {
	return &BandedSnow{
		CouvertNeige:  make([]float64, n),
		DensiteNeige:  make([]float64, n),
		AlbedoNeige:   make([]float64, n),
		NeigeAuSol:    make([]float64, n),
		Fonte:         make([]float64, n),
		Gel:           make([]float64, n),
		Sol:           make([]float64, n),
		EnergieNeige:  make([]float64, n),
		DerniereNeige: make([]float64, n),
	}
}

// NbBands is the number of non-zero entries of physio.Occupation for "mdj", or of
// physio.OccupationBande for "alt" (§4.5.b), and 0 for any other snow module.
func (p *Physio) NbBands(een string) int {
	switch een {
	case "mdj":
		return countNonZero(p.Occupation)
	case "alt":
		return countNonZero(p.OccupationBande)
	default:
		return 0
	}
}

func countNonZero(v []float64) int {
	n := 0
	for _, x := range v {
		if x != 0 {
			n++
		}
	}
	return n
}

// NewState builds the initial state for a validated, defaulted project (§4.1
// initialization, supplemented from original_source/src/hsamiplus/hsami2.py lines
// 70-142). Nappe starts at param[13]; Sol starts at sol_min (param[11]) for "hsami"
// or at field capacity (param[42]*param[39], param[43]*param[40]) for "3couches".
// The wetland starts at its normal area and volume (or the inert 1 ha / 0 m^3 state
// when modules.mhumide is false); reservoir ice bookkeeping starts cold (ObjGel=-200)
// and the fixed-land fraction starts at 1 (no reservoir yet represented).
func NewState(p *Project) *State {
	s := &State{
		EauHydrogrammes: make([][3]float64, p.Memoire),
		Nappe:           p.Param[13],
		ObjGel:          -200,
		ReservoirSuperficie:    p.ReservoirArea(),
		ReservoirSuperficieRef: p.ReservoirArea(),
		Eeg:                    make([]float64, EegLen),
		RatioBassin:            1,
		RatioFixe:              1,
	}

	switch p.Modules.Sol {
	case "3couches":
		s.Sol = []float64{p.Param[42] * p.Param[39], p.Param[43] * p.Param[40]}
	default:
		s.Sol = []float64{p.Param[11]}
	}

	if p.Modules.IsBanded() {
		s.Banded = NewBandedSnow(p.Physio.NbBands(p.Modules.Een))
		for i := range s.Banded.AlbedoNeige {
			s.Banded.AlbedoNeige[i] = 0.9
		}
	}

	if p.Modules.Mhumide {
		pNorm := p.Param[48]
		hmax := p.Param[47]
		saMax := p.Physio.MaxWetlandArea * 100
		s.MhSurf = pNorm * saMax
		s.MhVol = pNorm * (hmax * saMax * 10000)
		s.RatioMH = s.MhSurf / (p.WatershedArea() * 100)
	} else {
		s.MhSurf = 1
	}
	s.Mhumide = s.MhVol * s.RatioMH / (s.MhSurf * 100)

	return s
}
