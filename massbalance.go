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

import "math"

// Round10 rounds to 10 decimal places, half-to-even, matching the reference
// implementation's use of numpy.round on every residual (§4.10, §9).
func Round10(x float64) float64 {
	const scale = 1e10
	return math.RoundToEven(x*scale) / scale
}

// submoduleLedger accumulates the entrées/sorties/état bookkeeping for one
// submodule's closure (§4.10): residual = entrees - sorties + etatInit - etatFinal.
type submoduleLedger struct {
	Entrees   float64
	Sorties   float64
	EtatInit  float64
	EtatFinal float64
}

// Residual closes the ledger, rounded to 10 decimals.
func (l submoduleLedger) Residual() float64 {
	return Round10(l.Entrees - l.Sorties + l.EtatInit - l.EtatFinal)
}

// Deltas holds the per-step, per-submodule mass-balance residuals (§3 "Output per
// step", §4.10), plus the whole-basin residual.
type Deltas struct {
	Total           float64
	Glace           float64
	Interception    float64
	Ruissellement   float64
	Vertical        float64
	Mhumide         float64
	Horizontal      float64
}

// stateSum is the weighted scalar used for whole-basin snapshots (§4.2 "Initial
// snapshots"): gel + nappe + sum(sol) + mhumide, each already in cm.
func stateSum(s *State) float64 {
	return s.Gel + s.Nappe + s.Mhumide + sumFloats(s.Sol)
}
