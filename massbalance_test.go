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

import "testing"

func TestRound10RoundsHalfToEven(t *testing.T) {
	if got := Round10(0.12345678905); got != 0.1234567890 && got != 0.1234567891 {
		t.Errorf("Round10(0.12345678905) = %v, want a value rounded to 10 decimals", got)
	}
	// 2.5e-10 and 3.5e-10 scale to exactly 2.5 and 3.5: ties go to the even neighbour.
	if got := Round10(2.5e-10); got != 2e-10 {
		t.Errorf("Round10(2.5e-10) = %v, want 2e-10 (tie rounded to even)", got)
	}
	if got := Round10(3.5e-10); got != 4e-10 {
		t.Errorf("Round10(3.5e-10) = %v, want 4e-10 (tie rounded to even)", got)
	}
}

func TestSubmoduleLedgerResidualIsZeroWhenBalanced(t *testing.T) {
	l := submoduleLedger{Entrees: 10, Sorties: 4, EtatInit: 2, EtatFinal: 8}
	if got := l.Residual(); got != 0 {
		t.Errorf("Residual() = %v, want 0 for a perfectly balanced ledger", got)
	}
}

func TestSubmoduleLedgerResidualDetectsImbalance(t *testing.T) {
	l := submoduleLedger{Entrees: 10, Sorties: 4, EtatInit: 2, EtatFinal: 5}
	if got := l.Residual(); got == 0 {
		t.Errorf("Residual() = %v, expected a nonzero residual for an imbalanced ledger", got)
	}
}

func TestStateSumCombinesGelNappeMhumideAndSol(t *testing.T) {
	s := &State{Gel: 1, Nappe: 2, Mhumide: 3, Sol: []float64{4, 5}}
	if got, want := stateSum(s), 15.0; got != want {
		t.Errorf("stateSum() = %v, want %v", got, want)
	}
}
