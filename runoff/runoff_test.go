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

package runoff

import "testing"

func TestSplitPassThroughForSoilSubmodules(t *testing.T) {
	for _, tag := range []string{"green_ampt", "scs_cn"} {
		r, inf := Split(tag, 4, 1, 1, 0.1, 0, 5, 10, 3.0)
		if r != 0 {
			t.Errorf("%s: expected zero runoff pass-through, got %v", tag, r)
		}
		if inf != 3.0 {
			t.Errorf("%s: expected all surface water to pass through as infiltration, got %v", tag, inf)
		}
	}
}

func TestSplitConservesMass(t *testing.T) {
	r, inf := Split("hsami", 4, 1, 1, 0.1, 1, 5, 10, 3.0)
	if got, want := r+inf, 3.0; got != want {
		t.Errorf("ruissellementSurface + infiltration = %v, want %v", got, want)
	}
}

func TestSplitHsamiBelowThresholdIsQuadratic(t *testing.T) {
	// seuil = effetSol/nbPas*(1-sol/solMax) - effetGel*gel
	//       = 1/4*(1-5/10) - 0 = 0.125
	// eauSurface=0.05 < seuil=0.125, so ruissellement = eauSurface^2/(2*seuil)
	r, inf := Split("hsami", 4, 0, 1, 0, 0, 5, 10, 0.05)
	want := 0.05 * 0.05 / (2 * 0.125)
	if diff := r - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ruissellementSurface = %v, want %v", r, want)
	}
	if got, want := r+inf, 0.05; got != want {
		t.Errorf("ruissellementSurface + infiltration = %v, want %v", got, want)
	}
}

func TestSplitHsamiAboveThresholdIsLinear(t *testing.T) {
	// seuil as above = 0.125; eauSurface=1 >= seuil, so
	// ruissellement = eauSurface - seuil/2
	r, _ := Split("hsami", 4, 0, 1, 0, 0, 5, 10, 1)
	want := 1 - 0.125/2
	if diff := r - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ruissellementSurface = %v, want %v", r, want)
	}
}

func TestSplitHonorsSeuilMinFloor(t *testing.T) {
	// With effetSol=0 and effetGel=0, the raw seuil is 0; seuilMin/nbPas floors it.
	r, inf := Split("hsami", 4, 0, 0, 0.4, 0, 5, 10, 1.0)
	seuilFloor := 0.4 / 4
	want := 1.0 - seuilFloor/2
	if diff := r - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ruissellementSurface = %v, want %v (seuilMin floor not applied)", r, want)
	}
	if got, wantSum := r+inf, 1.0; got != wantSum {
		t.Errorf("ruissellementSurface + infiltration = %v, want %v", got, wantSum)
	}
}
