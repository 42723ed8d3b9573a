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

package pet

import "testing"

const tol = 1e-9

var montreal = Physio{LatitudeRadians: 0.7896, Altitude: 30, SoilAlbedo: 0.23}

func TestStepNeverNegative(t *testing.T) {
	tags := []string{
		"hsami", "blaney_criddle", "hamon", "linacre", "kharrufa", "mohyse",
		"romanenko", "makkink", "turc", "mcguinness_bordne", "abtew",
		"hargreaves", "priestley_taylor",
	}
	for _, tag := range tags {
		for jj := 1; jj <= 365; jj += 30 {
			v, err := Step(1, 24, jj, -10, -2, tag, montreal)
			if err != nil {
				t.Fatalf("tag %s: %v", tag, err)
			}
			if v < 0 {
				t.Errorf("tag %s, jj %d: Step = %v, want >= 0", tag, jj, v)
			}
		}
	}
}

func TestStepUnknownTag(t *testing.T) {
	if _, err := Step(1, 24, 180, 5, 15, "bogus", montreal); err == nil {
		t.Error("expected an error for an unrecognized formula tag")
	}
}

// TestStepSubDailySumsToDaily checks that summing Step's intra-day weighting over
// every sub-step of a day recovers the unweighted daily total (§4.3's 24-hour
// weighting must be a partition of unity, up to the clamp-to-zero at the daily
// level).
func TestStepSubDailySumsToDaily(t *testing.T) {
	const nbPas = 4
	jj, tmin, tmax := 180, 10.0, 22.0
	total, err := daily(jj, tmin, tmax, "hamon", montreal)
	if err != nil {
		t.Fatal(err)
	}
	if total < 0 {
		total = 0
	}
	var sum float64
	for pas := 1; pas <= nbPas; pas++ {
		v, err := Step(pas, nbPas, jj, tmin, tmax, "hamon", montreal)
		if err != nil {
			t.Fatal(err)
		}
		sum += v
	}
	if diff := sum - total; diff > tol || diff < -tol {
		t.Errorf("sub-daily steps summed to %v, want %v", sum, total)
	}
}

func TestHsamiFormulaIncreasesWithRange(t *testing.T) {
	narrow, err := daily(180, 10, 12, "hsami", montreal)
	if err != nil {
		t.Fatal(err)
	}
	wide, err := daily(180, 10, 25, "hsami", montreal)
	if err != nil {
		t.Fatal(err)
	}
	if wide <= narrow {
		t.Errorf("hsami daily PET should increase with tmax-tmin: narrow=%v wide=%v", narrow, wide)
	}
}
