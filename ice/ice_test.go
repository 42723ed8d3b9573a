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

package ice

import "testing"

func TestStepNoReservoirIsNoOp(t *testing.T) {
	s := &State{ReservoirEpaisseurGlace: 5, ReservoirSuperficieGlace: 3}
	cfg := Config{Reservoir: false}
	glace, bassin, err := Step(cfg, s, 10, true, Meteo{}, [50]float64{}, 0, Band{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if glace != 0 || bassin != 0 {
		t.Errorf("expected zero fluxes with reservoir disabled, got %v %v", glace, bassin)
	}
	if s.ReservoirEpaisseurGlace != 0 || s.ReservoirSuperficieGlace != 0 {
		t.Errorf("expected ice state cleared, got %+v", s)
	}
	if s.RatioBassin != 1 || s.RatioFixe != 1 {
		t.Errorf("expected ratios to reduce to 1 with no reservoir, got bassin=%v fixe=%v", s.RatioBassin, s.RatioFixe)
	}
}

func TestStepFixedSurfaceBranch(t *testing.T) {
	s := &State{}
	cfg := Config{Reservoir: true, SuperficieTotal: 100, Superficie1: 20}
	glace, bassin, err := Step(cfg, s, 10, false, Meteo{}, [50]float64{}, 0, Band{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if glace != 0 || bassin != 0 {
		t.Errorf("expected zero fluxes with no meteo, got %v %v", glace, bassin)
	}
	if want := 0.2; s.RatioReservoir != want {
		t.Errorf("RatioReservoir = %v, want %v", s.RatioReservoir, want)
	}
	if want := 0.8; s.RatioBassin != want {
		t.Errorf("RatioBassin = %v, want %v", s.RatioBassin, want)
	}
}

func TestStepUnknownGlaceReservoir(t *testing.T) {
	s := &State{Eeg: make([]float64, 10)}
	cfg := Config{Reservoir: true, SuperficieTotal: 100, Superficie1: 20, GlaceReservoir: "bogus"}
	_, _, err := Step(cfg, s, 0, true, Meteo{Tmin: -5, Tmax: -1}, [50]float64{}, 0, Band{}, 0)
	if err == nil {
		t.Error("expected an error for an unrecognized glace_reservoir tag")
	}
}

func TestStefanGrowsIceInSustainedCold(t *testing.T) {
	s := &State{Eeg: make([]float64, 100), ReservoirSuperficie: 50, ObjGel: -1}
	cfg := Config{Reservoir: true, SuperficieTotal: 100, Superficie1: 20, GlaceReservoir: "stefan", K: 30}
	met := Meteo{Tmin: -15, Tmax: -10}

	for i := 0; i < 20; i++ {
		if _, _, err := Step(cfg, s, 0, true, met, [50]float64{}, 0, Band{}, 0); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if s.ReservoirEpaisseurGlace <= 0 {
		t.Errorf("expected ice thickness to grow under sustained cold, got %v", s.ReservoirEpaisseurGlace)
	}
	if s.CumDegGel >= 0 {
		t.Errorf("expected cumulative freezing degree-days to go negative, got %v", s.CumDegGel)
	}
}

func TestMyLakeRequiresBandedSnow(t *testing.T) {
	s := &State{Eeg: make([]float64, 10)}
	cfg := Config{Reservoir: true, SuperficieTotal: 100, Superficie1: 20, GlaceReservoir: "mylake", Een: "hsami"}
	_, _, err := Step(cfg, s, 0, true, Meteo{Tmin: -5, Tmax: -1}, [50]float64{}, 0, Band{}, 0)
	if err == nil {
		t.Error("expected an error when een is not mdj or alt")
	}
}
