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

func TestValidateAcceptsUnsetModuleSelections(t *testing.T) {
	p := minimalProject(10)
	if err := p.Validate(); err != nil {
		t.Errorf("expected unset (zero-value) module selections to validate against their defaults, got %v", err)
	}
}

func TestValidateRejectsUnrecognizedModuleSelection(t *testing.T) {
	p := minimalProject(10)
	p.Modules.Een = "not-a-real-engine"
	if err := p.Validate(); err == nil {
		t.Errorf("expected an unrecognized modules.een value to fail validation")
	}
}

func TestValidateRejectsEmptySuperficie(t *testing.T) {
	p := minimalProject(10)
	p.Superficie = nil
	if err := p.Validate(); err == nil {
		t.Errorf("expected an empty superficie to fail validation")
	}
}

func TestValidateRejectsMeteoDatesLengthMismatch(t *testing.T) {
	p := minimalProject(10)
	p.Dates = p.Dates[:5]
	if err := p.Validate(); err == nil {
		t.Errorf("expected mismatched dates/meteo lengths to fail validation")
	}
}

func TestValidateRejectsBassinReservoirLengthMismatch(t *testing.T) {
	p := minimalProject(10)
	p.Meteo.Reservoir = p.Meteo.Reservoir[:5]
	if err := p.Validate(); err == nil {
		t.Errorf("expected mismatched meteo.bassin/meteo.reservoir lengths to fail validation")
	}
}

func TestValidateRejectsMhumideWithoutMaxWetlandArea(t *testing.T) {
	p := minimalProject(10)
	p.Modules.Mhumide = true
	if err := p.Validate(); err == nil {
		t.Errorf("expected modules.mhumide=true with physio.samax=0 to fail validation")
	}
	p.Physio.MaxWetlandArea = 50
	if err := p.Validate(); err != nil {
		t.Errorf("expected modules.mhumide=true with a nonzero samax to pass, got %v", err)
	}
}

func TestValidateRejectsMyLakeWithLumpedSnow(t *testing.T) {
	p := minimalProject(10)
	p.Modules.Een = "hsami"
	p.Modules.GlaceReservoir = GlaceReservoirMyLake
	if err := p.Validate(); err == nil {
		t.Errorf("expected glace_reservoir=mylake with a lumped snow engine to fail validation")
	}
}

func TestWarningsFlagsOccupationSumMismatch(t *testing.T) {
	p := minimalProject(10)
	p.Modules.Een = "mdj"
	p.Physio.Occupation = []float64{0.3, 0.3}
	warnings := p.Warnings()
	if len(warnings) == 0 {
		t.Errorf("expected a warning for an occupation sum (0.6) that does not reach 1")
	}
}

func TestWarningsFlagsImposedHydrographLengthMismatch(t *testing.T) {
	p := minimalProject(10)
	p.HuSurface = []float64{0.5, 0.5}
	warnings := p.Warnings()
	found := false
	for _, w := range warnings {
		if w != "" {
			found = true
		}
	}
	if !found || len(warnings) == 0 {
		t.Errorf("expected a warning when hu_surface's length does not match memoire")
	}
}

func TestWarningsEmptyForWellFormedProject(t *testing.T) {
	p := minimalProject(10)
	if warnings := p.Warnings(); len(warnings) != 0 {
		t.Errorf("expected no warnings for a well-formed project, got %v", warnings)
	}
}

func minimalProject(nSteps int) *Project {
	p := &Project{
		Superficie:   []float64{100},
		Memoire:      5,
		NbPasParJour: 1,
	}
	p.Meteo.Bassin = make(MeteoSeries, nSteps)
	p.Meteo.Reservoir = make(MeteoSeries, nSteps)
	p.Dates = make([]DateVector, nSteps)
	for i := range p.Dates {
		p.Meteo.Bassin[i] = []float64{-5, 5, 0, 0}
		p.Meteo.Reservoir[i] = []float64{-5, 5, 0, 0}
		p.Dates[i] = DateVector{2020, 1, i%28 + 1, 0, 0}
	}
	return p
}
