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

func runnableProject(nSteps int) *Project {
	p := minimalProject(nSteps)
	p.Param[11] = 1  // solMin
	p.Param[12] = 20 // solMax
	p.Param[13] = 5  // nappeMax
	return p
}

func TestRunFailsFastOnInvalidProject(t *testing.T) {
	p := runnableProject(10)
	p.Superficie = nil
	if _, err := Run(p); err == nil {
		t.Errorf("expected Run to reject an invalid project before simulating anything")
	}
}

func TestRunRejectsTooShortSeriesForWarmup(t *testing.T) {
	p := runnableProject(10)
	if _, err := Run(p); err == nil {
		t.Errorf("expected Run to reject a meteo series shorter than the default warm-up length")
	}
}

func TestRunWithShortWarmupProducesOneRecordPerStep(t *testing.T) {
	p := runnableProject(20)
	results, err := Run(p, WithWarmupSteps(3))
	if err != nil {
		t.Fatalf("Run returned an unexpected error: %v", err)
	}
	if len(results.Outputs) != 20 {
		t.Errorf("expected 20 output records, got %d", len(results.Outputs))
	}
	if len(results.States) != 20 || len(results.Deltas) != 20 {
		t.Errorf("expected States/Deltas to have one record per step, got %d/%d", len(results.States), len(results.Deltas))
	}
}

func TestRunWithStepObserverSeesEveryStep(t *testing.T) {
	p := runnableProject(20)
	var seen []int
	observer := func(step int, out Outputs, deltas Deltas) {
		seen = append(seen, step)
	}
	_, err := Run(p, WithWarmupSteps(3), WithStepObserver(observer))
	if err != nil {
		t.Fatalf("Run returned an unexpected error: %v", err)
	}
	if len(seen) != 20 {
		t.Errorf("expected the observer to be called once per simulated step (20), got %d calls", len(seen))
	}
	for i, step := range seen {
		if step != i {
			t.Errorf("expected observed steps to run 0..19 in order, got %d at position %d", step, i)
			break
		}
	}
}

func TestWithWarmupStepsIgnoresNonPositiveValues(t *testing.T) {
	p := runnableProject(400)
	_, err1 := Run(p, WithWarmupSteps(0))
	if err1 != nil {
		t.Errorf("expected WithWarmupSteps(0) to leave the default warm-up length in place, got error %v", err1)
	}
	_, err2 := Run(p, WithWarmupSteps(-5))
	if err2 != nil {
		t.Errorf("expected WithWarmupSteps(-5) to leave the default warm-up length in place, got error %v", err2)
	}
}
