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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mildSummerProject builds an nSteps-day project shaped like a default-modules run
// over a real watershed: positive soil/groundwater capacities, a mix of wet and
// dry days, so every submodule (PET, interception, runoff, vertical flow,
// routing) is actually exercised rather than stepping through an all-zero
// degenerate case.
func mildSummerProject(nSteps int) *Project {
	p := &Project{
		Superficie:   []float64{250},
		Memoire:      10,
		NbPasParJour: 1,
	}
	p.Physio.Latitude = 47.1943
	p.Physio.Altitude = 390.9
	p.Physio.SoilAlbedo = 0.7

	p.Param[11] = 1   // solMin
	p.Param[12] = 20  // solMax
	p.Param[13] = 8   // nappeMax
	p.Param[14] = 0.3 // portionRuissellementSurface
	p.Param[15] = 0.5 // portionRuissellementSolMax
	p.Param[16] = 0.05
	p.Param[17] = 0.1
	p.Param[19] = 2 // unit-hydrograph mode
	p.Param[20] = 3 // unit-hydrograph forme
	p.Param[21] = 1
	p.Param[22] = 2

	p.Meteo.Bassin = make(MeteoSeries, nSteps)
	p.Meteo.Reservoir = make(MeteoSeries, nSteps)
	p.Dates = make([]DateVector, nSteps)
	for i := range p.Dates {
		day := i%28 + 1
		month := (i/28)%12 + 1
		if i%7 == 0 {
			p.Meteo.Bassin[i] = []float64{3.3, 15.5, 1.2, 0, 0.5}
		} else {
			p.Meteo.Bassin[i] = []float64{5, 18, 0, 0, 0.5}
		}
		p.Meteo.Reservoir[i] = p.Meteo.Bassin[i]
		p.Dates[i] = DateVector{2020, month, day, 0, 0}
	}
	return p
}

func TestMildSummerRunSatisfiesRatioInvariant(t *testing.T) {
	p := mildSummerProject(40)
	results, err := Run(p, WithWarmupSteps(5))
	require.NoError(t, err)

	for i, s := range results.States {
		assert.InDelta(t, 1.0, s.RatioBassin+s.RatioReservoir, 1e-9,
			"ratio_bassin + ratio_reservoir should equal 1 at step %d", i)
	}
}

func TestMildSummerRunProducesNonNegativeDischarge(t *testing.T) {
	p := mildSummerProject(40)
	results, err := Run(p, WithWarmupSteps(5))
	require.NoError(t, err)

	for i, o := range results.Outputs {
		assert.GreaterOrEqual(t, o.Qtotal, 0.0, "Qtotal should never be negative at step %d", i)
		assert.GreaterOrEqual(t, o.ETP, 0.0, "ETP should never be negative at step %d", i)
	}
}

func TestMildSummerRunKeepsShelfIceNonNegative(t *testing.T) {
	p := mildSummerProject(40)
	results, err := Run(p, WithWarmupSteps(5))
	require.NoError(t, err)

	for i, s := range results.States {
		assert.GreaterOrEqual(t, s.EegSum, 0.0, "the shelf-ice reserve should never go negative at step %d", i)
	}
}

func TestMildSummerRunKeepsSoilWithinCapacity(t *testing.T) {
	p := mildSummerProject(60)
	results, err := Run(p, WithWarmupSteps(5))
	require.NoError(t, err)

	for i, s := range results.States {
		for j, v := range s.Sol {
			assert.GreaterOrEqual(t, v, -1e-6, "sol[%d] went negative at step %d", j, i)
			assert.LessOrEqual(t, v, p.Param[12]+1e-6, "sol[%d] exceeded solMax at step %d", j, i)
		}
	}
}

// Scenario B (§8): a cold day with fresh snowfall accumulates snow and keeps the
// driver's whole-basin ledger closed, using the lumped "dj" snow engine as named
// in the scenario.
func TestColdDayAccumulatesSnowAndClosesMassBalance(t *testing.T) {
	p := mildSummerProject(30)
	p.Modules.Een = "dj"
	for i := range p.Meteo.Bassin {
		p.Meteo.Bassin[i] = []float64{-9.3, -3.5, 0, 2.3, 0.5}
		p.Meteo.Reservoir[i] = p.Meteo.Bassin[i]
	}

	results, err := Run(p, WithWarmupSteps(3))
	require.NoError(t, err)

	last := results.States[len(results.States)-1]
	assert.Greater(t, last.NeigeAuSol, 0.0, "sustained cold with snowfall should accumulate a snowpack")

	for i, d := range results.Deltas {
		assert.InDelta(t, 0, d.Total, 1e-6, "whole-basin residual should stay near zero at step %d", i)
	}
}

// Scenario D (§8): an active wetland keeps ratio_qbase within [0, 1] every step.
func TestWetlandRatioQbaseStaysWithinUnitRange(t *testing.T) {
	p := mildSummerProject(30)
	p.Modules.Mhumide = true
	p.Physio.MaxWetlandArea = 30
	p.Param[47] = 0.1  // hmax
	p.Param[48] = 0.1  // pNorm
	p.Param[49] = -2.0 // log10(ksat)

	results, err := Run(p, WithWarmupSteps(3))
	require.NoError(t, err)

	for i, s := range results.States {
		assert.GreaterOrEqual(t, s.RatioQbase, 0.0, "ratio_qbase should stay within [0,1] at step %d", i)
		assert.LessOrEqual(t, s.RatioQbase, 1.0, "ratio_qbase should stay within [0,1] at step %d", i)
	}
}
