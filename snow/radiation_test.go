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

package snow

import "testing"

// A flat slope has no aspect-dependent tilt: the inclined-surface integral reduces
// to the horizontal one, so RadiationIndex must be 1 regardless of aspect or day.
func TestRadiationIndexFlatSlopeIsUnity(t *testing.T) {
	const latRad = 0.7896 // ~45 degrees N
	for aspect := 1; aspect <= 8; aspect++ {
		for _, jj := range []int{1, 100, 200, 300} {
			idx := RadiationIndex(jj, latRad, aspect, 1, 0)
			if diff := idx - 1; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("aspect %d, jj %d: flat-slope index = %v, want 1", aspect, jj, idx)
			}
		}
	}
}

// A south-facing slope (aspect 5, per the 1..8 compass mapping starting at north)
// should receive more winter insolation than a north-facing one at mid-latitude.
func TestRadiationIndexSouthFacingExceedsNorthInWinter(t *testing.T) {
	const latRad = 0.7896
	const jj = 355 // late December
	const slope = 20.0
	south := RadiationIndex(jj, latRad, 5, 1, slope)
	north := RadiationIndex(jj, latRad, 1, 1, slope)
	if south <= north {
		t.Errorf("expected south-facing slope to receive more winter radiation than north-facing: south=%v north=%v", south, north)
	}
}
