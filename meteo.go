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

// DefaultSunshineFraction is substituted when a meteorology row omits the
// sunshine-fraction component.
const DefaultSunshineFraction = 0.5

// NoObservedSWE is the sentinel substituted when a meteorology row omits the
// observed-snow-water-equivalent component.
const NoObservedSWE = -1.0

// MeteoSeries is a sequence of daily meteorology rows, each
// [tmin, tmax, rain_cm, snow_cm, sunshine_fraction?, snow_water_equivalent_observed?].
// The last two components are optional in the reference JSON serialisation; rows that
// omit them are shorter, and MeteoRow fills in the documented defaults.
type MeteoSeries [][]float64

// MeteoRow is one day's meteorology, with the optional trailing fields defaulted.
type MeteoRow struct {
	Tmin, Tmax     float64 // °C
	RainCm, SnowCm float64 // cm
	Sunshine       float64 // fraction, defaults to 0.5
	ObservedSWE    float64 // cm, defaults to -1 (absent)
}

// Row returns the i'th day of the series with defaults applied and tmin/tmax swapped
// if they arrive reversed (§4.2 pre-processing: "swap meteorology vector elements 0
// and 1 when tmin > tmax").
func (m MeteoSeries) Row(i int) MeteoRow {
	v := m[i]
	r := MeteoRow{
		Tmin:        v[0],
		Tmax:        v[1],
		Sunshine:    DefaultSunshineFraction,
		ObservedSWE: NoObservedSWE,
	}
	if len(v) > 2 {
		r.RainCm = v[2]
	}
	if len(v) > 3 {
		r.SnowCm = v[3]
	}
	if len(v) > 4 {
		r.Sunshine = v[4]
	}
	if len(v) > 5 {
		r.ObservedSWE = v[5]
	}
	if r.Tmin > r.Tmax {
		r.Tmin, r.Tmax = r.Tmax, r.Tmin
	}
	return r
}

// Tmoy is the daily mean temperature.
func (r MeteoRow) Tmoy() float64 {
	return (r.Tmin + r.Tmax) / 2
}

// HasObservedSWE reports whether this row carries an observed snow-water-equivalent
// reading, as opposed to the -1 absence sentinel.
func (r MeteoRow) HasObservedSWE() bool {
	return r.ObservedSWE >= 0
}

// DateVector is one [year, month, day, minute, second] entry aligned with a meteo row.
type DateVector [5]int

func (d DateVector) Year() int   { return d[0] }
func (d DateVector) Month() int  { return d[1] }
func (d DateVector) Day() int    { return d[2] }
func (d DateVector) Minute() int { return d[3] }
func (d DateVector) Second() int { return d[4] }

// JulianDay returns the 1-based day-of-year for this date.
func (d DateVector) JulianDay() int {
	return dayOfYear(d.Year(), d.Month(), d.Day())
}

var cumulativeDaysInMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

func dayOfYear(year, month, day int) int {
	jj := cumulativeDaysInMonth[month-1] + day
	if month > 2 && isLeapYear(year) {
		jj++
	}
	return jj
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
