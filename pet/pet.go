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

// Package pet computes potential evapotranspiration (§4.3): thirteen alternative
// daily formulas, distributed over a sub-daily step by a fixed 24-hour weighting.
// None of the formulas consume the parameter vector; all of their coefficients are
// the named physical/empirical constants from the reference formulas.
package pet

import (
	"fmt"
	"math"
)

// hourlyWeights sums to 100; index 0 is hour [0,1), per Fortin & Girard (1970).
var hourlyWeights = [24]float64{
	.5, .5, .5, .5, .5, .6, 1.1, 2.4, 4, 5.4, 7, 8.4, 9.6, 10.4, 10.9, 10.8, 9.9,
	7.8, 5, 2, .7, .5, .5, .5,
}

// Physio is the subset of watershed physiography PET formulas need.
type Physio struct {
	LatitudeRadians float64
	Altitude        float64
	SoilAlbedo      float64
}

// Step computes the PET depth (cm) for intra-day step pas (1-indexed) out of nbPas
// steps per day, on Julian day jj, given daily tmin/tmax and the formula tag. PET is
// never negative.
func Step(pas, nbPas, jj int, tmin, tmax float64, tag string, phy Physio) (float64, error) {
	total, err := daily(jj, tmin, tmax, tag, phy)
	if err != nil {
		return 0, err
	}
	if total < 0 {
		total = 0
	}
	debut := (pas - 1) * 24 / nbPas
	fin := pas * 24 / nbPas
	var w float64
	for h := debut; h < fin && h < 24; h++ {
		w += hourlyWeights[h] / 100
	}
	return total * w, nil
}

func daily(jj int, tmin, tmax float64, tag string, phy Physio) (float64, error) {
	switch tag {
	case "hsami":
		return 0.00065 * 2.54 * 9 / 5 * (tmax - tmin) *
			math.Exp(0.019*(tmin*9/5+tmax*9/5+64)), nil
	case "blaney_criddle":
		p := daylightShare(phy.LatitudeRadians, jj)
		return blaneyCriddle(tmin, tmax, p), nil
	case "hamon":
		return hamon(jj, tmin, tmax, phy.LatitudeRadians), nil
	case "linacre":
		return linacre(tmin, tmax, phy.LatitudeRadians, phy.Altitude), nil
	case "kharrufa":
		p := daylightShare(phy.LatitudeRadians, jj)
		return kharrufa(tmin, tmax, p), nil
	case "mohyse":
		delta := declination(jj)
		return mohyse(tmin, tmax, delta, phy.LatitudeRadians), nil
	case "romanenko":
		return romanenko(tmin, tmax), nil
	case "makkink":
		re := extraterrestrialRadiation(phy.LatitudeRadians, jj)
		rg := globalRadiation(re, tmin, tmax)
		m := slopeSatPressure(tmin, tmax)
		lambda := latentHeatVaporisation(tmin, tmax)
		return makkink(rg, m, lambda), nil
	case "turc":
		re := extraterrestrialRadiation(phy.LatitudeRadians, jj)
		rg := globalRadiation(re, tmin, tmax)
		return turc(tmin, tmax, rg), nil
	case "mcguinness_bordne":
		re := extraterrestrialRadiation(phy.LatitudeRadians, jj)
		rg := globalRadiation(re, tmin, tmax)
		lambda := latentHeatVaporisation(tmin, tmax)
		return mcguinnessBordne(tmin, tmax, rg, lambda), nil
	case "abtew":
		re := extraterrestrialRadiation(phy.LatitudeRadians, jj)
		rg := globalRadiation(re, tmin, tmax)
		lambda := latentHeatVaporisation(tmin, tmax)
		return abtew(tmin, tmax, rg, lambda), nil
	case "hargreaves":
		re := extraterrestrialRadiation(phy.LatitudeRadians, jj)
		return hargreaves(tmin, tmax, re), nil
	case "priestley_taylor":
		re := extraterrestrialRadiation(phy.LatitudeRadians, jj)
		rgo := clearSkyRadiation(re, phy.Altitude)
		rg := globalRadiation(re, tmin, tmax)
		rn := netRadiation(tmin, tmax, rg, rgo, phy.SoilAlbedo)
		m := slopeSatPressure(tmin, tmax)
		lambda := latentHeatVaporisation(tmin, tmax)
		return priestleyTaylor(rn, m, lambda), nil
	default:
		return 0, fmt.Errorf("pet: unknown formula tag %q", tag)
	}
}

func blaneyCriddle(tmin, tmax, p float64) float64 {
	ta := (tmin + tmax) / 2
	const k = 0.85
	v := k * p * (0.46*ta + 8.13) / 10
	if v < 0 {
		return 0
	}
	return v
}

func hamon(jj int, tmin, tmax, latRad float64) float64 {
	dl := dayLength(jj, latRad)
	ta := (tmin + tmax) / 2
	es := vaporPressure(ta)
	v := 2.1 * dl * dl * es / (ta + 273.3) / 10
	if v < 0 {
		return 0
	}
	return v
}

func linacre(tmin, tmax, latRad, altitude float64) float64 {
	ta := (tmin + tmax) / 2
	if ta < 0 {
		return 0
	}
	th := ta + 0.006*altitude
	td := 0.38 + tmax - 0.018*tmax*tmax + 1.4 + tmin - 5
	latDeg := latRad * 180 / math.Pi
	return (500*th/(100-latDeg) + 15*(ta-td)) / (80 - ta) / 10
}

func kharrufa(tmin, tmax, p float64) float64 {
	ta := (tmin + tmax) / 2
	if ta < 0 {
		ta = 0
	}
	return 0.34 * p * math.Pow(ta, 1.3) / 10
}

func mohyse(tmin, tmax, delta, latRad float64) float64 {
	ta := (tmin + tmax) / 2
	return 1 / math.Pi * math.Acos(-math.Tan(latRad)*math.Tan(delta)) *
		math.Exp(17.3*ta/(238+ta)) / 10
}

func romanenko(tmin, tmax float64) float64 {
	ta := (tmin + tmax) / 2
	ea := vaporPressure(ta)
	ed := vaporPressure(tmin)
	return 0.0045 * (1 + ta/25) * (1 + ta/25) * (1 - ed/ea) * 100
}

func makkink(rg, m, lambda float64) float64 {
	const psi = 0.066
	return ((m/(m+psi))*(0.61*rg/lambda) - .12) / 10
}

func turc(tmin, tmax, rg float64) float64 {
	ta := (tmin + tmax) / 2
	if ta < 0 {
		return 0
	}
	const k = 0.35
	return k * (rg + 2.094) * (ta / (ta + 15)) / 10
}

func mcguinnessBordne(tmin, tmax, rg, lambda float64) float64 {
	ta := (tmin + tmax) / 2
	const rhoW = 1000
	return rg / (lambda * rhoW) * (ta + 5) / 68 * 100
}

func abtew(tmin, tmax, rg, lambda float64) float64 {
	ta := (tmin + tmax) / 2
	if ta < 0 {
		return 0
	}
	return 0.53 * rg / lambda / 10
}

func hargreaves(tmin, tmax, re float64) float64 {
	ta := (tmin + tmax) / 2
	if tmax-tmin < 0 {
		return 0
	}
	return 0.0135 * (0.16 * re * math.Sqrt(tmax-tmin)) * 0.4082 * (ta + 17.8) / 10
}

func priestleyTaylor(rn, m, lambda float64) float64 {
	const psi = 0.066
	const rhoW = 1000
	const ct = 1.26
	return ct * m * rn / (lambda * rhoW * (m + psi)) * 100
}

// --- support functions, all grounded on the same reference derivations ---

func daylightShare(latRad float64, jj int) float64 {
	var dl [366]float64
	var sum float64
	for d := 0; d < 366; d++ {
		dl[d] = dayLength(d, latRad)
		sum += dl[d]
	}
	idx := jj
	if idx < 0 {
		idx = 0
	}
	if idx > 365 {
		idx = 365
	}
	return 100 * dl[idx] / sum
}

func dayLength(jj int, latRad float64) float64 {
	delta := declination(jj)
	ws := math.Acos(-math.Tan(latRad) * math.Tan(delta))
	return 24 / math.Pi * ws
}

func declination(jj int) float64 {
	return 0.41 * math.Sin(float64(jj-80)/365*2*math.Pi)
}

func vaporPressure(t float64) float64 {
	return 0.6108 * math.Exp(17.27*t/(t+237.3))
}

func latentHeatVaporisation(tmin, tmax float64) float64 {
	ta := (tmin + tmax) / 2
	return 2.5 - 2.36e-3*ta
}

func slopeSatPressure(tmin, tmax float64) float64 {
	ta := (tmin + tmax) / 2
	ea := vaporPressure(ta)
	return 4098 * ea / ((237.3 + ta) * (237.3 + ta))
}

func extraterrestrialRadiation(latRad float64, jj int) float64 {
	const gsc = 0.0820
	dr := 1 + 0.033*math.Cos(2*math.Pi/365*float64(jj))
	delta := 0.409 * math.Sin(2*math.Pi*float64(jj)/365-1.39)
	ws := math.Acos(-math.Tan(latRad) * math.Tan(delta))
	return 24 * 60 / math.Pi * gsc * dr *
		(ws*math.Sin(latRad)*math.Sin(delta) + math.Cos(latRad)*math.Cos(delta)*math.Sin(ws))
}

func globalRadiation(re float64, tmin, tmax float64) float64 {
	const krs = 0.175
	return krs * math.Sqrt(tmax-tmin) * re
}

func clearSkyRadiation(re, altitude float64) float64 {
	return (0.75 + 2.10e-5*altitude) * re
}

func netRadiation(tmin, tmax, rg, rgo, albedo float64) float64 {
	rns := rg * (1 - albedo)
	const sigma = 4.903e-9
	const k = 273.16
	ea := vaporPressure(tmin)
	rapport := rg / rgo
	if rapport >= 1 {
		rapport = 1
	}
	k4 := math.Pow(tmax+k, 4)
	k4min := math.Pow(tmin+k, 4)
	rnl := sigma * (k4+k4min) / 2 * (0.34 - 0.14*math.Sqrt(ea)) * (1.35*rapport - 0.35)
	return rns - rnl
}
