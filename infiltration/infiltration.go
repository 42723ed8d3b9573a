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

// Package infiltration implements the Green-Ampt and SCS curve-number infiltration
// submodules (§4.7.c/d), grounded on
// original_source/src/hsamiplus/hsami_ecoulement_vertical.py (green_ampt, scs_cn).
//
// Green-Ampt's wetting-front solve differs from the reference: the reference
// minimizes |F(f)| over [0, eau_surface*nb_pas] with scipy's bounded minimizer
// (fminbound); this instead root-finds F(f) = f - k/nb_pas -
// |psi|*m*ln(1+f/(|psi|*m)) directly with Brent's method, since F is strictly
// increasing on that interval and a root-finder converges faster and more
// robustly than minimizing its absolute value.
package infiltration

import "math"

const defaultPorosity = 0.45

// GreenAmpt returns (infiltration, ruissellement) for one step, both in cm, given
// the water available at the surface after evapotranspiration (eauSurface), the
// saturated hydraulic conductivity ks (cm/day) and wetting-front matric pressure psi
// (cm), the unsaturated-zone capacity solMax and current content sol (cm), the
// number of sub-daily steps nbPas, the frozen-soil depth gel (cm) and land snow
// water equivalent neigeAuSol (cm). porosity overrides the default first-layer
// porosity (0.45 cm3/cm3) when modules.sol is "3couches".
func GreenAmpt(eauSurface, ks, psi, solMax, sol float64, nbPas int, gel, neigeAuSol float64, porosity ...float64) (infiltrationCm, ruissellement float64) {
	k := ks / 2

	if eauSurface*float64(nbPas) < ks {
		return eauSurface, 0
	}

	n := defaultPorosity
	if len(porosity) > 0 {
		n = porosity[0]
	}

	m := n * (solMax - sol) / solMax

	var f float64
	switch {
	case m == 0:
		f = ks
	default:
		absPsiM := math.Abs(psi) * m
		fctobj := func(x float64) float64 {
			return x - k/float64(nbPas) - absPsiM*math.Log(1+x/absPsiM)
		}
		f = brentRoot(fctobj, 0, eauSurface*float64(nbPas))
	}

	if gel > 0 && neigeAuSol > 0 {
		ratioGel := gel / solMax
		theta := n * sol / solMax
		inf := (5 * (1 - theta) * math.Pow(neigeAuSol*10, 0.584)) / 10
		infPotentielle := inf*ratioGel + f*(1-ratioGel)

		if infPotentielle > eauSurface {
			return eauSurface, 0
		}
		return infPotentielle, eauSurface - infPotentielle
	}

	if f > eauSurface {
		return eauSurface, 0
	}
	return f, eauSurface - f
}

// SCSCN returns (infiltration, ruissellement) for one step from the curve-number
// method, given the water available at the surface (eauSurface, cm) and the curve
// number cn (param[23]).
func SCSCN(eauSurface, cn float64) (infiltrationCm, ruissellement float64) {
	s := (25400/cn - 254) / 10
	potentiel := (eauSurface - 0.2*s) * (eauSurface - 0.2*s) / (eauSurface + 0.8*s)
	ruissellement = math.Min(potentiel, eauSurface)
	return eauSurface - ruissellement, ruissellement
}

// brentRoot finds a root of f on [a, b] using Brent's method. f is assumed
// monotonic on the interval, so when the interval doesn't bracket a sign change
// (guarding against a degenerate a==b or floating-point edge) it returns the
// endpoint closest to zero rather than failing.
func brentRoot(f func(float64) float64, a, b float64) float64 {
	const (
		tol     = 1e-12
		maxIter = 100
	)

	fa, fb := f(a), f(b)
	if fa*fb > 0 {
		if math.Abs(fa) < math.Abs(fb) {
			return a
		}
		return b
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}

	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < maxIter && fb != 0 && math.Abs(b-a) > tol; i++ {
		var s float64
		if fa != fc && fb != fc {
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}

		cond := s < (3*a+b)/4 || s > b ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < tol) ||
			(!mflag && math.Abs(c-d) < tol)
		if cond {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d, c, fc = c, b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}

		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}

	return b
}
