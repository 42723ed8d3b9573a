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

// Package soil implements the vertical-flow submodule (§4.7): the one-layer
// "hsami" unsaturated-zone/groundwater model and the three-layer "3couches" model
// with sub-hourly percolation, plus the two groundwater-recession laws ("hsami"
// linear, "dingman" exponential). Grounded term-for-term on
// original_source/src/hsamiplus/hsami_ecoulement_vertical.py.
package soil

import (
	"math"

	"github.com/cehqhydro/hsami/infiltration"
)

// State is the mutable subset of watershed state this submodule owns. Sol has one
// element for the "hsami" model, two for "3couches".
type State struct {
	Gel   float64
	Sol   []float64
	Nappe float64
}

// Config selects the soil/infiltration/groundwater models and carries the static
// parameter vector this submodule reads from.
type Config struct {
	Sol          string // "hsami" or "3couches"
	Infiltration string // "hsami", "green_ampt", "scs_cn"
	Qbase        string // "hsami" or "dingman"
	Param        [50]float64
}

// Step runs one time step of the vertical-flow submodule. offre is the water
// available at the surface before evapotranspiration (cm), demande the
// evaporative demand (cm), ruissellementSurface the surface runoff already
// computed by runoff.Split (used by the "hsami" infiltration branch only),
// neigeAuSol the pre-step land snow water equivalent (cm, for Green-Ampt's
// frozen-soil blend). Updated copies of apportVertical/etr are returned; the
// argument slices are left unmodified.
func Step(cfg Config, s *State, nbPas int, offre, demande, ruissellementSurface, neigeAuSol float64, apportVertical, etr []float64) (apport, etrOut []float64) {
	if cfg.Sol == "3couches" {
		return step3Couches(cfg, s, nbPas, offre, demande, ruissellementSurface, neigeAuSol, apportVertical, etr)
	}
	return step1Couche(cfg, s, nbPas, offre, demande, ruissellementSurface, neigeAuSol, apportVertical, etr)
}

func step1Couche(cfg Config, s *State, nbPas int, offre, demande, ruissellementSurface, neigeAuSol float64, apportVertical, etr []float64) ([]float64, []float64) {
	param := cfg.Param
	solMin := param[11]
	solMax := param[12]
	nappeMax := param[13]
	portionRuissellementSurface := param[14]
	portionRuissellementSolMax := param[15]
	tauxVidangeSolMin := param[16] / float64(nbPas)
	tauxVidangeNappe := param[17] / float64(nbPas)

	gel := s.Gel
	sol := s.Sol[0]
	nappe := s.Nappe

	apport := append([]float64(nil), apportVertical...)

	ecart := offre - demande
	var evapo, pompage, infPotentielle float64

	if ecart > 0 {
		evapo = demande
		offre -= demande

		switch cfg.Infiltration {
		case "green_ampt":
			ks := math.Pow(10, param[34])
			psi := param[25]
			infPotentielle, apport[2] = infiltration.GreenAmpt(offre, ks, psi, solMax, sol, nbPas, gel, neigeAuSol)
		case "scs_cn":
			infPotentielle, apport[2] = infiltration.SCSCN(offre, param[23])
		default: // "hsami"
			infPotentielle = offre
			apport[2] = ruissellementSurface
		}

		apport[1] = infPotentielle * portionRuissellementSurface
		infil := infPotentielle * (1 - portionRuissellementSurface)
		sol += infil
		pompage = 0
	} else {
		evapo = offre
		pompage = math.Min(sol-solMin, -sol/solMax*ecart)
		sol -= pompage
		if cfg.Infiltration == "hsami" {
			apport[2] = ruissellementSurface
		}
	}

	apport, nappe = vidangeNappe(apport, nappe, tauxVidangeNappe, nappeMax, nbPas, cfg.Qbase, param)

	debordementSol := sol + gel - solMax
	if debordementSol > 0 {
		apport[1] += debordementSol * portionRuissellementSolMax
		nappe += debordementSol * (1 - portionRuissellementSolMax)
		sol -= debordementSol
		if sol < 0 {
			gel += sol
			sol = 0
		}
	}

	if sol > solMin {
		solVersNappe := (sol - solMin) * tauxVidangeSolMin
		nappe += solVersNappe
		sol -= solVersNappe
	}

	s.Gel = gel
	s.Sol[0] = sol
	s.Nappe = nappe

	etrOut := append([]float64(nil), etr...)
	etrOut[2] = evapo
	etrOut[3] = pompage

	return apport, etrOut
}

// vidangeNappe drains (or recharges, for "dingman") the groundwater reserve and
// clips it to nappeMax, routing any excess to intermediate runoff (apport[1], per
// the reference's own choice of destination).
func vidangeNappe(apport []float64, nappe, tauxVidangeNappe, nappeMax float64, nbPas int, qbase string, param [50]float64) ([]float64, float64) {
	switch qbase {
	case "dingman":
		k := param[26]
		sy := param[27]
		apport[0] = k / float64(nbPas) * sy * nappe * math.Exp(-k/float64(nbPas))
		nappe -= apport[0]
	default: // "hsami"
		apport[0] = nappe * tauxVidangeNappe
		nappe *= 1 - tauxVidangeNappe
	}

	if nappe > nappeMax {
		apport[1] += nappe - nappeMax
		nappe = nappeMax
	}

	return apport, nappe
}

// step3Couches runs the three-layer percolation model: two unsaturated layers plus
// the groundwater reserve treated as a third layer at the base of the soil column,
// with sub-hourly percolation to damp the instability of Black et al. (1970)'s
// formulation at a daily step.
func step3Couches(cfg Config, s *State, nbPas int, offre, demande, ruissellementSurface, neigeAuSol float64, apportVertical, etr []float64) ([]float64, []float64) {
	param := cfg.Param
	sol := [3]float64{s.Sol[0], s.Sol[1], s.Nappe}
	gel := s.Gel

	b := [2]float64{param[36], param[37]}
	z := [2]float64{param[39], param[40]}
	cc := [2]float64{param[42], param[43]}
	n := [2]float64{param[44], param[45]}
	ks := [2]float64{math.Pow(10, param[24]), math.Pow(10, param[38])}
	pfp := param[41]
	nappeMax := param[13]
	portionRuissellementSurface := param[14]
	tauxVidangeNappe := param[17] / float64(nbPas)
	c := [2]float64{2*b[0] + 3, 2*b[1] + 3}

	solMax := [3]float64{n[0] * z[0], n[1] * z[1], nappeMax}
	solMin := [2]float64{cc[0] * z[0], cc[1] * z[1]}

	apport := append([]float64(nil), apportVertical...)
	ecart := offre - demande
	var evapo, pompage, infPotentielle float64

	if ecart > 0 {
		evapo = demande
		offre -= demande

		switch cfg.Infiltration {
		case "green_ampt":
			psi := param[25]
			infPotentielle, apport[2] = infiltration.GreenAmpt(offre, ks[0], psi, solMax[0], sol[0], nbPas, gel, neigeAuSol, n[0])
		case "scs_cn":
			var ruiss float64
			infPotentielle, ruiss = infiltration.SCSCN(offre, param[23])
			for i := range apport {
				apport[i] = ruiss
			}
		default: // "hsami"
			infPotentielle = ecart
			apport[2] = ruissellementSurface
		}
		pompage = 0
	} else {
		evapo = offre
		if cfg.Infiltration == "hsami" {
			apport[2] = ruissellementSurface
		}
		limitePompage := pfp * z[0]
		pompage = math.Min(sol[0]-limitePompage, -sol[0]/solMax[0]*ecart)
		sol[0] -= pompage
		infPotentielle = 0
	}

	pas1h := 24 / nbPas
	var recharge float64

	for ip := 0; ip < pas1h; ip++ {
		k0 := ks[0] * math.Pow(sol[0]/solMax[0], c[0])
		k1 := ks[1] * math.Pow(sol[1]/solMax[1], c[1])
		drainage := [2]float64{
			solMax[0] * k0 * (1.0 / 24) / z[0],
			solMax[1] * k1 * (1.0 / 24) / z[1],
		}

		ecartSolMin1 := sol[1] - solMin[1]
		if drainage[1] > ecartSolMin1 {
			drainage[1] = ecartSolMin1
		}
		apport[1] += drainage[1] * portionRuissellementSurface
		sol[1] -= drainage[1] * portionRuissellementSurface
		drainage[1] *= 1 - portionRuissellementSurface

		for is := 1; is >= 0; is-- {
			if is == 0 {
				if sol[0] < solMin[0] {
					drainage[0] = 0
				} else if ecartSolMin0 := sol[0] - solMin[0]; drainage[0] > ecartSolMin0 {
					drainage[0] = ecartSolMin0
				}
			} else if ecartSolMinI := sol[is] - solMin[is]; drainage[is] > ecartSolMinI {
				drainage[is] = ecartSolMinI
			}

			ecartSolMax := solMax[is+1] - sol[is+1]

			if is == 1 {
				surplus := math.Max(drainage[is]-ecartSolMax, 0)
				apport[1] += surplus
				sol[1] -= surplus
			}

			if drainage[is] > ecartSolMax {
				drainage[is] = ecartSolMax
			}

			sol[is] -= drainage[is]
			sol[is+1] += drainage[is]

			if is == 1 {
				recharge += drainage[is]
			}
		}
	}
	_ = recharge // accumulated per reference, not consumed downstream (no caller reads it)

	ecartSolMax0 := solMax[0] - sol[0]
	infil := math.Min(ecartSolMax0, infPotentielle)
	apport[2] += infPotentielle - infil
	sol[0] += infil

	switch cfg.Qbase {
	case "dingman":
		k := param[26]
		sy := param[27]
		apport[0] = k / float64(nbPas) * sy * sol[2] * math.Exp(-k/float64(nbPas))
		sol[2] -= apport[0]
	default: // "hsami"
		apport[0] = sol[2] * tauxVidangeNappe
		sol[2] *= 1 - tauxVidangeNappe
	}

	s.Sol[0] = sol[0]
	s.Sol[1] = sol[1]
	s.Nappe = sol[2]

	etrOut := append([]float64(nil), etr...)
	etrOut[2] = evapo
	etrOut[3] = pompage

	return apport, etrOut
}
