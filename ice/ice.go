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

// Package ice implements the reservoir-ice submodule (§4.4): a degree-day Stefan
// model and an energy-balance "MyLake" model, both grounded on
// original_source/src/hsamiplus/hsami_glace.py. Neither model evaluates a
// stage-area curve (physio.ReservoirStageArea, see DESIGN.md): the reservoir area is
// held at superficie[1] for the duration of a run, matching the reference's own
// degenerate "niveau is NaN" branch.
package ice

import (
	"fmt"
	"math"
)

// IceDensity is the density of floating ice at 0C and atmospheric pressure
// (kg/L, i.e. relative to water), used to convert an ice-thickness change into the
// eeg deposit.
const IceDensity = 0.916

// State is the mutable subset of watershed state this submodule owns.
type State struct {
	CumDegGel                float64
	ObjGel                   float64
	DernierGel               float64
	ReservoirEpaisseurGlace  float64 // cm on exit (Stefan/MyLake work in m internally)
	ReservoirEnergieGlace    float64
	ReservoirSuperficie      float64
	ReservoirSuperficieGlace float64
	ReservoirSuperficieRef   float64
	Eeg                      []float64
	RatioBassin              float64
	RatioReservoir           float64
	RatioFixe                float64
}

// Config selects the reservoir-ice model and carries the static geometry.
type Config struct {
	Reservoir       bool
	GlaceReservoir  string // "", "stefan", "mylake"
	Een             string
	SuperficieTotal float64 // superficie[0]
	Superficie1     float64 // superficie[1]
	K               float64 // param[46], Stefan thickness coefficient
}

// Meteo is the reservoir meteorology read by the full degree-day/energy-balance
// branch; Step's hasMeteo argument selects between that branch and the "fixed
// reservoir surface" branch (no meteorology passed, §4.4).
type Meteo struct {
	Tmin, Tmax, RainCm, Sunshine float64
}

// Band is the warmest band's snow state, needed by MyLake (§4.5.b "at the warmest
// band"); CouvertM is snow depth in m, DensiteFrac is snow density as a fraction of
// water density (1000 kg/m^3).
type Band struct {
	CouvertM    float64
	DensiteFrac float64
}

const (
	hiverGlacio = -200
	nbJ         = 21
)

// Step runs one time step of the reservoir-ice submodule. neigeAuSol is the
// pre-step land SWE (cm), used to compute bassinVersReservoir. hasMeteo selects the
// "fixed reservoir surface" branch. nBands/warmestBand/derniereNeige/param are only
// consulted for the MyLake model.
func Step(cfg Config, s *State, neigeAuSol float64, hasMeteo bool, met Meteo, param [50]float64, nBands int, warmestBand Band, derniereNeige float64) (glaceVersReservoir, bassinVersReservoir float64, err error) {
	var superficieGlace [2]float64
	var superficieReservoir [2]float64

	switch {
	case !cfg.Reservoir:
		s.ReservoirEpaisseurGlace = 0
		s.ReservoirSuperficieGlace = 0
		s.RatioReservoir = 0
		s.RatioBassin = 1
		s.RatioFixe = 1
		return 0, 0, nil

	case !hasMeteo:
		s.ReservoirEpaisseurGlace = 0
		s.ReservoirSuperficieGlace = 0
		s.RatioReservoir = cfg.Superficie1 / cfg.SuperficieTotal
		s.RatioBassin = 1 - s.RatioReservoir
		s.RatioFixe = 1 - cfg.Superficie1/cfg.SuperficieTotal
		return 0, 0, nil
	}

	superficieReservoir[0] = s.ReservoirSuperficie
	superficieGlace[0] = s.ReservoirSuperficieGlace

	switch cfg.GlaceReservoir {
	case "stefan":
		stefan(cfg, s, met, &superficieGlace, &superficieReservoir)
	case "mylake":
		if cfg.Een != "mdj" && cfg.Een != "alt" {
			return 0, 0, fmt.Errorf("ice: glace_reservoir=mylake requires een to be mdj or alt")
		}
		mylake(cfg, s, met, param, nBands, warmestBand, derniereNeige, &superficieGlace, &superficieReservoir)
	default:
		return 0, 0, fmt.Errorf("ice: glace_reservoir must be \"stefan\" or \"mylake\", got %q", cfg.GlaceReservoir)
	}

	s.ReservoirEpaisseurGlace *= 100 // m -> cm

	s.RatioReservoir = superficieReservoir[1] / cfg.SuperficieTotal
	s.RatioBassin = 1 - s.RatioReservoir
	s.RatioFixe = 1 - cfg.Superficie1/cfg.SuperficieTotal

	deltaGlace := superficieGlace[1] - superficieGlace[0]
	deltaReservoir := (superficieReservoir[1] - superficieReservoir[0]) / cfg.SuperficieTotal

	switch {
	case deltaGlace > 0:
		ind1 := int(superficieGlace[0]) + 1
		ind2 := int(superficieGlace[1])
		var sum float64
		for i := ind1; i <= ind2 && i < len(s.Eeg); i++ {
			s.Eeg[i] = s.ReservoirEpaisseurGlace * IceDensity
			sum += s.Eeg[i]
		}
		glaceVersReservoir = -sum
	case deltaGlace < 0:
		ind1 := int(superficieGlace[1]) + 1
		ind2 := int(superficieGlace[0])
		var sum float64
		for i := ind1; i <= ind2 && i < len(s.Eeg); i++ {
			sum += s.Eeg[i]
			s.Eeg[i] = 0
		}
		glaceVersReservoir = sum
	}

	bassinVersReservoir = deltaReservoir * neigeAuSol

	return glaceVersReservoir, bassinVersReservoir, nil
}

func stefan(cfg Config, s *State, met Meteo, superficieGlace, superficieReservoir *[2]float64) {
	moyenneGel := (met.Tmin + met.Tmax/2) / 2
	if moyenneGel >= 0 {
		moyenneGel = 0
	}
	cumdegGel := s.CumDegGel + moyenneGel

	superficieReservoir[0] = s.ReservoirSuperficie
	superficieReservoir[1] = superficieReservoir[0] // no stage-area curve, see package doc

	var epaisseur float64
	if cumdegGel < s.ObjGel {
		epaisseur = cfg.K * math.Sqrt(math.Abs(cumdegGel-s.ObjGel)) / 100

		supref := s.ReservoirSuperficieRef
		if s.ReservoirEpaisseurGlace == 0 {
			supref = superficieReservoir[0]
		}

		dernierGel := s.DernierGel
		if moyenneGel == 0 {
			dernierGel++
		} else {
			dernierGel = 0
		}
		objGel := s.ObjGel
		if dernierGel >= nbJ {
			objGel = hiverGlacio + cumdegGel
		}

		superficieGlace[1] = math.Max(0, supref-superficieReservoir[1])
		s.DernierGel = dernierGel
		s.ReservoirSuperficieRef = supref
		s.ObjGel = objGel
	} else {
		superficieGlace[1] = 0
		epaisseur = 0
	}

	superficieGlace[1] = math.Round(superficieGlace[1])

	s.ReservoirSuperficie = superficieReservoir[1]
	s.ReservoirSuperficieGlace = superficieGlace[1]
	s.ReservoirEpaisseurGlace = epaisseur
	s.CumDegGel = cumdegGel
}

func mylake(cfg Config, s *State, met Meteo, param [50]float64, nBands int, warmest Band, derniereNeige float64, superficieGlace, superficieReservoir *[2]float64) {
	const (
		kI  = 2.24
		rhoI = 916
		rhoW = 1000
		lf  = 3.34e5
		cI  = 2093.4
		cW  = 4216
	)

	superficieReservoir[0] = s.ReservoirSuperficie
	superficieReservoir[1] = superficieReservoir[0]

	epaisseur0 := s.ReservoirEpaisseurGlace / 100 // cm -> m
	supref := s.ReservoirSuperficieRef
	if epaisseur0 == 0 {
		supref = superficieReservoir[0]
	}

	ta := (met.Tmin + met.Tmax/2) / 2

	var epaisseur1, energie float64

	conductiviteRatio := func() float64 {
		if warmest.CouvertM > 0 {
			ks := conductiviteNeige(warmest.DensiteFrac * rhoW)
			return kI * warmest.CouvertM / (ks * epaisseur0)
		}
		return 1 / (10 * epaisseur0)
	}

	switch {
	case ta <= 0:
		var ti float64
		if epaisseur0 > 0 {
			p := conductiviteRatio()
			ti = ta / (1 + p)
		} else {
			ti = ta
		}
		under := epaisseur0*epaisseur0 + (2*kI*86400/(rhoI*lf))*(-ti)
		if under < 0 {
			epaisseur1 = 0
			energie = 0
		} else {
			epaisseur1 = math.Sqrt(under)
			if epaisseur1 == 0 {
				energie = 0
			} else {
				energie = ti * epaisseur1 * rhoI * cI
			}
		}

	default:
		if epaisseur0 > 0 {
			p := conductiviteRatio()
			ti := ta / (1 + p)
			energie = ti * epaisseur0 * rhoI * cI

			if warmest.CouvertM == 0 {
				energie += (met.RainCm / 100) * rhoW * (lf + cW*ta)

				indiceRadiation := (1.15 - 0.4*math.Exp(-0.38*derniereNeige)) * math.Pow(met.Sunshine/0.52, 0.33)
				const albedo = 0.33

				var tauxFonte float64
				switch cfg.Een {
				case "alt":
					tauxFonte = param[2] / 100
				case "mdj":
					tauxFonte = 1.5 * param[27+nBands] / 100
				}

				potentielFonte := tauxFonte * ta * indiceRadiation * (1 - albedo)
				energie += potentielFonte * rhoW * lf
				s.ReservoirEnergieGlace = potentielFonte * rhoW * lf

				energie += 0.5 * 86400 // Leppäranta (2010) geothermal interface flux

				if energie > 0 {
					fonte := energie / (lf * rhoW)
					epaisseur1 = math.Max(0, epaisseur0-fonte)
				} else {
					epaisseur1 = epaisseur0
				}
			} else {
				epaisseur1 = epaisseur0
			}
		} else {
			energie = 0
			epaisseur1 = 0
		}
	}

	superficieGlace[1] = math.Round(math.Max(0, supref-superficieReservoir[1]))

	s.ReservoirSuperficie = superficieReservoir[1]
	s.ReservoirSuperficieGlace = superficieGlace[1]
	s.ReservoirEpaisseurGlace = epaisseur1
	s.ReservoirSuperficieRef = supref
	s.ReservoirEnergieGlace = energie
}

// conductiviteNeige is a polynomial fit for snow thermal conductivity (W/(m*K)) as a
// function of density (kg/m^3), from original_source's ConductiviteNeige.
func conductiviteNeige(densite float64) float64 {
	const (
		d0 = 0.36969
		d1 = 1.58688e-03
		d2 = 3.02462e-06
		d3 = 5.19756e-09
		d4 = 1.56984e-11
		p0 = 1.0
	)
	p1 := densite - 329.6
	p2 := (densite-260.378)*p1 - 21166.4*p0
	p3 := (densite-320.69)*p2 - 24555.8*p1
	p4 := (densite-263.363)*p3 - 11739.3*p2
	return d0*p0 + d1*p1 + d2*p2 + d3*p3 + d4*p4
}
