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

// Package snow implements the interception + snow submodule (§4.5): the lumped
// degree-day model ("hsami"/"dj", this file) and the banded mixed degree-day model
// ("mdj"/"alt", banded.go), both grounded on
// original_source/src/hsamiplus/hsami_interception.py's dj_hsami/mdj_alt control
// flow. The freeze/thaw helpers (gelSol, degelSol, gelNeige, percolationEauFonte)
// that the reference calls are not present in original_source (only their call
// sites survived distillation); their bodies here are reconstructed from what each
// call site needs to hold (a bounded water transfer between sol/gel or
// fonte/neige_au_sol) and documented in DESIGN.md.
package snow

import "math"

// LumpedState is the subset of watershed state the hsami/dj model owns.
type LumpedState struct {
	NeigeAuSol, Fonte, NasTot, FonteTot, DerniereNeige float64
	Gel float64
	Sol float64
	Eeg []float64
}

// LumpedConfig selects "hsami" vs "dj" and carries the parameters this model reads.
type LumpedConfig struct {
	Een    string // "hsami" or "dj"
	Param  [50]float64
	SolMin float64 // param[11] for sol=hsami, param[42]*param[39] for sol=3couches
}

// Meteo is one step's watershed meteorology.
type Meteo struct {
	Tmin, Tmax, Pluie, Neige float64
	Soleil                   float64 // defaults to 0.5 when not observed
	Releve                   float64 // sixth column: observed SWE, -1 when absent
	HasReleve                bool
}

// ReservoirMeteo is one step's open-water meteorology (reservoir(3)/(4) in the
// reference).
type ReservoirMeteo struct {
	Pluie, Neige float64
}

const seuilNeigeModifiantAlbedo = 0

// LumpedStep runs one step of the lumped degree-day model.
func LumpedStep(cfg LumpedConfig, s *LumpedState, met Meteo, resMet ReservoirMeteo, duree float64, demandeEau, demandeReservoir float64) (eauSurface, demandeEauOut float64, apportVertical, etr [5]float64) {
	param := cfg.Param
	efficaciteEvapoHiver := param[1]
	tauxFonteJour := param[2]
	tauxFonteNuit := param[3]
	tempFonteJour := param[4]
	tempFonteNuit := param[5]
	tempRefPluie := param[6]
	effetRedouxSurAireEnneigee := param[7]

	apportVertical[3] = resMet.Pluie + resMet.Neige

	if s.NeigeAuSol > 0 && met.Neige <= seuilNeigeModifiantAlbedo {
		s.DerniereNeige += duree
	} else {
		s.DerniereNeige = 0
	}

	if met.HasReleve && met.Releve >= 0 {
		deltaNeige := s.NasTot - s.NeigeAuSol
		s.NeigeAuSol = met.Releve
		s.NasTot = s.NeigeAuSol + deltaNeige
	}

	s.NeigeAuSol += met.Neige
	s.NasTot += met.Neige

	dtMax := met.Tmax - tempFonteJour
	dtMin := met.Tmin - tempFonteNuit

	if dtMax < 0 {
		demandeEau = demandeEau * efficaciteEvapoHiver
		demandeReservoir = demandeReservoir * efficaciteEvapoHiver

		etr[4] = demandeReservoir
		apportVertical[3] -= etr[4]

		s.NeigeAuSol += met.Pluie
		s.NasTot += met.Pluie
		s.Fonte += met.Pluie
		s.FonteTot += met.Pluie

		if demandeEau < s.NeigeAuSol {
			s.NeigeAuSol -= demandeEau
			etr[0] = demandeEau
		} else {
			etr[0] = s.NeigeAuSol
			s.NeigeAuSol = 0
			s.NasTot = 0
		}
		demandeEau = 0

		s.Sol, s.Gel = gelSol(duree, dtMax, cfg.SolMin, s.Sol, s.Gel, s.NeigeAuSol)

		eauSurface = 0

		if s.NeigeAuSol > 0.0254 {
			s.Fonte, s.FonteTot = gelNeige(duree, dtMax, s.NeigeAuSol, s.Fonte, s.FonteTot)

			if s.Fonte > 0 {
				var eauFonte float64
				eauFonte, s.NeigeAuSol, s.NasTot, s.Fonte, s.FonteTot = percolationEauFonte(s.NeigeAuSol, s.NasTot, s.Fonte, s.FonteTot)
				eauSurface = eauFonte
			}
		}
	} else {
		if s.Gel > 0 {
			s.Sol, s.Gel = degelSol(duree, dtMax, s.Sol, s.Gel)
		}

		etr[4] = demandeReservoir
		apportVertical[3] -= etr[4]

		if s.NeigeAuSol > 0 {
			aireEnneigee := effetRedouxSurAireEnneigee * (1 - s.FonteTot/s.NasTot)
			aireEnneigee = math.Max(0.1, math.Min(aireEnneigee, 1))

			effetRadiation := (1.15 - 0.4*math.Exp(-0.38*s.DerniereNeige)) * math.Pow(met.Soleil/0.52, 0.33)

			fonteJour := dtMax * aireEnneigee * tauxFonteJour * effetRadiation * duree
			fonteNuit := dtMin * aireEnneigee * tauxFonteNuit * duree
			neigeFondue := fonteJour + fonteNuit

			tMoy := 2.0/3*met.Tmax + 1.0/3*met.Tmin
			if tMoy > tempRefPluie {
				neigeFondue += 0.0126 * (tMoy - tempRefPluie) * aireEnneigee * met.Pluie
			}

			switch cfg.Een {
			case "dj":
				potentielFonte := neigeFondue
				neigeSolide := s.NeigeAuSol - s.Fonte

				switch {
				case potentielFonte < 0:
					potentielGel := -potentielFonte
					if s.Fonte-potentielGel >= 0 {
						s.Fonte -= potentielGel
						neigeSolide += potentielGel
					} else {
						neigeSolide += s.Fonte
						s.Fonte = 0
					}
				case neigeSolide-potentielFonte >= 0:
					s.Fonte += potentielFonte
					neigeSolide -= potentielFonte
				default:
					s.Fonte += neigeSolide
					neigeSolide = 0
				}

				demande := demandeEau * efficaciteEvapoHiver * aireEnneigee
				pluieSurNeige := met.Pluie * aireEnneigee

				if demande > 0 {
					if pluieSurNeige-demande >= 0 {
						etr[1] = demande
						pluieSurNeige -= demande
					} else {
						etr[1] = pluieSurNeige
						demande -= pluieSurNeige
						pluieSurNeige = 0

						if s.Fonte-demande >= 0 {
							etr[1] += demande
							s.Fonte -= demande
						} else {
							etr[1] += s.Fonte
							demande -= s.Fonte
							s.Fonte = 0

							if neigeSolide-demande >= 0 {
								etr[0] += demande
								neigeSolide -= demande
							} else {
								etr[0] += neigeSolide
								neigeSolide = 0
							}
						}
					}
				}

				s.Fonte += pluieSurNeige
				s.NeigeAuSol = neigeSolide + s.Fonte

			default: // "hsami"
				pluieMoinsEvaporation := (met.Pluie - efficaciteEvapoHiver*demandeEau) * aireEnneigee

				if s.NeigeAuSol+pluieMoinsEvaporation < 0 {
					etr[1] = s.NeigeAuSol + met.Pluie*aireEnneigee
				} else {
					etr[1] = efficaciteEvapoHiver * demandeEau * aireEnneigee
				}

				neigeFondue += pluieMoinsEvaporation

				nasAvantPme := s.NeigeAuSol
				s.NeigeAuSol += pluieMoinsEvaporation
				s.NasTot += pluieMoinsEvaporation

				if s.NeigeAuSol < 0 {
					s.NeigeAuSol = 0
					etr[1] = nasAvantPme
				}

				if neigeFondue > 0 {
					s.Fonte += neigeFondue
					s.FonteTot += neigeFondue
				}
			}

			eauSurface = met.Pluie * (1 - aireEnneigee)
			demandeEau = demandeEau * (1 - aireEnneigee)

			if s.Fonte < s.NeigeAuSol {
				var eauFonte float64
				eauFonte, s.NeigeAuSol, s.NasTot, s.Fonte, s.FonteTot = percolationEauFonte(s.NeigeAuSol, s.NasTot, s.Fonte, s.FonteTot)
				eauSurface += eauFonte
			} else {
				eauSurface += s.NeigeAuSol
				s.NeigeAuSol, s.NasTot, s.Fonte, s.FonteTot = 0, 0, 0, 0
			}

			if s.NeigeAuSol == 0 {
				meltGlacierShelf(s, effetRadiation, tauxFonteJour, tauxFonteNuit, dtMax, dtMin, duree, &apportVertical)
			}
		} else {
			eauSurface = met.Pluie
			meltGlacierShelf(s, (1.15-0.4*math.Exp(-0.38*s.DerniereNeige))*math.Pow(met.Soleil/0.52, 0.33), tauxFonteJour, tauxFonteNuit, dtMax, dtMin, duree, &apportVertical)
		}
	}

	return eauSurface, demandeEau, apportVertical, etr
}

// meltGlacierShelf melts the reservoir's shelf-ice deposits (eeg) at 1.5x the snow
// melt rate once all snow has disappeared for the step, per Braithwaite (1995) and
// Singh et al. (1999); melt is released to apportVertical[4].
func meltGlacierShelf(s *LumpedState, effetRadiation, tauxFonteJour, tauxFonteNuit, dtMax, dtMin, duree float64, apportVertical *[5]float64) {
	if dtMax <= 0 {
		return
	}
	potentielFonte := 1.5*dtMax*tauxFonteJour*effetRadiation*duree + 1.5*dtMin*tauxFonteNuit*duree
	if potentielFonte <= 0 {
		return
	}
	for i, v := range s.Eeg {
		if v <= 0 {
			continue
		}
		if potentielFonte >= v {
			apportVertical[4] += v
			s.Eeg[i] = 0
		} else {
			apportVertical[4] += potentielFonte
			s.Eeg[i] = v - potentielFonte
		}
	}
}

const (
	kGelSol   = 0.01
	kGelNeige = 0.02
)

// gelSol freezes a portion of the unsaturated-zone reserve proportional to cold
// severity and damped by the insulating snowpack, bounded so sol never drops below
// solMin.
func gelSol(duree, dtMax, solMin, sol, gel, neigeAuSol float64) (float64, float64) {
	if dtMax >= 0 {
		return sol, gel
	}
	isolation := 1 / (1 + neigeAuSol)
	capacite := math.Max(0, sol-solMin)
	gelPotentiel := math.Min(-dtMax*duree*kGelSol*isolation, capacite)
	return sol - gelPotentiel, gel + gelPotentiel
}

// degelSol returns ice-bound soil water to the liquid reserve, bounded by what is
// currently frozen.
func degelSol(duree, dtMax, sol, gel float64) (float64, float64) {
	if dtMax <= 0 || gel <= 0 {
		return sol, gel
	}
	degelPotentiel := math.Min(dtMax*duree*kGelSol, gel)
	return sol + degelPotentiel, gel - degelPotentiel
}

// gelNeige refreezes liquid water retained in the pack, bounded by what is
// currently liquid.
func gelNeige(duree, dtMax, neigeAuSol, fonte, fonteTotale float64) (float64, float64) {
	if fonte <= 0 {
		return fonte, fonteTotale
	}
	gelPotentiel := math.Min(-dtMax*duree*kGelNeige, fonte)
	fonteTotale -= gelPotentiel
	if fonteTotale < 0 {
		fonteTotale = 0
	}
	return fonte - gelPotentiel, fonteTotale
}

// percolationEauFonte releases the pack's currently retained liquid water to the
// surface, shrinking the pack depth by the same amount.
func percolationEauFonte(neigeAuSol, neigeAuSolTotale, fonte, fonteTotale float64) (eauFonte, newNeige, newNeigeTotale, newFonte, newFonteTotale float64) {
	eauFonte = fonte
	newNeige = math.Max(0, neigeAuSol-fonte)
	newNeigeTotale = math.Max(0, neigeAuSolTotale-fonte)
	return eauFonte, newNeige, newNeigeTotale, 0, fonteTotale
}
