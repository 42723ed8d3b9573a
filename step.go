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
	"github.com/cehqhydro/hsami/ice"
	"github.com/cehqhydro/hsami/pet"
	"github.com/cehqhydro/hsami/routing"
	"github.com/cehqhydro/hsami/runoff"
	"github.com/cehqhydro/hsami/snow"
	"github.com/cehqhydro/hsami/soil"
	"github.com/cehqhydro/hsami/wetland"
)

// Driver runs the single-step kernel (§4.2) for one watershed, holding the
// precomputed unit hydrographs that do not vary between steps (§4.9: mode/forme
// come from the fixed parameter vector, so recomputing them every step would be
// pure overhead the reference itself pays only because MATLAB/Python call
// convention does not distinguish setup from per-step work).
type Driver struct {
	p          *Project
	modules    Modules
	solMax     float64
	routingCfg routing.Config
}

// NewDriver validates and defaults p, and precomputes the unit hydrographs.
func NewDriver(p *Project) (*Driver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	modules := p.Modules.Defaulted()

	var huSurface, huInter []float64
	if len(p.HuSurface) == p.Memoire {
		huSurface = p.HuSurface
	} else {
		huSurface = routing.UnitHydrograph(p.Param[19], p.Param[20], p.NbPasParJour, float64(p.Memoire)/float64(p.NbPasParJour))
	}
	if len(p.HuInter) == p.Memoire {
		huInter = p.HuInter
	} else {
		huInter = routing.UnitHydrograph(p.Param[21], p.Param[22], p.NbPasParJour, float64(p.Memoire)/float64(p.NbPasParJour))
	}

	return &Driver{
		p:       p,
		modules: modules,
		solMax:  solMaxFor(modules.Sol, p.Param),
		routingCfg: routing.Config{
			VidangeReserveInter: p.Param[18],
			HydrogrammeSurface:  huSurface,
			HydrogrammeInter:    huInter,
		},
	}, nil
}

func solMaxFor(solTag string, param [ParamLen]float64) float64 {
	if solTag == "3couches" {
		return param[44] * param[39]
	}
	return param[12]
}

// Step advances s by one time step (step index i into p.Meteo/p.Dates), returning
// this step's output record and per-submodule mass-balance residuals (§4.2, §4.10).
func (d *Driver) Step(s *State, i int) (Outputs, Deltas, error) {
	p := d.p
	modules := d.modules
	param := p.Param
	nbPas := p.NbPasParJour
	duree := 1.0 / float64(nbPas)
	jj := p.Dates[i].JulianDay()
	pas := i%nbPas + 1

	meteoBassin := p.Meteo.Bassin.Row(i)
	meteoReservoir := p.Meteo.Reservoir.Row(i)

	superficieTotal := p.WatershedArea()
	superficie1 := p.ReservoirArea()

	// -------------------------------------------
	// Initial snapshots for the whole-basin ledger
	// -------------------------------------------
	etatsIni := s.RatioBassin*s.NeigeAuSol +
		s.RatioFixe*(s.Gel+s.Nappe+sumFloats(s.Sol)+s.Mhumide) +
		sumFloats(s.Eeg)/superficieTotal
	reservIni := s.RatioFixe * s.Reserve
	eauxHuIni := s.RatioFixe * eauHydrogrammesSum(s.EauHydrogrammes)

	// --------------
	// 1. hsami_etp
	// --------------
	etpBassin, err := pet.Step(pas, nbPas, jj, meteoBassin.Tmin, meteoBassin.Tmax, modules.EtpBassin, pet.Physio{
		LatitudeRadians: p.Physio.LatitudeRadians(), Altitude: p.Physio.Altitude, SoilAlbedo: p.Physio.SoilAlbedo,
	})
	if err != nil {
		return Outputs{}, Deltas{}, err
	}
	etpReservoir, err := pet.Step(pas, nbPas, jj, meteoReservoir.Tmin, meteoReservoir.Tmax, modules.EtpReservoir, pet.Physio{
		LatitudeRadians: p.Physio.LatitudeRadians(), Altitude: p.Physio.Altitude, SoilAlbedo: p.Physio.SoilAlbedo,
	})
	if err != nil {
		return Outputs{}, Deltas{}, err
	}

	// --------------
	// 2. hsami_glace
	// --------------
	eegIni := sumFloats(s.Eeg)

	iceState := ice.State{
		CumDegGel: s.CumDegGel, ObjGel: s.ObjGel, DernierGel: s.DernierGel,
		ReservoirEpaisseurGlace: s.ReservoirEpaisseurGlace, ReservoirEnergieGlace: s.ReservoirEnergieGlace,
		ReservoirSuperficie: s.ReservoirSuperficie, ReservoirSuperficieGlace: s.ReservoirSuperficieGlace,
		ReservoirSuperficieRef: s.ReservoirSuperficieRef, Eeg: s.Eeg,
		RatioBassin: s.RatioBassin, RatioReservoir: s.RatioReservoir, RatioFixe: s.RatioFixe,
	}
	nBands, warmestBand := warmestBandOf(modules, s.Banded)

	glaceVersReservoir, bassinVersReservoir, err := ice.Step(ice.Config{
		Reservoir: modules.Reservoir, GlaceReservoir: string(modules.GlaceReservoir), Een: modules.Een,
		SuperficieTotal: superficieTotal, Superficie1: superficie1, K: param[46],
	}, &iceState, s.NeigeAuSol, true, ice.Meteo{
		Tmin: meteoReservoir.Tmin, Tmax: meteoReservoir.Tmax, RainCm: meteoReservoir.RainCm, Sunshine: meteoReservoir.Sunshine,
	}, param, nBands, warmestBand, s.DerniereNeige)
	if err != nil {
		return Outputs{}, Deltas{}, err
	}

	s.CumDegGel, s.ObjGel, s.DernierGel = iceState.CumDegGel, iceState.ObjGel, iceState.DernierGel
	s.ReservoirEpaisseurGlace, s.ReservoirEnergieGlace = iceState.ReservoirEpaisseurGlace, iceState.ReservoirEnergieGlace
	s.ReservoirSuperficie, s.ReservoirSuperficieGlace, s.ReservoirSuperficieRef = iceState.ReservoirSuperficie, iceState.ReservoirSuperficieGlace, iceState.ReservoirSuperficieRef
	s.RatioBassin, s.RatioReservoir, s.RatioFixe = iceState.RatioBassin, iceState.RatioReservoir, iceState.RatioFixe

	glaceLedger := submoduleLedger{Entrees: 0, Sorties: glaceVersReservoir, EtatInit: eegIni, EtatFinal: sumFloats(s.Eeg)}

	// ---------------------
	// 3. hsami_interception
	// ---------------------
	interceptIniEtat := s.NeigeAuSol + s.Gel + sumFloats(s.Sol) + sumFloats(s.Eeg)

	eauSurface, demandeEau, etr5, apportVertical5 := d.stepInterception(modules, param, jj, meteoBassin, meteoReservoir, duree, etpBassin, etpReservoir, s)

	interceptLedger := submoduleLedger{
		Entrees:  meteoBassin.RainCm + meteoBassin.SnowCm + meteoReservoir.RainCm + meteoReservoir.SnowCm,
		Sorties:  eauSurface + sumFloats(etr5[:]) + apportVertical5[3] + apportVertical5[4],
		EtatInit: interceptIniEtat, EtatFinal: s.NeigeAuSol + s.Gel + sumFloats(s.Sol) + sumFloats(s.Eeg),
	}

	// ------------------------------
	// 4. hsami_ruissellement_surface
	// ------------------------------
	ruissellementSurface, infil := runoff.Split(modules.Infiltration, nbPas, param[8], param[9], param[10], s.Gel, firstOrZero(s.Sol), d.solMax, eauSurface)
	ruissLedger := submoduleLedger{Entrees: eauSurface, Sorties: ruissellementSurface + infil}

	// ----------------------------
	// 5. hsami_ecoulement_vertical
	// ----------------------------
	infilAdj := infil * s.RatioBassin / s.RatioFixe
	demandeEauAdj := demandeEau * s.RatioBassin / s.RatioFixe
	ruissAdj := ruissellementSurface * s.RatioBassin / s.RatioFixe

	vertIniEtat := s.NeigeAuSol + s.Gel + s.Nappe + sumFloats(s.Sol)

	soilState := soil.State{Gel: s.Gel, Sol: s.Sol, Nappe: s.Nappe}
	apportV := apportVertical5[:]
	etrV := etr5[:]
	apportAfterSoil, etrAfterSoil := soil.Step(soil.Config{
		Sol: modules.Sol, Infiltration: modules.Infiltration, Qbase: modules.Qbase, Param: param,
	}, &soilState, nbPas, infilAdj, demandeEauAdj, ruissAdj, s.NeigeAuSol, apportV, etrV)
	s.Gel, s.Sol, s.Nappe = soilState.Gel, soilState.Sol, soilState.Nappe

	vertLedger := submoduleLedger{
		Entrees: infilAdj + ruissAdj, Sorties: sumFloats(apportAfterSoil[0:3]) + etrAfterSoil[2] + etrAfterSoil[3],
		EtatInit: vertIniEtat, EtatFinal: s.NeigeAuSol + s.Gel + s.Nappe + sumFloats(s.Sol),
	}

	apport := apportAfterSoil
	etrFull := etrAfterSoil

	var mhLedger submoduleLedger
	if modules.Mhumide {
		mhIniEtat := s.Mhumide
		mhEntrees := apport[0] + apport[1] + apport[2]

		wetState := wetland.State{MhSurf: s.MhSurf, MhVol: s.MhVol, RatioMH: s.RatioMH, Mhumide: s.Mhumide, RatioQbase: s.RatioQbase}
		apport, etrFull = wetland.Step(apport, param, &wetState, demandeEauAdj, etrFull, superficieTotal, p.Physio.MaxWetlandArea)
		s.MhSurf, s.MhVol, s.RatioMH, s.Mhumide, s.RatioQbase = wetState.MhSurf, wetState.MhVol, wetState.RatioMH, wetState.Mhumide, wetState.RatioQbase

		mhSorties := apport[0] + apport[1] + apport[2] + apport[len(apport)-1] + etrFull[len(etrFull)-1]
		mhLedger = submoduleLedger{Entrees: mhEntrees, Sorties: mhSorties, EtatInit: mhIniEtat, EtatFinal: s.Mhumide}

		etrFull[5] = etrFull[5] * s.RatioFixe / s.RatioBassin
	}

	etrFull[2] = etrFull[2] * s.RatioFixe / s.RatioBassin
	etrFull[3] = etrFull[3] * s.RatioFixe / s.RatioBassin

	// ------------------------------
	// 6. hsami_ecoulement_horizontal
	// ------------------------------
	var apport6 [6]float64
	copy(apport6[:], apport)

	horizIniEtat := eauHydrogrammesSum(s.EauHydrogrammes) + s.Reserve
	horizEntrees := sumFloats(apport6[:])

	routingState := routing.State{ReserveInter: s.Reserve, EauHydrogrammes: toHydrographCells(s.EauHydrogrammes)}
	apportHorizontal := routing.Step(d.routingCfg, &routingState, nbPas, apport6, modules.Mhumide)
	s.Reserve = routingState.ReserveInter
	fromHydrographCells(routingState.EauHydrogrammes, s.EauHydrogrammes)

	horizLedger := submoduleLedger{
		Entrees: horizEntrees, Sorties: sumFloats(apportHorizontal[:]),
		EtatInit: horizIniEtat, EtatFinal: eauHydrogrammesFullSum(s.EauHydrogrammes),
	}

	// ------------------
	// Discharge (m^3/s)
	// ------------------
	facteurFixe := superficieTotal * s.RatioFixe / 8.64
	facteurReservoir := superficieTotal * s.RatioReservoir / 8.64

	var q [6]float64
	for _, idx := range []int{0, 1, 2, 5} {
		q[idx] = apportHorizontal[idx] * facteurFixe
	}
	q[3] = apportHorizontal[3]*facteurReservoir + bassinVersReservoir*superficieTotal/8.64
	q[4] = (apportHorizontal[4] + glaceVersReservoir) / 8.64

	var etrTot float64
	if modules.Mhumide {
		etrTot = (etrFull[0] + etrFull[1] + etrFull[2] + etrFull[3] + etrFull[5]) * s.RatioBassin + etrFull[4]*s.RatioReservoir
	} else {
		etrTot = (etrFull[0] + etrFull[1] + etrFull[2] + etrFull[3]) * s.RatioBassin + etrFull[4]*s.RatioReservoir
	}
	etpTot := etpBassin*s.RatioBassin + etpReservoir*s.RatioReservoir

	out := Outputs{
		Qtotal: q[0] + q[1] + q[2] + q[3] + q[4] + q[5],
		Qbase:  q[0] * (1 - s.RatioQbase),
		Qinter: q[1], Qsurf: q[2], Qreservoir: q[3], Qglace: q[4],
		ETP: etpTot, ETRtotal: etrTot, ETRsublim: etrFull[0], ETRPsurN: etrFull[1],
		ETRintercept: etrFull[2], ETRtranspir: etrFull[3],
	}
	if modules.Mhumide {
		out.Qmh = q[0]*s.RatioQbase + q[5]
		out.ETRmhumide = etrFull[5]
	}
	if modules.Reservoir {
		out.ETRreservoir = etrFull[4]
	}

	// ---------------------
	// Whole-basin mass balance
	// ---------------------
	entreesBilan := s.RatioBassin*(meteoBassin.RainCm+meteoBassin.SnowCm) + s.RatioReservoir*(meteoReservoir.RainCm+meteoReservoir.SnowCm)
	etatsBilan := s.RatioBassin*s.NeigeAuSol + s.RatioFixe*(sumFloats(s.Sol)+s.Gel+s.Nappe+s.Mhumide) + sumFloats(s.Eeg)/superficieTotal
	eauxHu := s.RatioFixe * eauHydrogrammesFullSum(s.EauHydrogrammes)
	debit := out.Qtotal * 8.64 / superficieTotal

	deltas := Deltas{
		Total:         Round10(entreesBilan + reservIni + etatsIni + eauxHuIni - etatsBilan - eauxHu - debit - out.ETRtotal),
		Glace:         glaceLedger.Residual(),
		Interception:  interceptLedger.Residual(),
		Ruissellement: ruissLedger.Residual(),
		Vertical:      vertLedger.Residual(),
		Horizontal:    horizLedger.Residual(),
	}
	if modules.Mhumide {
		deltas.Mhumide = mhLedger.Residual()
	}

	return out, deltas, nil
}

// stepInterception dispatches to the lumped or banded snow model and copies state
// back into s, returning the 5-element etr/apport_vertical the reference carries
// into the runoff/vertical-flow submodules.
func (d *Driver) stepInterception(modules Modules, param [ParamLen]float64, jj int, meteoBassin, meteoReservoir MeteoRow, duree float64, etpBassin, etpReservoir float64, s *State) (eauSurface, demandeEau float64, etr [5]float64, apportVertical [5]float64) {
	met := snow.Meteo{
		Tmin: meteoBassin.Tmin, Tmax: meteoBassin.Tmax, Pluie: meteoBassin.RainCm, Neige: meteoBassin.SnowCm,
		Soleil: meteoBassin.Sunshine, Releve: meteoBassin.ObservedSWE, HasReleve: meteoBassin.HasObservedSWE(),
	}
	resMet := snow.ReservoirMeteo{Pluie: meteoReservoir.RainCm, Neige: meteoReservoir.SnowCm}

	if !modules.IsBanded() {
		ls := snow.LumpedState{
			NeigeAuSol: s.NeigeAuSol, Fonte: s.Fonte, NasTot: s.NasTot, FonteTot: s.FonteTot,
			DerniereNeige: s.DerniereNeige, Gel: s.Gel, Sol: firstOrZero(s.Sol), Eeg: s.Eeg,
		}
		eauSurface, demandeEau, apportVertical, etr = snow.LumpedStep(snow.LumpedConfig{
			Een: modules.Een, Param: param, SolMin: d.solMinFor(modules.Sol, param),
		}, &ls, met, resMet, duree, etpBassin, etpReservoir)

		s.NeigeAuSol, s.Fonte, s.NasTot, s.FonteTot = ls.NeigeAuSol, ls.Fonte, ls.NasTot, ls.FonteTot
		s.DerniereNeige, s.Gel = ls.DerniereNeige, ls.Gel
		if len(s.Sol) > 0 {
			s.Sol[0] = ls.Sol
		}
		return eauSurface, demandeEau, etr, apportVertical
	}

	occupation := occupationFor(d.p, modules.Een)
	bs := bandedToSnowState(s.Banded, occupation, s.Gel, firstOrZero(s.Sol), s.Eeg)
	radiationModel := modules.Radiation
	lat := d.p.Physio.LatitudeRadians()
	eauSurface, demandeEau, apportVertical, etr = snow.BandedStep(snow.BandedConfig{
		Een: modules.Een, RadiationModel: radiationModel, Param: param,
		TauxFonteJour: tauxFonteTable(modules.Een, param, true, len(occupation)),
		TauxFonteNuit: tauxFonteTable(modules.Een, param, false, len(occupation)),
		Latitude:      lat, Aspect: d.p.Physio.Aspect, Slope: d.p.Physio.Slope,
		SolMin: d.solMinFor(modules.Sol, param),
	}, bs, jj, met, resMet, duree, etpBassin, etpReservoir)

	snowStateToBanded(bs, s.Banded)
	s.Gel = bs.Gel
	if len(s.Sol) > 0 {
		s.Sol[0] = bs.Sol
	}
	return eauSurface, demandeEau, etr, apportVertical
}

func (d *Driver) solMinFor(solTag string, param [ParamLen]float64) float64 {
	if solTag == "3couches" {
		return param[42] * param[39]
	}
	return param[11]
}

func occupationFor(p *Project, een string) []float64 {
	if een == "alt" {
		return p.Physio.OccupationBande
	}
	return p.Physio.Occupation
}

// tauxFonteTable builds the per-band melt-factor table: param[27..29+n] for "mdj"
// (day) / param[30..32+n] (night), or the lumped param[2]/param[3] replicated across
// bands for "alt" (§4.5.b).
func tauxFonteTable(een string, param [ParamLen]float64, jour bool, n int) []float64 {
	t := make([]float64, n)
	if een == "alt" {
		v := param[3]
		if jour {
			v = param[2]
		}
		for i := range t {
			t[i] = v
		}
		return t
	}
	base := 30
	if jour {
		base = 27
	}
	for i := 0; i < n && base+i < ParamLen; i++ {
		t[i] = param[base+i]
	}
	return t
}

// warmestBandOf returns the index of the last (warmest) band and its snow state,
// for ice.Step's MyLake path, which indexes its day melt factor at param[27+index]
// the same way tauxFonteTable does (§4.5.b).
func warmestBandOf(modules Modules, b *BandedSnow) (int, ice.Band) {
	if !modules.IsBanded() || b == nil || len(b.CouvertNeige) == 0 {
		return 0, ice.Band{}
	}
	last := len(b.CouvertNeige) - 1
	return last, ice.Band{CouvertM: b.CouvertNeige[last], DensiteFrac: b.DensiteNeige[last] / 1000}
}

func bandedToSnowState(b *BandedSnow, occupation []float64, gel, sol float64, eeg []float64) *snow.BandedState {
	n := len(b.CouvertNeige)
	bands := make([]snow.Band, n)
	for i := 0; i < n; i++ {
		frac := 0.0
		if i < len(occupation) {
			frac = occupation[i]
		}
		bands[i] = snow.Band{
			Fraction: frac, Depth: b.CouvertNeige[i], Density: b.DensiteNeige[i],
			Liquid: b.Fonte[i] / 100, Energy: b.EnergieNeige[i], Albedo: b.AlbedoNeige[i],
			DerniereNeige: b.DerniereNeige[i],
		}
	}
	return &snow.BandedState{Bands: bands, Eeg: eeg, EegEnergy: b.EnergieGlace, Sol: sol, Gel: gel}
}

func snowStateToBanded(ss *snow.BandedState, b *BandedSnow) {
	for i, band := range ss.Bands {
		b.CouvertNeige[i] = band.Depth
		b.DensiteNeige[i] = band.Density
		b.Fonte[i] = band.Liquid * 100
		b.EnergieNeige[i] = band.Energy
		b.AlbedoNeige[i] = band.Albedo
		b.DerniereNeige[i] = band.DerniereNeige
	}
	b.EnergieGlace = ss.EegEnergy
}

func toHydrographCells(m [][3]float64) []routing.HydrographCell {
	out := make([]routing.HydrographCell, len(m))
	for i, row := range m {
		out[i] = routing.HydrographCell{Surface: row[0], Intermediate: row[1], MhumideSurface: row[2]}
	}
	return out
}

func fromHydrographCells(cells []routing.HydrographCell, m [][3]float64) {
	for i, c := range cells {
		m[i] = [3]float64{c.Surface, c.Intermediate, c.MhumideSurface}
	}
}

// eauHydrogrammesSum is the restricted "before" form used for initial ledger
// snapshots (hsami2_noyau.py:338-341): column 1, the intermediate transit buffer,
// is only summed over its first 9 rows, while columns 0 and 2 are summed in full.
// The asymmetry is intentional and must not be "fixed" to a full sum here; see
// eauHydrogrammesFullSum for the form used once routing has run.
func eauHydrogrammesSum(m [][3]float64) float64 {
	var sum float64
	for i, row := range m {
		sum += row[0] + row[2]
		if i < 9 {
			sum += row[1]
		}
	}
	return sum
}

// eauHydrogrammesFullSum is the unrestricted "after" form (hsami2_noyau.py:929):
// all three hydrograph columns are summed in full, with no row cutoff and no
// added reserve term.
func eauHydrogrammesFullSum(m [][3]float64) float64 {
	var sum float64
	for _, row := range m {
		sum += row[0] + row[1] + row[2]
	}
	return sum
}

func firstOrZero(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

