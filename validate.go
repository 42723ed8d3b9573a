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

import "fmt"

// Validate checks the input shape invariants that must hold before any simulation
// step runs (§7 kind 1, supplemented from original_source/src/hsamiplus/hsami_input.py):
// meteo/dates alignment, a 50-element parameter vector, recognized module
// selections, and the two fatal conditions named explicitly in §4.1. Run calls this
// before defaulting module selections (NewDriver calls it again), and neither
// mutates state if it fails.
func (p *Project) Validate() error {
	if len(p.Superficie) == 0 || len(p.Superficie) > 2 {
		return fmt.Errorf("hsami: superficie must have length 1 or 2, got %d", len(p.Superficie))
	}
	if p.NbPasParJour < 1 {
		return fmt.Errorf("hsami: nb_pas_par_jour must be >= 1, got %d", p.NbPasParJour)
	}
	if p.Memoire < 1 {
		return fmt.Errorf("hsami: memoire must be >= 1, got %d", p.Memoire)
	}
	if len(p.Meteo.Bassin) != len(p.Meteo.Reservoir) {
		return fmt.Errorf("hsami: meteo.bassin and meteo.reservoir must have equal length, got %d and %d",
			len(p.Meteo.Bassin), len(p.Meteo.Reservoir))
	}
	if len(p.Dates) != len(p.Meteo.Bassin) {
		return fmt.Errorf("hsami: dates must align with meteo, got %d dates for %d meteo rows",
			len(p.Dates), len(p.Meteo.Bassin))
	}
	if len(p.Meteo.Bassin) == 0 {
		return fmt.Errorf("hsami: meteo series must not be empty")
	}
	// Validate against the defaulted selections: an unset field means "use the
	// §6 default" and must not be rejected as an unrecognized one.
	if err := p.Modules.Defaulted().Validate(); err != nil {
		return err
	}
	if p.Modules.Mhumide && p.Physio.MaxWetlandArea == 0 {
		return fmt.Errorf("hsami: modules.mhumide=true requires physio.samax != 0")
	}
	return nil
}

// Warnings returns non-fatal configuration issues (§7 kind 3): a sum of occupation
// fractions that deviates from 1, or an imposed unit hydrograph whose length does
// not match Memoire (in which case it is ignored and a computed hydrograph is used
// instead, see routing.UnitHydrograph).
func (p *Project) Warnings() []string {
	const tol = 1e-6
	var warnings []string
	if p.Modules.Een == "mdj" && len(p.Physio.Occupation) > 0 {
		if s := p.Physio.OccupationSum(); abs(s-1) > tol {
			warnings = append(warnings, fmt.Sprintf("sum of physio.occupation is %v, expected 1", s))
		}
	}
	if p.Modules.Een == "alt" && len(p.Physio.OccupationBande) > 0 {
		if s := p.Physio.OccupationBandeSum(); abs(s-1) > tol {
			warnings = append(warnings, fmt.Sprintf("sum of physio.occupation_bande is %v, expected 1", s))
		}
	}
	if p.HuSurface != nil && len(p.HuSurface) != p.Memoire {
		warnings = append(warnings, fmt.Sprintf("hu_surface length %d does not match memoire %d; ignoring imposed hydrograph",
			len(p.HuSurface), p.Memoire))
	}
	if p.HuInter != nil && len(p.HuInter) != p.Memoire {
		warnings = append(warnings, fmt.Sprintf("hu_inter length %d does not match memoire %d; ignoring imposed hydrograph",
			len(p.HuInter), p.Memoire))
	}
	return warnings
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
