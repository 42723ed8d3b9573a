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

// Package runoff implements the surface-runoff submodule (§4.6), grounded on
// original_source/src/hsamiplus/hsami_ruissellement_surface.py.
package runoff

// Split divides eauSurface into (ruissellementSurface, infiltration), which always
// sum to eauSurface. For "green_ampt"/"scs_cn" this is a pass-through: the actual
// split happens inside the soil package. For "hsami" it applies a threshold derived
// from the current soil moisture and frozen-soil state.
func Split(infiltrationTag string, nbPas int, effetGel, effetSol, seuilMin float64, gel, sol, solMax, eauSurface float64) (ruissellementSurface, infiltration float64) {
	switch infiltrationTag {
	case "green_ampt", "scs_cn":
		return 0, eauSurface
	default: // "hsami"
		seuil := effetSol/float64(nbPas)*(1-sol/solMax) - effetGel*gel
		if m := seuilMin / float64(nbPas); seuil < m {
			seuil = m
		}
		if eauSurface >= seuil {
			ruissellementSurface = eauSurface - seuil/2
		} else {
			ruissellementSurface = eauSurface * eauSurface / (2 * seuil)
		}
		return ruissellementSurface, eauSurface - ruissellementSurface
	}
}
