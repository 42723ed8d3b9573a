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
	"encoding/json"
	"fmt"
)

// Modules selects one option per physical-process family (§6). The zero value of
// each string field means "not set"; Defaulted fills in the defaults from the table
// in §6.
type Modules struct {
	EtpBassin     string // PET formula for the watershed
	EtpReservoir  string // PET formula for the open-water reservoir
	Een           string // snow/ice engine: hsami, dj, mdj, alt
	Infiltration  string // hsami, green_ampt, scs_cn
	Sol           string // hsami, 3couches
	Qbase         string // hsami, dingman
	Radiation     string // hsami, mdj
	Reservoir     bool
	Mhumide       bool
	GlaceReservoir GlaceReservoir
}

// GlaceReservoir is the reservoir-ice model selector: off, "stefan", or "mylake". Its
// reference JSON encoding is the number 0 or one of those two strings (§6), so it
// carries a custom (un)marshaler rather than being a plain string.
type GlaceReservoir string

const (
	GlaceReservoirOff    GlaceReservoir = ""
	GlaceReservoirStefan GlaceReservoir = "stefan"
	GlaceReservoirMyLake GlaceReservoir = "mylake"
)

// UnmarshalJSON accepts either the number 0 or a recognized string.
func (g *GlaceReservoir) UnmarshalJSON(data []byte) error {
	var asNumber float64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		if asNumber != 0 {
			return fmt.Errorf("hsami: glace_reservoir numeric value must be 0, got %v", asNumber)
		}
		*g = GlaceReservoirOff
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return fmt.Errorf("hsami: glace_reservoir must be 0, \"stefan\", or \"mylake\": %w", err)
	}
	*g = GlaceReservoir(asString)
	return nil
}

// MarshalJSON encodes GlaceReservoirOff as the number 0, matching the reference
// serialisation (§6).
func (g GlaceReservoir) MarshalJSON() ([]byte, error) {
	if g == GlaceReservoirOff {
		return []byte("0"), nil
	}
	return json.Marshal(string(g))
}

// Default PET/snow/infiltration/soil/qbase/radiation tags (§6).
const (
	DefaultETP          = "hsami"
	DefaultEen          = "hsami"
	DefaultInfiltration = "hsami"
	DefaultSol          = "hsami"
	DefaultQbase        = "hsami"
	DefaultRadiation    = "hsami"
)

var validETP = map[string]bool{
	"hsami": true, "blaney_criddle": true, "hamon": true, "linacre": true,
	"kharrufa": true, "mohyse": true, "romanenko": true, "makkink": true,
	"turc": true, "mcguinness_bordne": true, "abtew": true, "hargreaves": true,
	"priestley_taylor": true,
}

var validEen = map[string]bool{"hsami": true, "dj": true, "mdj": true, "alt": true}
var validInfiltration = map[string]bool{"hsami": true, "green_ampt": true, "scs_cn": true}
var validSol = map[string]bool{"hsami": true, "3couches": true}
var validQbase = map[string]bool{"hsami": true, "dingman": true}
var validRadiation = map[string]bool{"hsami": true, "mdj": true}

// Defaulted returns a copy of m with every unset field filled in from the §6
// defaults table.
func (m Modules) Defaulted() Modules {
	if m.EtpBassin == "" {
		m.EtpBassin = DefaultETP
	}
	if m.EtpReservoir == "" {
		m.EtpReservoir = DefaultETP
	}
	if m.Een == "" {
		m.Een = DefaultEen
	}
	if m.Infiltration == "" {
		m.Infiltration = DefaultInfiltration
	}
	if m.Sol == "" {
		m.Sol = DefaultSol
	}
	if m.Qbase == "" {
		m.Qbase = DefaultQbase
	}
	if m.Radiation == "" {
		m.Radiation = DefaultRadiation
	}
	return m
}

// IsBanded reports whether the snow engine operates over elevation/land-cover bands
// (mdj, alt) rather than as a single lumped store (hsami, dj).
func (m Modules) IsBanded() bool {
	return m.Een == "mdj" || m.Een == "alt"
}

// Validate checks that every module selection is a recognized configuration value
// (§7 kind 1: configuration errors are fatal and checked before any state mutation).
func (m Modules) Validate() error {
	if !validETP[m.EtpBassin] {
		return fmt.Errorf("hsami: invalid modules.etp_bassin %q", m.EtpBassin)
	}
	if !validETP[m.EtpReservoir] {
		return fmt.Errorf("hsami: invalid modules.etp_reservoir %q", m.EtpReservoir)
	}
	if !validEen[m.Een] {
		return fmt.Errorf("hsami: invalid modules.een %q", m.Een)
	}
	if !validInfiltration[m.Infiltration] {
		return fmt.Errorf("hsami: invalid modules.infiltration %q", m.Infiltration)
	}
	if !validSol[m.Sol] {
		return fmt.Errorf("hsami: invalid modules.sol %q", m.Sol)
	}
	if !validQbase[m.Qbase] {
		return fmt.Errorf("hsami: invalid modules.qbase %q", m.Qbase)
	}
	if !validRadiation[m.Radiation] {
		return fmt.Errorf("hsami: invalid modules.radiation %q", m.Radiation)
	}
	switch m.GlaceReservoir {
	case GlaceReservoirOff, GlaceReservoirStefan, GlaceReservoirMyLake:
	default:
		return fmt.Errorf("hsami: invalid modules.glace_reservoir %q", m.GlaceReservoir)
	}
	if m.GlaceReservoir == GlaceReservoirMyLake && !m.IsBanded() {
		return fmt.Errorf("hsami: modules.glace_reservoir=mylake requires modules.een to be mdj or alt")
	}
	return nil
}
