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
	"fmt"
	"math"
)

// Erf evaluates the error function, panicking on a negative argument (§7 kind 2: a
// negative argument to the rational erf approximation is a fatal precondition
// failure, not a recoverable edge case — the snow energy-budget convection term
// (§4.5.b) never constructs one from valid physical inputs).
func Erf(x float64) float64 {
	if x < 0 {
		panic(fmt.Sprintf("hsami: erf called with negative argument %v", x))
	}
	return math.Erf(x)
}
