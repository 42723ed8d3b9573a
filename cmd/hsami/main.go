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

// Command hsami is a command-line interface for the HSAMI+ hydrological model core.
package main

import (
	"fmt"
	"os"

	"github.com/cehqhydro/hsami/cliutl"
)

func main() {
	if err := cliutl.RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
