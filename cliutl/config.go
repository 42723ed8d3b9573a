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

package cliutl

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// RunConfig holds the information needed to run the hsami CLI, separate from the
// Project value itself: where to find it, where to put the results, and how loud
// to be about it. Grounded on inmap/cmd/config.go's ConfigData, cut down to this
// project's much smaller surface (no grid, no emissions, no web server).
type RunConfig struct {
	// ProjectFile is the path to the JSON-encoded Project to simulate. Can include
	// environment variables.
	ProjectFile string

	// OutputFile is the path to the JSON-encoded Results summary written after a
	// run. Can include environment variables.
	OutputFile string

	// SnapshotFile, if set, is the path to a gob-encoded Results.Snapshot written
	// after a run, for later inspection with LoadSnapshot without re-running.
	SnapshotFile string

	// LogFile is the path to the desired log file location. If left blank, log
	// output goes to stderr only.
	LogFile string

	// LogLevel is a logrus level name ("debug", "info", "warn", "error"). Left
	// blank, the CLI defaults to "info".
	LogLevel string

	// WarmupOverride, if > 0, overrides hsami.WarmupSteps for this run. Left at 0,
	// the CLI uses the package default.
	WarmupOverride int
}

// ReadConfigFile reads and parses a TOML run configuration file.
func ReadConfigFile(filename string) (config *RunConfig, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the run configuration file you have specified, %v, does not "+
			"appear to exist. Please check the file name and location and try again", filename)
	}
	defer file.Close()
	reader := bufio.NewReader(file)
	bytes, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("problem reading run configuration file: %v", err)
	}

	config = new(RunConfig)
	if _, err := toml.Decode(string(bytes), config); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the run configuration file: %v", err)
	}

	config.ProjectFile = os.ExpandEnv(config.ProjectFile)
	config.OutputFile = os.ExpandEnv(config.OutputFile)
	config.SnapshotFile = os.ExpandEnv(config.SnapshotFile)
	config.LogFile = os.ExpandEnv(config.LogFile)

	if config.ProjectFile == "" {
		return nil, fmt.Errorf("you need to specify a project file in the run configuration " +
			"(for example: ProjectFile = \"project.json\")")
	}
	if config.OutputFile == "" {
		config.OutputFile = strings.TrimSuffix(config.ProjectFile, filepath.Ext(config.ProjectFile)) + ".results.json"
	}

	if outdir := filepath.Dir(config.OutputFile); outdir != "." {
		if err := os.MkdirAll(outdir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("problem creating output directory: %v", err)
		}
	}
	return config, nil
}
