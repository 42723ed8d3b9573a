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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cehqhydro/hsami"
)

func init() {
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(validateCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long:  "run reads the project named in the configuration file, simulates the full series, and writes the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(runProject())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a project without running it.",
	Long:  "validate reads the project named in the configuration file and reports fatal errors and warnings without simulating.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(validateProject())
	},
}

func loadProject() (*hsami.Project, error) {
	f, err := os.Open(Config.ProjectFile)
	if err != nil {
		return nil, fmt.Errorf("cliutl: opening project file: %v", err)
	}
	defer f.Close()

	var p hsami.Project
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("cliutl: decoding project file: %v", err)
	}
	return &p, nil
}

func validateProject() error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	for _, w := range p.Warnings() {
		Log.Warn(w)
	}
	Log.Info("project is valid")
	return nil
}

func runProject() error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	for _, w := range p.Warnings() {
		Log.Warn(w)
	}

	observer := hsami.WithStepObserver(func(step int, out hsami.Outputs, deltas hsami.Deltas) {
		if step%365 == 0 {
			Log.WithField("step", step).WithField("qtotal", out.Qtotal).Debug("progress")
		}
	})

	results, err := hsami.Run(p, observer, hsami.WithWarmupSteps(Config.WarmupOverride))
	if err != nil {
		return fmt.Errorf("cliutl: %v", err)
	}

	mean, stddev, max := results.Summary()
	Log.WithField("mean_qtotal", mean).
		WithField("stddev_qtotal", stddev).
		WithField("max_qtotal", max).
		Info("run complete")

	if err := writeResultsJSON(Config.OutputFile, results); err != nil {
		return err
	}
	Log.Info("wrote results to " + Config.OutputFile)

	if Config.SnapshotFile != "" {
		if err := writeSnapshot(Config.SnapshotFile, results); err != nil {
			return err
		}
		Log.Info("wrote snapshot to " + Config.SnapshotFile)
	}
	return nil
}

func writeResultsJSON(path string, results *hsami.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cliutl: creating output file: %v", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("cliutl: encoding results: %v", err)
	}
	return nil
}

func writeSnapshot(path string, results *hsami.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cliutl: creating snapshot file: %v", err)
	}
	defer f.Close()

	if err := results.Snapshot(f); err != nil {
		return fmt.Errorf("cliutl: %v", err)
	}
	return nil
}
