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

// Package cliutl contains the commands and subcommands for the hsami command-line
// interface: reading a TOML run configuration, loading a JSON project, running the
// simulation, and reporting the result. Grounded on the teacher's inmap/cmd package
// (root.go, config.go, run.go), scaled down to this project's three subcommands.
package cliutl

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the hsami CLI's own version string, independent of the hsamiplus
// original implementation's version.
const Version = "0.1.0"

var (
	configFile string

	// Config holds the run configuration parsed from configFile, populated by
	// RootCmd's PersistentPreRunE before any subcommand runs.
	Config *RunConfig

	// Log is the shared logger, configured once in Startup per the teacher's
	// cmd/inmapweb/main.go pattern (StandardLogger + TextFormatter).
	Log = logrus.StandardLogger()
)

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "hsami",
	Short: "A lumped conceptual hydrological model.",
	Long: `hsami simulates streamflow and water-balance diagnostics for a watershed
from a time series of meteorological forcings. Use the subcommands specified
below to run, validate, or check the version of a project.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return labelErr(Startup(configFile))
	},
}

// Startup reads the run configuration file and configures logging.
func Startup(configFile string) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:    true,
		FullTimestamp:  true,
		DisableSorting: true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	var err error
	Config, err = ReadConfigFile(configFile)
	if err != nil {
		return err
	}
	if Config.LogLevel != "" {
		level, err := logrus.ParseLevel(Config.LogLevel)
		if err != nil {
			return fmt.Errorf("cliutl: invalid LogLevel %q: %v", Config.LogLevel, err)
		}
		logrus.SetLevel(level)
	}
	if Config.LogFile != "" {
		f, err := os.OpenFile(Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("cliutl: opening log file: %v", err)
		}
		logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	Log.Info("hsami configuration loaded from " + configFile)
	return nil
}

func labelErr(err error) error {
	if err != nil {
		return fmt.Errorf("ERROR: %v", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "./hsami.toml", "run configuration file location")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this build of the hsami CLI.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hsami v%s\n", Version)
	},
}
