// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"backlight/internal/config"
	apperrors "backlight/internal/errors"
)

var (
	debugMode   = flag.Bool("d", false, "Enable debug mode")
	logFile     = flag.String("log-file", "", "Log file path (logs disabled by default)")
	configPath  = flag.String("config", config.DefaultPath, "Config file path")
	deviceName  = flag.String("device", "", "Backlight device name under the class directory")
	interactive = flag.Bool("i", false, "Read actions interactively")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		die("Error loading config", err)
	}
	if *deviceName != "" {
		cfg.Device = *deviceName
	}

	path := *logFile
	if path == "" {
		path = cfg.LogFile
	}
	logger, err := initLogger(*debugMode, path)
	if err != nil {
		die("Failed to open log file", err)
	}
	logger.Debug().Str("class_dir", cfg.ClassDir).Msg("Backlight starting")
	for _, w := range cfg.Validate() {
		logger.Warn().Str("field", w.Field).Msg(w.Message)
	}

	a := newApp(cfg, logger, os.Stdout)
	if *interactive {
		err = runInteractive(a)
	} else {
		err = a.dispatch(flag.Args())
	}
	if err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(1)
		}
		logger.Error().Err(err).Str("code", string(apperrors.CodeOf(err))).Msg("Action failed")
		die("Error", err)
	}
}

func initLogger(debug bool, logFilePath string) (zerolog.Logger, error) {
	// Set log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Configure output
	var output io.Writer
	if logFilePath != "" {
		// Log to file only
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), err
		}
		output = file
	} else {
		// No logging to console by default - use io.Discard
		output = io.Discard
	}

	// Create logger with timestamp
	return zerolog.New(output).With().Timestamp().Logger(), nil
}

// die prints "label: detail (kind)" and exits with status 1.
func die(label string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v (%s)\n", label, err, apperrors.CodeOf(err).Describe())
	os.Exit(1)
}
