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

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"backlight/internal/fsio"
	"backlight/internal/paths"
)

const (
	// DefaultPath is where the CLI looks for its config file.
	DefaultPath = "~/.config/backlight/config.json"

	defaultClassDir    = "/sys/class/backlight"
	defaultHistoryFile = "~/.backlight_history"
	defaultMinPercent  = 0.1
	defaultMaxPercent  = 100.0
	maxConfigBytes     = 64 * 1024
	maxDeviceNameLen   = 255
)

// Config represents the application configuration
type Config struct {
	ClassDir         string   `json:"class_dir,omitempty"`
	Device           string   `json:"device,omitempty"`
	PreferredDevices []string `json:"preferred_devices,omitempty"`
	Clamp            Clamp    `json:"clamp,omitempty"`
	LogFile          string   `json:"log_file,omitempty"`
	HistoryFile      string   `json:"history_file,omitempty"`
}

// Clamp bounds the brightness percentage that may be written.
type Clamp struct {
	MinPercent float64 `json:"min_percent,omitempty"`
	MaxPercent float64 `json:"max_percent,omitempty"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		ClassDir:         defaultClassDir,
		HistoryFile:      defaultHistoryFile,
		PreferredDevices: []string{"intel_backlight", "acpi_video0"},
		Clamp: Clamp{
			MinPercent: defaultMinPercent,
			MaxPercent: defaultMaxPercent,
		},
	}
}

// LoadConfig loads configuration from a JSON file, applies env overrides, and validates required fields.
// A missing file is not an error; defaults are used instead.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(paths.Expand(filepath)); err == nil {
		buf, err := fsio.ReadWholeFileN(filepath, maxConfigBytes+1)
		if err != nil {
			return nil, err
		}
		defer buf.Free()
		if buf.Len() > maxConfigBytes {
			return nil, fmt.Errorf("config file %s exceeds %d bytes", filepath, maxConfigBytes)
		}
		normalized, err := normalizeConfigJSON(buf.View().Bytes())
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(normalized, config); err != nil {
			return nil, err
		}
	}

	if val := os.Getenv("BACKLIGHT_DEVICE"); val != "" {
		config.Device = val
	}
	if val := os.Getenv("BACKLIGHT_CLASS_DIR"); val != "" {
		config.ClassDir = val
	}

	if config.ClassDir == "" {
		config.ClassDir = defaultClassDir
	}
	if config.Clamp.MaxPercent == 0 {
		config.Clamp.MaxPercent = defaultMaxPercent
	}
	config.ClassDir = paths.Expand(config.ClassDir)
	if config.LogFile != "" {
		config.LogFile = paths.Expand(config.LogFile)
	}
	if config.HistoryFile != "" {
		config.HistoryFile = paths.Expand(config.HistoryFile)
	}

	if config.Device != "" {
		if err := paths.ValidatePathString(config.Device, maxDeviceNameLen); err != nil {
			return nil, fmt.Errorf("invalid device name: %w", err)
		}
	}
	if config.Clamp.MinPercent > config.Clamp.MaxPercent {
		return nil, fmt.Errorf("clamp.min_percent %.2f exceeds clamp.max_percent %.2f", config.Clamp.MinPercent, config.Clamp.MaxPercent)
	}

	return config, nil
}

// ValidationWarning represents a non-fatal configuration issue
type ValidationWarning struct {
	Field   string
	Message string
}

// Validate checks the configuration for common issues and returns warnings
func (c *Config) Validate() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Clamp.MinPercent <= 0 {
		warnings = append(warnings, ValidationWarning{
			Field:   "clamp.min_percent",
			Message: fmt.Sprintf("min_percent %.2f allows turning the backlight fully off", c.Clamp.MinPercent),
		})
	}
	if c.Clamp.MaxPercent > 100 {
		warnings = append(warnings, ValidationWarning{
			Field:   "clamp.max_percent",
			Message: fmt.Sprintf("max_percent %.2f is above 100 and will be capped by max_brightness", c.Clamp.MaxPercent),
		})
	}

	if info, err := os.Stat(c.ClassDir); err != nil || !info.IsDir() {
		warnings = append(warnings, ValidationWarning{
			Field:   "class_dir",
			Message: fmt.Sprintf("class_dir %s is not a directory", c.ClassDir),
		})
	}

	for _, name := range c.PreferredDevices {
		if _, err := paths.JoinWithinBase(c.ClassDir, name); err != nil {
			warnings = append(warnings, ValidationWarning{
				Field:   "preferred_devices",
				Message: fmt.Sprintf("device %q is not a valid name: %v", name, err),
			})
		}
	}

	return warnings
}
