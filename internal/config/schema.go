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
	"sort"
	"strings"
)

// SchemaJSON returns the JSON schema for config.json.
func SchemaJSON() string {
	return configSchemaJSON
}

// ExampleConfigJSON returns a minimal example config derived from the schema.
func ExampleConfigJSON() string {
	return exampleConfigJSON
}

func normalizeConfigJSON(data []byte) ([]byte, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	migrateLegacyConfig(raw)
	if err := validateSection(raw, topLevelValidators(""), ""); err != nil {
		return nil, err
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return normalized, nil
}

// migrateLegacyConfig maps the old "interface" key and the flat
// min/max percentages onto the current layout.
func migrateLegacyConfig(raw map[string]interface{}) {
	if legacy, ok := raw["interface"]; ok {
		if _, set := raw["device"]; !set {
			raw["device"] = legacy
		}
		delete(raw, "interface")
	}

	clamp, _ := raw["clamp"].(map[string]interface{})
	for _, key := range []string{"min_percent", "max_percent"} {
		legacy, ok := raw[key]
		if !ok {
			continue
		}
		if clamp == nil {
			clamp = map[string]interface{}{}
			raw["clamp"] = clamp
		}
		if _, set := clamp[key]; !set {
			clamp[key] = legacy
		}
		delete(raw, key)
	}
}

func topLevelValidators(prefix string) map[string]func(interface{}) error {
	return map[string]func(interface{}) error{
		"class_dir": func(v interface{}) error { return validateString(v, prefix+"class_dir") },
		"device":    func(v interface{}) error { return validateString(v, prefix+"device") },
		"preferred_devices": func(v interface{}) error {
			return validateStringArray(v, prefix+"preferred_devices")
		},
		"clamp":    func(v interface{}) error { return validateClamp(v, prefix+"clamp.") },
		"log_file": func(v interface{}) error { return validateString(v, prefix+"log_file") },
		"history_file": func(v interface{}) error {
			return validateString(v, prefix+"history_file")
		},
	}
}

func validateClamp(value interface{}, prefix string) error {
	section, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%s must be an object", strings.TrimSuffix(prefix, "."))
	}
	allowed := map[string]func(interface{}) error{
		"min_percent": func(v interface{}) error { return validatePercent(v, prefix+"min_percent") },
		"max_percent": func(v interface{}) error { return validatePercent(v, prefix+"max_percent") },
	}
	return validateSection(section, allowed, prefix)
}

func validateSection(section map[string]interface{}, allowed map[string]func(interface{}) error, prefix string) error {
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		validator, ok := allowed[key]
		if !ok {
			return fmt.Errorf("unknown configuration field %q", prefix+key)
		}
		if err := validator(section[key]); err != nil {
			return err
		}
	}
	return nil
}

func validateString(value interface{}, name string) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("%s must be a string", name)
	}
	return nil
}

func validatePercent(value interface{}, name string) error {
	n, ok := value.(float64)
	if !ok {
		return fmt.Errorf("%s must be a number", name)
	}
	if n < 0 {
		return fmt.Errorf("%s must not be negative", name)
	}
	return nil
}

func validateStringArray(value interface{}, name string) error {
	list, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%s must be an array of strings", name)
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			return fmt.Errorf("%s must be an array of strings", name)
		}
	}
	return nil
}

const configSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Backlight Config",
  "type": "object",
  "properties": {
    "class_dir": { "type": "string" },
    "device": { "type": "string" },
    "preferred_devices": { "type": "array", "items": { "type": "string" } },
    "clamp": {
      "type": "object",
      "properties": {
        "min_percent": { "type": "number", "minimum": 0 },
        "max_percent": { "type": "number", "minimum": 0 }
      }
    },
    "log_file": { "type": "string" },
    "history_file": { "type": "string" }
  }
}`

const exampleConfigJSON = `{
  "class_dir": "/sys/class/backlight",
  "preferred_devices": ["intel_backlight", "acpi_video0"],
  "clamp": {
    "min_percent": 0.1,
    "max_percent": 100
  },
  "log_file": "~/.cache/backlight.log"
}`
