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

// Package device reads and writes a sysfs backlight device through the
// fsio helpers.
package device

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	apperrors "backlight/internal/errors"
	"backlight/internal/fsio"
	"backlight/internal/paths"
	"backlight/internal/text"
)

// Clamp bounds the percentage SetPercent may apply.
type Clamp struct {
	Min float64
	Max float64
}

// DefaultClamp keeps the panel from being switched fully off.
var DefaultClamp = Clamp{Min: 0.1, Max: 100}

// Device holds the two sysfs paths of a backlight and the values last read
// from them. Close releases the path buffers.
type Device struct {
	Name              string
	BrightnessPath    *text.Buffer
	MaxBrightnessPath *text.Buffer
	Brightness        int
	MaxBrightness     int
	Clamp             Clamp

	logger zerolog.Logger
}

// Open resolves name under classDir and reads both brightness values.
func Open(classDir, name string, logger zerolog.Logger) (*Device, error) {
	dir, err := paths.JoinWithinBase(classDir, name)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "invalid device "+name, err)
	}

	d := &Device{
		Name:              name,
		BrightnessPath:    text.NewBuffer("%s/brightness", dir),
		MaxBrightnessPath: text.NewBuffer("%s/max_brightness", dir),
		Clamp:             DefaultClamp,
		logger:            logger.With().Str("device", name).Logger(),
	}

	if d.MaxBrightness, err = fsio.ReadInt(d.MaxBrightnessPath.String()); err != nil {
		d.Close()
		return nil, fmt.Errorf("could not read max brightness from %s: %w", dir, err)
	}
	if d.MaxBrightness <= 0 {
		d.Close()
		return nil, apperrors.New(apperrors.CodeUnknown, fmt.Sprintf("max_brightness of %s is %d", name, d.MaxBrightness))
	}
	if d.Brightness, err = fsio.ReadInt(d.BrightnessPath.String()); err != nil {
		d.Close()
		return nil, fmt.Errorf("could not read brightness from %s: %w", dir, err)
	}

	d.logger.Debug().
		Int("brightness", d.Brightness).
		Int("max_brightness", d.MaxBrightness).
		Msg("Device opened")
	return d, nil
}

// Close frees the path buffers. The device must not be used afterwards.
func (d *Device) Close() {
	d.BrightnessPath.Free()
	d.MaxBrightnessPath.Free()
}

// Percent returns the current brightness as a percentage of the maximum.
func (d *Device) Percent() float64 {
	return float64(d.Brightness) * 100 / float64(d.MaxBrightness)
}

// SetPercent clamps percent and converts it to a raw brightness value.
func (d *Device) SetPercent(percent float64) {
	clamped := min(max(percent, d.Clamp.Min), d.Clamp.Max)
	d.Brightness = int(clamped * float64(d.MaxBrightness) / 100)
}

// Adjust moves the brightness by delta percentage points.
func (d *Device) Adjust(delta float64) {
	d.SetPercent(d.Percent() + delta)
}

// Save writes the raw brightness value back to sysfs.
func (d *Device) Save() error {
	if err := fsio.WriteFile(d.BrightnessPath.String(), "%d", d.Brightness); err != nil {
		return fmt.Errorf("failed to write file %s: %w", d.DisplayPath(), err)
	}
	d.logger.Info().Int("brightness", d.Brightness).Str("path", d.DisplayPath()).Msg("Brightness written")
	return nil
}

// Writable reports whether the brightness file accepts writes from this
// process.
func (d *Device) Writable() bool {
	return unix.Access(d.BrightnessPath.String(), unix.W_OK) == nil
}

// DisplayPath returns the brightness path with the home directory
// compressed to "~".
func (d *Device) DisplayPath() string {
	b := d.BrightnessPath.Clone()
	defer b.Free()
	paths.CompressHome(b)
	return b.String()
}

// List returns the visible entries of classDir in sorted order.
func List(classDir string) ([]string, error) {
	var names []string
	if err := fsio.ForEachVisible(classDir, func(name string) {
		names = append(names, name)
	}); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Discover returns the first preferred device present under classDir,
// falling back to the first listed device.
func Discover(classDir string, preferred []string) (string, error) {
	for _, name := range preferred {
		dir, err := paths.JoinWithinBase(classDir, name)
		if err != nil {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return name, nil
		}
	}

	names, err := List(classDir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", apperrors.New(apperrors.CodeFileNotFound, "could not find suitable devices in "+classDir)
	}
	return names[0], nil
}
