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
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"backlight/internal/config"
	"backlight/internal/device"
	"backlight/internal/ordmap"
	"backlight/internal/text"
)

const usage = `Usage: backlight [flags] [<command> [<amount>]]
Commands:
	print
	set <amount>
	up <amount>
	down <amount>
	list
	help`

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// action is a named CLI verb. Handlers that need a device receive it
// already opened; the caller saves it afterwards when Writes is set.
type action struct {
	Description string
	NeedsAmount bool
	NeedsDevice bool
	Writes      bool
	Run         func(a *app, d *device.Device, amount float64) error
}

type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	out     io.Writer
	actions *ordmap.Map[string, action]
}

func newApp(cfg *config.Config, logger zerolog.Logger, out io.Writer) *app {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		actions: ordmap.New[string, action](strings.Compare),
	}

	a.actions.Insert("print", action{
		Description: "Print the current brightness percentage",
		NeedsDevice: true,
		Run: func(a *app, d *device.Device, _ float64) error {
			_, err := fmt.Fprintf(a.out, "%d%%\n", int(d.Percent()))
			return err
		},
	})
	a.actions.Insert("set", action{
		Description: "Set brightness to <amount> percent",
		NeedsAmount: true,
		NeedsDevice: true,
		Writes:      true,
		Run: func(a *app, d *device.Device, amount float64) error {
			d.SetPercent(amount)
			return nil
		},
	})
	a.actions.Insert("up", action{
		Description: "Raise brightness by <amount> percent",
		NeedsAmount: true,
		NeedsDevice: true,
		Writes:      true,
		Run: func(a *app, d *device.Device, amount float64) error {
			d.Adjust(amount)
			return nil
		},
	})
	a.actions.Insert("down", action{
		Description: "Lower brightness by <amount> percent",
		NeedsAmount: true,
		NeedsDevice: true,
		Writes:      true,
		Run: func(a *app, d *device.Device, amount float64) error {
			d.Adjust(-amount)
			return nil
		},
	})
	a.actions.Insert("list", action{
		Description: "List backlight devices",
		Run: func(a *app, _ *device.Device, _ float64) error {
			names, err := device.List(a.cfg.ClassDir)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	})
	a.actions.Insert("help", action{
		Description: "Show available commands",
		Run: func(a *app, _ *device.Device, _ float64) error {
			for name, act := range a.actions.All() {
				fmt.Fprintf(a.out, "  %-6s %s\n", name, act.Description)
			}
			return nil
		},
	})

	return a
}

// dispatch runs one command line. An empty argument list prints the
// current brightness.
func (a *app) dispatch(args []string) error {
	name := "print"
	if len(args) > 0 {
		name = strings.ToLower(args[0])
	}
	act, ok := a.actions.Find(name)
	if !ok {
		return &usageError{msg: fmt.Sprintf("Unknown action: '%s'", name)}
	}

	var amount float64
	switch {
	case act.NeedsAmount && len(args) != 2:
		return &usageError{msg: fmt.Sprintf("%s requires an amount", name)}
	case act.NeedsAmount:
		var err error
		if amount, err = parseAmount(args[1]); err != nil {
			return &usageError{msg: fmt.Sprintf("invalid amount '%s'", args[1])}
		}
	case len(args) > 1:
		return &usageError{msg: fmt.Sprintf("%s takes no amount", name)}
	}

	if !act.NeedsDevice {
		return act.Run(a, nil, amount)
	}

	d, err := a.openDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	a.logger.Debug().Str("action", name).Float64("amount", amount).Msg("Executing action")
	if err := act.Run(a, d, amount); err != nil {
		return err
	}
	if !act.Writes {
		return nil
	}
	if !d.Writable() {
		a.logger.Warn().Str("path", d.DisplayPath()).Msg("Brightness file is not writable, write will likely fail")
	}
	return d.Save()
}

func (a *app) openDevice() (*device.Device, error) {
	name := a.cfg.Device
	if name == "" {
		var err error
		if name, err = device.Discover(a.cfg.ClassDir, a.cfg.PreferredDevices); err != nil {
			return nil, err
		}
		a.logger.Debug().Str("device", name).Msg("Discovered device")
	}
	d, err := device.Open(a.cfg.ClassDir, name, a.logger)
	if err != nil {
		return nil, err
	}
	d.Clamp = device.Clamp{Min: a.cfg.Clamp.MinPercent, Max: a.cfg.Clamp.MaxPercent}
	return d, nil
}

// parseAmount accepts plain integers and decimal or signed values.
func parseAmount(s string) (float64, error) {
	v := text.FromString(s)
	if v.IsNumeric() {
		if n, err := v.Int(); err == nil {
			return float64(n), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %q is not finite", s)
	}
	return f, nil
}
