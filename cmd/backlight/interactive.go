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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

type readlineAction int

const (
	readlineContinue readlineAction = iota
	readlineExit
	readlineUnhandled
)

// classifyReadlineError maps a Readline result to the loop's next step.
// ^C keeps the session; EOF on an empty line ends it.
func classifyReadlineError(line string, err error) readlineAction {
	switch {
	case err == nil:
		return readlineUnhandled
	case errors.Is(err, readline.ErrInterrupt):
		return readlineContinue
	case errors.Is(err, io.EOF):
		if strings.TrimSpace(line) == "" {
			return readlineExit
		}
		return readlineContinue
	}
	return readlineUnhandled
}

func runInteractive(a *app) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &usageError{msg: "interactive mode requires a terminal on stdin"}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "backlight> ",
		HistoryFile:     a.cfg.HistoryFile,
		AutoComplete:    actionCompleter(a),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()
	a.out = rl.Stdout()

	a.logger.Debug().Msg("Running in interactive mode")
	for {
		line, err := rl.Readline()
		switch classifyReadlineError(line, err) {
		case readlineContinue:
			continue
		case readlineExit:
			a.logger.Info().Msg("Session ended")
			return nil
		}
		if err != nil {
			return err
		}

		if quit := runLine(a, line, rl.Stderr()); quit {
			a.logger.Info().Msg("Session ended")
			return nil
		}
	}
}

// runLine executes one interactive line and reports whether the session
// should end. Errors are printed and never end the session.
func runLine(a *app, line string, errOut io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	}

	a.logger.Info().Str("user_input", line).Msg("User input received")
	if err := a.dispatch(fields); err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(errOut, "%s (type help for available commands)\n", uerr.Error())
			return false
		}
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return false
}

// actionCompleter builds a readline completer from the registered actions.
func actionCompleter(a *app) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, a.actions.Len()+2)
	for _, name := range a.actions.Keys() {
		items = append(items, readline.PcItem(name))
	}
	items = append(items, readline.PcItem("quit"), readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}
