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

package fsio

import (
	"errors"
	"io"
	"iter"

	apperrors "backlight/internal/errors"
	"backlight/internal/paths"
)

// Entries returns every name in dir, "." and ".." included, in the order
// the directory listing produces them. The sequence is lazy and
// restartable: each range opens the directory again. When the directory
// cannot be opened the sequence yields a single ("", err) pair coded
// CodeFileNotFound.
func Entries(dir string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		d, err := openDir(paths.Expand(dir))
		if err != nil {
			yield("", apperrors.Wrap(apperrors.CodeFileNotFound, "open directory "+dir, err))
			return
		}
		defer d.close()

		for {
			names, err := d.next()
			for _, name := range names {
				if !yield(name, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", apperrors.Wrap(apperrors.CodeRead, "read directory "+dir, err))
				return
			}
		}
	}
}

// Filter passes through names accepted by keep. Errors always pass.
func Filter(seq iter.Seq2[string, error], keep func(string) bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for name, err := range seq {
			if err == nil && !keep(name) {
				continue
			}
			if !yield(name, err) {
				return
			}
		}
	}
}

// IsHidden reports whether name starts with a dot.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// IsVisible is the negation of IsHidden.
func IsVisible(name string) bool {
	return !IsHidden(name)
}

// ForEach calls visit for every entry in dir.
func ForEach(dir string, visit func(name string)) error {
	return consume(Entries(dir), visit)
}

// ForEachHidden calls visit for entries starting with a dot, which
// includes "." and "..".
func ForEachHidden(dir string, visit func(name string)) error {
	return consume(Filter(Entries(dir), IsHidden), visit)
}

// ForEachVisible calls visit for entries not starting with a dot.
func ForEachVisible(dir string, visit func(name string)) error {
	return consume(Filter(Entries(dir), IsVisible), visit)
}

// Names collects the sequence into a slice, stopping at the first error.
func Names(seq iter.Seq2[string, error]) ([]string, error) {
	var names []string
	err := consume(seq, func(name string) {
		names = append(names, name)
	})
	return names, err
}

func consume(seq iter.Seq2[string, error], visit func(string)) error {
	for name, err := range seq {
		if err != nil {
			return err
		}
		visit(name)
	}
	return nil
}
