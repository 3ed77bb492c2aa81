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

package text

import (
	"bytes"
	"fmt"
	"strconv"
	"unsafe"

	apperrors "backlight/internal/errors"
)

// View is a read-only (pointer, length) reference into existing bytes.
// The zero value is the empty view.
type View struct {
	b []byte
}

// EmptyView represents "no value".
var EmptyView = View{}

// FromString returns a view over s without copying.
func FromString(s string) View {
	if s == "" {
		return EmptyView
	}
	return View{b: unsafe.Slice(unsafe.StringData(s), len(s))}
}

// FromCString returns a view over b up to, but not including, the first NUL.
func FromCString(b []byte) View {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) == 0 {
		return EmptyView
	}
	return View{b: b[:len(b):len(b)]}
}

func (v View) Len() int      { return len(v.b) }
func (v View) IsEmpty() bool { return len(v.b) == 0 }

// Bytes exposes the referenced bytes. Callers must not modify them.
func (v View) Bytes() []byte { return v.b }

// String returns a copy of the referenced bytes.
func (v View) String() string { return string(v.b) }

// Equal compares byte-wise.
func (v View) Equal(other View) bool {
	return bytes.Equal(v.b, other.b)
}

// EqualString compares against a literal.
func (v View) EqualString(lit string) bool {
	return string(v.b) == lit
}

// PrefixEqual reports whether the first n bytes of v and other are present
// and equal. n <= 0 is always true.
func (v View) PrefixEqual(other View, n int) bool {
	if n <= 0 {
		return true
	}
	if len(v.b) < n || len(other.b) < n {
		return false
	}
	return bytes.Equal(v.b[:n], other.b[:n])
}

// HasPrefix reports whether v begins with prefix.
func (v View) HasPrefix(prefix View) bool {
	return bytes.HasPrefix(v.b, prefix.b)
}

// Index returns the offset of the first occurrence of sub, or -1.
func (v View) Index(sub View) int {
	return bytes.Index(v.b, sub.b)
}

// Slice returns the sub-view [i, j).
func (v View) Slice(i, j int) View {
	if i == j {
		return EmptyView
	}
	return View{b: v.b[i:j:j]}
}

// IsNumeric reports whether v is one or more ASCII decimal digits. Signs,
// decimal points and surrounding whitespace are rejected.
func (v View) IsNumeric() bool {
	if len(v.b) == 0 {
		return false
	}
	for _, c := range v.b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Int parses a numeric view. Input that fails IsNumeric, or that overflows
// int, returns an error coded CodeUnknown.
func (v View) Int() (int, error) {
	if !v.IsNumeric() {
		return 0, apperrors.Wrap(apperrors.CodeUnknown, fmt.Sprintf("parse %q", v.b), strconv.ErrSyntax)
	}
	n, err := strconv.Atoi(string(v.b))
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUnknown, fmt.Sprintf("parse %q", v.b), err)
	}
	return n, nil
}
