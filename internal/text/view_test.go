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
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "backlight/internal/errors"
)

func TestEmptyViews(t *testing.T) {
	assert.True(t, EmptyView.IsEmpty())
	assert.True(t, FromString("").Equal(EmptyView))
	assert.True(t, EmptyBuffer().View().Equal(FromCString([]byte{0})))
	assert.False(t, FromString("x").IsEmpty())
}

func TestFromCStringStopsAtNUL(t *testing.T) {
	v := FromCString([]byte("intel_backlight\x00garbage"))
	assert.True(t, v.EqualString("intel_backlight"))
	assert.Equal(t, 15, v.Len())
}

func TestPrefixEqual(t *testing.T) {
	home := FromString("/home/user")
	assert.True(t, FromString("/home/user/.config").PrefixEqual(home, home.Len()))
	assert.False(t, FromString("/home").PrefixEqual(home, home.Len()))
	assert.False(t, FromString("/home/other").PrefixEqual(home, home.Len()))
	assert.True(t, FromString("a").PrefixEqual(FromString("b"), 0))
}

func TestIsNumeric(t *testing.T) {
	cases := map[string]bool{
		"123":  true,
		"0":    true,
		"":     false,
		"12a":  false,
		"-5":   false,
		"+5":   false,
		"1.5":  false,
		" 12":  false,
		"12\n": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, FromString(in).IsNumeric(), "IsNumeric(%q)", in)
	}
}

func TestInt(t *testing.T) {
	n, err := FromString("4882").Int()
	require.NoError(t, err)
	assert.Equal(t, 4882, n)
}

func TestIntRejectsNonNumeric(t *testing.T) {
	_, err := FromString("-5").Int()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnknown, apperrors.CodeOf(err))
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}

func TestIntOverflow(t *testing.T) {
	_, err := FromString("99999999999999999999999").Int()
	require.Error(t, err)
	assert.True(t, errors.Is(err, strconv.ErrRange))
}
