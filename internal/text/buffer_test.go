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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "/sys/class/backlight/intel_backlight", "with space\tand tab"} {
		b := NewBufferString(s)
		assert.True(t, b.View().Equal(FromString(s)), "view mismatch for %q", s)
		assert.Equal(t, len(s), b.Len())
		cs := b.CString()
		require.Len(t, cs, len(s)+1)
		assert.Equal(t, byte(0), cs[len(s)], "missing terminator for %q", s)
	}
}

func TestNewBufferFormats(t *testing.T) {
	b := NewBuffer("/sys/class/backlight/%s/%s", "acpi_video0", "max_brightness")
	assert.Equal(t, "/sys/class/backlight/acpi_video0/max_brightness", b.String())
}

func TestAppendCharKeepsTerminator(t *testing.T) {
	b := EmptyBuffer()
	for _, c := range []byte("12345") {
		b.AppendChar(c)
		cs := b.CString()
		require.Equal(t, byte(0), cs[len(cs)-1])
	}
	assert.Equal(t, "12345", b.String())
}

func TestAppendSelfView(t *testing.T) {
	b := NewBufferString("ab")
	b.Append(b.View())
	assert.Equal(t, "abab", b.String())
	assert.Equal(t, byte(0), b.CString()[4])
}

func TestReplaceUnlimited(t *testing.T) {
	b := NewBufferString("a-b-c-d")
	b.Replace(FromString("-"), FromString("--"), 0)
	assert.Equal(t, "a--b--c--d", b.String())
}

func TestReplaceBounded(t *testing.T) {
	b := NewBufferString("xxxx")
	b.Replace(FromString("x"), FromString("y"), 2)
	assert.Equal(t, "yyxx", b.String())
}

func TestReplaceNonOverlapping(t *testing.T) {
	b := NewBufferString("aaaa")
	b.Replace(FromString("aa"), FromString("b"), -1)
	assert.Equal(t, "bb", b.String())
}

func TestReplaceShrinkAndGrow(t *testing.T) {
	b := NewBufferString("~/docs/~")
	b.Replace(FromString("~"), FromString("/home/user"), 1)
	assert.Equal(t, "/home/user/docs/~", b.String())

	b.Replace(FromString("/home/user"), FromString("~"), 1)
	assert.Equal(t, "~/docs/~", b.String())
	assert.Equal(t, byte(0), b.CString()[b.Len()])
}

func TestReplaceEmptyTargetIsNoop(t *testing.T) {
	b := NewBufferString("abc")
	b.Replace(EmptyView, FromString("z"), 0)
	assert.Equal(t, "abc", b.String())
}

func TestReplaceRepeatedLeavesNoOccurrences(t *testing.T) {
	cases := []struct{ s, x, y string }{
		{"the cat sat on the mat", "at", "og"},
		{"aaaaaa", "aa", "b"},
		{"//a//b///", "//", "/"},
		{"abcabc", "abc", ""},
	}
	for _, tc := range cases {
		if strings.Contains(tc.y, tc.x) {
			continue
		}
		b := NewBufferString(tc.s)
		for i := 0; i < 8 && b.View().Index(FromString(tc.x)) >= 0; i++ {
			b.Replace(FromString(tc.x), FromString(tc.y), 0)
		}
		assert.Equal(t, -1, b.View().Index(FromString(tc.x)), "occurrence left in %q", b.String())
	}
}

func TestReplaceWithViewIntoSelf(t *testing.T) {
	b := NewBufferString("ab")
	v := b.View()
	b.Replace(v.Slice(0, 1), v, 0)
	assert.Equal(t, "abb", b.String())
}

func TestCloneDoesNotAlias(t *testing.T) {
	b := NewBufferString("one")
	c := b.Clone()
	c.AppendChar('!')
	assert.Equal(t, "one", b.String())
	assert.Equal(t, "one!", c.String())
}

func TestFreeIsIdempotent(t *testing.T) {
	b := NewBufferString("gone")
	b.Free()
	b.Free()
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.View().IsEmpty())
}
