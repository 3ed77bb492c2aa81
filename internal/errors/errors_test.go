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

package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	base := stderrors.New("permission denied")
	err := Wrap(CodeWrite, "write /sys/class/backlight/x/brightness", base)

	assert.EqualError(t, err, "write /sys/class/backlight/x/brightness: permission denied")
	assert.ErrorIs(t, err, base)
}

func TestErrorWithoutMessageFallsBackToCode(t *testing.T) {
	assert.Equal(t, "Scanf error", New(CodeScan, "").Error())
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("device: %w", Wrap(CodeFileNotFound, "open", os.ErrNotExist))
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.NotErrorIs(t, err, ErrScan)
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeOK},
		{"plain", stderrors.New("boom"), CodeUnknown},
		{"coded", New(CodeRead, "short read"), CodeRead},
		{"wrapped", fmt.Errorf("ctx: %w", New(CodeWrite, "")), CodeWrite},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CodeOf(tc.err), tc.name)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "File not found", CodeFileNotFound.Describe())
	assert.Equal(t, "Invalid error code", Code("bogus").Describe())
}
