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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "backlight/internal/errors"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadWholeFile(t *testing.T) {
	path := writeTemp(t, "brightness", "4882\n")
	buf, err := ReadWholeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "4882\n", buf.String())
	assert.Equal(t, byte(0), buf.CString()[buf.Len()])
}

func TestReadWholeFileBounded(t *testing.T) {
	path := writeTemp(t, "data", "0123456789")
	buf, err := ReadWholeFileN(path, 4)
	require.NoError(t, err)
	assert.Equal(t, "0123", buf.String())

	buf, err = ReadWholeFileN(path, 100)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", buf.String())
}

func TestReadWholeFileMissingReturnsEmptyBuffer(t *testing.T) {
	buf, err := ReadWholeFile(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))
	require.NotNil(t, buf)
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, []byte{0}, buf.CString())
}

func TestReadWholeFileDirectoryIsReadError(t *testing.T) {
	_, err := ReadWholeFile(t.TempDir())
	assert.Equal(t, apperrors.CodeRead, apperrors.CodeOf(err))
}

func TestReadWholeFileExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "max_brightness"), []byte("19200"), 0o644))

	buf, err := ReadWholeFile("~/max_brightness")
	require.NoError(t, err)
	assert.Equal(t, "19200", buf.String())
}

func TestScanFileMissing(t *testing.T) {
	var n int
	err := ScanFile(filepath.Join(t.TempDir(), "missing"), "%d", &n)
	assert.Equal(t, apperrors.CodeFileNotFound, apperrors.CodeOf(err))
}

func TestScanFileNonNumeric(t *testing.T) {
	var n int
	err := ScanFile(writeTemp(t, "brightness", "bright\n"), "%d", &n)
	assert.Equal(t, apperrors.CodeScan, apperrors.CodeOf(err))
	assert.True(t, errors.Is(err, apperrors.ErrScan))
}

func TestScanFileEmpty(t *testing.T) {
	var n int
	err := ScanFile(writeTemp(t, "brightness", ""), "%d", &n)
	assert.Equal(t, apperrors.CodeScan, apperrors.CodeOf(err))
}

func TestScanFileMultipleFields(t *testing.T) {
	var a, b int
	require.NoError(t, ScanFile(writeTemp(t, "pair", "3 7\n"), "%d %d", &a, &b))
	assert.Equal(t, 3, a)
	assert.Equal(t, 7, b)

	err := ScanFile(writeTemp(t, "pair", "3\n"), "%d %d", &a, &b)
	assert.Equal(t, apperrors.CodeScan, apperrors.CodeOf(err))
}

func TestScanFileSkipsLeadingWhitespace(t *testing.T) {
	for _, content := range []string{"42\n", "  42  \n", "\n42\n", " \n 42", "\r\n42"} {
		got, err := ReadInt(writeTemp(t, "brightness", content))
		require.NoError(t, err, "content %q", content)
		assert.Equal(t, 42, got, "content %q", content)
	}
}

func TestScanFileFieldsAcrossLines(t *testing.T) {
	var a, b int
	require.NoError(t, ScanFile(writeTemp(t, "pair", "3\n7"), "%d %d", &a, &b))
	assert.Equal(t, 3, a)
	assert.Equal(t, 7, b)

	var w, h int
	require.NoError(t, ScanFile(writeTemp(t, "size", "\n1920x1080\n"), "%dx%d", &w, &h))
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestWriteThenScanRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightness")
	for _, want := range []int{0, 1, 937, 120000} {
		require.NoError(t, WriteFile(path, "%d", want))
		got, err := ReadInt(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWriteFileTruncates(t *testing.T) {
	path := writeTemp(t, "brightness", "123456")
	require.NoError(t, WriteFile(path, "%d", 7))
	buf, err := ReadWholeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7", buf.String())
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	require.NoError(t, AppendFile(path, "%s\n", "one"))
	require.NoError(t, AppendFile(path, "%s\n", "two"))
	buf, err := ReadWholeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestWriteFileOpenFailure(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir"), "%d", 1)
	assert.Equal(t, apperrors.CodeFileNotFound, apperrors.CodeOf(err))
}
