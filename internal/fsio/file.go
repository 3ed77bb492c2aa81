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

// Package fsio implements whole-file and formatted file helpers plus
// directory traversal. Every fallible operation returns an
// *errors.Error classified by code; nothing here logs or exits.
//
// Paths starting with "~" are home-expanded before use.
package fsio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	apperrors "backlight/internal/errors"
	"backlight/internal/paths"
	"backlight/internal/text"
)

// ReadWholeFile reads the whole file into a fresh buffer.
func ReadWholeFile(path string) (*text.Buffer, error) {
	return ReadWholeFileN(path, -1)
}

// ReadWholeFileN reads at most maxBytes bytes; a negative maxBytes reads to
// EOF. The returned buffer is never nil: on open failure it is empty, on a
// read failure it holds the bytes read so far.
func ReadWholeFileN(path string, maxBytes int) (*text.Buffer, error) {
	buf := text.EmptyBuffer()

	f, err := os.Open(paths.Expand(path))
	if err != nil {
		return buf, apperrors.Wrap(apperrors.CodeFileNotFound, "open "+path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for maxBytes < 0 || buf.Len() < maxBytes {
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return buf, apperrors.Wrap(apperrors.CodeRead, "read "+path, err)
		}
		buf.AppendChar(c)
	}
	return buf, nil
}

// ScanFile scans the file with format and fails with CodeScan unless every
// element of out was filled. Whitespace in format, and before each field,
// matches any run of whitespace in the file, newlines included.
func ScanFile(path, format string, out ...any) error {
	f, err := os.Open(paths.Expand(path))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeFileNotFound, "open "+path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	n := 0
	for _, field := range strings.Fields(format) {
		k := min(countVerbs(field), len(out)-n)
		if err = skipSpace(r); err != nil {
			break
		}
		var m int
		m, err = fmt.Fscanf(r, field, out[n:n+k]...)
		n += m
		if err != nil {
			break
		}
	}
	if n < len(out) {
		return apperrors.Wrap(apperrors.CodeScan, fmt.Sprintf("scan %s: matched %d of %d fields", path, n, len(out)), err)
	}
	return nil
}

// countVerbs counts the conversions in one format field, %% excluded.
func countVerbs(field string) int {
	n := 0
	for i := 0; i < len(field); i++ {
		if field[i] != '%' {
			continue
		}
		if i+1 < len(field) && field[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}

// skipSpace consumes leading whitespace. EOF is left for the scan to report.
func skipSpace(r *bufio.Reader) error {
	for {
		c, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !unicode.IsSpace(c) {
			return r.UnreadRune()
		}
	}
}

// ReadInt scans a single decimal integer from path.
func ReadInt(path string) (int, error) {
	var n int
	if err := ScanFile(path, "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}

// WriteFile truncates path and writes the formatted content. A failed open
// is reported as CodeFileNotFound; the kernel rejecting the data surfaces
// on write or close and is reported as CodeWrite.
func WriteFile(path, format string, args ...any) error {
	return writeFormatted(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, format, args...)
}

// AppendFile is WriteFile in append mode.
func AppendFile(path, format string, args ...any) error {
	return writeFormatted(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, format, args...)
}

func writeFormatted(path string, flag int, format string, args ...any) error {
	f, err := os.OpenFile(paths.Expand(path), flag, 0o644)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeFileNotFound, "open "+path+" for writing", err)
	}
	if _, err := fmt.Fprintf(f, format, args...); err != nil {
		f.Close()
		return apperrors.Wrap(apperrors.CodeWrite, "write "+path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.Wrap(apperrors.CodeWrite, "close "+path, err)
	}
	return nil
}
