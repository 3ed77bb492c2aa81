//go:build !linux

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
	"fmt"
	"io"
	"os"
)

const readdirBatch = 256

// dirHandle emulates the raw listing on platforms without getdents64.
// Readdirnames omits "." and "..", so they are yielded first.
type dirHandle struct {
	f         *os.File
	dotsGiven bool
}

func openDir(path string) (*dirHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: fmt.Errorf("not a directory")}
	}
	return &dirHandle{f: f}, nil
}

func (d *dirHandle) next() ([]string, error) {
	if !d.dotsGiven {
		d.dotsGiven = true
		return []string{".", ".."}, nil
	}
	names, err := d.f.Readdirnames(readdirBatch)
	if err == io.EOF {
		return names, io.EOF
	}
	return names, err
}

func (d *dirHandle) close() error {
	return d.f.Close()
}
