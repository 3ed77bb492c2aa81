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
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// dirReadBufSize backs one getdents64 call.
const dirReadBufSize = 32 * 1024

// Offsets into a linux_dirent64 record. unix.ParseDirent drops "." and
// "..", so records are decoded here.
const (
	direntInoOff    = int(unsafe.Offsetof(unix.Dirent{}.Ino))
	direntReclenOff = int(unsafe.Offsetof(unix.Dirent{}.Reclen))
	direntNameOff   = int(unsafe.Offsetof(unix.Dirent{}.Name))
)

type dirHandle struct {
	fd  int
	buf []byte
}

func openDir(path string) (*dirHandle, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, &os.PathError{Op: "open", Path: path, Err: err}
		}
		return &dirHandle{fd: fd, buf: make([]byte, dirReadBufSize)}, nil
	}
}

// next returns the names decoded from one getdents64 call, or io.EOF once
// the directory is exhausted.
func (d *dirHandle) next() ([]string, error) {
	for {
		n, err := unix.ReadDirent(d.fd, d.buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, os.NewSyscallError("getdents64", err)
		}
		if n <= 0 {
			return nil, io.EOF
		}
		return parseDirents(d.buf[:n], nil), nil
	}
}

func (d *dirHandle) close() error {
	return unix.Close(d.fd)
}

func parseDirents(buf []byte, names []string) []string {
	for len(buf) > direntNameOff {
		reclen := int(binary.NativeEndian.Uint16(buf[direntReclenOff:]))
		if reclen <= direntNameOff || reclen > len(buf) {
			break
		}
		rec := buf[:reclen]
		buf = buf[reclen:]
		if binary.NativeEndian.Uint64(rec[direntInoOff:]) == 0 {
			continue
		}
		name := rec[direntNameOff:]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		names = append(names, string(name))
	}
	return names
}
