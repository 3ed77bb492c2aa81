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

// Package text provides an owned, NUL-terminated byte buffer and a
// non-owning view type over it.
//
// A Buffer exclusively owns its storage. A View borrows bytes from a Buffer
// or a string and is only valid while the source is alive and unmodified
// in the referenced range: any Buffer mutation (AppendChar, Append, Replace,
// Free) invalidates views taken from it.
package text

import (
	"fmt"
)

// Buffer is a growable byte sequence. Its storage always holds Len()+1
// bytes, the last of which is NUL, so CString can be handed to APIs that
// expect C strings.
//
// Buffers are not safe for concurrent use.
type Buffer struct {
	data []byte
}

// NewBuffer formats according to a fmt verb pattern and returns a buffer
// holding the result.
func NewBuffer(format string, args ...any) *Buffer {
	return NewBufferString(fmt.Sprintf(format, args...))
}

// NewBufferString returns a buffer holding a copy of s.
func NewBufferString(s string) *Buffer {
	data := make([]byte, len(s)+1)
	copy(data, s)
	return &Buffer{data: data}
}

// EmptyBuffer returns a buffer of length zero.
func EmptyBuffer() *Buffer {
	return &Buffer{data: []byte{0}}
}

// Len returns the number of bytes in the buffer, excluding the terminator.
func (b *Buffer) Len() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data) - 1
}

// AppendChar appends a single byte.
func (b *Buffer) AppendChar(c byte) {
	b.data[len(b.data)-1] = c
	b.data = append(b.data, 0)
}

// Append appends the bytes referenced by v. v may point into b itself.
func (b *Buffer) Append(v View) {
	if v.IsEmpty() {
		return
	}
	n := b.Len()
	grown := append(b.data[:n], v.b...)
	b.data = append(grown, 0)
}

// Replace substitutes up to max non-overlapping occurrences of target,
// scanning left to right. max <= 0 replaces every occurrence. An empty
// target leaves the buffer untouched. The result is rebuilt in fresh
// storage, so target and replacement may be views into b.
func (b *Buffer) Replace(target, replacement View, max int) *Buffer {
	if target.IsEmpty() {
		return b
	}
	src := b.View()
	var out []byte
	count, i := 0, 0
	for max <= 0 || count < max {
		j := src.Slice(i, src.Len()).Index(target)
		if j < 0 {
			break
		}
		if out == nil {
			out = make([]byte, 0, src.Len()+1)
		}
		out = append(out, src.b[i:i+j]...)
		out = append(out, replacement.b...)
		i += j + target.Len()
		count++
	}
	if count == 0 {
		return b
	}
	out = append(out, src.b[i:]...)
	b.data = append(out, 0)
	return b
}

// Free releases the storage. The buffer must not be used afterwards except
// for further calls to Free, which are no-ops.
func (b *Buffer) Free() {
	b.data = nil
}

// View returns a view over the buffer's current contents.
func (b *Buffer) View() View {
	n := b.Len()
	if n == 0 {
		return EmptyView
	}
	return View{b: b.data[:n:n]}
}

// CString returns the storage including the trailing NUL. The slice aliases
// the buffer and must not be retained past the next mutation.
func (b *Buffer) CString() []byte {
	return b.data
}

// String returns a copy of the contents.
func (b *Buffer) String() string {
	return string(b.data[:b.Len()])
}

// Clone returns an independent copy of b.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, b.Len()+1)
	copy(data, b.data)
	return &Buffer{data: data}
}
