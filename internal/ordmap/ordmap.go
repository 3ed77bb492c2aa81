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

// Package ordmap provides an associative container ordered by a
// caller-supplied three-way comparator.
package ordmap

import (
	"iter"
	"slices"
)

type entry[K, V any] struct {
	key   K
	value V
}

// Map stores unique keys under its comparator. Inserting an existing key
// overwrites the previous value. A Map is not safe for concurrent use.
type Map[K, V any] struct {
	cmp     func(a, b K) int
	entries []entry[K, V]
}

// New returns an empty map ordered by cmp, which must return a negative
// number, zero or a positive number when a sorts before, equal to or after
// b. cmp is fixed for the lifetime of the map.
func New[K, V any](cmp func(a, b K) int) *Map[K, V] {
	return &Map[K, V]{cmp: cmp}
}

func (m *Map[K, V]) search(key K) (int, bool) {
	return slices.BinarySearchFunc(m.entries, key, func(e entry[K, V], k K) int {
		return m.cmp(e.key, k)
	})
}

// Insert adds key with value. When key is already present its value is
// replaced and Insert reports true.
func (m *Map[K, V]) Insert(key K, value V) bool {
	i, found := m.search(key)
	if found {
		m.entries[i].value = value
		return true
	}
	m.entries = slices.Insert(m.entries, i, entry[K, V]{key: key, value: value})
	return false
}

// Find returns the value for key. The boolean is false when no entry
// compares equal to key.
func (m *Map[K, V]) Find(key K) (V, bool) {
	if i, found := m.search(key); found {
		return m.entries[i].value, true
	}
	var zero V
	return zero, false
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	i, found := m.search(key)
	if !found {
		return false
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// All iterates entries in ascending key order. The map must not be
// modified during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// Free runs the optional destructors over every entry in key order and
// releases the storage. The map is empty and reusable afterwards.
func (m *Map[K, V]) Free(keyDestroy func(K), valueDestroy func(V)) {
	for _, e := range m.entries {
		if keyDestroy != nil {
			keyDestroy(e.key)
		}
		if valueDestroy != nil {
			valueDestroy(e.value)
		}
	}
	m.entries = nil
}
