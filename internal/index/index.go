// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index implements an in-memory index of values sorted by a string
// key.
package index

import (
	"slices"
)

// Entry is a value and the key it is indexed by.
type Entry[V any] struct {
	Key   string
	Value V
}

// Index is a generic sorted array index.
type Index[V any] struct {
	// entries is sorted by key using cmp.
	entries []Entry[V]

	cmp func(string, string) int
}

// New creates an index from the given entries and comparison function.
// cmp(a, b) should return a negative number when a < b, a positive number when
// a > b and zero when a == b or a and b are incomparable in the sense of a
// strict weak ordering. Entries with equal keys keep their relative order.
func New[V any](entries []Entry[V], cmp func(string, string) int) *Index[V] {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[V]) int {
		return cmp(a.Key, b.Key)
	})

	return &Index[V]{
		entries: sorted,
		cmp:     cmp,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.entries)
}

// Search returns the values whose key compares equal to key.
func (idx *Index[V]) Search(key string) []V {
	i, found := slices.BinarySearchFunc(idx.entries, key, func(e Entry[V], k string) int {
		return idx.cmp(e.Key, k)
	})
	if !found {
		return nil
	}

	var values []V
	for ; i < len(idx.entries) && idx.cmp(idx.entries[i].Key, key) == 0; i++ {
		values = append(values, idx.entries[i].Value)
	}
	return values
}
