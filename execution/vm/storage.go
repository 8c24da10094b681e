// Copyright 2025 The StepEVM Authors
// This file is part of StepEVM.
//
// StepEVM is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// StepEVM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with StepEVM. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"slices"

	"github.com/holiman/uint256"
)

// StorageEntry is one slot/value pair, used for enumeration and
// snapshots.
type StorageEntry struct {
	Slot  uint256.Int `json:"slot"`
	Value uint256.Int `json:"value"`
}

// Storage is the persistent slot-to-value mapping of a single
// execution context. Absent slots read as zero.
type Storage struct {
	slots map[uint256.Int]uint256.Int
}

// NewStorage returns an empty storage.
func NewStorage() *Storage {
	return &Storage{slots: make(map[uint256.Int]uint256.Int)}
}

// Get returns the value stored at key, or the zero word.
func (s *Storage) Get(key uint256.Int) uint256.Int {
	return s.slots[key]
}

// Set stores value at key and returns the prior value (zero if the
// slot was never set).
func (s *Storage) Set(key, value uint256.Int) uint256.Int {
	prev := s.slots[key]
	s.slots[key] = value
	return prev
}

// Delete removes key entirely, so it reads as zero again.
func (s *Storage) Delete(key uint256.Int) {
	delete(s.slots, key)
}

// Len returns the number of slots with a stored value.
func (s *Storage) Len() int {
	return len(s.slots)
}

// Entries returns all stored pairs in ascending slot order.
func (s *Storage) Entries() []StorageEntry {
	out := make([]StorageEntry, 0, len(s.slots))
	for k, v := range s.slots {
		out = append(out, StorageEntry{Slot: k, Value: v})
	}
	slices.SortFunc(out, func(a, b StorageEntry) int { return a.Slot.Cmp(&b.Slot) })
	return out
}
