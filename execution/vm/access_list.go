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

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"
)

// AccessList tracks the storage slots touched during the execution.
// Slots start cold and are marked warm on first access; warmth is never
// reversed. Execution is single-threaded, so the set is unsynchronized.
type AccessList struct {
	warmSlots mapset.Set[uint256.Int]
}

// NewAccessList returns an access list with every slot cold.
func NewAccessList() *AccessList {
	return &AccessList{warmSlots: mapset.NewThreadUnsafeSet[uint256.Int]()}
}

// Contains reports whether the slot is warm.
func (al *AccessList) Contains(slot uint256.Int) bool {
	return al.warmSlots.Contains(slot)
}

// AddSlot marks the slot warm. Idempotent.
func (al *AccessList) AddSlot(slot uint256.Int) {
	al.warmSlots.Add(slot)
}

// Len returns the number of warm slots.
func (al *AccessList) Len() int {
	return al.warmSlots.Cardinality()
}

// Slots returns the warm slots in ascending order.
func (al *AccessList) Slots() []uint256.Int {
	out := al.warmSlots.ToSlice()
	slices.SortFunc(out, func(a, b uint256.Int) int { return a.Cmp(&b) })
	return out
}
