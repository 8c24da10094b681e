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
	"github.com/holiman/uint256"
)

// Memory is the byte-addressable machine memory. It only ever grows,
// in 32-byte words, and remembers the cumulative expansion fee already
// charged so that each expansion is priced as a delta.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns a new, empty memory model.
func NewMemory() *Memory {
	return &Memory{}
}

// Set sets offset + size to value. The backing store must already
// cover the access; the dispatch loop resizes before handlers run.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size > 0 {
		// length of store may never be less than offset + size.
		// The store should be resized PRIOR to setting the memory
		if offset+size > uint64(len(m.store)) {
			panic("invalid memory: store empty")
		}
		copy(m.store[offset:offset+size], value)
	}
}

// Set32 sets the 32 bytes starting at offset to the big-endian value,
// left-padded with zeroes to 32 bytes.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	// length of store may never be less than offset + size.
	// The store should be resized PRIOR to setting the memory
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	// Fill in relevant bits
	val.PutUint256(m.store[offset:])
}

// Resize grows the memory to size bytes. size is always a multiple of
// 32; memory never shrinks.
func (m *Memory) Resize(size uint64) {
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
		m.lastGasCost = memoryFee(m.Words())
	}
}

// GetCopy returns size bytes starting at offset as a new slice.
func (m *Memory) GetCopy(offset, size uint64) (cpy []byte) {
	if size == 0 {
		return nil
	}
	cpy = make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return
}

// GetPtr returns size bytes starting at offset, backed by the store.
// Callers must not modify the contents of the returned slice.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len returns the length of the backing slice, in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Words returns the number of 32-byte words currently allocated.
func (m *Memory) Words() uint64 {
	return uint64(len(m.store)) / 32
}

// Data returns the backing slice. Callers must not modify the contents
// of the returned data.
func (m *Memory) Data() []byte {
	return m.store
}
