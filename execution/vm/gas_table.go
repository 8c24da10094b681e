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
	"math"

	"github.com/holiman/uint256"
)

// toWordSize returns the number of 32-byte words required to cover
// size bytes.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// memoryFee returns the cumulative fee for a memory of the given word
// count: words*words/512 + 3*words.
func memoryFee(words uint64) uint64 {
	return words*words/MemoryExpansionQuadDenominator + words*MemoryExpansionLinearCoeff
}

// memoryGasCost prices an expansion of the memory to newMemSize bytes
// as the difference between the cumulative fee at the new size and the
// fee already paid for the current size. The paid-for fee is committed
// by Resize, not here, so a failed charge leaves the meter and the
// memory untouched.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	// The max limit is enforced before this is called, but the check
	// keeps the squaring below overflow-safe regardless of the caller.
	if newMemSize > MaxMemorySize {
		return 0, ErrGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		fee := memoryFee(newMemSizeWords) - mem.lastGasCost
		return fee, nil
	}
	return 0, nil
}

// calcMemSize64WithUint calculates the required memory size as
// off + length, signalling overflow for anything past 64 bits.
func calcMemSize64WithUint(off *uint256.Int, length64 uint64) (uint64, bool) {
	if length64 == 0 {
		return 0, false
	}
	offset64, overflow := off.Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	val := offset64 + length64
	return val, val < offset64
}

// memorySize funcs return the highest byte the operation touches plus
// one, before word rounding. The second return signals 64-bit overflow.

func memoryMLoad(stack *Stack) (uint64, bool) {
	return calcMemSize64WithUint(stack.Back(0), 32)
}

func memoryMStore(stack *Stack) (uint64, bool) {
	return calcMemSize64WithUint(stack.Back(0), 32)
}

func memoryMStore8(stack *Stack) (uint64, bool) {
	return calcMemSize64WithUint(stack.Back(0), 1)
}

// gasMemory is the dynamic gas of the pure memory ops: the expansion
// delta only.
func gasMemory(evm *EVM, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

// gasSLoad prices a load per warm/cold slot state. The slot is peeked,
// not popped; the handler pops after the charge has succeeded.
func gasSLoad(evm *EVM, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	slot := stack.Back(0)
	if evm.accessList.Contains(*slot) {
		return WarmStorageReadCost, nil
	}
	return ColdSloadCost, nil
}

// gasSStore prices a store from the slot's current value plus the cold
// surcharge. No refunds and no original-value tracking; the schedule
// looks only at whether the slot currently holds zero.
func gasSStore(evm *EVM, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	slot := stack.Back(0)
	var cost uint64
	if current := evm.storage.Get(*slot); current.IsZero() {
		cost = SstoreSetGas
	} else {
		cost = WarmStorageReadCost
	}
	if !evm.accessList.Contains(*slot) {
		cost += ColdSloadCost
	}
	return cost, nil
}
