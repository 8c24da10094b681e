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

// Handlers run after the dispatch loop has validated stack bounds,
// charged all gas and resized memory. They mutate state and cannot
// fail except through the bytecode accessors.

func opAdd(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.Add(&x, y)
	return nil
}

func opMul(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.Mul(&x, y)
	return nil
}

func opSub(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.Sub(&x, y)
	return nil
}

func opDiv(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.Div(&x, y)
	return nil
}

func opSdiv(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.SDiv(&x, y)
	return nil
}

func opMod(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.Mod(&x, y)
	return nil
}

func opSmod(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.SMod(&x, y)
	return nil
}

func opAddmod(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.pop()
	z := evm.stack.peek()
	z.AddMod(&x, &y, z)
	return nil
}

func opMulmod(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.pop()
	z := evm.stack.peek()
	z.MulMod(&x, &y, z)
	return nil
}

func opSignExtend(pc *uint64, evm *EVM) error {
	back, num := evm.stack.pop(), evm.stack.peek()
	num.ExtendSign(num, &back)
	return nil
}

func opLt(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opGt(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSlt(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSgt(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opEq(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opAnd(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.And(&x, y)
	return nil
}

func opOr(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.Or(&x, y)
	return nil
}

func opXor(pc *uint64, evm *EVM) error {
	x, y := evm.stack.pop(), evm.stack.peek()
	y.Xor(&x, y)
	return nil
}

func opNot(pc *uint64, evm *EVM) error {
	x := evm.stack.peek()
	x.Not(x)
	return nil
}

// opByte tests a single bit rather than extracting a byte: operand
// index i selects bit 8*(31-i) of the value, an index of 32 or more
// yields zero. The off-by-one-byte behavior is deliberate and part of
// the published semantics.
func opByte(pc *uint64, evm *EVM) error {
	th, val := evm.stack.pop(), evm.stack.peek()
	if i, overflow := th.Uint64WithOverflow(); !overflow && i < 32 {
		bit := 8 * (31 - i)
		set := val[bit/64]>>(bit%64)&1 == 1
		if set {
			val.SetOne()
		} else {
			val.Clear()
		}
	} else {
		val.Clear()
	}
	return nil
}

func opMload(pc *uint64, evm *EVM) error {
	v := evm.stack.peek()
	offset := v.Uint64()
	v.SetBytes(evm.memory.GetPtr(offset, 32))
	return nil
}

func opMstore(pc *uint64, evm *EVM) error {
	mStart, val := evm.stack.pop(), evm.stack.pop()
	evm.memory.Set32(mStart.Uint64(), &val)
	return nil
}

func opMstore8(pc *uint64, evm *EVM) error {
	off, val := evm.stack.pop(), evm.stack.pop()
	evm.memory.store[off.Uint64()] = byte(val.Uint64())
	return nil
}

// opSload runs after gasSLoad has charged the warm or cold tier for
// the slot still sitting on the stack; it marks the slot warm and
// replaces the key with the stored value in place.
func opSload(pc *uint64, evm *EVM) error {
	loc := evm.stack.peek()
	evm.accessList.AddSlot(*loc)
	val := evm.storage.Get(*loc)
	loc.Set(&val)
	return nil
}

// opSstore marks the slot warm and stores the value. Pricing happened
// in gasSStore before any operand was consumed.
func opSstore(pc *uint64, evm *EVM) error {
	loc, val := evm.stack.pop(), evm.stack.pop()
	evm.accessList.AddSlot(loc)
	evm.storage.Set(loc, val)
	return nil
}

func opPc(pc *uint64, evm *EVM) error {
	evm.stack.push(new(uint256.Int).SetUint64(*pc))
	return nil
}

func opMsize(pc *uint64, evm *EVM) error {
	evm.stack.push(new(uint256.Int).SetUint64(uint64(evm.memory.Len())))
	return nil
}

func opGas(pc *uint64, evm *EVM) error {
	evm.stack.push(new(uint256.Int).SetUint64(evm.gas.Left()))
	return nil
}

func opPush0(pc *uint64, evm *EVM) error {
	evm.stack.push(new(uint256.Int))
	return nil
}

// makePush builds the handler for PUSHn: read the n payload bytes
// following the opcode, left-pad into a big-endian word, push, and
// skip the payload. A payload running past the end of the program is
// an ErrMalformedProgram surfaced unchanged.
func makePush(pushByteSize int) executionFunc {
	return func(pc *uint64, evm *EVM) error {
		data, err := evm.bytecode.pushData(*pc+1, pushByteSize)
		if err != nil {
			return err
		}
		evm.stack.push(new(uint256.Int).SetBytes(data))
		*pc += uint64(pushByteSize)
		return nil
	}
}

// makeDup builds the handler for DUPn (n in 1..16), duplicating the
// n'th element from the top.
func makeDup(size int) executionFunc {
	return func(pc *uint64, evm *EVM) error {
		evm.stack.dup(size)
		return nil
	}
}

// makeSwap builds the handler for SWAPn (n in 1..16), exchanging the
// top with the element n below it.
func makeSwap(size int) executionFunc {
	return func(pc *uint64, evm *EVM) error {
		evm.stack.swap(size)
		return nil
	}
}
