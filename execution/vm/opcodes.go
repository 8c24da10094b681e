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

import "fmt"

// OpCode is a single-byte EVM instruction identifier.
type OpCode byte

// 0x0 range - arithmetic ops.
const (
	STOP       OpCode = 0x0
	ADD        OpCode = 0x1
	MUL        OpCode = 0x2
	SUB        OpCode = 0x3
	DIV        OpCode = 0x4
	SDIV       OpCode = 0x5
	MOD        OpCode = 0x6
	SMOD       OpCode = 0x7
	ADDMOD     OpCode = 0x8
	MULMOD     OpCode = 0x9
	EXP        OpCode = 0xa
	SIGNEXTEND OpCode = 0xb
)

// 0x10 range - comparison and bitwise ops.
const (
	LT     OpCode = 0x10
	GT     OpCode = 0x11
	SLT    OpCode = 0x12
	SGT    OpCode = 0x13
	EQ     OpCode = 0x14
	ISZERO OpCode = 0x15
	AND    OpCode = 0x16
	OR     OpCode = 0x17
	XOR    OpCode = 0x18
	NOT    OpCode = 0x19
	BYTE   OpCode = 0x1a
	SHL    OpCode = 0x1b
	SHR    OpCode = 0x1c
	SAR    OpCode = 0x1d
)

// 0x20 range - crypto.
const (
	KECCAK256 OpCode = 0x20
)

// 0x50 range - storage, memory and execution state.
const (
	POP      OpCode = 0x50
	MLOAD    OpCode = 0x51
	MSTORE   OpCode = 0x52
	MSTORE8  OpCode = 0x53
	SLOAD    OpCode = 0x54
	SSTORE   OpCode = 0x55
	JUMP     OpCode = 0x56
	JUMPI    OpCode = 0x57
	PC       OpCode = 0x58
	MSIZE    OpCode = 0x59
	GAS      OpCode = 0x5a
	JUMPDEST OpCode = 0x5b
	PUSH0    OpCode = 0x5f
)

// 0x60 range - pushes.
const (
	PUSH1 OpCode = 0x60 + iota
	PUSH2
	PUSH3
	PUSH4
	PUSH5
	PUSH6
	PUSH7
	PUSH8
	PUSH9
	PUSH10
	PUSH11
	PUSH12
	PUSH13
	PUSH14
	PUSH15
	PUSH16
	PUSH17
	PUSH18
	PUSH19
	PUSH20
	PUSH21
	PUSH22
	PUSH23
	PUSH24
	PUSH25
	PUSH26
	PUSH27
	PUSH28
	PUSH29
	PUSH30
	PUSH31
	PUSH32
)

// 0x80 range - dups.
const (
	DUP1 OpCode = 0x80 + iota
	DUP2
	DUP3
	DUP4
	DUP5
	DUP6
	DUP7
	DUP8
	DUP9
	DUP10
	DUP11
	DUP12
	DUP13
	DUP14
	DUP15
	DUP16
)

// 0x90 range - swaps.
const (
	SWAP1 OpCode = 0x90 + iota
	SWAP2
	SWAP3
	SWAP4
	SWAP5
	SWAP6
	SWAP7
	SWAP8
	SWAP9
	SWAP10
	SWAP11
	SWAP12
	SWAP13
	SWAP14
	SWAP15
	SWAP16
)

// IsPush reports whether the opcode is a PUSH variant, PUSH0 included.
func (op OpCode) IsPush() bool {
	return op >= PUSH0 && op <= PUSH32
}

// IsDup reports whether the opcode is a DUP variant.
func (op OpCode) IsDup() bool {
	return op >= DUP1 && op <= DUP16
}

// IsSwap reports whether the opcode is a SWAP variant.
func (op OpCode) IsSwap() bool {
	return op >= SWAP1 && op <= SWAP16
}

// PushDataSize returns the number of payload bytes following a push
// opcode: 0 for PUSH0 and non-push opcodes, up to 32 for PUSH32.
func (op OpCode) PushDataSize() int {
	if op.IsPush() {
		return int(op - PUSH0)
	}
	return 0
}

// OpFamily is a coarse classification of opcodes, used by hosts to
// group or filter instructions.
type OpFamily byte

const (
	FamilyInvalid OpFamily = iota
	FamilyArithmetic
	FamilyComparison
	FamilyBitwise
	FamilyMemory
	FamilyStack
	FamilyStorage
	FamilyMisc
)

var familyToString = map[OpFamily]string{
	FamilyInvalid:    "invalid",
	FamilyArithmetic: "arithmetic",
	FamilyComparison: "comparison",
	FamilyBitwise:    "bitwise",
	FamilyMemory:     "memory",
	FamilyStack:      "stack",
	FamilyStorage:    "storage",
	FamilyMisc:       "misc",
}

func (f OpFamily) String() string {
	return familyToString[f]
}

// Family classifies the opcode. Bytes outside the emulated subset map
// to FamilyInvalid.
func (op OpCode) Family() OpFamily {
	switch {
	case op >= ADD && op <= SIGNEXTEND && op != EXP:
		return FamilyArithmetic
	case op >= LT && op <= EQ:
		return FamilyComparison
	case op >= AND && op <= BYTE:
		return FamilyBitwise
	case op == MLOAD || op == MSTORE || op == MSTORE8 || op == MSIZE:
		return FamilyMemory
	case op == SLOAD || op == SSTORE:
		return FamilyStorage
	case op.IsPush() || op.IsDup() || op.IsSwap():
		return FamilyStack
	case op == PC || op == GAS:
		return FamilyMisc
	default:
		return FamilyInvalid
	}
}

var opCodeToString = [256]string{
	STOP:       "STOP",
	ADD:        "ADD",
	MUL:        "MUL",
	SUB:        "SUB",
	DIV:        "DIV",
	SDIV:       "SDIV",
	MOD:        "MOD",
	SMOD:       "SMOD",
	ADDMOD:     "ADDMOD",
	MULMOD:     "MULMOD",
	EXP:        "EXP",
	SIGNEXTEND: "SIGNEXTEND",
	LT:         "LT",
	GT:         "GT",
	SLT:        "SLT",
	SGT:        "SGT",
	EQ:         "EQ",
	ISZERO:     "ISZERO",
	AND:        "AND",
	OR:         "OR",
	XOR:        "XOR",
	NOT:        "NOT",
	BYTE:       "BYTE",
	SHL:        "SHL",
	SHR:        "SHR",
	SAR:        "SAR",
	KECCAK256:  "KECCAK256",
	POP:        "POP",
	MLOAD:      "MLOAD",
	MSTORE:     "MSTORE",
	MSTORE8:    "MSTORE8",
	SLOAD:      "SLOAD",
	SSTORE:     "SSTORE",
	JUMP:       "JUMP",
	JUMPI:      "JUMPI",
	PC:         "PC",
	MSIZE:      "MSIZE",
	GAS:        "GAS",
	JUMPDEST:   "JUMPDEST",
	PUSH0:      "PUSH0",
	PUSH1:      "PUSH1",
	PUSH2:      "PUSH2",
	PUSH3:      "PUSH3",
	PUSH4:      "PUSH4",
	PUSH5:      "PUSH5",
	PUSH6:      "PUSH6",
	PUSH7:      "PUSH7",
	PUSH8:      "PUSH8",
	PUSH9:      "PUSH9",
	PUSH10:     "PUSH10",
	PUSH11:     "PUSH11",
	PUSH12:     "PUSH12",
	PUSH13:     "PUSH13",
	PUSH14:     "PUSH14",
	PUSH15:     "PUSH15",
	PUSH16:     "PUSH16",
	PUSH17:     "PUSH17",
	PUSH18:     "PUSH18",
	PUSH19:     "PUSH19",
	PUSH20:     "PUSH20",
	PUSH21:     "PUSH21",
	PUSH22:     "PUSH22",
	PUSH23:     "PUSH23",
	PUSH24:     "PUSH24",
	PUSH25:     "PUSH25",
	PUSH26:     "PUSH26",
	PUSH27:     "PUSH27",
	PUSH28:     "PUSH28",
	PUSH29:     "PUSH29",
	PUSH30:     "PUSH30",
	PUSH31:     "PUSH31",
	PUSH32:     "PUSH32",
	DUP1:       "DUP1",
	DUP2:       "DUP2",
	DUP3:       "DUP3",
	DUP4:       "DUP4",
	DUP5:       "DUP5",
	DUP6:       "DUP6",
	DUP7:       "DUP7",
	DUP8:       "DUP8",
	DUP9:       "DUP9",
	DUP10:      "DUP10",
	DUP11:      "DUP11",
	DUP12:      "DUP12",
	DUP13:      "DUP13",
	DUP14:      "DUP14",
	DUP15:      "DUP15",
	DUP16:      "DUP16",
	SWAP1:      "SWAP1",
	SWAP2:      "SWAP2",
	SWAP3:      "SWAP3",
	SWAP4:      "SWAP4",
	SWAP5:      "SWAP5",
	SWAP6:      "SWAP6",
	SWAP7:      "SWAP7",
	SWAP8:      "SWAP8",
	SWAP9:      "SWAP9",
	SWAP10:     "SWAP10",
	SWAP11:     "SWAP11",
	SWAP12:     "SWAP12",
	SWAP13:     "SWAP13",
	SWAP14:     "SWAP14",
	SWAP15:     "SWAP15",
	SWAP16:     "SWAP16",
}

func (op OpCode) String() string {
	if s := opCodeToString[op]; s != "" {
		return s
	}
	return fmt.Sprintf("opcode %#x not defined", int(op))
}

var stringToOp = func() map[string]OpCode {
	m := make(map[string]OpCode, 256)
	for i, s := range opCodeToString {
		if s != "" {
			m[s] = OpCode(i)
		}
	}
	return m
}()

// StringToOp finds the opcode whose string representation is stringRep.
func StringToOp(stringRep string) OpCode {
	return stringToOp[stringRep]
}
