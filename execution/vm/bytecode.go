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
	"encoding/hex"
	"fmt"
)

// BytecodeElement is one byte of a program, tagged with whether it is
// an instruction byte or part of a push payload.
type BytecodeElement struct {
	Value  byte `json:"value"`
	IsCode bool `json:"isCode"`
}

// Instruction is one opcode plus its push payload, if any. The payload
// length is implied by the opcode; PushData is nil for everything but
// PUSH1..PUSH32. A short payload is zero-padded on assembly, extra
// bytes are ignored.
type Instruction struct {
	Op       OpCode
	PushData []byte
}

func (i Instruction) String() string {
	if n := i.Op.PushDataSize(); n > 0 {
		data := make([]byte, n)
		copy(data, i.PushData)
		return fmt.Sprintf("%s 0x%s", i.Op, hex.EncodeToString(data))
	}
	return i.Op.String()
}

// Bytecode is an append-only sequence of tagged program bytes.
type Bytecode struct {
	elems []BytecodeElement
}

// Push appends one instruction: the opcode byte followed by its
// payload bytes. Assembly never fails; errors are reserved for
// execution.
func (b *Bytecode) Push(instr Instruction) {
	b.elems = append(b.elems, BytecodeElement{Value: byte(instr.Op), IsCode: true})
	for i := 0; i < instr.Op.PushDataSize(); i++ {
		var v byte
		if i < len(instr.PushData) {
			v = instr.PushData[i]
		}
		b.elems = append(b.elems, BytecodeElement{Value: v})
	}
}

// Len returns the number of bytes in the program.
func (b *Bytecode) Len() int {
	return len(b.elems)
}

// GetOp returns the opcode at pc. A pc past the end of the program
// yields ErrEndOfProgram; a pc landing inside a push payload yields
// ErrMalformedProgram — a correctly advancing program counter never
// does either.
func (b *Bytecode) GetOp(pc uint64) (OpCode, error) {
	if pc >= uint64(len(b.elems)) {
		return STOP, ErrEndOfProgram
	}
	el := b.elems[pc]
	if !el.IsCode {
		return STOP, fmt.Errorf("%w: byte %d is push data, not an instruction", ErrMalformedProgram, pc)
	}
	return OpCode(el.Value), nil
}

// pushData returns the n payload bytes starting at start, verifying
// that every one of them exists and is tagged as data.
func (b *Bytecode) pushData(start uint64, n int) ([]byte, error) {
	if start+uint64(n) > uint64(len(b.elems)) {
		return nil, fmt.Errorf("%w: push data runs past end of bytecode", ErrMalformedProgram)
	}
	out := make([]byte, n)
	for i := range out {
		el := b.elems[start+uint64(i)]
		if el.IsCode {
			return nil, fmt.Errorf("%w: instruction byte %d inside push data", ErrMalformedProgram, start+uint64(i))
		}
		out[i] = el.Value
	}
	return out, nil
}

// Elements returns a copy of the tagged program bytes, for display and
// snapshotting.
func (b *Bytecode) Elements() []BytecodeElement {
	out := make([]BytecodeElement, len(b.elems))
	copy(out, b.elems)
	return out
}

// Disassemble splits raw bytecode into instructions, consuming push
// payloads. A push whose payload runs past the end of code is an
// ErrMalformedProgram.
func Disassemble(code []byte) ([]Instruction, error) {
	var out []Instruction
	for i := 0; i < len(code); {
		op := OpCode(code[i])
		n := op.PushDataSize()
		if i+1+n > len(code) {
			return nil, fmt.Errorf("%w: %s at byte %d wants %d payload bytes, %d left",
				ErrMalformedProgram, op, i, n, len(code)-i-1)
		}
		instr := Instruction{Op: op}
		if n > 0 {
			instr.PushData = append([]byte(nil), code[i+1:i+1+n]...)
		}
		out = append(out, instr)
		i += 1 + n
	}
	return out, nil
}
