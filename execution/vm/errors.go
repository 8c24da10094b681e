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
	"errors"
	"fmt"
)

// Errors returned by Step. Any error aborts the current step; the
// emulator never retries or rolls back on behalf of the host.
var (
	ErrOutOfGas         = errors.New("out of gas")
	ErrGasUintOverflow  = errors.New("gas uint64 overflow")
	ErrMemoryLimit      = errors.New("maximum memory size exceeded")
	ErrMalformedProgram = errors.New("malformed program")
	ErrEndOfProgram     = errors.New("end of program reached")
)

// ErrStackUnderflow wraps an evm error when the items on the stack less
// than the minimal requirement.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

// ErrStackOverflow wraps an evm error when the items on the stack
// exceeds the maximum allowance.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

// ErrUnsupportedOpcode is returned when the program counter lands on a
// byte value the emulator does not implement. Unsupported opcodes are
// fatal, never a silent no-op.
type ErrUnsupportedOpcode struct {
	Op OpCode
}

func (e *ErrUnsupportedOpcode) Error() string {
	return fmt.Sprintf("opcode %s not supported by the emulator", e.Op)
}
