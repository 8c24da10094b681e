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

// EVM is the single-stepping emulator: one program counter, one
// operand stack, one memory, one storage with its access list, and one
// gas meter, all exclusively owned. It is not safe for concurrent use;
// it is a teaching debugger, not a bulk executor.
type EVM struct {
	pc         uint64
	bytecode   *Bytecode
	stack      *Stack
	memory     *Memory
	storage    *Storage
	accessList *AccessList
	gas        *GasMeter
	jt         *JumpTable
}

// New returns an emulator with an empty program and state, and the
// given gas limit.
func New(gasLimit uint64) *EVM {
	return &EVM{
		bytecode:   new(Bytecode),
		stack:      newstack(),
		memory:     NewMemory(),
		storage:    NewStorage(),
		accessList: NewAccessList(),
		gas:        NewGasMeter(gasLimit),
		jt:         &emulatorInstructionSet,
	}
}

// PushInstruction appends one instruction to the program. Assembly
// never fails; errors are reserved for execution.
func (evm *EVM) PushInstruction(instr Instruction) {
	evm.bytecode.Push(instr)
}

// Done reports whether the program counter has run off the end of the
// program. There is no terminal opcode; the host decides when to stop.
func (evm *EVM) Done() bool {
	return evm.pc >= uint64(evm.bytecode.Len())
}

// Step executes the instruction at the current program counter.
//
// The order is fixed: fetch, validate stack bounds, charge constant
// gas, size and price any memory expansion, charge dynamic gas, grow
// memory, execute, advance. Every charge happens before any state
// mutation, so a failed step leaves stack, memory and storage exactly
// as they were.
func (evm *EVM) Step() error {
	op, err := evm.bytecode.GetOp(evm.pc)
	if err != nil {
		return err
	}
	operation := evm.jt[op]
	if operation == nil {
		return &ErrUnsupportedOpcode{Op: op}
	}

	if sLen := evm.stack.len(); sLen < operation.minStack {
		return &ErrStackUnderflow{stackLen: sLen, required: operation.minStack}
	} else if sLen > operation.maxStack {
		return &ErrStackOverflow{stackLen: sLen, limit: operation.maxStack}
	}

	if operation.constantGas > 0 {
		if err = evm.gas.UseGas(operation.constantGas); err != nil {
			return err
		}
	}

	var memorySize uint64
	if operation.memorySize != nil {
		memSize, overflow := operation.memorySize(evm.stack)
		if overflow {
			return ErrGasUintOverflow
		}
		if memSize > MaxMemorySize {
			return ErrMemoryLimit
		}
		// memory is expanded in words of 32 bytes, gas is charged per
		// word as well
		memorySize = toWordSize(memSize) * 32
	}

	if operation.dynamicGas != nil {
		// dynamic gas funcs only peek at the stack, so a failed charge
		// leaves the operands in place
		dynamicCost, err := operation.dynamicGas(evm, evm.stack, evm.memory, memorySize)
		if err != nil {
			return err
		}
		if err = evm.gas.UseGas(dynamicCost); err != nil {
			return err
		}
	}

	if memorySize > 0 {
		evm.memory.Resize(memorySize)
	}

	if err = operation.execute(&evm.pc, evm); err != nil {
		return err
	}
	evm.pc++
	return nil
}

// PC returns the current program counter.
func (evm *EVM) PC() uint64 { return evm.pc }

// Bytecode returns the program being executed.
func (evm *EVM) Bytecode() *Bytecode { return evm.bytecode }

// Stack returns the operand stack.
func (evm *EVM) Stack() *Stack { return evm.stack }

// Memory returns the machine memory.
func (evm *EVM) Memory() *Memory { return evm.memory }

// Storage returns the persistent storage.
func (evm *EVM) Storage() *Storage { return evm.storage }

// AccessList returns the warm-slot set.
func (evm *EVM) AccessList() *AccessList { return evm.accessList }

// Gas returns the gas meter.
func (evm *EVM) Gas() *GasMeter { return evm.gas }
