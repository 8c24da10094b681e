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
	"fmt"
	"io"

	"github.com/holiman/uint256"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is the full decomposed state of an emulator mid-run:
// everything needed to inspect, persist or reconstruct it. Storage
// entries and warm slots are sorted, so equal states produce equal
// snapshots.
type Snapshot struct {
	PC       uint64            `json:"pc"`
	Bytecode []BytecodeElement `json:"bytecode"`
	Stack    []uint256.Int     `json:"stack"`
	Memory   []byte            `json:"memory"`
	GasLimit uint64            `json:"gasLimit"`
	GasUsed  uint64            `json:"gasUsed"`
	Storage  []StorageEntry    `json:"storage"`
	Warm     []uint256.Int     `json:"warm"`
}

// Snapshot decomposes the emulator into its constituent parts. The
// returned value shares nothing with the live machine.
func (evm *EVM) Snapshot() *Snapshot {
	return &Snapshot{
		PC:       evm.pc,
		Bytecode: evm.bytecode.Elements(),
		Stack:    evm.stack.Data(),
		Memory:   append([]byte(nil), evm.memory.Data()...),
		GasLimit: evm.gas.Limit(),
		GasUsed:  evm.gas.Used(),
		Storage:  evm.storage.Entries(),
		Warm:     evm.accessList.Slots(),
	}
}

// Restore reconstructs an emulator from a snapshot, validating the
// structural invariants a live machine maintains: stack depth, memory
// word alignment and cap, gas accounting, and a program counter that
// does not land inside push data.
func Restore(snap *Snapshot) (*EVM, error) {
	if len(snap.Stack) > StackLimit {
		return nil, fmt.Errorf("snapshot stack depth %d exceeds limit %d", len(snap.Stack), StackLimit)
	}
	if len(snap.Memory)%32 != 0 {
		return nil, fmt.Errorf("snapshot memory length %d is not word aligned", len(snap.Memory))
	}
	if len(snap.Memory) > MaxMemorySize {
		return nil, fmt.Errorf("snapshot memory length %d exceeds cap %d", len(snap.Memory), MaxMemorySize)
	}
	if snap.GasUsed > snap.GasLimit {
		return nil, fmt.Errorf("snapshot gas used %d exceeds limit %d", snap.GasUsed, snap.GasLimit)
	}

	evm := New(snap.GasLimit)
	evm.pc = snap.PC
	evm.gas.used = snap.GasUsed

	evm.bytecode.elems = append([]BytecodeElement(nil), snap.Bytecode...)
	if evm.pc < uint64(evm.bytecode.Len()) {
		if _, err := evm.bytecode.GetOp(evm.pc); err != nil {
			return nil, err
		}
	}

	for i := range snap.Stack {
		evm.stack.push(&snap.Stack[i])
	}

	evm.memory.store = append([]byte(nil), snap.Memory...)
	// lastGasCost is derived state: the cumulative fee for the current
	// allocation has by definition been paid.
	evm.memory.lastGasCost = memoryFee(evm.memory.Words())

	for _, entry := range snap.Storage {
		evm.storage.Set(entry.Slot, entry.Value)
	}
	for _, slot := range snap.Warm {
		evm.accessList.AddSlot(slot)
	}
	return evm, nil
}

// WriteJSON writes the snapshot as JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(s)
}

// ReadSnapshotJSON decodes a snapshot from JSON.
func ReadSnapshotJSON(r io.Reader) (*Snapshot, error) {
	snap := new(Snapshot)
	if err := json.NewDecoder(r).Decode(snap); err != nil {
		return nil, err
	}
	return snap, nil
}
