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

package trainer

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/evmlab/stepevm/execution/vm"
)

var familyNames = map[string]vm.OpFamily{
	"arithmetic": vm.FamilyArithmetic,
	"comparison": vm.FamilyComparison,
	"bitwise":    vm.FamilyBitwise,
	"memory":     vm.FamilyMemory,
	"stack":      vm.FamilyStack,
	"storage":    vm.FamilyStorage,
	"misc":       vm.FamilyMisc,
}

func parseFamilies(names []string) (map[vm.OpFamily]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make(map[vm.OpFamily]bool, len(names))
	for _, name := range names {
		fam, ok := familyNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown opcode family %q", name)
		}
		out[fam] = true
	}
	return out, nil
}

// Generator produces random instructions over the emulator's supported
// opcode set, for the predict-the-effect exercise. It is deterministic
// for a fixed seed.
type Generator struct {
	rnd          *rand.Rand
	ops          []vm.OpCode
	maxPushBytes int
	slots        int
}

// NewGenerator builds a generator from the config. A zero seed is
// replaced with the current time.
func NewGenerator(cfg Config) (*Generator, error) {
	families, err := parseFamilies(cfg.Families)
	if err != nil {
		return nil, err
	}
	var ops []vm.OpCode
	for _, op := range vm.SupportedOpcodes() {
		if families == nil || families[op.Family()] {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("family filter %v leaves no opcodes", cfg.Families)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxPush := cfg.MaxPushBytes
	if maxPush == 0 {
		maxPush = 32
	}
	slots := cfg.Slots
	if slots == 0 {
		slots = 8
	}
	return &Generator{
		rnd:          rand.New(rand.NewSource(seed)),
		ops:          ops,
		maxPushBytes: maxPush,
		slots:        slots,
	}, nil
}

// Next returns one random instruction. Push payloads are random and
// capped at maxPushBytes of entropy, so the high bytes stay zero for
// the wide push variants.
func (g *Generator) Next() vm.Instruction {
	op := g.ops[g.rnd.Intn(len(g.ops))]
	instr := vm.Instruction{Op: op}
	if n := op.PushDataSize(); n > 0 {
		data := make([]byte, n)
		entropy := n
		if entropy > g.maxPushBytes {
			entropy = g.maxPushBytes
		}
		for i := 0; i < entropy; i++ {
			data[n-1-i] = byte(g.rnd.Intn(256))
		}
		instr.PushData = data
	}
	return instr
}

// NextSlot returns a small random slot key, drawn from a fixed pool so
// repeated storage exercises hit warm slots often enough to show the
// pricing difference.
func (g *Generator) NextSlot() byte {
	return byte(g.rnd.Intn(g.slots))
}

// Program returns n instructions that leave the stack deep enough for
// each one to execute: operand-consuming opcodes are preceded by the
// pushes they need.
func (g *Generator) Program(n int) []vm.Instruction {
	var out []vm.Instruction
	depth := 0
	for len(out) < n {
		instr := g.Next()
		need := requiredDepth(instr.Op)
		for depth < need {
			out = append(out, vm.Instruction{Op: vm.PUSH1, PushData: []byte{g.NextSlot()}})
			depth++
		}
		out = append(out, instr)
		depth += depthDelta(instr.Op)
	}
	return out
}

func requiredDepth(op vm.OpCode) int {
	switch {
	case op.IsDup():
		return int(op-vm.DUP1) + 1
	case op.IsSwap():
		return int(op-vm.SWAP1) + 2
	case op.IsPush():
		return 0
	}
	switch op {
	case vm.ADDMOD, vm.MULMOD:
		return 3
	case vm.NOT, vm.MLOAD, vm.SLOAD:
		return 1
	case vm.PC, vm.MSIZE, vm.GAS:
		return 0
	default:
		return 2
	}
}

func depthDelta(op vm.OpCode) int {
	switch {
	case op.IsPush() || op.IsDup():
		return 1
	case op.IsSwap():
		return 0
	}
	switch op {
	case vm.ADDMOD, vm.MULMOD:
		return -2
	case vm.MSTORE, vm.MSTORE8, vm.SSTORE:
		return -2
	case vm.NOT, vm.MLOAD, vm.SLOAD:
		return 0
	case vm.PC, vm.MSIZE, vm.GAS:
		return 1
	default:
		return -1
	}
}
