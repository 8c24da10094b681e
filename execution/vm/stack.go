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
	"strings"

	"github.com/holiman/uint256"
)

// Stack is the operand stack of 256-bit words, top at the end of the
// slice. Depth bounds are validated by the dispatch loop before any
// handler runs, so the mutating methods themselves do not check.
type Stack struct {
	data []uint256.Int
}

func newstack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

func (st *Stack) push(d *uint256.Int) {
	// NOTE push limit (1024) is checked in the dispatch loop
	st.data = append(st.data, *d)
}

func (st *Stack) pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *Stack) swap(n int) {
	st.data[st.len()-n-1], st.data[st.len()-1] = st.data[st.len()-1], st.data[st.len()-n-1]
}

func (st *Stack) dup(n int) {
	st.data = append(st.data, st.data[len(st.data)-n])
}

func (st *Stack) peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// Back returns the n'th item in stack
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[len(st.data)-n-1]
}

func (st *Stack) len() int {
	return len(st.data)
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int { return st.len() }

// Push pushes d. Bounds are the caller's responsibility; hosts should
// mutate the machine through Step, not directly.
func (st *Stack) Push(d *uint256.Int) { st.push(d) }

// Pop removes and returns the top item.
func (st *Stack) Pop() uint256.Int { return st.pop() }

// Data returns a copy of the stack contents in insertion order, top
// last. Display layers render it in whichever direction they prefer.
func (st *Stack) Data() []uint256.Int {
	out := make([]uint256.Int, len(st.data))
	copy(out, st.data)
	return out
}

func (st *Stack) String() string {
	var sb strings.Builder
	for i := range st.data {
		sb.WriteString(st.data[i].Hex())
		sb.WriteString(", ")
	}
	return sb.String()
}
