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

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/evmlab/stepevm/execution/vm"
)

// Model is the bubbletea state of the interactive trainer: one live
// machine, a generator feeding it instructions, and the outcome of the
// last step for the status line.
type Model struct {
	cfg Config
	gen *Generator
	evm *vm.EVM

	gasBar progress.Model
	width  int

	status  string
	lastErr error
	steps   int
	halted  bool
}

// NewModel builds the trainer around a fresh machine.
func NewModel(cfg Config) (*Model, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	m := &Model{
		cfg:    cfg,
		gen:    gen,
		evm:    vm.New(cfg.GasLimit),
		gasBar: progress.New(progress.WithDefaultGradient()),
		status: "n: queue instruction  p: queue program  s/space: step  r: reset  q: quit",
	}
	return m, nil
}

// Run starts the terminal program and blocks until the user quits.
func Run(cfg Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.gasBar.Width = msg.Width - 20
		if m.gasBar.Width > 60 {
			m.gasBar.Width = 60
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n":
			instr := m.gen.Next()
			m.evm.PushInstruction(instr)
			m.status = fmt.Sprintf("queued %s", instr)
		case "p":
			for _, instr := range m.gen.Program(5) {
				m.evm.PushInstruction(instr)
			}
			m.status = "queued a 5-instruction program"
		case "s", " ":
			m.step()
		case "r":
			m.evm = vm.New(m.cfg.GasLimit)
			m.steps = 0
			m.halted = false
			m.lastErr = nil
			m.status = "machine reset"
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) step() {
	if m.halted {
		m.status = "machine halted; r to reset"
		return
	}
	if m.evm.Done() {
		m.status = "no pending instructions; n to queue one"
		return
	}
	op, _ := m.evm.Bytecode().GetOp(m.evm.PC())
	if err := m.evm.Step(); err != nil {
		m.lastErr = err
		m.halted = true
		m.status = fmt.Sprintf("%s failed: %v", op, err)
		return
	}
	m.steps++
	m.status = fmt.Sprintf("executed %s (step %d)", op, m.steps)
}
