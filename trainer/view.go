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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxStackRows  = 12
	maxMemoryRows = 8
	memoryRowLen  = 16
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

func (m *Model) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.viewProgram(),
		m.viewStack(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.viewMemory(),
		m.viewStorage(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(m.status)
	if m.lastErr != nil {
		status = errorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("stepevm trainer"),
		m.viewGas(),
		body,
		status,
	)
}

func (m *Model) viewGas() string {
	gas := m.evm.Gas()
	pct := 0.0
	if gas.Limit() > 0 {
		pct = float64(gas.Used()) / float64(gas.Limit())
	}
	return fmt.Sprintf("gas %d / %d  %s", gas.Used(), gas.Limit(), m.gasBar.ViewAs(pct))
}

func (m *Model) viewProgram() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("program") + "\n")
	elems := m.evm.Bytecode().Elements()
	pc := m.evm.PC()
	shown := 0
	for i := uint64(0); i < uint64(len(elems)) && shown < maxStackRows; i++ {
		if !elems[i].IsCode {
			continue
		}
		op, err := m.evm.Bytecode().GetOp(i)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("%4d  %s", i, op)
		if i == pc {
			line += "  <- pc"
		} else {
			line = dimStyle.Render(line)
		}
		sb.WriteString(line + "\n")
		shown++
	}
	if shown == 0 {
		sb.WriteString(dimStyle.Render("(empty)") + "\n")
	}
	return paneStyle.Render(sb.String())
}

func (m *Model) viewStack() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("stack (%d/1024)", m.evm.Stack().Len())) + "\n")
	data := m.evm.Stack().Data()
	if len(data) == 0 {
		sb.WriteString(dimStyle.Render("(empty)") + "\n")
	}
	// top first
	for i := len(data) - 1; i >= 0 && len(data)-1-i < maxStackRows; i-- {
		sb.WriteString(fmt.Sprintf("%4d  %s\n", len(data)-1-i, data[i].Hex()))
	}
	return paneStyle.Render(sb.String())
}

func (m *Model) viewMemory() string {
	var sb strings.Builder
	size := datasize.ByteSize(m.evm.Memory().Len()).HumanReadable()
	sb.WriteString(titleStyle.Render(fmt.Sprintf("memory (%s)", size)) + "\n")
	data := m.evm.Memory().Data()
	if len(data) == 0 {
		sb.WriteString(dimStyle.Render("(empty)") + "\n")
	}
	for row := 0; row*memoryRowLen < len(data) && row < maxMemoryRows; row++ {
		chunk := data[row*memoryRowLen : min((row+1)*memoryRowLen, len(data))]
		sb.WriteString(fmt.Sprintf("%06x  %s\n", row*memoryRowLen, hex.EncodeToString(chunk)))
	}
	return paneStyle.Render(sb.String())
}

func (m *Model) viewStorage() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("storage (%d slots, %d warm)",
		m.evm.Storage().Len(), m.evm.AccessList().Len())) + "\n")
	entries := m.evm.Storage().Entries()
	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("(empty)") + "\n")
	}
	for i, entry := range entries {
		if i >= maxMemoryRows {
			sb.WriteString(dimStyle.Render("...") + "\n")
			break
		}
		warm := " "
		if m.evm.AccessList().Contains(entry.Slot) {
			warm = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s = %s\n", warm, entry.Slot.Hex(), entry.Value.Hex()))
	}
	return paneStyle.Render(sb.String())
}
