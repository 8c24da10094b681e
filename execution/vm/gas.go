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

// Static gas cost tiers. The values are a fee schedule and must not be
// tuned: hosts build exercises around the exact numbers.
const (
	GasZeroStep    uint64 = 0
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10

	// GasKeccak256 is the base cost of the KECCAK256 opcode. The opcode
	// itself is outside the emulated subset, but the tier is part of the
	// published schedule.
	GasKeccak256     uint64 = 30
	GasCopyStep      uint64 = 3
	GasCopyKeccak256 uint64 = 6

	// EIP-2929 storage access costs.
	WarmStorageReadCost uint64 = 100
	ColdSloadCost       uint64 = 2100

	// EIP-2200 storage write costs. The emulator models a single
	// execution context with the original value pinned to zero, so only
	// SstoreSetGas and WarmStorageReadCost are ever charged; the rest of
	// the schedule is declared for completeness.
	SstoreSentryGas            uint64 = 2300
	SstoreSetGas               uint64 = 20000
	SstoreResetGas             uint64 = 2900
	SstoreClearsScheduleRefund uint64 = 4800

	// Memory expansion pricing: the cumulative fee for w words is
	// w*w/MemoryExpansionQuadDenominator + w*MemoryExpansionLinearCoeff.
	MemoryExpansionQuadDenominator uint64 = 512
	MemoryExpansionLinearCoeff     uint64 = 3

	// ExpByteGas is charged per byte of the EXP exponent (EIP-160).
	ExpByteGas uint64 = 50
)

const (
	// StackLimit is the maximum depth of the operand stack.
	StackLimit = 1024

	// MaxMemorySize is the hard cap on the byte-addressable memory,
	// 512 KiB (16384 words).
	MaxMemorySize = 512 * 1024
)

// GasMeter tracks gas consumption against a fixed limit. It is the sole
// resource-exhaustion gate of the emulator: used never exceeds limit,
// and a charge that would exceed it fails without mutating the meter.
type GasMeter struct {
	limit uint64
	used  uint64
}

// NewGasMeter returns a meter with the given limit and nothing used.
func NewGasMeter(limit uint64) *GasMeter {
	return &GasMeter{limit: limit}
}

// Enough reports whether cost can still be charged.
func (g *GasMeter) Enough(cost uint64) bool {
	return g.limit-g.used >= cost
}

// UseGas charges cost against the meter. On ErrOutOfGas the meter is
// left unchanged.
func (g *GasMeter) UseGas(cost uint64) error {
	if !g.Enough(cost) {
		return ErrOutOfGas
	}
	g.used += cost
	return nil
}

// Limit returns the gas limit.
func (g *GasMeter) Limit() uint64 { return g.limit }

// Used returns the gas consumed so far.
func (g *GasMeter) Used() uint64 { return g.used }

// Left returns the gas remaining.
func (g *GasMeter) Left() uint64 { return g.limit - g.used }
