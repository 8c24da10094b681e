package trainer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evmlab/stepevm/execution/vm"
)

func TestGeneratorDeterministicForSeed(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Seed = 42

	a, err := NewGenerator(cfg)
	require.NoError(t, err)
	b, err := NewGenerator(cfg)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestGeneratorOnlySupportedOpcodes(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Seed = 7

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)

	supported := make(map[vm.OpCode]bool)
	for _, op := range vm.SupportedOpcodes() {
		supported[op] = true
	}
	for i := 0; i < 500; i++ {
		instr := gen.Next()
		require.True(t, supported[instr.Op], "generated unsupported %s", instr.Op)
		require.Len(t, instr.PushData, instr.Op.PushDataSize())
	}
}

func TestGeneratorFamilyFilter(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Families = []string{"arithmetic"}

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		require.Equal(t, vm.FamilyArithmetic, gen.Next().Op.Family())
	}
}

func TestGeneratorUnknownFamily(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Families = []string{"quantum"}

	_, err := NewGenerator(cfg)
	require.Error(t, err)
}

func TestGeneratorPushEntropyCap(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Seed = 11
	cfg.MaxPushBytes = 2
	cfg.Families = []string{"stack"}

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		instr := gen.Next()
		for j, b := range instr.PushData {
			if len(instr.PushData)-j > 2 {
				require.Zero(t, b, "high byte %d of %s nonzero", j, instr)
			}
		}
	}
}

// Generated programs must single-step cleanly from an empty stack:
// every operand-consuming instruction is preceded by the pushes it
// needs.
func TestGeneratorProgramExecutes(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.MaxPushBytes = 1
	cfg.Families = []string{"arithmetic", "comparison", "bitwise", "stack", "storage", "misc"}

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)

	evm := vm.New(100_000_000)
	for _, instr := range gen.Program(200) {
		evm.PushInstruction(instr)
	}
	for !evm.Done() {
		require.NoError(t, evm.Step())
	}
}
