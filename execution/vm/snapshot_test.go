package vm

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func snapshotFixture(t *testing.T) *EVM {
	t.Helper()
	evm := New(1_000_000)
	evm.PushInstruction(Instruction{Op: PUSH1, PushData: []byte{0x2a}})
	evm.PushInstruction(Instruction{Op: PUSH1, PushData: []byte{0x01}})
	evm.PushInstruction(Instruction{Op: SSTORE})
	evm.PushInstruction(Instruction{Op: PUSH1, PushData: []byte{0x05}})
	evm.PushInstruction(Instruction{Op: PUSH1, PushData: []byte{0x00}})
	evm.PushInstruction(Instruction{Op: MSTORE})
	for i := 0; i < 4; i++ {
		require.NoError(t, evm.Step())
	}
	return evm
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	t.Parallel()
	evm := snapshotFixture(t)
	snap := evm.Snapshot()

	restored, err := Restore(snap)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(snap, restored.Snapshot()))

	// both machines finish the program identically
	for !evm.Done() {
		require.NoError(t, evm.Step())
		require.NoError(t, restored.Step())
	}
	require.Empty(t, cmp.Diff(evm.Snapshot(), restored.Snapshot()))
	require.Equal(t, byte(0x05), restored.Memory().Data()[31])
}

func TestSnapshotSharesNothing(t *testing.T) {
	t.Parallel()
	evm := snapshotFixture(t)
	snap := evm.Snapshot()

	for !evm.Done() {
		require.NoError(t, evm.Step())
	}

	// the snapshot still shows the pre-step state
	require.Equal(t, uint64(7), snap.PC)
	require.Len(t, snap.Stack, 1)
	require.Empty(t, snap.Memory)
}

func TestSnapshotRestoreRecomputesMemoryFee(t *testing.T) {
	t.Parallel()
	evm := snapshotFixture(t)
	for !evm.Done() {
		require.NoError(t, evm.Step())
	}
	require.Equal(t, 32, evm.Memory().Len())

	restored, err := Restore(evm.Snapshot())
	require.NoError(t, err)
	require.Equal(t, memoryFee(1), restored.Memory().lastGasCost)

	// a later expansion on the restored machine is priced as a delta
	cost, err := memoryGasCost(restored.Memory(), 64)
	require.NoError(t, err)
	require.Equal(t, memoryFee(2)-memoryFee(1), cost)
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	t.Parallel()
	snap := snapshotFixture(t).Snapshot()

	var buf bytes.Buffer
	require.NoError(t, snap.WriteJSON(&buf))

	decoded, err := ReadSnapshotJSON(&buf)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(snap, decoded))
}

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	t.Parallel()
	base := snapshotFixture(t).Snapshot()

	t.Run("gas used over limit", func(t *testing.T) {
		snap := *base
		snap.GasUsed = snap.GasLimit + 1
		_, err := Restore(&snap)
		require.Error(t, err)
	})

	t.Run("unaligned memory", func(t *testing.T) {
		snap := *base
		snap.Memory = make([]byte, 33)
		_, err := Restore(&snap)
		require.Error(t, err)
	})

	t.Run("memory over cap", func(t *testing.T) {
		snap := *base
		snap.Memory = make([]byte, MaxMemorySize+32)
		_, err := Restore(&snap)
		require.Error(t, err)
	})

	t.Run("pc inside push data", func(t *testing.T) {
		snap := *base
		snap.PC = 1
		_, err := Restore(&snap)
		require.ErrorIs(t, err, ErrMalformedProgram)
	})
}
