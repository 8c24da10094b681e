package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestMemoryResizeGrowsOnly(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	require.Zero(t, m.Len())

	m.Resize(64)
	require.Equal(t, 64, m.Len())
	require.Equal(t, uint64(2), m.Words())

	// never shrinks
	m.Resize(32)
	require.Equal(t, 64, m.Len())
}

func TestMemoryResizeCommitsFee(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	m.Resize(32)
	require.Equal(t, memoryFee(1), m.lastGasCost)
	m.Resize(96)
	require.Equal(t, memoryFee(3), m.lastGasCost)
}

func TestMemorySet32RoundTrip(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	m.Resize(64)

	val := uint256.NewInt(0).SetBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	m.Set32(32, val)

	got := new(uint256.Int).SetBytes(m.GetPtr(32, 32))
	require.True(t, val.Eq(got))

	// the word is stored big-endian, left-padded
	require.Equal(t, byte(0xde), m.Data()[32+28])
	require.Equal(t, byte(0xef), m.Data()[32+31])
}

func TestMemorySetPanicsWithoutResize(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	require.Panics(t, func() {
		m.Set32(0, uint256.NewInt(1))
	})
}

func TestMemoryGetCopyIsACopy(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	m.Resize(32)
	m.Set(0, 1, []byte{0xaa})

	cpy := m.GetCopy(0, 32)
	cpy[0] = 0xbb
	require.Equal(t, byte(0xaa), m.Data()[0])
}
