package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGasMeterUseGas(t *testing.T) {
	t.Parallel()
	g := NewGasMeter(100)
	require.Equal(t, uint64(100), g.Limit())
	require.Equal(t, uint64(100), g.Left())

	require.NoError(t, g.UseGas(30))
	require.NoError(t, g.UseGas(30))
	require.Equal(t, uint64(60), g.Used())
	require.Equal(t, uint64(40), g.Left())
}

func TestGasMeterOutOfGasIsAtomic(t *testing.T) {
	t.Parallel()
	g := NewGasMeter(50)
	require.NoError(t, g.UseGas(40))

	err := g.UseGas(11)
	require.ErrorIs(t, err, ErrOutOfGas)
	require.Equal(t, uint64(40), g.Used())

	// exact remainder still fits
	require.True(t, g.Enough(10))
	require.NoError(t, g.UseGas(10))
	require.Zero(t, g.Left())
}
