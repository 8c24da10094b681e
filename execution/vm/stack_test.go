package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	t.Parallel()
	st := newstack()
	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	require.Equal(t, 2, st.len())

	top := st.pop()
	require.Equal(t, uint64(2), top.Uint64())
	require.Equal(t, 1, st.len())
}

func TestStackPeekAndBack(t *testing.T) {
	t.Parallel()
	st := newstack()
	st.push(uint256.NewInt(10))
	st.push(uint256.NewInt(20))
	st.push(uint256.NewInt(30))

	require.Equal(t, uint64(30), st.peek().Uint64())
	require.Equal(t, uint64(30), st.Back(0).Uint64())
	require.Equal(t, uint64(20), st.Back(1).Uint64())
	require.Equal(t, uint64(10), st.Back(2).Uint64())
}

func TestStackDup(t *testing.T) {
	t.Parallel()
	st := newstack()
	st.push(uint256.NewInt(7))
	st.dup(1)
	require.Equal(t, 2, st.len())
	require.Equal(t, uint64(7), st.Back(0).Uint64())
	require.Equal(t, uint64(7), st.Back(1).Uint64())
}

func TestStackSwap(t *testing.T) {
	t.Parallel()
	st := newstack()
	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))
	st.swap(2)
	require.Equal(t, uint64(1), st.Back(0).Uint64())
	require.Equal(t, uint64(3), st.Back(2).Uint64())
}

func TestStackDataIsACopy(t *testing.T) {
	t.Parallel()
	st := newstack()
	st.push(uint256.NewInt(5))

	data := st.Data()
	require.Len(t, data, 1)
	data[0].SetUint64(99)
	require.Equal(t, uint64(5), st.peek().Uint64())
}
