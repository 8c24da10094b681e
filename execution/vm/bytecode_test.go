package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytecodePushTagsPayload(t *testing.T) {
	t.Parallel()
	var b Bytecode
	b.Push(Instruction{Op: PUSH2, PushData: []byte{0xab, 0xcd}})
	b.Push(Instruction{Op: ADD})

	require.Equal(t, 4, b.Len())
	elems := b.Elements()
	require.True(t, elems[0].IsCode)
	require.False(t, elems[1].IsCode)
	require.False(t, elems[2].IsCode)
	require.True(t, elems[3].IsCode)
	require.Equal(t, byte(PUSH2), elems[0].Value)
	require.Equal(t, byte(0xab), elems[1].Value)
}

func TestBytecodePushZeroPadsShortPayload(t *testing.T) {
	t.Parallel()
	var b Bytecode
	b.Push(Instruction{Op: PUSH4, PushData: []byte{0x01}})

	elems := b.Elements()
	require.Equal(t, 5, b.Len())
	require.Equal(t, byte(0x01), elems[1].Value)
	require.Equal(t, byte(0x00), elems[4].Value)
}

func TestBytecodeGetOp(t *testing.T) {
	t.Parallel()
	var b Bytecode
	b.Push(Instruction{Op: PUSH1, PushData: []byte{0x42}})

	op, err := b.GetOp(0)
	require.NoError(t, err)
	require.Equal(t, PUSH1, op)

	// payload byte is not an instruction
	_, err = b.GetOp(1)
	require.ErrorIs(t, err, ErrMalformedProgram)

	_, err = b.GetOp(2)
	require.ErrorIs(t, err, ErrEndOfProgram)
}

func TestBytecodePushData(t *testing.T) {
	t.Parallel()
	var b Bytecode
	b.Push(Instruction{Op: PUSH2, PushData: []byte{0xaa, 0xbb}})

	data, err := b.pushData(1, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa, 0xbb}, data)

	// running past the end
	_, err = b.pushData(2, 2)
	require.ErrorIs(t, err, ErrMalformedProgram)

	// landing on an instruction byte
	b.Push(Instruction{Op: ADD})
	_, err = b.pushData(2, 2)
	require.ErrorIs(t, err, ErrMalformedProgram)
}

func TestInstructionString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "ADD", Instruction{Op: ADD}.String())
	require.Equal(t, "PUSH2 0x00ff", Instruction{Op: PUSH2, PushData: []byte{0x00, 0xff}}.String())
	require.Equal(t, "PUSH2 0xab00", Instruction{Op: PUSH2, PushData: []byte{0xab}}.String())
	require.Equal(t, "PUSH0", Instruction{Op: PUSH0}.String())
}

func TestDisassemble(t *testing.T) {
	t.Parallel()
	code := []byte{byte(PUSH1), 0x01, byte(PUSH2), 0xab, 0xcd, byte(ADD)}
	instrs, err := Disassemble(code)
	require.NoError(t, err)
	require.Len(t, instrs, 3)
	require.Equal(t, PUSH1, instrs[0].Op)
	require.Equal(t, []byte{0x01}, instrs[0].PushData)
	require.Equal(t, PUSH2, instrs[1].Op)
	require.Equal(t, []byte{0xab, 0xcd}, instrs[1].PushData)
	require.Equal(t, ADD, instrs[2].Op)
}

func TestDisassembleTruncatedPush(t *testing.T) {
	t.Parallel()
	_, err := Disassemble([]byte{byte(PUSH4), 0x01})
	require.ErrorIs(t, err, ErrMalformedProgram)
}

func TestOpCodePredicates(t *testing.T) {
	t.Parallel()
	require.True(t, PUSH0.IsPush())
	require.True(t, PUSH32.IsPush())
	require.False(t, DUP1.IsPush())
	require.True(t, DUP16.IsDup())
	require.True(t, SWAP1.IsSwap())

	require.Equal(t, 0, PUSH0.PushDataSize())
	require.Equal(t, 1, PUSH1.PushDataSize())
	require.Equal(t, 32, PUSH32.PushDataSize())
	require.Equal(t, 0, ADD.PushDataSize())
}

func TestOpCodeFamilies(t *testing.T) {
	t.Parallel()
	require.Equal(t, FamilyArithmetic, ADD.Family())
	require.Equal(t, FamilyComparison, SLT.Family())
	require.Equal(t, FamilyBitwise, BYTE.Family())
	require.Equal(t, FamilyMemory, MSTORE8.Family())
	require.Equal(t, FamilyStorage, SSTORE.Family())
	require.Equal(t, FamilyStack, SWAP16.Family())
	require.Equal(t, FamilyMisc, GAS.Family())
	require.Equal(t, FamilyInvalid, EXP.Family())
	require.Equal(t, FamilyInvalid, OpCode(0xfe).Family())
}

func TestStringToOp(t *testing.T) {
	t.Parallel()
	require.Equal(t, SSTORE, StringToOp("SSTORE"))
	require.Equal(t, PUSH17, StringToOp("PUSH17"))
}
