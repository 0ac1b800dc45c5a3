package ethabi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insufficientBalance(t *testing.T) *Error {
	t.Helper()
	return MustError("InsufficientBalance", MustSignature(
		Param{Name: "available", Type: MustUint(256)},
		Param{Name: "required", Type: MustUint(256)},
	))
}

func TestBuiltinErrorSelectors(t *testing.T) {
	assert.Equal(t, "Error(string)", LegacyError.CanonicalSignature())
	assert.Equal(t, [4]byte{0x08, 0xc3, 0x79, 0xa0}, LegacyError.Selector())

	assert.Equal(t, "Panic(uint256)", PanicError.CanonicalSignature())
	assert.Equal(t, [4]byte{0x4e, 0x48, 0x7b, 0x71}, PanicError.Selector())
}

func TestErrorEncode(t *testing.T) {
	e := insufficientBalance(t)

	data, err := e.Encode(5, 10)
	require.NoError(t, err)

	assert.Equal(t, "InsufficientBalance(uint256,uint256)", e.CanonicalSignature())
	sel := e.Selector()
	assert.Equal(t, append(sel[:], common.Hex2Bytes(leftWord("05")+leftWord("0a"))...), data)
}

func TestErrorDecodeFields(t *testing.T) {
	e := insufficientBalance(t)

	data, err := e.Encode(5, 10)
	require.NoError(t, err)

	fields, err := e.DecodeFields(data)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	requireBigInt(t, fields["available"], 5)
	requireBigInt(t, fields["required"], 10)
}

func TestErrorDecodeFieldsSelectorMismatch(t *testing.T) {
	e := insufficientBalance(t)

	data, err := LegacyError.Encode("nope")
	require.NoError(t, err)

	_, err = e.DecodeFields(data)

	var unkErr *UnknownRevertError
	require.ErrorAs(t, err, &unkErr)
	assert.Equal(t, LegacyError.Selector(), unkErr.Selector)
	assert.Equal(t, "ethabi: selector 0x08c379a0 matches no known error", err.Error())
}

func TestErrorDecodeFieldsTooShort(t *testing.T) {
	e := insufficientBalance(t)

	_, err := e.DecodeFields([]byte{0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, ErrRevertTooShort)

	_, err = e.DecodeFields(nil)
	assert.ErrorIs(t, err, ErrRevertTooShort)
}

func TestLegacyErrorRoundTrip(t *testing.T) {
	data, err := LegacyError.Encode("insufficient balance")
	require.NoError(t, err)

	fields, err := LegacyError.DecodeFields(data)
	require.NoError(t, err)
	assert.Equal(t, "insufficient balance", fields["message"])
}

func TestPanicErrorRoundTrip(t *testing.T) {
	// 0x11 is the arithmetic overflow panic code.
	data, err := PanicError.Encode(0x11)
	require.NoError(t, err)

	fields, err := PanicError.DecodeFields(data)
	require.NoError(t, err)
	requireBigInt(t, fields["code"], 0x11)
}

func TestNewErrorValidation(t *testing.T) {
	_, err := NewError("", nil)
	var descErr *DescriptionError
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, "empty name", descErr.Reason)

	e, err := NewError("Halted", nil)
	require.NoError(t, err)
	assert.Equal(t, "Halted()", e.CanonicalSignature())
	assert.Zero(t, e.Inputs().NumParams())
	assert.Equal(t, "Halted", e.Name())
}
