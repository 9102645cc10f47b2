package shortvec

import (
	"errors"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_300(t *testing.T) {
	buf, err := Append(nil, 300)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAC, 0x02}, buf)

	v, size, err := Decode([]byte{0xAC, 0x02})
	require.NoError(t, err)
	assert.Equal(t, 300, v)
	assert.Equal(t, 2, size)
}

// Every value in range round trips, uses the minimum length and agrees with
// the compact-u16 codec in gagliardetto/binary.
func TestRoundTrip_AllValues(t *testing.T) {
	for n := 0; n <= MaxValue; n++ {
		buf, err := Append(nil, n)
		require.NoError(t, err)

		want := 3
		if n < 128 {
			want = 1
		} else if n < 16384 {
			want = 2
		}
		require.Len(t, buf, want)
		require.Equal(t, want, EncodedLen(n))

		var ref []byte
		require.NoError(t, bin.EncodeCompactU16Length(&ref, n))
		require.Equal(t, ref, buf)

		v, size, err := Decode(buf)
		require.NoError(t, err)
		require.Equal(t, n, v)
		require.Equal(t, len(buf), size)
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	_, err := Append(nil, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Append(nil, MaxValue+1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Encode(make([]byte, 1), 200)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecode_Rejects(t *testing.T) {
	_, _, err := Decode(nil)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = Decode([]byte{0x80})
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = Decode([]byte{0x80, 0x80, 0x80, 0x01})
	assert.ErrorIs(t, err, ErrTooLong)

	_, _, err = Decode([]byte{0xFF, 0xFF, 0x04})
	assert.ErrorIs(t, err, ErrOverflow)

	_, _, err = Decode([]byte{0x80, 0x00})
	assert.ErrorIs(t, err, ErrNonMinimal)
}

func TestDecode_IgnoresTrailing(t *testing.T) {
	v, size, err := Decode([]byte{0x05, 0xFF, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, size)
}

func TestEncode_WritesInPlace(t *testing.T) {
	dst := []byte{9, 9, 9, 9}
	n, err := Encode(dst, 300)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0xAC, 0x02, 9, 9}, dst)

	n, err = Encode(dst[1:2], 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{0xAC, 0x05, 9, 9}, dst)
}

func decodeInputs() [][]byte {
	var inputs [][]byte
	for a := 0; a < 256; a++ {
		inputs = append(inputs, []byte{byte(a)})
		for b := 0; b < 256; b++ {
			inputs = append(inputs, []byte{byte(a), byte(b)})
		}
	}
	for _, a := range []byte{0x80, 0x81, 0xFF} {
		for b := 0x80; b < 256; b++ {
			for c := 0; c < 256; c++ {
				inputs = append(inputs, []byte{a, byte(b), byte(c)})
			}
		}
	}
	return inputs
}

// Decode accepts exactly what bin.DecodeCompactU16 accepts, and every
// rejection maps to one of the package errors.
func TestDecode_AgreesWithBinary(t *testing.T) {
	sentinels := []error{ErrTruncated, ErrTooLong, ErrOverflow, ErrNonMinimal}
	for _, in := range decodeInputs() {
		v, size, err := Decode(in)
		wantV, wantSize, wantErr := bin.DecodeCompactU16(in)
		if wantErr != nil {
			require.Error(t, err, "%x", in)
			matched := false
			for _, s := range sentinels {
				matched = matched || errors.Is(err, s)
			}
			require.True(t, matched, "%x: %v", in, err)
			continue
		}
		require.NoError(t, err, "%x", in)
		require.Equal(t, wantV, v, "%x", in)
		require.Equal(t, wantSize, size, "%x", in)
	}
}

func TestDecode_ErrorKinds(t *testing.T) {
	tests := []struct {
		in  []byte
		err error
	}{
		{[]byte{}, ErrTruncated},
		{[]byte{0xFF}, ErrTruncated},
		{[]byte{0xFF, 0x80}, ErrTruncated},
		{[]byte{0x81, 0x00}, ErrNonMinimal},
		{[]byte{0x81, 0x80, 0x00}, ErrNonMinimal},
		{[]byte{0x81, 0x81, 0x81}, ErrTooLong},
		{[]byte{0x80, 0x80, 0x04}, ErrOverflow},
	}
	for _, tc := range tests {
		_, _, err := Decode(tc.in)
		assert.ErrorIs(t, err, tc.err, "%x", tc.in)
	}
}
