package base58

import (
	"crypto/rand"
	"strings"
	"testing"

	mrtron "github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Vectors(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]byte{}))
	assert.Equal(t, "5Q", Encode([]byte{0xFF}))
	assert.Equal(t, "1", Encode([]byte{0x00}))
	assert.Equal(t, "112", Encode([]byte{0x00, 0x00, 0x01}))
	assert.Equal(t, "11111111111111111111111111111111", Encode(make([]byte, 32)))
}

func TestDecode_Vectors(t *testing.T) {
	b, err := Decode("abcd")
	require.NoError(t, err)
	assert.Equal(t, []byte{100, 6, 2}, b)

	b, err = Decode("")
	require.NoError(t, err)
	assert.Empty(t, b)

	b, err = Decode("112")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1}, b)
}

func TestDecode_InvalidCharacter(t *testing.T) {
	_, err := Decode("10lL")
	require.Error(t, err)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, '0', encErr.Char)
	assert.Equal(t, 1, encErr.Index)

	for _, s := range []string{"O", "I", "l", "abc+", "ab cd", "é"} {
		_, err := Decode(s)
		assert.Error(t, err, s)
	}
}

// Round trips random inputs and compares against mr-tron/base58.
func TestEncodeDecode_MatchesReference(t *testing.T) {
	for n := 0; n < 200; n++ {
		b := make([]byte, n%70)
		_, _ = rand.Read(b)
		if n%5 == 0 && len(b) > 2 {
			b[0], b[1] = 0, 0
		}

		s := Encode(b)
		assert.Equal(t, mrtron.Encode(b), s)

		out, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, len(b), len(out))
		if len(b) > 0 {
			assert.Equal(t, b, out)
		}
	}
}

func TestDecode_LeadingOnes(t *testing.T) {
	for n := 1; n <= 40; n++ {
		b, err := Decode(strings.Repeat("1", n))
		require.NoError(t, err)
		assert.Equal(t, make([]byte, n), b)
	}
}

func TestDecode_IndexIsByteOffset(t *testing.T) {
	_, err := Decode("abé")
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 'é', encErr.Char)
	assert.Equal(t, 2, encErr.Index)
}

func TestMustDecodeFromString(t *testing.T) {
	assert.Len(t, MustDecodeFromString("Sysvar1nstructions1111111111111111111111111"), 32)
	assert.Panics(t, func() { MustDecodeFromString("0OIl") })
}
