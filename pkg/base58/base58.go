// Package base58 implements the Bitcoin-alphabet base58 encoding used for
// Solana addresses, hashes and signatures.
package base58

import (
	"fmt"
	"strings"

	mrtron "github.com/mr-tron/base58"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// EncodingError reports a character outside of the base58 alphabet.
type EncodingError struct {
	Char  rune
	Index int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("base58: invalid character %q at index %d", e.Char, e.Index)
}

// Encode returns the base58 text of b. Each leading zero byte becomes one
// leading '1'.
func Encode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return mrtron.Encode(b)
}

// Decode parses base58 text. The empty string decodes to an empty slice.
func Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	for i, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return nil, &EncodingError{Char: r, Index: i}
		}
	}
	b, err := mrtron.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("base58: %w", err)
	}
	return b, nil
}

// MustDecodeFromString is like Decode but panics on invalid input. Intended
// for package-level constants.
func MustDecodeFromString(s string) []byte {
	b, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}
