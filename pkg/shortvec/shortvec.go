// Package shortvec implements the compact-u16 length prefix used by every
// count field of the transaction wire format.
package shortvec

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	bin "github.com/gagliardetto/binary"
)

const (
	MaxValue = math.MaxUint16
	MaxLen   = 3
)

var (
	ErrTruncated  = errors.New("shortvec: truncated")
	ErrTooLong    = errors.New("shortvec: more than 3 bytes")
	ErrOverflow   = errors.New("shortvec: value exceeds u16")
	ErrNonMinimal = errors.New("shortvec: non-minimal encoding")
	ErrOutOfRange = errors.New("shortvec: value out of range")
)

// EncodedLen returns the number of bytes Encode writes for n.
func EncodedLen(n int) int {
	switch {
	case n < 1<<7:
		return 1
	case n < 1<<14:
		return 2
	default:
		return 3
	}
}

// Encode writes n to dst and returns the number of bytes written. dst must
// have room for EncodedLen(n) bytes.
func Encode(dst []byte, n int) (int, error) {
	if n < 0 || n > MaxValue {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	if len(dst) < EncodedLen(n) {
		return 0, ErrTruncated
	}
	// appends land in dst since its length covers the encoding
	out := dst[:0]
	if err := bin.EncodeCompactU16Length(&out, n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return len(out), nil
}

// Append appends the encoding of n to buf.
func Append(buf []byte, n int) ([]byte, error) {
	if n < 0 || n > MaxValue {
		return buf, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	if err := bin.EncodeCompactU16Length(&buf, n); err != nil {
		return buf, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return buf, nil
}

// Decode reads a compact-u16 from the start of b, returning the value and
// the number of bytes consumed.
func Decode(b []byte) (value int, size int, err error) {
	value, size, err = bin.DecodeCompactU16(b)
	if err != nil {
		return 0, 0, decodeError(b, err)
	}
	return value, size, nil
}

// decodeError maps the untyped errors of bin.DecodeCompactU16 onto the
// package sentinels.
func decodeError(b []byte, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "alias"):
		return fmt.Errorf("%w: %v", ErrNonMinimal, err)
	case strings.Contains(msg, "continues"):
		return fmt.Errorf("%w: %v", ErrTooLong, err)
	case len(b) < MaxLen && !slices.ContainsFunc(b, func(c byte) bool { return c&0x80 == 0 }):
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	default:
		return fmt.Errorf("%w: %v", ErrOverflow, err)
	}
}
