package message

import (
	"errors"
	"fmt"

	"go.firedancer.io/solmsg/pkg/solana"
)

var (
	ErrTruncated     = errors.New("not enough bytes")
	ErrTrailingBytes = errors.New("unexpected trailing bytes")
	ErrInvalidHeader = errors.New("invalid message header")
	ErrIndexRange    = errors.New("account index out of range")
)

// FormatError reports a malformed or unencodable message field.
type FormatError struct {
	Field  string
	Offset int
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed message: %s at offset %d: %v", e.Field, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// SizeExceededError is returned when a message does not fit in Limit bytes,
// either MaxMessageSize or the caller's buffer.
type SizeExceededError struct {
	Size  int
	Limit int
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("message size %d exceeds limit of %d bytes", e.Size, e.Limit)
}

// SequenceError reports an operation invoked out of order, or on an account
// that does not have the role it requires. Builder misuse panics with a
// SequenceError.
type SequenceError struct {
	Op     string
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// LookupResolutionError is returned when a lookup table is missing or an
// index falls outside of it.
type LookupResolutionError struct {
	Table solana.Address
	// Index is -1 when the table itself was not supplied.
	Index  int
	Reason string
}

func (e *LookupResolutionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("lookup table %s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("lookup table %s index %d: %s", e.Table, e.Index, e.Reason)
}
