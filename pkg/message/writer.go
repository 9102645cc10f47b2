package message

import (
	"fmt"

	"go.firedancer.io/solmsg/pkg/shortvec"
	"go.firedancer.io/solmsg/pkg/solana"
)

type writerState uint8

const (
	stateStart writerState = iota
	stateHeaderWritten
	stateAccountsWritten
	stateBlockhashWritten
	stateInstructionsWritten
	stateLookupsWritten
	stateSealed
	stateFailed
)

var writerStateNames = [...]string{
	"Start",
	"HeaderWritten",
	"AccountsWritten",
	"BlockhashWritten",
	"InstructionsWritten",
	"LookupsWritten",
	"Sealed",
	"Failed",
}

func (s writerState) String() string {
	if int(s) < len(writerStateNames) {
		return writerStateNames[s]
	}
	return fmt.Sprintf("writerState(%d)", uint8(s))
}

// Writer serializes one message into a caller owned buffer. Sections must be
// written in wire order: header, accounts, blockhash, instructions, then
// lookups for V0, then Seal. Calls out of order panic with a *SequenceError.
// A Writer is single use and not safe for concurrent use.
type Writer struct {
	buf     []byte
	pos     int
	version Version
	state   writerState
}

// NewWriter returns a Writer over buf. At most MaxMessageSize bytes of buf
// are used.
func NewWriter(buf []byte, version Version) *Writer {
	if len(buf) > MaxMessageSize {
		buf = buf[:MaxMessageSize]
	}
	return &Writer{buf: buf, version: version}
}

func (w *Writer) step(op string, from, to writerState, fn func() error) error {
	if w.state != from {
		panic(&SequenceError{Op: op, Reason: fmt.Sprintf("called in state %s, expected %s", w.state, from)})
	}
	if err := fn(); err != nil {
		w.state = stateFailed
		return err
	}
	w.state = to
	return nil
}

func (w *Writer) reserve(n int) ([]byte, error) {
	if w.pos+n > len(w.buf) {
		return nil, &SizeExceededError{Size: w.pos + n, Limit: len(w.buf)}
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b, nil
}

func (w *Writer) putLength(field string, n int) error {
	if n > shortvec.MaxValue {
		return &FormatError{Field: field, Offset: w.pos, Err: shortvec.ErrOutOfRange}
	}
	b, err := w.reserve(shortvec.EncodedLen(n))
	if err != nil {
		return err
	}
	_, err = shortvec.Encode(b, n)
	return err
}

func (w *Writer) putBytes(p []byte) error {
	b, err := w.reserve(len(p))
	if err != nil {
		return err
	}
	copy(b, p)
	return nil
}

func (w *Writer) putByte(v byte) error {
	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

// WriteHeader reserves one zeroed signature slot per required signer and
// writes the version prefix and the three header counts.
func (w *Writer) WriteHeader(h Header) error {
	return w.step("WriteHeader", stateStart, stateHeaderWritten, func() error {
		numSigs := int(h.NumRequiredSignatures)
		if err := w.putLength("signature count", numSigs); err != nil {
			return err
		}
		slots, err := w.reserve(numSigs * SignatureLength)
		if err != nil {
			return err
		}
		clear(slots)

		if w.version == V0 {
			// high bit set, low bits carry version 0
			if err := w.putByte(VersionPrefix); err != nil {
				return err
			}
		}
		return w.putBytes([]byte{h.NumRequiredSignatures, h.NumReadonlySigned, h.NumReadonlyUnsigned})
	})
}

func (w *Writer) WriteAccounts(keys []solana.Address) error {
	return w.step("WriteAccounts", stateHeaderWritten, stateAccountsWritten, func() error {
		if err := w.putLength("account count", len(keys)); err != nil {
			return err
		}
		for _, key := range keys {
			if err := w.putBytes(key[:]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) WriteBlockhash(h solana.Blockhash) error {
	return w.step("WriteBlockhash", stateAccountsWritten, stateBlockhashWritten, func() error {
		return w.putBytes(h[:])
	})
}

func (w *Writer) WriteInstructions(instructions []CompiledInstruction) error {
	return w.step("WriteInstructions", stateBlockhashWritten, stateInstructionsWritten, func() error {
		if err := w.putLength("instruction count", len(instructions)); err != nil {
			return err
		}
		for _, ix := range instructions {
			if err := w.putByte(ix.ProgramIndex); err != nil {
				return err
			}
			if err := w.putLength("instruction account count", len(ix.Accounts)); err != nil {
				return err
			}
			if err := w.putBytes(ix.Accounts); err != nil {
				return err
			}
			if err := w.putLength("instruction data length", len(ix.Data)); err != nil {
				return err
			}
			if err := w.putBytes(ix.Data); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteLookups writes the address table lookups. V0 only.
func (w *Writer) WriteLookups(lookups []AddressTableLookup) error {
	if w.version != V0 {
		panic(&SequenceError{Op: "WriteLookups", Reason: fmt.Sprintf("not supported by %s messages", w.version)})
	}
	return w.step("WriteLookups", stateInstructionsWritten, stateLookupsWritten, func() error {
		if err := w.putLength("lookup table count", len(lookups)); err != nil {
			return err
		}
		for _, l := range lookups {
			if err := w.putBytes(l.Table[:]); err != nil {
				return err
			}
			if err := w.putLength("writable index count", len(l.Writable)); err != nil {
				return err
			}
			if err := w.putBytes(l.Writable); err != nil {
				return err
			}
			if err := w.putLength("readonly index count", len(l.Readonly)); err != nil {
				return err
			}
			if err := w.putBytes(l.Readonly); err != nil {
				return err
			}
		}
		return nil
	})
}

// Seal finishes the message and returns it. The Writer cannot be used
// afterwards.
func (w *Writer) Seal() (*Message, error) {
	last := stateInstructionsWritten
	if w.version == V0 {
		last = stateLookupsWritten
	}

	var msg *Message
	err := w.step("Seal", last, stateSealed, func() error {
		var err error
		msg, err = FromBytes(w.buf[:w.pos:w.pos])
		return err
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}
