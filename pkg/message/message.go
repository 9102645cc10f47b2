// Package message encodes and decodes Solana transaction messages in the
// legacy and v0 wire formats.
//
// A serialized transaction is laid out as
//
//	[shortvec n][n × 64 byte signatures][message]
//
// where the message is
//
//	[0x80 if v0][header: 3 bytes][shortvec k][k × 32 byte keys][32 byte blockhash]
//	[shortvec i][instructions...][v0 only: shortvec t][address table lookups...]
//
// Messages are produced by a Builder and read back through views, which
// slice the underlying buffer instead of copying it.
package message

import (
	"fmt"
	"slices"

	"go.firedancer.io/solmsg/pkg/shortvec"
	"go.firedancer.io/solmsg/pkg/solana"
)

// Message is a sealed transaction buffer: signature slots followed by the
// message body. Its content never changes after sealing, apart from
// signatures written by Sign.
type Message struct {
	buf    []byte
	layout *layout
}

// Visitor receives the view matching a message's version.
type Visitor interface {
	VisitLegacy(v *LegacyView) error
	VisitV0(v *V0View) error
}

// FromBytes parses and validates a serialized transaction. The returned
// Message aliases b, which must not be modified afterwards.
func FromBytes(b []byte) (*Message, error) {
	if len(b) > MaxMessageSize {
		return nil, &SizeExceededError{Size: len(b), Limit: MaxMessageSize}
	}
	l, err := parse(b)
	if err != nil {
		return nil, err
	}
	return &Message{buf: b, layout: l}, nil
}

func (m *Message) Version() Version {
	return m.layout.version
}

// Len returns the serialized size in bytes.
func (m *Message) Len() int {
	return len(m.buf)
}

// Bytes returns a copy of the serialized transaction.
func (m *Message) Bytes() []byte {
	return slices.Clone(m.buf)
}

func (m *Message) MarshalBinary() ([]byte, error) {
	return m.Bytes(), nil
}

func (m *Message) base() baseView {
	return baseView{buf: m.buf, layout: m.layout}
}

// Accept dispatches to the visitor method for the message's version.
func (m *Message) Accept(v Visitor) error {
	switch m.layout.version {
	case Legacy:
		return v.VisitLegacy(&LegacyView{m.base()})
	case V0:
		return v.VisitV0(&V0View{m.base()})
	default:
		return fmt.Errorf("unknown message version %d", m.layout.version)
	}
}

// View returns the version independent read interface of the message.
func (m *Message) View() View {
	if m.layout.version == V0 {
		return &V0View{m.base()}
	}
	return &LegacyView{m.base()}
}

// layout holds offsets into a validated buffer.
type layout struct {
	version         Version
	numSigs         int
	sigOffset       int
	msgOffset       int
	header          Header
	keysOffset      int
	numKeys         int
	blockhashOffset int
	instructions    []CompiledInstruction
	lookups         []AddressTableLookup
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) length(field string) (int, error) {
	v, n, err := shortvec.Decode(r.buf[r.pos:])
	if err != nil {
		return 0, &FormatError{Field: field, Offset: r.pos, Err: err}
	}
	r.pos += n
	return v, nil
}

func (r *reader) bytes(field string, n int) ([]byte, error) {
	if n > len(r.buf)-r.pos {
		return nil, &FormatError{Field: field, Offset: r.pos, Err: ErrTruncated}
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u8(field string) (uint8, error) {
	b, err := r.bytes(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func parse(buf []byte) (*layout, error) {
	l := new(layout)
	r := &reader{buf: buf}

	var err error
	if l.numSigs, err = r.length("signature count"); err != nil {
		return nil, err
	}
	l.sigOffset = r.pos
	if _, err = r.bytes("signatures", l.numSigs*SignatureLength); err != nil {
		return nil, err
	}

	l.msgOffset = r.pos
	if r.pos < len(buf) && buf[r.pos]&VersionPrefix != 0 {
		if version := buf[r.pos] &^ VersionPrefix; version != 0 {
			return nil, &FormatError{Field: "version", Offset: r.pos, Err: fmt.Errorf("unsupported message version %d", version)}
		}
		l.version = V0
		r.pos++
	}

	headerOffset := r.pos
	h, err := r.bytes("message header", HeaderLength)
	if err != nil {
		return nil, err
	}
	l.header = Header{NumRequiredSignatures: h[0], NumReadonlySigned: h[1], NumReadonlyUnsigned: h[2]}

	if l.numKeys, err = r.length("account count"); err != nil {
		return nil, err
	}
	l.keysOffset = r.pos
	if _, err = r.bytes("account keys", l.numKeys*solana.PublicKeyLength); err != nil {
		return nil, err
	}
	if err := validateHeader(l.header, l.numSigs, l.numKeys); err != nil {
		return nil, &FormatError{Field: "message header", Offset: headerOffset, Err: err}
	}

	l.blockhashOffset = r.pos
	if _, err = r.bytes("recent blockhash", len(solana.Blockhash{})); err != nil {
		return nil, err
	}

	numInstructions, err := r.length("instruction count")
	if err != nil {
		return nil, err
	}
	l.instructions = make([]CompiledInstruction, numInstructions)
	for i := range l.instructions {
		ix := &l.instructions[i]
		programOffset := r.pos
		if ix.ProgramIndex, err = r.u8("instruction program index"); err != nil {
			return nil, err
		}
		if int(ix.ProgramIndex) >= l.numKeys {
			return nil, &FormatError{Field: "instruction program index", Offset: programOffset, Err: ErrIndexRange}
		}
		n, err := r.length("instruction account count")
		if err != nil {
			return nil, err
		}
		if ix.Accounts, err = r.bytes("instruction accounts", n); err != nil {
			return nil, err
		}
		if n, err = r.length("instruction data length"); err != nil {
			return nil, err
		}
		if ix.Data, err = r.bytes("instruction data", n); err != nil {
			return nil, err
		}
	}

	numAccounts := l.numKeys
	if l.version == V0 {
		numTables, err := r.length("lookup table count")
		if err != nil {
			return nil, err
		}
		l.lookups = make([]AddressTableLookup, numTables)
		for i := range l.lookups {
			lookup := &l.lookups[i]
			table, err := r.bytes("lookup table address", solana.PublicKeyLength)
			if err != nil {
				return nil, err
			}
			lookup.Table = solana.Address(table)
			n, err := r.length("writable index count")
			if err != nil {
				return nil, err
			}
			if lookup.Writable, err = r.bytes("writable indexes", n); err != nil {
				return nil, err
			}
			if n, err = r.length("readonly index count"); err != nil {
				return nil, err
			}
			if lookup.Readonly, err = r.bytes("readonly indexes", n); err != nil {
				return nil, err
			}
			numAccounts += len(lookup.Writable) + len(lookup.Readonly)
		}
	}

	if r.pos != len(buf) {
		return nil, &FormatError{Field: "trailing bytes", Offset: r.pos, Err: ErrTrailingBytes}
	}

	for i, ix := range l.instructions {
		for _, idx := range ix.Accounts {
			if int(idx) >= numAccounts {
				return nil, &FormatError{
					Field:  fmt.Sprintf("instruction %d account index", i),
					Offset: l.blockhashOffset,
					Err:    fmt.Errorf("%w: %d of %d accounts", ErrIndexRange, idx, numAccounts),
				}
			}
		}
	}

	return l, nil
}

func validateHeader(h Header, numSigs, numKeys int) error {
	switch {
	case h.NumRequiredSignatures == 0:
		return fmt.Errorf("%w: no fee payer signature", ErrInvalidHeader)
	case int(h.NumRequiredSignatures) != numSigs:
		return fmt.Errorf("%w: %d required signatures but %d slots", ErrInvalidHeader, h.NumRequiredSignatures, numSigs)
	case h.NumReadonlySigned >= h.NumRequiredSignatures:
		return fmt.Errorf("%w: fee payer must be writable", ErrInvalidHeader)
	case int(h.NumRequiredSignatures)+int(h.NumReadonlyUnsigned) > numKeys:
		return fmt.Errorf("%w: counts exceed %d account keys", ErrInvalidHeader, numKeys)
	}
	return nil
}
