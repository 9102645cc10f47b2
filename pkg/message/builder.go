package message

import (
	"fmt"

	"go.firedancer.io/solmsg/pkg/shortvec"
	"go.firedancer.io/solmsg/pkg/solana"
	"k8s.io/klog/v2"
)

// Builder hands out one message builder over a caller owned buffer.
//
//	msg, err := message.NewBuilder(buf).V0().
//		Payer(payer).
//		RecentBlockhash(hash).
//		Instructions(ixs...).
//		LookupTables(tables...).
//		Seal()
type Builder struct {
	buf     []byte
	claimed bool
}

func NewBuilder(buf []byte) *Builder {
	return &Builder{buf: buf}
}

func (b *Builder) claim(op string) {
	if b.claimed {
		panic(&SequenceError{Op: op, Reason: "builder already used"})
	}
	b.claimed = true
}

// Legacy starts a legacy message. A Builder yields a single message.
func (b *Builder) Legacy() *LegacyBuilder {
	b.claim("Legacy")
	return &LegacyBuilder{assembler{buf: b.buf, version: Legacy}}
}

// V0 starts a v0 message. A Builder yields a single message.
func (b *Builder) V0() *V0Builder {
	b.claim("V0")
	return &V0Builder{assembler{buf: b.buf, version: V0}}
}

// assembler holds the inputs shared by both message versions until Seal.
type assembler struct {
	buf          []byte
	version      Version
	payer        *solana.Address
	blockhash    *solana.Blockhash
	instructions []Instruction
	tables       []AddressLookupTable
	sealed       bool
}

func (a *assembler) mutable(op string) {
	if a.sealed {
		panic(&SequenceError{Op: op, Reason: "message already sealed"})
	}
}

func (a *assembler) setPayer(addr solana.Address) {
	a.mutable("Payer")
	a.payer = &addr
}

func (a *assembler) setBlockhash(h solana.Blockhash) {
	a.mutable("RecentBlockhash")
	a.blockhash = &h
}

func (a *assembler) addInstructions(ixs []Instruction) {
	a.mutable("Instructions")
	a.instructions = append(a.instructions, ixs...)
}

func (a *assembler) addTables(tables []AddressLookupTable) {
	a.mutable("LookupTables")
	a.tables = append(a.tables, tables...)
}

func (a *assembler) seal() (*Message, error) {
	a.mutable("Seal")
	a.sealed = true

	if a.payer == nil {
		return nil, &SequenceError{Op: "Seal", Reason: "fee payer not set"}
	}
	if a.blockhash == nil {
		return nil, &SequenceError{Op: "Seal", Reason: "recent blockhash not set"}
	}

	table, err := newAccountTable(*a.payer, a.instructions, a.tables)
	if err != nil {
		return nil, err
	}
	header := table.header()
	keys := table.addresses()
	instructions := table.compile(a.instructions)
	var lookups []AddressTableLookup
	if a.version == V0 {
		lookups = table.tableLookups()
	}

	size, err := encodedSize(a.version, header, len(keys), instructions, lookups)
	if err != nil {
		return nil, err
	}
	if size > MaxMessageSize {
		return nil, &SizeExceededError{Size: size, Limit: MaxMessageSize}
	}
	if size > len(a.buf) {
		return nil, &SizeExceededError{Size: size, Limit: len(a.buf)}
	}
	klog.V(2).Infof("sealing %s message: %d bytes, %d static accounts, %d instructions",
		a.version, size, len(keys), len(instructions))

	w := NewWriter(a.buf, a.version)
	if err := w.WriteHeader(header); err != nil {
		return nil, err
	}
	if err := w.WriteAccounts(keys); err != nil {
		return nil, err
	}
	if err := w.WriteBlockhash(*a.blockhash); err != nil {
		return nil, err
	}
	if err := w.WriteInstructions(instructions); err != nil {
		return nil, err
	}
	if a.version == V0 {
		if err := w.WriteLookups(lookups); err != nil {
			return nil, err
		}
	}
	return w.Seal()
}

func lengthSize(field string, n int) (int, error) {
	if n > shortvec.MaxValue {
		return 0, &FormatError{Field: field, Err: fmt.Errorf("%w: %d", shortvec.ErrOutOfRange, n)}
	}
	return shortvec.EncodedLen(n) + n, nil
}

// encodedSize returns the serialized size of a message, signature slots
// included, or a FormatError if a count does not fit its length prefix.
func encodedSize(version Version, h Header, numKeys int, instructions []CompiledInstruction, lookups []AddressTableLookup) (int, error) {
	numSigs := int(h.NumRequiredSignatures)
	size := shortvec.EncodedLen(numSigs) + numSigs*SignatureLength
	if version == V0 {
		size++
	}
	size += HeaderLength
	size += shortvec.EncodedLen(numKeys) + numKeys*solana.PublicKeyLength
	size += len(solana.Blockhash{})

	n, err := lengthSize("instruction count", len(instructions))
	if err != nil {
		return 0, err
	}
	size += n - len(instructions)
	for _, ix := range instructions {
		size++
		if n, err = lengthSize("instruction account count", len(ix.Accounts)); err != nil {
			return 0, err
		}
		size += n
		if n, err = lengthSize("instruction data length", len(ix.Data)); err != nil {
			return 0, err
		}
		size += n
	}

	if version == V0 {
		size += shortvec.EncodedLen(len(lookups))
		for _, l := range lookups {
			size += solana.PublicKeyLength
			size += shortvec.EncodedLen(len(l.Writable)) + len(l.Writable)
			size += shortvec.EncodedLen(len(l.Readonly)) + len(l.Readonly)
		}
	}
	return size, nil
}
