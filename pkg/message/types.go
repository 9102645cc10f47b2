package message

import (
	"go.firedancer.io/solmsg/pkg/solana"
)

const (
	// MaxMessageSize is the largest serialized transaction that fits a
	// packet: 1280 byte IPv6 MTU minus 40 bytes IP header and 8 bytes UDP
	// header.
	MaxMessageSize  = 1280 - 40 - 8
	SignatureLength = 64
	VersionPrefix   = 0x80
	HeaderLength    = 3
)

type Version uint8

const (
	Legacy Version = iota
	V0
)

func (v Version) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case V0:
		return "v0"
	default:
		return "unknown"
	}
}

// AccountMeta is a reference to an account from an instruction.
type AccountMeta struct {
	Address    solana.Address
	IsSigner   bool
	IsWritable bool
}

// Instruction is an instruction before compilation into a message.
type Instruction struct {
	ProgramID solana.Address
	Accounts  []AccountMeta
	Data      []byte
}

// AddressLookupTable is the resolved content of an on-chain lookup table.
type AddressLookupTable struct {
	Address   solana.Address
	Addresses []solana.Address
}

// LookupIndex is an account placed in a lookup table at Index.
type LookupIndex struct {
	Address solana.Address
	Index   uint8
}

// LookupEntry lists the accounts a message loads from one table.
type LookupEntry struct {
	Table    solana.Address
	Writable []LookupIndex
	Readonly []LookupIndex
}

func (e LookupEntry) compile() AddressTableLookup {
	l := AddressTableLookup{
		Table:    e.Table,
		Writable: make([]uint8, len(e.Writable)),
		Readonly: make([]uint8, len(e.Readonly)),
	}
	for i, w := range e.Writable {
		l.Writable[i] = w.Index
	}
	for i, r := range e.Readonly {
		l.Readonly[i] = r.Index
	}
	return l
}

type Header struct {
	NumRequiredSignatures uint8
	NumReadonlySigned     uint8
	NumReadonlyUnsigned   uint8
}

// CompiledInstruction is an instruction as it appears on the wire, with
// accounts referenced by index. Slices read from a Message alias its buffer.
type CompiledInstruction struct {
	ProgramIndex uint8
	Accounts     []uint8
	Data         []byte
}

// AddressTableLookup is the wire form of a LookupEntry.
type AddressTableLookup struct {
	Table    solana.Address
	Writable []uint8
	Readonly []uint8
}
