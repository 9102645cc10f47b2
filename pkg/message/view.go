package message

import (
	"fmt"

	"github.com/samber/lo"
	"go.firedancer.io/solmsg/pkg/solana"
)

// View is the read interface shared by legacy and v0 messages. Account
// predicates and lists cover the static account keys only.
type View interface {
	Version() Version
	Header() Header
	FeePayer() solana.Address
	RecentBlockhash() solana.Blockhash
	NumStaticAccounts() int
	StaticAccount(i int) solana.Address
	StaticAccounts() []solana.Address
	IsSigner(addr solana.Address) bool
	IsWritable(addr solana.Address) bool
	IsStaticWritable(i int) bool
	Signers() []solana.Address
	Writable() []solana.Address
	Instructions() []CompiledInstruction
	Signatures() [][]byte
	SignatureFor(addr solana.Address) ([]byte, error)
	SignedData() []byte
}

type baseView struct {
	buf    []byte
	layout *layout
}

func (v *baseView) Version() Version {
	return v.layout.version
}

func (v *baseView) Header() Header {
	return v.layout.header
}

func (v *baseView) FeePayer() solana.Address {
	return v.StaticAccount(0)
}

func (v *baseView) RecentBlockhash() solana.Blockhash {
	off := v.layout.blockhashOffset
	return solana.Blockhash(v.buf[off : off+len(solana.Blockhash{})])
}

func (v *baseView) NumStaticAccounts() int {
	return v.layout.numKeys
}

// StaticAccount returns the static key at index i. It panics if i is out of
// range.
func (v *baseView) StaticAccount(i int) solana.Address {
	if i < 0 || i >= v.layout.numKeys {
		panic(fmt.Sprintf("static account index %d out of range [0,%d)", i, v.layout.numKeys))
	}
	off := v.layout.keysOffset + i*solana.PublicKeyLength
	return solana.Address(v.buf[off : off+solana.PublicKeyLength])
}

func (v *baseView) StaticAccounts() []solana.Address {
	keys := make([]solana.Address, v.layout.numKeys)
	for i := range keys {
		keys[i] = v.StaticAccount(i)
	}
	return keys
}

func (v *baseView) staticIndex(addr solana.Address) int {
	for i := 0; i < v.layout.numKeys; i++ {
		if v.StaticAccount(i) == addr {
			return i
		}
	}
	return -1
}

func (v *baseView) isStaticSigner(i int) bool {
	return i < int(v.layout.header.NumRequiredSignatures)
}

// IsStaticWritable reports whether the static key at index i is writable
// according to the header partition. It panics if i is out of range.
func (v *baseView) IsStaticWritable(i int) bool {
	if i < 0 || i >= v.layout.numKeys {
		panic(fmt.Sprintf("static account index %d out of range [0,%d)", i, v.layout.numKeys))
	}
	h := v.layout.header
	numSigners := int(h.NumRequiredSignatures)
	if i < numSigners {
		return i < numSigners-int(h.NumReadonlySigned)
	}
	return i < v.layout.numKeys-int(h.NumReadonlyUnsigned)
}

func (v *baseView) IsSigner(addr solana.Address) bool {
	i := v.staticIndex(addr)
	return i >= 0 && v.isStaticSigner(i)
}

func (v *baseView) IsWritable(addr solana.Address) bool {
	i := v.staticIndex(addr)
	return i >= 0 && v.IsStaticWritable(i)
}

func (v *baseView) Signers() []solana.Address {
	return v.StaticAccounts()[:v.layout.header.NumRequiredSignatures]
}

func (v *baseView) Writable() []solana.Address {
	return lo.Filter(v.StaticAccounts(), func(_ solana.Address, i int) bool {
		return v.IsStaticWritable(i)
	})
}

// Instructions returns the compiled instructions. Their account and data
// slices alias the message buffer.
func (v *baseView) Instructions() []CompiledInstruction {
	return v.layout.instructions
}

func (v *baseView) Signature(i int) []byte {
	off := v.layout.sigOffset + i*SignatureLength
	return v.buf[off : off+SignatureLength : off+SignatureLength]
}

// Signatures returns the signature slots in signer order. Unsigned slots are
// all zero.
func (v *baseView) Signatures() [][]byte {
	sigs := make([][]byte, v.layout.numSigs)
	for i := range sigs {
		sigs[i] = v.Signature(i)
	}
	return sigs
}

func (v *baseView) SignatureFor(addr solana.Address) ([]byte, error) {
	i := v.staticIndex(addr)
	if i < 0 || !v.isStaticSigner(i) {
		return nil, &SequenceError{Op: "SignatureFor", Reason: fmt.Sprintf("%s is not a signer", addr)}
	}
	return v.Signature(i), nil
}

// SignedData returns the message bytes covered by the signatures.
func (v *baseView) SignedData() []byte {
	return v.buf[v.layout.msgOffset:len(v.buf):len(v.buf)]
}

// LegacyView reads a legacy message. All accounts are static, so
// instructions resolve without outside input.
type LegacyView struct {
	baseView
}

func (v *LegacyView) ProgramID(ix CompiledInstruction) solana.Address {
	return v.StaticAccount(int(ix.ProgramIndex))
}

func (v *LegacyView) AccountsOf(ix CompiledInstruction) []AccountMeta {
	return lo.Map(ix.Accounts, func(idx uint8, _ int) AccountMeta {
		i := int(idx)
		return AccountMeta{
			Address:    v.StaticAccount(i),
			IsSigner:   v.isStaticSigner(i),
			IsWritable: v.IsStaticWritable(i),
		}
	})
}

// Accounts returns the account list of the message in resolved form.
func (v *LegacyView) Accounts() *ResolvedAccounts {
	return newResolvedAccounts(v.layout.header, v.StaticAccounts(), nil, nil)
}

// V0View reads a v0 message. Instructions may reference accounts loaded from
// lookup tables and must be resolved with Resolve first.
type V0View struct {
	baseView
}

// AddressTableLookups returns the lookup table references. Index slices alias
// the message buffer.
func (v *V0View) AddressTableLookups() []AddressTableLookup {
	return v.layout.lookups
}

// TableAddresses returns the address of every referenced table in message
// order.
func (v *V0View) TableAddresses() []solana.Address {
	return lo.Map(v.layout.lookups, func(l AddressTableLookup, _ int) solana.Address {
		return l.Table
	})
}

// NumLookupAccounts is the number of accounts loaded from lookup tables.
func (v *V0View) NumLookupAccounts() int {
	return lo.SumBy(v.layout.lookups, func(l AddressTableLookup) int {
		return len(l.Writable) + len(l.Readonly)
	})
}
