package message

import "go.firedancer.io/solmsg/pkg/solana"

// V0Builder assembles a v0 message. Unsigned accounts found in one of the
// lookup tables are loaded by index instead of being listed in full.
type V0Builder struct {
	a assembler
}

func (b *V0Builder) Payer(addr solana.Address) *V0Builder {
	b.a.setPayer(addr)
	return b
}

func (b *V0Builder) RecentBlockhash(h solana.Blockhash) *V0Builder {
	b.a.setBlockhash(h)
	return b
}

func (b *V0Builder) Instructions(ixs ...Instruction) *V0Builder {
	b.a.addInstructions(ixs)
	return b
}

// LookupTables appends tables to place accounts in. Earlier tables take
// precedence when an address appears in several.
func (b *V0Builder) LookupTables(tables ...AddressLookupTable) *V0Builder {
	b.a.addTables(tables)
	return b
}

func (b *V0Builder) Seal() (*Message, error) {
	return b.a.seal()
}
