package message

import "go.firedancer.io/solmsg/pkg/solana"

// LegacyBuilder assembles a legacy message. Every account is written to the
// static account list.
type LegacyBuilder struct {
	a assembler
}

func (b *LegacyBuilder) Payer(addr solana.Address) *LegacyBuilder {
	b.a.setPayer(addr)
	return b
}

func (b *LegacyBuilder) RecentBlockhash(h solana.Blockhash) *LegacyBuilder {
	b.a.setBlockhash(h)
	return b
}

// Instructions appends instructions in execution order.
func (b *LegacyBuilder) Instructions(ixs ...Instruction) *LegacyBuilder {
	b.a.addInstructions(ixs)
	return b
}

// Seal serializes the message into the builder's buffer. It may be called
// once; a failed Seal returns no Message.
func (b *LegacyBuilder) Seal() (*Message, error) {
	return b.a.seal()
}
