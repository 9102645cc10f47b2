// Package solana holds the address primitives of the codec: 32-byte keys,
// program derived addresses and the well-known program and sysvar ids.
package solana

import (
	"bytes"
	"fmt"

	sgo "github.com/gagliardetto/solana-go"
	"go.firedancer.io/solmsg/pkg/base58"
)

// Address is a 32-byte account key.
type Address [PublicKeyLength]byte

func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != PublicKeyLength {
		return a, fmt.Errorf("%w: got %d bytes", ErrAddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func AddressFromBase58(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, err
	}
	return AddressFromBytes(b)
}

// MustAddress decodes a base58 address and panics on failure.
func MustAddress(s string) Address {
	a, err := AddressFromBase58(s)
	if err != nil {
		panic(fmt.Sprintf("invalid address %q: %v", s, err))
	}
	return a
}

func AddressFromPublicKey(pk sgo.PublicKey) Address {
	return Address(pk)
}

func (a Address) PublicKey() sgo.PublicKey {
	return sgo.PublicKey(a)
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Compare orders addresses by their raw bytes.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := AddressFromBase58(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Blockhash identifies a recent ledger entry. The codec treats it as opaque.
type Blockhash [32]byte

func BlockhashFromBase58(s string) (Blockhash, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Blockhash{}, err
	}
	if len(b) != len(Blockhash{}) {
		return Blockhash{}, fmt.Errorf("blockhash must be 32 bytes, got %d", len(b))
	}
	return Blockhash(b), nil
}

func (h Blockhash) String() string {
	return base58.Encode(h[:])
}

func (h Blockhash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Blockhash) UnmarshalText(text []byte) error {
	bh, err := BlockhashFromBase58(string(text))
	if err != nil {
		return err
	}
	*h = bh
	return nil
}
