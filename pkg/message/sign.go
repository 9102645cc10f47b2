package message

import (
	"fmt"

	sgo "github.com/gagliardetto/solana-go"
	"go.firedancer.io/solmsg/pkg/solana"
)

// Signer produces ed25519 signatures for one account.
type Signer interface {
	Address() solana.Address
	Sign(data []byte) ([SignatureLength]byte, error)
}

// PrivateKeySigner signs with an in-memory solana-go private key.
type PrivateKeySigner struct {
	key sgo.PrivateKey
}

func NewPrivateKeySigner(key sgo.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{key: key}
}

func (s *PrivateKeySigner) Address() solana.Address {
	return solana.AddressFromPublicKey(s.key.PublicKey())
}

func (s *PrivateKeySigner) Sign(data []byte) ([SignatureLength]byte, error) {
	sig, err := s.key.Sign(data)
	if err != nil {
		return [SignatureLength]byte{}, err
	}
	return sig, nil
}

// Sign writes a signature from each signer into the slot of its account.
// Nothing is written unless every signer succeeds.
func (m *Message) Sign(signers ...Signer) error {
	v := m.base()
	data := v.SignedData()

	slots := make([]int, len(signers))
	sigs := make([][SignatureLength]byte, len(signers))
	for i, s := range signers {
		addr := s.Address()
		slot := v.staticIndex(addr)
		if slot < 0 || !v.isStaticSigner(slot) {
			return &SequenceError{Op: "Sign", Reason: fmt.Sprintf("%s is not a required signer", addr)}
		}
		sig, err := s.Sign(data)
		if err != nil {
			return fmt.Errorf("failed to sign with %s: %w", addr, err)
		}
		slots[i] = slot
		sigs[i] = sig
	}

	for i, slot := range slots {
		copy(v.Signature(slot), sigs[i][:])
	}
	return nil
}

// IsSigned reports whether every signature slot is filled.
func (m *Message) IsSigned() bool {
	v := m.base()
	for i := 0; i < m.layout.numSigs; i++ {
		if [SignatureLength]byte(v.Signature(i)) == ([SignatureLength]byte{}) {
			return false
		}
	}
	return true
}

// VerifySignatures checks every signature slot against its signer key.
func (m *Message) VerifySignatures() error {
	v := m.base()
	data := v.SignedData()
	for i := 0; i < m.layout.numSigs; i++ {
		sig := sgo.Signature(v.Signature(i))
		signer := v.StaticAccount(i)
		if !sig.Verify(signer.PublicKey(), data) {
			return fmt.Errorf("invalid signature by %s", signer)
		}
	}
	return nil
}
