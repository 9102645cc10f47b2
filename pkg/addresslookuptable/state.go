// Package addresslookuptable decodes the account data of on-chain address
// lookup tables.
package addresslookuptable

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/solana"
)

const (
	MaxAddresses = 256
	MetaSize     = 56
)

// account states
const (
	StateUninitialized = iota
	StateLookupTable
)

var (
	ErrInvalidAccountData   = errors.New("ErrInvalidAccountData")
	ErrUninitializedAccount = errors.New("ErrUninitializedAccount")
)

type Meta struct {
	DeactivationSlot           uint64
	LastExtendedSlot           uint64
	LastExtendedSlotStartIndex byte
	Authority                  *solana.Address
	Padding                    uint16
}

// State is the content of a lookup table account.
type State struct {
	Meta      Meta
	Addresses []solana.Address
}

// IsActive reports whether the table has not been deactivated.
func (s *State) IsActive() bool {
	return s.Meta.DeactivationSlot == math.MaxUint64
}

// IsFrozen reports whether the table has no authority and can no longer be
// extended.
func (s *State) IsFrozen() bool {
	return s.Meta.Authority == nil
}

// Table converts the state to the form used for message building and
// resolution.
func (s *State) Table(addr solana.Address) message.AddressLookupTable {
	return message.AddressLookupTable{Address: addr, Addresses: s.Addresses}
}

func (meta *Meta) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error

	meta.DeactivationSlot, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}

	meta.LastExtendedSlot, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}

	meta.LastExtendedSlotStartIndex, err = decoder.ReadByte()
	if err != nil {
		return err
	}

	hasAuthority, err := decoder.ReadBool()
	if err != nil {
		return err
	}

	if hasAuthority {
		authorityBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
		if err != nil {
			return err
		}
		authority := solana.Address(authorityBytes)
		meta.Authority = &authority
	}

	meta.Padding, err = decoder.ReadUint16(bin.LE)
	return err
}

func (meta *Meta) MarshalWithEncoder(encoder *bin.Encoder) error {
	var err error

	err = encoder.WriteUint64(meta.DeactivationSlot, bin.LE)
	if err != nil {
		return err
	}

	err = encoder.WriteUint64(meta.LastExtendedSlot, bin.LE)
	if err != nil {
		return err
	}

	err = encoder.WriteByte(meta.LastExtendedSlotStartIndex)
	if err != nil {
		return err
	}

	if meta.Authority != nil {
		err = encoder.WriteBool(true)
		if err != nil {
			return err
		}
		err = encoder.WriteBytes(meta.Authority[:], false)
		if err != nil {
			return err
		}
	} else {
		err = encoder.WriteBool(false)
		if err != nil {
			return err
		}
	}

	return encoder.WriteUint16(meta.Padding, bin.LE)
}

// Decode parses lookup table account data. Addresses start at MetaSize no
// matter whether the table has an authority.
func Decode(data []byte) (*State, error) {
	decoder := bin.NewBinDecoder(data)

	state, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return nil, fmt.Errorf("%w: reading state: %v", ErrInvalidAccountData, err)
	}
	switch state {
	case StateUninitialized:
		return nil, ErrUninitializedAccount
	case StateLookupTable:
	default:
		return nil, fmt.Errorf("%w: unknown state %d", ErrInvalidAccountData, state)
	}

	s := new(State)
	if err := s.Meta.UnmarshalWithDecoder(decoder); err != nil {
		return nil, fmt.Errorf("%w: reading meta: %v", ErrInvalidAccountData, err)
	}

	if len(data) < MetaSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the table header", ErrInvalidAccountData, len(data))
	}
	raw := data[MetaSize:]
	if len(raw)%solana.PublicKeyLength != 0 {
		return nil, fmt.Errorf("%w: trailing %d bytes", ErrInvalidAccountData, len(raw)%solana.PublicKeyLength)
	}
	if n := len(raw) / solana.PublicKeyLength; n > MaxAddresses {
		return nil, fmt.Errorf("%w: %d addresses exceeds maximum of %d", ErrInvalidAccountData, n, MaxAddresses)
	}

	s.Addresses = make([]solana.Address, len(raw)/solana.PublicKeyLength)
	for i := range s.Addresses {
		s.Addresses[i] = solana.Address(raw[i*solana.PublicKeyLength : (i+1)*solana.PublicKeyLength])
	}
	return s, nil
}

// Encode serializes s in the layout read by Decode.
func (s *State) Encode() ([]byte, error) {
	if len(s.Addresses) > MaxAddresses {
		return nil, fmt.Errorf("%d addresses exceeds maximum of %d", len(s.Addresses), MaxAddresses)
	}

	buffer := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buffer)

	err := encoder.WriteUint32(StateLookupTable, bin.LE)
	if err != nil {
		return nil, err
	}

	err = s.Meta.MarshalWithEncoder(encoder)
	if err != nil {
		return nil, err
	}

	// zero fill up to the address area when there is no authority
	buffer.Write(make([]byte, MetaSize-buffer.Len()))

	for _, addr := range s.Addresses {
		err = encoder.WriteBytes(addr[:], false)
		if err != nil {
			return nil, err
		}
	}

	return buffer.Bytes(), nil
}
