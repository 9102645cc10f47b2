package solana

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const MaxSeeds = 16
const MaxSeedLen = 32
const PublicKeyLength = 32
const PdaMarker = "ProgramDerivedAddress"

var (
	ErrSeedLength          = errors.New("Max seeds (16) exceeded")
	ErrAddressLength       = errors.New("Wrong key length; addresses are 32 bytes long")
	ErrOnCurveInvalidSeeds = errors.New("Invalid seeds - generated address must be off-curve")
)

// ProgramDerivedAddress is an off-curve address owned by ProgramID, found by
// FindProgramAddress with the given bump.
type ProgramDerivedAddress struct {
	Address   Address
	Bump      uint8
	ProgramID Address
}

// DerivationExhaustedError is returned when none of the 256 bump seeds yield
// an off-curve address.
type DerivationExhaustedError struct {
	ProgramID Address
}

func (e *DerivationExhaustedError) Error() string {
	return fmt.Sprintf("no off-curve program address found for program %s", e.ProgramID)
}

func CreateProgramAddressBytes(seeds [][]byte, programID []byte) ([]byte, error) {
	if len(programID) != PublicKeyLength {
		return nil, ErrAddressLength
	}

	addr, err := createProgramAddress(seeds, Address(programID), IsOnCurve)
	if err != nil {
		return nil, err
	}
	return addr[:], nil
}

func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	return createProgramAddress(seeds, programID, IsOnCurve)
}

func createProgramAddress(seeds [][]byte, programID Address, isOnCurve func([]byte) bool) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, ErrSeedLength
	}

	parts := make([][]byte, 0, len(seeds)+2)
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return Address{}, ErrSeedLength
		}
		parts = append(parts, seed)
	}
	parts = append(parts, programID[:], []byte(PdaMarker))

	hash := Sha256(parts...)
	if isOnCurve(hash[:]) {
		return Address{}, ErrOnCurveInvalidSeeds
	}

	return Address(hash), nil
}

// FindProgramAddress searches bump seeds from 255 down to 0 and returns the
// first one whose derived address is off the curve.
func FindProgramAddress(seeds [][]byte, programID Address) (ProgramDerivedAddress, error) {
	return FindProgramAddressWith(seeds, programID, IsOnCurve)
}

// FindProgramAddressWith is FindProgramAddress with a caller supplied curve
// predicate.
func FindProgramAddressWith(seeds [][]byte, programID Address, isOnCurve func([]byte) bool) (ProgramDerivedAddress, error) {
	// the bump occupies one seed slot
	if len(seeds) >= MaxSeeds {
		return ProgramDerivedAddress{}, ErrSeedLength
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return ProgramDerivedAddress{}, ErrSeedLength
		}
	}

	bumpSeed := []byte{0}
	seedsWithBump := append(seeds[:len(seeds):len(seeds)], bumpSeed)

	for bump := math.MaxUint8; bump >= 0; bump-- {
		bumpSeed[0] = uint8(bump)
		addr, err := createProgramAddress(seedsWithBump, programID, isOnCurve)
		if err == nil {
			return ProgramDerivedAddress{Address: addr, Bump: uint8(bump), ProgramID: programID}, nil
		}
		if !errors.Is(err, ErrOnCurveInvalidSeeds) {
			return ProgramDerivedAddress{}, err
		}
	}

	return ProgramDerivedAddress{}, &DerivationExhaustedError{ProgramID: programID}
}

// SlotSeed encodes a slot as the 8-byte little-endian seed used by lookup
// table derivation.
func SlotSeed(slot uint64) []byte {
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], slot)
	return seed[:]
}

// FindLookupTableAddress derives the address of the lookup table created by
// authority at recentSlot.
func FindLookupTableAddress(authority Address, recentSlot uint64) (ProgramDerivedAddress, error) {
	return FindProgramAddress([][]byte{authority[:], SlotSeed(recentSlot)}, AddressLookupTableProgramAddr)
}
