package solana

import (
	"crypto/rand"
	"testing"

	sgo "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProgramAddress_SingleSeed(t *testing.T) {
	owner := MustAddress("DgmAEaJx5mDvwKUuexiN2urBkuzEMzMrgBMj2SoadyyK")
	program := MustAddress("MuMQqQg7tcaerMu7RKMuAvXjLLF4yeQ6swdqUu4eDNN")

	pda, err := FindProgramAddress([][]byte{owner[:]}, program)
	require.NoError(t, err)
	assert.Equal(t, "5BQ9r1Q7HLCPQS6QnTaqcXFhwS8hb7uwhxLknJuNLh8E", pda.Address.String())
	assert.Equal(t, uint8(255), pda.Bump)
	assert.Equal(t, program, pda.ProgramID)
	assert.False(t, IsOnCurve(pda.Address[:]))
}

func TestFindProgramAddress_MultipleSeeds(t *testing.T) {
	extra := MustAddress("Wd4UqPtgrnYAH6pxMrzr6aNv4CmTFgwDfPQi9BYjPt7")
	program := MustAddress("FTCuVnzaBZQXGz7D5mweRnWgY4fbS8rg42SD6envtoUD")

	pda, err := FindProgramAddress([][]byte{[]byte("aString"), []byte("anotherString"), extra[:]}, program)
	require.NoError(t, err)
	assert.Equal(t, "FiZFCNEX1WJbP1UEyr2o4uyhtEFoZc3cMyYScf6LAYDx", pda.Address.String())
	assert.Equal(t, uint8(254), pda.Bump)
}

func TestFindLookupTableAddress(t *testing.T) {
	authority := MustAddress("EYB1g5R8beNtVqDpKpmkKWtLdhBY8Wh7q3QT3U3fbw7y")

	pda, err := FindLookupTableAddress(authority, 265008810)
	require.NoError(t, err)
	assert.Equal(t, "DmTtM8rQMcqR56ksBkayLd9KuYiFaGYZEAPnh5iUtgVV", pda.Address.String())
	assert.Equal(t, uint8(255), pda.Bump)
	assert.Equal(t, AddressLookupTableProgramAddr, pda.ProgramID)
}

func TestFindTokenMetadataAddress(t *testing.T) {
	pda, err := FindTokenMetadataAddress(MustAddress("HDLRMKW1FDz2q5Zg778CZx26UgrtnqpUDkNNJHhmVUFr"))
	require.NoError(t, err)
	assert.Equal(t, "Ff68e9DL9p1GUBkhRXxdv61wiYd8X6iFWTS6XWgsDptP", pda.Address.String())
	assert.Equal(t, uint8(253), pda.Bump)
}

func TestFindAssociatedTokenAddress_MatchesSolanaGo(t *testing.T) {
	for i := 0; i < 16; i++ {
		var owner, mint Address
		_, _ = rand.Read(owner[:])
		_, _ = rand.Read(mint[:])

		pda, err := FindAssociatedTokenAddress(owner, mint, TokenProgramAddr)
		require.NoError(t, err)

		want, bump, err := sgo.FindAssociatedTokenAddress(owner.PublicKey(), mint.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, AddressFromPublicKey(want), pda.Address)
		assert.Equal(t, bump, pda.Bump)
		assert.Equal(t, AssociatedTokenProgramAddr, pda.ProgramID)
	}
}

func TestFindProgramAddress_MatchesSolanaGo(t *testing.T) {
	for i := 0; i < 32; i++ {
		var program Address
		_, _ = rand.Read(program[:])
		seed := make([]byte, i)
		_, _ = rand.Read(seed)

		pda, err := FindProgramAddress([][]byte{seed, []byte("vault")}, program)
		require.NoError(t, err)

		want, bump, err := sgo.FindProgramAddress([][]byte{seed, []byte("vault")}, program.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, AddressFromPublicKey(want), pda.Address)
		assert.Equal(t, bump, pda.Bump)
	}
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	program := MustAddress("FTCuVnzaBZQXGz7D5mweRnWgY4fbS8rg42SD6envtoUD")
	a, err := FindProgramAddress([][]byte{[]byte("seed")}, program)
	require.NoError(t, err)
	b, err := FindProgramAddress([][]byte{[]byte("seed")}, program)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// The search walks 255 down to 0 and accepts bump 0 if it is the only
// off-curve candidate.
func TestFindProgramAddressWith_DescendingToZero(t *testing.T) {
	var calls int
	var program Address

	pda, err := FindProgramAddressWith(nil, program, func([]byte) bool {
		calls++
		return calls < 256
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), pda.Bump)
	assert.Equal(t, 256, calls)

	want, err := createProgramAddress([][]byte{{0}}, program, func([]byte) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, want, pda.Address)
}

func TestFindProgramAddressWith_Exhausted(t *testing.T) {
	program := MustAddress("MuMQqQg7tcaerMu7RKMuAvXjLLF4yeQ6swdqUu4eDNN")
	_, err := FindProgramAddressWith([][]byte{[]byte("x")}, program, func([]byte) bool { return true })

	var exhausted *DerivationExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, program, exhausted.ProgramID)
}

func TestFindProgramAddress_SeedLimits(t *testing.T) {
	var program Address

	_, err := FindProgramAddress([][]byte{make([]byte, MaxSeedLen+1)}, program)
	assert.ErrorIs(t, err, ErrSeedLength)

	_, err = FindProgramAddress(make([][]byte, MaxSeeds), program)
	assert.ErrorIs(t, err, ErrSeedLength)

	_, err = FindProgramAddress(make([][]byte, MaxSeeds-1), program)
	assert.NoError(t, err)
}

func TestCreateProgramAddressBytes(t *testing.T) {
	_, err := CreateProgramAddressBytes(nil, make([]byte, 31))
	assert.ErrorIs(t, err, ErrAddressLength)

	program := MustAddress("MuMQqQg7tcaerMu7RKMuAvXjLLF4yeQ6swdqUu4eDNN")
	owner := MustAddress("DgmAEaJx5mDvwKUuexiN2urBkuzEMzMrgBMj2SoadyyK")
	addr, err := CreateProgramAddressBytes([][]byte{owner[:], {255}}, program[:])
	require.NoError(t, err)
	assert.Equal(t, MustAddress("5BQ9r1Q7HLCPQS6QnTaqcXFhwS8hb7uwhxLknJuNLh8E").Bytes(), addr)
}

func TestSlotSeed(t *testing.T) {
	assert.Equal(t, []byte{0xaa, 0xb6, 0xcb, 0x0f, 0, 0, 0, 0}, SlotSeed(265008810))
}
