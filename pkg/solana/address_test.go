package solana

import (
	"testing"

	sgo "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAddress_Base58(t *testing.T) {
	a := MustAddress("EYB1g5R8beNtVqDpKpmkKWtLdhBY8Wh7q3QT3U3fbw7y")
	assert.Equal(t, "EYB1g5R8beNtVqDpKpmkKWtLdhBY8Wh7q3QT3U3fbw7y", a.String())
	assert.Equal(t, "11111111111111111111111111111111", SystemProgramAddr.String())
	assert.True(t, SystemProgramAddr.IsZero())

	_, err := AddressFromBase58("abcd")
	assert.ErrorIs(t, err, ErrAddressLength)

	_, err = AddressFromBase58("0")
	assert.Error(t, err)

	assert.Panics(t, func() { MustAddress("abcd") })
}

func TestAddress_PublicKeyConversion(t *testing.T) {
	pk := sgo.MustPublicKeyFromBase58(SysvarClockAddrStr)
	a := AddressFromPublicKey(pk)
	assert.Equal(t, SysvarClockAddr, a)
	assert.Equal(t, pk, a.PublicKey())
	assert.Equal(t, pk.String(), a.String())
}

func TestAddress_Compare(t *testing.T) {
	assert.Equal(t, 0, SysvarRentAddr.Compare(SysvarRentAddr))
	assert.Equal(t, -1, SystemProgramAddr.Compare(SysvarRentAddr))
	assert.Equal(t, 1, SysvarRentAddr.Compare(SystemProgramAddr))
}

func TestAddress_YAML(t *testing.T) {
	type doc struct {
		Key  Address   `yaml:"key"`
		Hash Blockhash `yaml:"hash"`
	}
	in := doc{Key: SysvarRentAddr, Hash: Blockhash(MustAddress("EYB1g5R8beNtVqDpKpmkKWtLdhBY8Wh7q3QT3U3fbw7y"))}

	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), SysvarRentAddrStr)

	var back doc
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, in, back)
}

func TestBlockhashFromBase58(t *testing.T) {
	h, err := BlockhashFromBase58("EYB1g5R8beNtVqDpKpmkKWtLdhBY8Wh7q3QT3U3fbw7y")
	require.NoError(t, err)
	assert.Equal(t, "EYB1g5R8beNtVqDpKpmkKWtLdhBY8Wh7q3QT3U3fbw7y", h.String())

	_, err = BlockhashFromBase58("abcd")
	assert.Error(t, err)
}
