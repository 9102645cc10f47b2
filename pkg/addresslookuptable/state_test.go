package addresslookuptable

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.firedancer.io/solmsg/pkg/solana"
)

func fill(b byte) solana.Address {
	return solana.Address(bytes.Repeat([]byte{b}, solana.PublicKeyLength))
}

func rawTable(state uint32, authority *solana.Address, addrs ...solana.Address) []byte {
	data := make([]byte, MetaSize)
	binary.LittleEndian.PutUint32(data[0:], state)
	binary.LittleEndian.PutUint64(data[4:], math.MaxUint64)
	binary.LittleEndian.PutUint64(data[12:], 1234)
	data[20] = 7
	if authority != nil {
		data[21] = 1
		copy(data[22:54], authority[:])
	}
	for _, a := range addrs {
		data = append(data, a[:]...)
	}
	return data
}

func TestDecode(t *testing.T) {
	authority := fill(0xAA)
	data := rawTable(StateLookupTable, &authority, fill(1), fill(2), fill(3))

	state, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), state.Meta.DeactivationSlot)
	assert.Equal(t, uint64(1234), state.Meta.LastExtendedSlot)
	assert.Equal(t, byte(7), state.Meta.LastExtendedSlotStartIndex)
	require.NotNil(t, state.Meta.Authority)
	assert.Equal(t, authority, *state.Meta.Authority)
	assert.Equal(t, []solana.Address{fill(1), fill(2), fill(3)}, state.Addresses)
	assert.True(t, state.IsActive())
	assert.False(t, state.IsFrozen())

	table := state.Table(fill(0x55))
	assert.Equal(t, fill(0x55), table.Address)
	assert.Equal(t, state.Addresses, table.Addresses)
}

func TestDecode_Frozen(t *testing.T) {
	state, err := Decode(rawTable(StateLookupTable, nil, fill(9)))
	require.NoError(t, err)
	assert.Nil(t, state.Meta.Authority)
	assert.True(t, state.IsFrozen())
	assert.Equal(t, []solana.Address{fill(9)}, state.Addresses)
}

func TestDecode_Empty(t *testing.T) {
	state, err := Decode(rawTable(StateLookupTable, nil))
	require.NoError(t, err)
	assert.Empty(t, state.Addresses)
}

func TestEncode_RoundTrip(t *testing.T) {
	authority := fill(0xAA)
	for _, auth := range []*solana.Address{nil, &authority} {
		data := rawTable(StateLookupTable, auth, fill(1), fill(2))
		state, err := Decode(data)
		require.NoError(t, err)

		encoded, err := state.Encode()
		require.NoError(t, err)
		assert.Equal(t, data, encoded)
	}
}

func TestEncode_TooManyAddresses(t *testing.T) {
	state := &State{Addresses: make([]solana.Address, MaxAddresses+1)}
	_, err := state.Encode()
	assert.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, ErrInvalidAccountData},
		{"uninitialized", rawTable(StateUninitialized, nil), ErrUninitializedAccount},
		{"unknown state", rawTable(2, nil), ErrInvalidAccountData},
		{"truncated meta", rawTable(StateLookupTable, nil)[:15], ErrInvalidAccountData},
		{"truncated header", rawTable(StateLookupTable, nil)[:30], ErrInvalidAccountData},
		{"partial address", append(rawTable(StateLookupTable, nil, fill(1)), 0xFF), ErrInvalidAccountData},
		{"too many addresses", rawTable(StateLookupTable, nil, make([]solana.Address, MaxAddresses+1)...), ErrInvalidAccountData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
