package inspect

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	sgo "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.firedancer.io/solmsg/pkg/computebudget"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/solana"
	"gopkg.in/yaml.v3"
)

func fill(b byte) solana.Address {
	return solana.Address(bytes.Repeat([]byte{b}, solana.PublicKeyLength))
}

var (
	payer    = fill(0x01)
	program  = fill(0x02)
	hash     = solana.Blockhash(fill(0x04))
	table    = fill(0xA1)
	readonly = fill(0x33)
	writable = fill(0x44)
)

func lookupTable() message.AddressLookupTable {
	return message.AddressLookupTable{Address: table, Addresses: []solana.Address{readonly, writable}}
}

func sealV0(t *testing.T) *message.Message {
	msg, err := message.NewBuilder(make([]byte, message.MaxMessageSize)).V0().
		Payer(payer).
		RecentBlockhash(hash).
		Instructions(message.Instruction{
			ProgramID: program,
			Accounts: []message.AccountMeta{
				{Address: readonly},
				{Address: writable, IsWritable: true},
			},
			Data: []byte{0xca, 0xfe},
		}).
		LookupTables(lookupTable()).
		Seal()
	require.NoError(t, err)
	return msg
}

func TestNewReport_V0Unresolved(t *testing.T) {
	r, err := newReport(sealV0(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "v0", r.Version)
	assert.Equal(t, reportHeader{RequiredSignatures: 1, ReadonlyUnsigned: 1}, r.Header)
	assert.Equal(t, hash, r.RecentBlockhash)
	assert.Equal(t, []reportSignature{{Signer: payer, Signature: unsigned}}, r.Signatures)
	assert.Nil(t, r.Verified)
	assert.Equal(t, []reportLookup{{Table: table, Writable: []int{1}, Readonly: []int{0}}}, r.LookupTables)
	assert.Equal(t, []reportInstruction{{Program: program, Accounts: []int{3, 2}, Data: "cafe"}}, r.Instructions)

	assert.Equal(t, reportComputeBudget{
		UnitLimit:  computebudget.DefaultInstructionComputeUnitLimit,
		HeapBytes:  computebudget.MinHeapFrameBytes,
		Signatures: 1,
		BaseFee:    5000,
		TotalFee:   5000,
	}, r.ComputeBudget)

	require.Len(t, r.Accounts, 4)
	assert.Equal(t, reportAccount{Index: 0, Address: &payer, Source: "static", Signer: true, Writable: true}, r.Accounts[0])
	assert.Equal(t, reportAccount{Index: 1, Address: &program, Source: "static"}, r.Accounts[1])
	assert.Equal(t, reportAccount{Index: 2, Source: table.String() + "[1]", Writable: true}, r.Accounts[2])
	assert.Equal(t, reportAccount{Index: 3, Source: table.String() + "[0]"}, r.Accounts[3])
}

func TestNewReport_V0Resolved(t *testing.T) {
	r, err := newReport(sealV0(t), []message.AddressLookupTable{lookupTable()})
	require.NoError(t, err)

	require.Len(t, r.Accounts, 4)
	assert.Equal(t, &writable, r.Accounts[2].Address)
	assert.True(t, r.Accounts[2].Writable)
	assert.Equal(t, table.String()+"[1]", r.Accounts[2].Source)
	assert.Equal(t, &readonly, r.Accounts[3].Address)
	assert.False(t, r.Accounts[3].Writable)
}

func TestNewReport_V0MissingTable(t *testing.T) {
	_, err := newReport(sealV0(t), []message.AddressLookupTable{})
	var lookupErr *message.LookupResolutionError
	assert.ErrorAs(t, err, &lookupErr)
}

func TestNewReport_LegacySigned(t *testing.T) {
	key, err := sgo.NewRandomPrivateKey()
	require.NoError(t, err)
	signer := message.NewPrivateKeySigner(key)

	msg, err := message.NewBuilder(make([]byte, message.MaxMessageSize)).Legacy().
		Payer(signer.Address()).
		RecentBlockhash(hash).
		Instructions(message.Instruction{
			ProgramID: program,
			Accounts:  []message.AccountMeta{{Address: readonly}},
		}).
		Seal()
	require.NoError(t, err)
	require.NoError(t, msg.Sign(signer))

	r, err := newReport(msg, nil)
	require.NoError(t, err)
	assert.Equal(t, "legacy", r.Version)
	require.NotNil(t, r.Verified)
	assert.True(t, *r.Verified)
	assert.NotEqual(t, unsigned, r.Signatures[0].Signature)
	assert.Empty(t, r.LookupTables)
	require.Len(t, r.Accounts, 3)
	assert.Equal(t, "static", r.Accounts[2].Source)
	assert.Equal(t, "", r.Instructions[0].Data)
}

func TestNewReport_ComputeBudget(t *testing.T) {
	build := func(ixs ...message.Instruction) *report {
		msg, err := message.NewBuilder(make([]byte, message.MaxMessageSize)).Legacy().
			Payer(payer).
			RecentBlockhash(hash).
			Instructions(ixs...).
			Seal()
		require.NoError(t, err)
		r, err := newReport(msg, nil)
		require.NoError(t, err)
		return r
	}

	r := build(computebudget.SetComputeUnitLimit(300000), computebudget.SetComputeUnitPrice(10000))
	assert.Equal(t, uint32(300000), r.ComputeBudget.UnitLimit)
	assert.Equal(t, uint64(3000), r.ComputeBudget.PriorityFee)
	assert.Equal(t, uint64(8000), r.ComputeBudget.TotalFee)
	assert.Empty(t, r.ComputeBudget.Error)

	r = build(computebudget.SetComputeUnitPrice(1), computebudget.SetComputeUnitPrice(2))
	assert.Equal(t, reportComputeBudget{Error: "instruction 1: DuplicateInstruction"}, r.ComputeBudget)

	var out strings.Builder
	require.NoError(t, writeText(&out, r))
	assert.Contains(t, out.String(), "DuplicateInstruction")
}

func TestWriteText(t *testing.T) {
	r, err := newReport(sealV0(t), nil)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, writeText(&out, r))
	text := out.String()
	assert.Contains(t, text, "v0")
	assert.Contains(t, text, payer.String())
	assert.Contains(t, text, "sw")
	assert.Contains(t, text, table.String()+"[0]")
	assert.Contains(t, text, "data=cafe")
}

func TestReport_YAML(t *testing.T) {
	r, err := newReport(sealV0(t), []message.AddressLookupTable{lookupTable()})
	require.NoError(t, err)

	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "version: v0")
	assert.Contains(t, string(out), "recent_blockhash: "+hash.String())
	assert.Contains(t, string(out), "address: "+writable.String())
	assert.NotContains(t, string(out), "verified")
}

func TestFlags(t *testing.T) {
	assert.Equal(t, "--", flags(false, false))
	assert.Equal(t, "s-", flags(true, false))
	assert.Equal(t, "-w", flags(false, true))
	assert.Equal(t, "sw", flags(true, true))
}

func TestDecode(t *testing.T) {
	msg := sealV0(t)
	got, err := decode(" " + base64.StdEncoding.EncodeToString(msg.Bytes()) + "\n")
	require.NoError(t, err)
	assert.Equal(t, msg.Bytes(), got.Bytes())

	_, err = decode("!!!")
	assert.ErrorContains(t, err, "invalid base64")

	_, err = decode(base64.StdEncoding.EncodeToString([]byte{1}))
	var formatErr *message.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

type fakeFetcher struct {
	calls int
	err   error
}

func (f *fakeFetcher) GetAddressLookupTables(_ context.Context, addrs []solana.Address) ([]message.AddressLookupTable, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []message.AddressLookupTable{lookupTable()}, nil
}

func TestFetchTables(t *testing.T) {
	f := &fakeFetcher{}
	tables, err := fetchTables(context.Background(), f, sealV0(t))
	require.NoError(t, err)
	assert.Equal(t, []message.AddressLookupTable{lookupTable()}, tables)

	legacy, err := message.NewBuilder(make([]byte, message.MaxMessageSize)).Legacy().
		Payer(payer).
		RecentBlockhash(hash).
		Seal()
	require.NoError(t, err)
	tables, err = fetchTables(context.Background(), f, legacy)
	require.NoError(t, err)
	assert.Nil(t, tables)
	assert.Equal(t, 1, f.calls)

	f.err = errors.New("timeout")
	_, err = fetchTables(context.Background(), f, sealV0(t))
	assert.ErrorIs(t, err, f.err)
}
