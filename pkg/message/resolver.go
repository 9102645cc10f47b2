package message

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.firedancer.io/solmsg/pkg/solana"
	"k8s.io/klog/v2"
)

// ResolvedAccounts is the full account list of a message: static keys, then
// the writable lookup accounts of every table, then the readonly ones.
type ResolvedAccounts struct {
	header      Header
	keys        []solana.Address
	numStatic   int
	numWritable int
}

func newResolvedAccounts(h Header, static, writable, readonly []solana.Address) *ResolvedAccounts {
	keys := make([]solana.Address, 0, len(static)+len(writable)+len(readonly))
	keys = append(keys, static...)
	keys = append(keys, writable...)
	keys = append(keys, readonly...)
	return &ResolvedAccounts{
		header:      h,
		keys:        keys,
		numStatic:   len(static),
		numWritable: len(writable),
	}
}

func (r *ResolvedAccounts) Keys() []solana.Address {
	return slices.Clone(r.keys)
}

func (r *ResolvedAccounts) Len() int {
	return len(r.keys)
}

func (r *ResolvedAccounts) Key(i int) solana.Address {
	return r.keys[i]
}

func (r *ResolvedAccounts) NumStatic() int {
	return r.numStatic
}

func (r *ResolvedAccounts) IsSigner(i int) bool {
	return i < int(r.header.NumRequiredSignatures)
}

func (r *ResolvedAccounts) IsWritable(i int) bool {
	h := r.header
	numSigners := int(h.NumRequiredSignatures)
	switch {
	case i < numSigners:
		return i < numSigners-int(h.NumReadonlySigned)
	case i < r.numStatic:
		return i < r.numStatic-int(h.NumReadonlyUnsigned)
	default:
		return i < r.numStatic+r.numWritable
	}
}

// Instruction resolves the indexes of a compiled instruction of the same
// message.
func (r *ResolvedAccounts) Instruction(ix CompiledInstruction) Instruction {
	accounts := lo.Map(ix.Accounts, func(idx uint8, _ int) AccountMeta {
		i := int(idx)
		return AccountMeta{Address: r.keys[i], IsSigner: r.IsSigner(i), IsWritable: r.IsWritable(i)}
	})
	return Instruction{ProgramID: r.keys[ix.ProgramIndex], Accounts: accounts, Data: ix.Data}
}

func (r *ResolvedAccounts) Instructions(ixs []CompiledInstruction) []Instruction {
	return lo.Map(ixs, func(ix CompiledInstruction, _ int) Instruction {
		return r.Instruction(ix)
	})
}

// Resolve loads the lookup table accounts of the message from tables. Each
// lookup uses the first table with a matching address.
func (v *V0View) Resolve(tables []AddressLookupTable) (*ResolvedAccounts, error) {
	var writable, readonly []solana.Address
	for _, lookup := range v.layout.lookups {
		table, ok := lo.Find(tables, func(t AddressLookupTable) bool {
			return t.Address == lookup.Table
		})
		if !ok {
			return nil, &LookupResolutionError{Table: lookup.Table, Index: -1, Reason: "table not supplied"}
		}
		var err error
		if writable, err = appendLookups(writable, table, lookup.Writable); err != nil {
			return nil, err
		}
		if readonly, err = appendLookups(readonly, table, lookup.Readonly); err != nil {
			return nil, err
		}
	}
	klog.V(3).Infof("resolved %d writable and %d readonly lookup accounts from %d tables",
		len(writable), len(readonly), len(v.layout.lookups))
	return newResolvedAccounts(v.layout.header, v.StaticAccounts(), writable, readonly), nil
}

func appendLookups(dst []solana.Address, table AddressLookupTable, indexes []uint8) ([]solana.Address, error) {
	for _, idx := range indexes {
		if int(idx) >= len(table.Addresses) {
			return nil, &LookupResolutionError{
				Table:  table.Address,
				Index:  int(idx),
				Reason: fmt.Sprintf("table holds %d addresses", len(table.Addresses)),
			}
		}
		dst = append(dst, table.Addresses[idx])
	}
	return dst, nil
}

// TableFetcher loads lookup tables by address, for example from an RPC node.
// The result holds one table per found address, in any order.
type TableFetcher interface {
	GetAddressLookupTables(ctx context.Context, addrs []solana.Address) ([]AddressLookupTable, error)
}

// ResolveWithFetcher fetches the tables referenced by v and resolves it.
func ResolveWithFetcher(ctx context.Context, v *V0View, f TableFetcher) (*ResolvedAccounts, error) {
	addrs := lo.Uniq(v.TableAddresses())
	if len(addrs) == 0 {
		return v.Resolve(nil)
	}
	tables, err := f.GetAddressLookupTables(ctx, addrs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lookup tables: %w", err)
	}
	return v.Resolve(tables)
}
