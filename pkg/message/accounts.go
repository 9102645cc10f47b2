package message

import (
	"fmt"
	"math"
	"sort"

	"go.firedancer.io/solmsg/pkg/solana"
	"k8s.io/klog/v2"
)

// Account groups in wire order.
type accountGroup uint8

const (
	groupSignerWritable accountGroup = iota
	groupSignerReadonly
	groupWritable
	groupReadonly
)

type accountRef struct {
	address  solana.Address
	signer   bool
	writable bool
	invoked  bool
}

func (r accountRef) group() accountGroup {
	switch {
	case r.signer && r.writable:
		return groupSignerWritable
	case r.signer:
		return groupSignerReadonly
	case r.writable:
		return groupWritable
	default:
		return groupReadonly
	}
}

func (r *accountRef) merge(other accountRef) {
	r.signer = r.signer || other.signer
	r.writable = r.writable || other.writable
	r.invoked = r.invoked || other.invoked
}

func sortByGroup(refs []accountRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].group() < refs[j].group()
	})
}

// accountTable is the ordered account list of a message: static keys in
// four groups with the fee payer first, plus the accounts loaded from lookup
// tables.
type accountTable struct {
	static  []accountRef
	lookups []LookupEntry
	index   map[solana.Address]int
}

func newAccountTable(payer solana.Address, instructions []Instruction, tables []AddressLookupTable) (*accountTable, error) {
	var refs []accountRef
	for _, ix := range instructions {
		refs = append(refs, accountRef{address: ix.ProgramID, invoked: true})
		for _, meta := range ix.Accounts {
			refs = append(refs, accountRef{address: meta.Address, signer: meta.IsSigner, writable: meta.IsWritable})
		}
	}
	sortByGroup(refs)

	merged := []accountRef{{address: payer, signer: true, writable: true}}
	seen := map[solana.Address]int{payer: 0}
	for _, ref := range refs {
		if i, ok := seen[ref.address]; ok {
			merged[i].merge(ref)
			continue
		}
		seen[ref.address] = len(merged)
		merged = append(merged, ref)
	}

	// flags merged from later references can move an account to an earlier group
	sortByGroup(merged[1:])

	table := &accountTable{static: merged}
	if len(tables) > 0 {
		table.placeLookups(tables)
	}

	table.index = make(map[solana.Address]int, len(merged))
	n := 0
	for _, ref := range table.static {
		table.index[ref.address] = n
		n++
	}
	for _, entry := range table.lookups {
		for _, li := range entry.Writable {
			table.index[li.Address] = n
			n++
		}
	}
	for _, entry := range table.lookups {
		for _, li := range entry.Readonly {
			table.index[li.Address] = n
			n++
		}
	}
	if n > math.MaxUint8+1 {
		return nil, &FormatError{
			Field: "account keys",
			Err:   fmt.Errorf("%d accounts, instructions can address at most %d", n, math.MaxUint8+1),
		}
	}

	klog.V(2).Infof("account table: %d static accounts, %d lookup accounts in %d tables",
		len(table.static), n-len(table.static), len(table.lookups))

	return table, nil
}

// placeLookups moves unsigned accounts that appear in one of the tables out
// of the static list. Invoked programs stay static. The first table and first
// index holding an address win.
func (t *accountTable) placeLookups(tables []AddressLookupTable) {
	type hit struct {
		table int
		index uint8
	}
	hits := make(map[solana.Address]hit)
	for ti, table := range tables {
		for ai, addr := range table.Addresses {
			if ai > math.MaxUint8 {
				break
			}
			if _, ok := hits[addr]; !ok {
				hits[addr] = hit{table: ti, index: uint8(ai)}
			}
		}
	}

	entries := make([]LookupEntry, len(tables))
	for i, table := range tables {
		entries[i].Table = table.Address
	}

	static := make([]accountRef, 0, len(t.static))
	for _, ref := range t.static {
		h, ok := hits[ref.address]
		if !ok || ref.signer || ref.invoked {
			static = append(static, ref)
			continue
		}
		klog.V(3).Infof("account %s loaded from table %s index %d", ref.address, tables[h.table].Address, h.index)
		li := LookupIndex{Address: ref.address, Index: h.index}
		if ref.writable {
			entries[h.table].Writable = append(entries[h.table].Writable, li)
		} else {
			entries[h.table].Readonly = append(entries[h.table].Readonly, li)
		}
	}
	t.static = static

	for _, entry := range entries {
		if len(entry.Writable) > 0 || len(entry.Readonly) > 0 {
			t.lookups = append(t.lookups, entry)
		}
	}
}

func (t *accountTable) header() Header {
	var h Header
	for _, ref := range t.static {
		switch ref.group() {
		case groupSignerWritable:
			h.NumRequiredSignatures++
		case groupSignerReadonly:
			h.NumRequiredSignatures++
			h.NumReadonlySigned++
		case groupReadonly:
			h.NumReadonlyUnsigned++
		}
	}
	return h
}

func (t *accountTable) numSigners() int {
	n := 0
	for _, ref := range t.static {
		if ref.signer {
			n++
		}
	}
	return n
}

func (t *accountTable) addresses() []solana.Address {
	out := make([]solana.Address, len(t.static))
	for i, ref := range t.static {
		out[i] = ref.address
	}
	return out
}

func (t *accountTable) tableLookups() []AddressTableLookup {
	out := make([]AddressTableLookup, len(t.lookups))
	for i, entry := range t.lookups {
		out[i] = entry.compile()
	}
	return out
}

func (t *accountTable) compile(instructions []Instruction) []CompiledInstruction {
	out := make([]CompiledInstruction, len(instructions))
	for i, ix := range instructions {
		c := CompiledInstruction{
			ProgramIndex: uint8(t.index[ix.ProgramID]),
			Accounts:     make([]uint8, len(ix.Accounts)),
			Data:         ix.Data,
		}
		for j, meta := range ix.Accounts {
			c.Accounts[j] = uint8(t.index[meta.Address])
		}
		out[i] = c
	}
	return out
}
