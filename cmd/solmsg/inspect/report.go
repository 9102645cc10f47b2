package inspect

import (
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
	"go.firedancer.io/solmsg/pkg/base58"
	"go.firedancer.io/solmsg/pkg/computebudget"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/solana"
)

const unsigned = "unsigned"

type report struct {
	Version         string              `yaml:"version"`
	Size            int                 `yaml:"size"`
	Header          reportHeader        `yaml:"header"`
	RecentBlockhash solana.Blockhash    `yaml:"recent_blockhash"`
	Signatures      []reportSignature   `yaml:"signatures"`
	Verified        *bool               `yaml:"verified,omitempty"`
	Accounts        []reportAccount     `yaml:"accounts"`
	Instructions    []reportInstruction `yaml:"instructions"`
	LookupTables    []reportLookup      `yaml:"lookup_tables,omitempty"`
	ComputeBudget   reportComputeBudget `yaml:"compute_budget"`
}

type reportHeader struct {
	RequiredSignatures uint8 `yaml:"required_signatures"`
	ReadonlySigned     uint8 `yaml:"readonly_signed"`
	ReadonlyUnsigned   uint8 `yaml:"readonly_unsigned"`
}

type reportSignature struct {
	Signer    solana.Address `yaml:"signer"`
	Signature string         `yaml:"signature"`
}

// reportAccount is one entry of the account index space. Address is nil for
// lookup accounts that were not resolved.
type reportAccount struct {
	Index    int             `yaml:"index"`
	Address  *solana.Address `yaml:"address,omitempty"`
	Source   string          `yaml:"source"`
	Signer   bool            `yaml:"signer"`
	Writable bool            `yaml:"writable"`
}

type reportInstruction struct {
	Program  solana.Address `yaml:"program"`
	Accounts []int          `yaml:"accounts"`
	Data     string         `yaml:"data"`
}

// reportComputeBudget holds the requested limits and the fee estimate. Only
// Error is set when the compute budget instructions are invalid.
type reportComputeBudget struct {
	UnitLimit   uint32 `yaml:"unit_limit"`
	UnitPrice   uint64 `yaml:"unit_price"`
	HeapBytes   uint32 `yaml:"heap_bytes"`
	Signatures  uint64 `yaml:"signatures"`
	BaseFee     uint64 `yaml:"base_fee"`
	PriorityFee uint64 `yaml:"priority_fee"`
	TotalFee    uint64 `yaml:"total_fee"`
	Error       string `yaml:"error,omitempty"`
}

type reportLookup struct {
	Table    solana.Address `yaml:"table"`
	Writable []int          `yaml:"writable"`
	Readonly []int          `yaml:"readonly"`
}

func toInts(idx []uint8) []int {
	return lo.Map(idx, func(i uint8, _ int) int { return int(i) })
}

// reportBuilder fills a report from either message version. tables may be
// nil, in which case lookup accounts are listed by table and index only.
type reportBuilder struct {
	tables []message.AddressLookupTable
	r      *report
}

func newReport(msg *message.Message, tables []message.AddressLookupTable) (*report, error) {
	b := &reportBuilder{tables: tables, r: &report{Size: msg.Len()}}
	if err := msg.Accept(b); err != nil {
		return nil, err
	}
	if msg.IsSigned() {
		ok := msg.VerifySignatures() == nil
		b.r.Verified = &ok
	}
	return b.r, nil
}

func (b *reportBuilder) VisitLegacy(v *message.LegacyView) error {
	b.common(v)
	b.accounts(v.Accounts(), nil)
	return nil
}

func (b *reportBuilder) VisitV0(v *message.V0View) error {
	b.common(v)
	b.r.LookupTables = lo.Map(v.AddressTableLookups(), func(l message.AddressTableLookup, _ int) reportLookup {
		return reportLookup{Table: l.Table, Writable: toInts(l.Writable), Readonly: toInts(l.Readonly)}
	})
	sources := lookupSources(v)

	if b.tables == nil {
		b.staticAccounts(v)
		numWritable := lo.SumBy(v.AddressTableLookups(), func(l message.AddressTableLookup) int {
			return len(l.Writable)
		})
		for i, src := range sources {
			b.r.Accounts = append(b.r.Accounts, reportAccount{
				Index:    v.NumStaticAccounts() + i,
				Source:   src,
				Writable: i < numWritable,
			})
		}
		return nil
	}

	resolved, err := v.Resolve(b.tables)
	if err != nil {
		return err
	}
	b.accounts(resolved, sources)
	return nil
}

func (b *reportBuilder) common(v message.View) {
	h := v.Header()
	b.r.Version = v.Version().String()
	b.r.Header = reportHeader{
		RequiredSignatures: h.NumRequiredSignatures,
		ReadonlySigned:     h.NumReadonlySigned,
		ReadonlyUnsigned:   h.NumReadonlyUnsigned,
	}
	b.r.RecentBlockhash = v.RecentBlockhash()

	sigs := v.Signatures()
	b.r.Signatures = lo.Map(v.Signers(), func(signer solana.Address, i int) reportSignature {
		s := reportSignature{Signer: signer, Signature: unsigned}
		if lo.SomeBy(sigs[i], func(c byte) bool { return c != 0 }) {
			s.Signature = base58.Encode(sigs[i])
		}
		return s
	})

	b.r.Instructions = lo.Map(v.Instructions(), func(ix message.CompiledInstruction, _ int) reportInstruction {
		return reportInstruction{
			Program:  v.StaticAccount(int(ix.ProgramIndex)),
			Accounts: toInts(ix.Accounts),
			Data:     hex.EncodeToString(ix.Data),
		}
	})

	b.computeBudget(v)
}

func (b *reportBuilder) computeBudget(v message.View) {
	// compute budget instructions never reference accounts, so the static
	// program id and data are enough
	ixs := lo.Map(v.Instructions(), func(ix message.CompiledInstruction, _ int) message.Instruction {
		return message.Instruction{ProgramID: v.StaticAccount(int(ix.ProgramIndex)), Data: ix.Data}
	})
	limits, err := computebudget.FromInstructions(ixs)
	if err != nil {
		b.r.ComputeBudget.Error = err.Error()
		return
	}
	fee, err := computebudget.EstimateFee(v.Header().NumRequiredSignatures, ixs)
	if err != nil {
		b.r.ComputeBudget.Error = err.Error()
		return
	}
	b.r.ComputeBudget = reportComputeBudget{
		UnitLimit:   limits.ComputeUnitLimit,
		UnitPrice:   limits.ComputeUnitPrice,
		HeapBytes:   limits.HeapBytes,
		Signatures:  fee.Signatures,
		BaseFee:     fee.Base,
		PriorityFee: fee.Priority,
		TotalFee:    fee.Total(),
	}
}

func (b *reportBuilder) staticAccounts(v message.View) {
	for i, addr := range v.StaticAccounts() {
		b.r.Accounts = append(b.r.Accounts, reportAccount{
			Index:    i,
			Address:  &addr,
			Source:   "static",
			Signer:   i < int(v.Header().NumRequiredSignatures),
			Writable: v.IsStaticWritable(i),
		})
	}
}

func (b *reportBuilder) accounts(resolved *message.ResolvedAccounts, sources []string) {
	for i, addr := range resolved.Keys() {
		src := "static"
		if i >= resolved.NumStatic() {
			src = sources[i-resolved.NumStatic()]
		}
		b.r.Accounts = append(b.r.Accounts, reportAccount{
			Index:    i,
			Address:  &addr,
			Source:   src,
			Signer:   resolved.IsSigner(i),
			Writable: resolved.IsWritable(i),
		})
	}
}

// lookupSources labels lookup accounts in account index order: writable
// entries of all tables, then read-only entries.
func lookupSources(v *message.V0View) []string {
	var out []string
	for _, l := range v.AddressTableLookups() {
		for _, idx := range l.Writable {
			out = append(out, fmt.Sprintf("%s[%d]", l.Table, idx))
		}
	}
	for _, l := range v.AddressTableLookups() {
		for _, idx := range l.Readonly {
			out = append(out, fmt.Sprintf("%s[%d]", l.Table, idx))
		}
	}
	return out
}

func flags(signer, writable bool) string {
	f := []byte("--")
	if signer {
		f[0] = 's'
	}
	if writable {
		f[1] = 'w'
	}
	return string(f)
}

func writeText(w io.Writer, r *report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "version:\t%s\n", r.Version)
	fmt.Fprintf(tw, "size:\t%d bytes\n", r.Size)
	fmt.Fprintf(tw, "header:\t%d required, %d readonly signed, %d readonly unsigned\n",
		r.Header.RequiredSignatures, r.Header.ReadonlySigned, r.Header.ReadonlyUnsigned)
	fmt.Fprintf(tw, "blockhash:\t%s\n", r.RecentBlockhash)
	if r.Verified != nil {
		fmt.Fprintf(tw, "verified:\t%v\n", *r.Verified)
	}

	fmt.Fprintln(tw, "\nsignatures:")
	for _, s := range r.Signatures {
		fmt.Fprintf(tw, "  %s\t%s\n", s.Signer, s.Signature)
	}

	fmt.Fprintln(tw, "\naccounts:")
	for _, a := range r.Accounts {
		addr := "?"
		if a.Address != nil {
			addr = a.Address.String()
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", a.Index, flags(a.Signer, a.Writable), addr, a.Source)
	}

	cb := r.ComputeBudget
	fmt.Fprintln(tw, "\ncompute budget:")
	if cb.Error != "" {
		fmt.Fprintf(tw, "  invalid:\t%s\n", cb.Error)
	} else {
		fmt.Fprintf(tw, "  unit limit:\t%d\n", cb.UnitLimit)
		fmt.Fprintf(tw, "  unit price:\t%d micro-lamports\n", cb.UnitPrice)
		fmt.Fprintf(tw, "  fee:\t%d lamports (%d base, %d priority)\n", cb.TotalFee, cb.BaseFee, cb.PriorityFee)
	}

	fmt.Fprintln(tw, "\ninstructions:")
	for i, ix := range r.Instructions {
		fmt.Fprintf(tw, "  %d\t%s\taccounts=%v\tdata=%s\n", i, ix.Program, ix.Accounts, ix.Data)
	}

	return tw.Flush()
}
