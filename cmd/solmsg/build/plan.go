package build

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"go.firedancer.io/solmsg/pkg/base58"
	"go.firedancer.io/solmsg/pkg/computebudget"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/solana"
	"gopkg.in/yaml.v3"
)

const latestBlockhash = "latest"

// plan is the YAML description of a message.
type plan struct {
	Version          string            `yaml:"version"`
	Payer            solana.Address    `yaml:"payer"`
	Blockhash        string            `yaml:"blockhash"`
	ComputeUnitLimit *uint32           `yaml:"compute_unit_limit"`
	ComputeUnitPrice *uint64           `yaml:"compute_unit_price"`
	Instructions     []planInstruction `yaml:"instructions"`
	LookupTables     []planLookupTable `yaml:"lookup_tables"`
}

type planInstruction struct {
	Program  solana.Address `yaml:"program"`
	Accounts []planAccount  `yaml:"accounts"`
	Data     string         `yaml:"data"`
}

type planAccount struct {
	Address  solana.Address `yaml:"address"`
	Signer   bool           `yaml:"signer"`
	Writable bool           `yaml:"writable"`
}

// planLookupTable lists a table by address. Addresses may be omitted, in
// which case the table is fetched.
type planLookupTable struct {
	Address   solana.Address   `yaml:"address"`
	Addresses []solana.Address `yaml:"addresses"`
}

// chainSource supplies the parts of a plan that live on chain.
type chainSource interface {
	GetLatestBlockhash(ctx context.Context) (solana.Blockhash, error)
	GetAddressLookupTables(ctx context.Context, addrs []solana.Address) ([]message.AddressLookupTable, error)
}

var errNoChainSource = errors.New("plan needs chain data but no RPC endpoint was given")

func parsePlan(r io.Reader) (*plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	p := new(plan)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	if p.Version == "" {
		p.Version = message.Legacy.String()
	}
	switch p.Version {
	case message.Legacy.String():
		if len(p.LookupTables) > 0 {
			return nil, fmt.Errorf("invalid plan: lookup tables require version %s", message.V0)
		}
	case message.V0.String():
	default:
		return nil, fmt.Errorf("invalid plan: unknown version %q", p.Version)
	}
	if p.Payer.IsZero() {
		return nil, errors.New("invalid plan: payer is required")
	}
	return p, nil
}

func decodeData(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("missing encoding prefix in %q", s)
	}
	switch kind {
	case "hex":
		return hex.DecodeString(value)
	case "b58":
		return base58.Decode(value)
	case "base64":
		return base64.StdEncoding.DecodeString(value)
	default:
		return nil, fmt.Errorf("unknown data encoding %q", kind)
	}
}

// instructions returns the plan's instructions, preceded by the compute
// budget instructions it asks for.
func (p *plan) instructions() ([]message.Instruction, error) {
	var out []message.Instruction
	if p.ComputeUnitLimit != nil {
		out = append(out, computebudget.SetComputeUnitLimit(*p.ComputeUnitLimit))
	}
	if p.ComputeUnitPrice != nil {
		out = append(out, computebudget.SetComputeUnitPrice(*p.ComputeUnitPrice))
	}
	for i, ix := range p.Instructions {
		data, err := decodeData(ix.Data)
		if err != nil {
			return nil, fmt.Errorf("instruction %d data: %w", i, err)
		}
		out = append(out, message.Instruction{
			ProgramID: ix.Program,
			Accounts: lo.Map(ix.Accounts, func(a planAccount, _ int) message.AccountMeta {
				return message.AccountMeta{Address: a.Address, IsSigner: a.Signer, IsWritable: a.Writable}
			}),
			Data: data,
		})
	}
	return out, nil
}

func (p *plan) blockhash(ctx context.Context, src chainSource) (solana.Blockhash, error) {
	if p.Blockhash != latestBlockhash {
		return solana.BlockhashFromBase58(p.Blockhash)
	}
	if src == nil {
		return solana.Blockhash{}, errNoChainSource
	}
	return src.GetLatestBlockhash(ctx)
}

// lookupTables returns the plan's tables in order, fetching the ones given
// without addresses.
func (p *plan) lookupTables(ctx context.Context, src chainSource) ([]message.AddressLookupTable, error) {
	tables := lo.Map(p.LookupTables, func(t planLookupTable, _ int) message.AddressLookupTable {
		return message.AddressLookupTable{Address: t.Address, Addresses: t.Addresses}
	})

	var missing []int
	for i, t := range p.LookupTables {
		if t.Addresses == nil {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return tables, nil
	}
	if src == nil {
		return nil, errNoChainSource
	}

	fetched, err := src.GetAddressLookupTables(ctx, lo.Map(missing, func(i int, _ int) solana.Address {
		return tables[i].Address
	}))
	if err != nil {
		return nil, err
	}
	for j, i := range missing {
		tables[i] = fetched[j]
	}
	return tables, nil
}

// compile builds the message described by p into a fresh buffer.
func (p *plan) compile(ctx context.Context, src chainSource) (*message.Message, error) {
	ixs, err := p.instructions()
	if err != nil {
		return nil, err
	}
	hash, err := p.blockhash(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("blockhash: %w", err)
	}

	b := message.NewBuilder(make([]byte, message.MaxMessageSize))
	if p.Version == message.Legacy.String() {
		return b.Legacy().
			Payer(p.Payer).
			RecentBlockhash(hash).
			Instructions(ixs...).
			Seal()
	}

	tables, err := p.lookupTables(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("lookup tables: %w", err)
	}
	return b.V0().
		Payer(p.Payer).
		RecentBlockhash(hash).
		Instructions(ixs...).
		LookupTables(tables...).
		Seal()
}

// unsignedSigners lists the required signers whose slots are still zero.
func unsignedSigners(msg *message.Message) []solana.Address {
	v := msg.View()
	sigs := v.Signatures()
	return lo.Filter(v.Signers(), func(_ solana.Address, i int) bool {
		return lo.EveryBy(sigs[i], func(b byte) bool { return b == 0 })
	})
}
