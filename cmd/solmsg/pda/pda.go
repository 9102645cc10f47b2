package pda

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.firedancer.io/solmsg/pkg/base58"
	"go.firedancer.io/solmsg/pkg/solana"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "pda",
		Short: "Derive a program address from seeds",
		Long: `Derive a program address from seeds.

Seeds are passed in order with --seed and carry an encoding prefix:
  str:<utf-8>   b58:<base58>   hex:<hex>   u64:<decimal, little-endian>`,
		Args: cobra.NoArgs,
		Run:  run,
	}

	program string
	seeds   []string
)

func init() {
	Cmd.Flags().StringVar(&program, "program", "", "Owning program address")
	Cmd.Flags().StringArrayVar(&seeds, "seed", nil, "Seed with encoding prefix (repeatable)")
	_ = Cmd.MarkFlagRequired("program")
}

func run(c *cobra.Command, _ []string) {
	programID, err := solana.AddressFromBase58(program)
	if err != nil {
		klog.Exitf("invalid program %q: %s", program, err)
	}
	raw, err := parseSeeds(seeds)
	if err != nil {
		klog.Exitf("%s", err)
	}

	pda, err := solana.FindProgramAddress(raw, programID)
	if err != nil {
		klog.Exitf("failed to derive program address: %s", err)
	}
	fmt.Fprintf(c.OutOrStdout(), "%s %d\n", pda.Address, pda.Bump)
}

func parseSeeds(specs []string) ([][]byte, error) {
	out := make([][]byte, len(specs))
	for i, s := range specs {
		seed, err := parseSeed(s)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		out[i] = seed
	}
	return out, nil
}

func parseSeed(s string) ([]byte, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("missing encoding prefix in %q", s)
	}
	switch kind {
	case "str":
		return []byte(value), nil
	case "b58":
		return base58.Decode(value)
	case "hex":
		return hex.DecodeString(value)
	case "u64":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, err
		}
		return solana.SlotSeed(n), nil
	default:
		return nil, fmt.Errorf("unknown seed encoding %q", kind)
	}
}
