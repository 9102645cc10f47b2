package ata

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.firedancer.io/solmsg/pkg/solana"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "ata",
		Short: "Derive an associated token account address",
		Args:  cobra.NoArgs,
		Run:   run,
	}

	owner        string
	mint         string
	tokenProgram string
)

func init() {
	Cmd.Flags().StringVar(&owner, "owner", "", "Wallet address owning the token account")
	Cmd.Flags().StringVar(&mint, "mint", "", "Token mint address")
	Cmd.Flags().StringVar(&tokenProgram, "token-program", solana.TokenProgramAddrStr, "Token program owning the mint")
	_ = Cmd.MarkFlagRequired("owner")
	_ = Cmd.MarkFlagRequired("mint")
}

func run(c *cobra.Command, _ []string) {
	ownerAddr, err := solana.AddressFromBase58(owner)
	if err != nil {
		klog.Exitf("invalid owner %q: %s", owner, err)
	}
	mintAddr, err := solana.AddressFromBase58(mint)
	if err != nil {
		klog.Exitf("invalid mint %q: %s", mint, err)
	}
	programAddr, err := solana.AddressFromBase58(tokenProgram)
	if err != nil {
		klog.Exitf("invalid token program %q: %s", tokenProgram, err)
	}

	pda, err := solana.FindAssociatedTokenAddress(ownerAddr, mintAddr, programAddr)
	if err != nil {
		klog.Exitf("failed to derive associated token address: %s", err)
	}
	fmt.Fprintf(c.OutOrStdout(), "%s %d\n", pda.Address, pda.Bump)
}
