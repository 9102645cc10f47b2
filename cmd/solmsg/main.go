package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.firedancer.io/solmsg/cmd/solmsg/ata"
	"go.firedancer.io/solmsg/cmd/solmsg/base58"
	"go.firedancer.io/solmsg/cmd/solmsg/build"
	"go.firedancer.io/solmsg/cmd/solmsg/inspect"
	"go.firedancer.io/solmsg/cmd/solmsg/pda"
	"k8s.io/klog/v2"
)

var cmd = cobra.Command{
	Use:   "solmsg",
	Short: "Build and inspect Solana transaction messages",
}

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		&ata.Cmd,
		&base58.Cmd,
		&build.Cmd,
		&inspect.Cmd,
		&pda.Cmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}
