package build

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/rpcclient"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "build",
		Short: "Build a transaction message from a YAML plan",
		Long: `Build a transaction message from a YAML plan and print it as base64.

Example plan:

  version: v0
  payer: <address>
  blockhash: latest
  instructions:
    - program: <address>
      accounts:
        - {address: <address>, signer: true, writable: true}
      data: hex:0102
  lookup_tables:
    - address: <address>`,
		Args: cobra.NoArgs,
		Run:  run,
	}

	planFile string
	rpcURL   string
	keypairs []string
)

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&planFile, "file", "f", "", "Path to plan YAML")
	flags.StringVar(&rpcURL, "rpc", "", "RPC endpoint for blockhash and lookup tables")
	flags.StringArrayVar(&keypairs, "keypair", nil, "Sign with the keypair file (repeatable)")
	_ = Cmd.MarkFlagRequired("file")
}

func run(c *cobra.Command, _ []string) {
	f, err := os.Open(planFile)
	if err != nil {
		klog.Exitf("failed to open plan: %s", err)
	}
	p, err := parsePlan(f)
	f.Close()
	if err != nil {
		klog.Exitf("%s", err)
	}

	var src chainSource
	if rpcURL != "" {
		src = rpcclient.NewRpcClient(rpcURL)
	}

	msg, err := p.compile(c.Context(), src)
	if err != nil {
		klog.Exitf("failed to build message: %s", err)
	}
	klog.V(2).Infof("built %s message: %d bytes, %d signatures required",
		msg.Version(), msg.Len(), msg.View().Header().NumRequiredSignatures)

	if len(keypairs) > 0 {
		signers := make([]message.Signer, len(keypairs))
		for i, path := range keypairs {
			key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
			if err != nil {
				klog.Exitf("failed to load keypair %s: %s", path, err)
			}
			signers[i] = message.NewPrivateKeySigner(key)
		}
		if err := msg.Sign(signers...); err != nil {
			klog.Exitf("failed to sign: %s", err)
		}
		if !msg.IsSigned() {
			klog.Warningf("message is partially signed; missing %v", unsignedSigners(msg))
		}
	}

	fmt.Fprintln(c.OutOrStdout(), base64.StdEncoding.EncodeToString(msg.Bytes()))
}
