package base58

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	b58 "go.firedancer.io/solmsg/pkg/base58"
	"k8s.io/klog/v2"
)

var Cmd = cobra.Command{
	Use:   "base58",
	Short: "Convert between base58 and hex",
}

var encodeCmd = cobra.Command{
	Use:   "encode [hex]",
	Short: "Encode hex, or raw bytes from stdin, as base58",
	Args:  cobra.MaximumNArgs(1),
	Run:   runEncode,
}

var decodeCmd = cobra.Command{
	Use:   "decode [base58]",
	Short: "Decode base58 from the argument or stdin to hex",
	Args:  cobra.MaximumNArgs(1),
	Run:   runDecode,
}

func init() {
	Cmd.AddCommand(
		&encodeCmd,
		&decodeCmd,
	)
}

func runEncode(c *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
		if err != nil {
			klog.Exitf("invalid hex input: %s", err)
		}
	} else {
		data, err = io.ReadAll(c.InOrStdin())
		if err != nil {
			klog.Exitf("failed to read stdin: %s", err)
		}
	}
	fmt.Fprintln(c.OutOrStdout(), b58.Encode(data))
}

func runDecode(c *cobra.Command, args []string) {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		raw, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			klog.Exitf("failed to read stdin: %s", err)
		}
		text = strings.TrimSpace(string(raw))
	}
	data, err := b58.Decode(text)
	if err != nil {
		klog.Exitf("%s", err)
	}
	fmt.Fprintln(c.OutOrStdout(), hex.EncodeToString(data))
}
