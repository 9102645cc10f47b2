package inspect

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/rpcclient"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "inspect [base64]",
		Short: "Decode a serialized transaction message",
		Args:  cobra.MaximumNArgs(1),
		Run:   run,
	}

	rpcURL string
	output string
)

func init() {
	Cmd.Flags().StringVar(&rpcURL, "rpc", "", "RPC endpoint used to resolve lookup tables")
	Cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text|yaml)")
}

func run(c *cobra.Command, args []string) {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		raw, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			klog.Exitf("failed to read stdin: %s", err)
		}
		text = string(raw)
	}

	msg, err := decode(text)
	if err != nil {
		klog.Exitf("%s", err)
	}

	var tables []message.AddressLookupTable
	if rpcURL != "" {
		tables, err = fetchTables(c.Context(), rpcclient.NewRpcClient(rpcURL), msg)
		if err != nil {
			klog.Exitf("%s", err)
		}
	}

	r, err := newReport(msg, tables)
	if err != nil {
		klog.Exitf("failed to resolve message: %s", err)
	}

	out := c.OutOrStdout()
	switch output {
	case "text":
		err = writeText(out, r)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		err = enc.Encode(r)
		if err == nil {
			err = enc.Close()
		}
	default:
		klog.Exitf("unknown output format %q", output)
	}
	if err != nil {
		klog.Exitf("failed to write report: %s", err)
	}
}

func decode(text string) (*message.Message, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return message.FromBytes(raw)
}

// fetchTables loads the tables a v0 message references. It returns nil for
// messages without lookups.
func fetchTables(ctx context.Context, f message.TableFetcher, msg *message.Message) ([]message.AddressLookupTable, error) {
	v, ok := msg.View().(*message.V0View)
	if !ok || len(v.AddressTableLookups()) == 0 {
		return nil, nil
	}
	tables, err := f.GetAddressLookupTables(ctx, v.TableAddresses())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lookup tables: %w", err)
	}
	return tables, nil
}
