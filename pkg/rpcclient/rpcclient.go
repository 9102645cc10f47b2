// Package rpcclient fetches the chain state a message needs from a JSON-RPC
// node: lookup tables and recent blockhashes.
package rpcclient

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// node is the subset of the solana-go RPC client used here.
type node interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
}

type RpcClient struct {
	client     node
	commitment rpc.CommitmentType
}

func NewRpcClient(endpoint string) *RpcClient {
	client := rpc.New(endpoint)
	return &RpcClient{client: client, commitment: rpc.CommitmentConfirmed}
}
