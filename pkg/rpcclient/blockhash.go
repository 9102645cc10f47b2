package rpcclient

import (
	"context"
	"fmt"

	msgsolana "go.firedancer.io/solmsg/pkg/solana"
	"k8s.io/klog/v2"
)

// GetLatestBlockhash returns the most recent blockhash at the client's
// commitment level.
func (fetcher *RpcClient) GetLatestBlockhash(ctx context.Context) (msgsolana.Blockhash, error) {
	result, err := fetcher.client.GetLatestBlockhash(ctx, fetcher.commitment)
	if err != nil {
		return msgsolana.Blockhash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if result == nil || result.Value == nil {
		return msgsolana.Blockhash{}, fmt.Errorf("failed to get latest blockhash: empty response")
	}

	klog.V(3).Infof("latest blockhash %s at slot %d, valid until block height %d",
		result.Value.Blockhash, result.Context.Slot, result.Value.LastValidBlockHeight)

	return msgsolana.Blockhash(result.Value.Blockhash), nil
}
