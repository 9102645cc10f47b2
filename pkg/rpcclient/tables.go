package rpcclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.firedancer.io/solmsg/pkg/addresslookuptable"
	"go.firedancer.io/solmsg/pkg/message"
	msgsolana "go.firedancer.io/solmsg/pkg/solana"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

const maxConcurrentFetches = 8

var ErrNotLookupTable = errors.New("account is not an address lookup table")

// GetLookupTableState fetches and decodes one lookup table account.
func (fetcher *RpcClient) GetLookupTableState(ctx context.Context, addr msgsolana.Address) (*addresslookuptable.State, error) {
	info, err := fetcher.client.GetAccountInfoWithOpts(ctx, addr.PublicKey(), &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: fetcher.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		tableFetches.WithLabelValues(resultNotFound).Inc()
		return nil, fmt.Errorf("lookup table %s: %w", addr, err)
	}
	if err != nil {
		tableFetches.WithLabelValues(resultError).Inc()
		return nil, fmt.Errorf("failed to get account info for lookup table %s: %w", addr, err)
	}
	if info == nil || info.Value == nil || info.Value.Data == nil {
		tableFetches.WithLabelValues(resultNotFound).Inc()
		return nil, fmt.Errorf("lookup table %s: %w", addr, rpc.ErrNotFound)
	}

	if owner := msgsolana.AddressFromPublicKey(info.Value.Owner); owner != msgsolana.AddressLookupTableProgramAddr {
		tableFetches.WithLabelValues(resultInvalid).Inc()
		return nil, fmt.Errorf("lookup table %s: %w (owner %s)", addr, ErrNotLookupTable, owner)
	}

	state, err := addresslookuptable.Decode(info.Value.Data.GetBinary())
	if err != nil {
		tableFetches.WithLabelValues(resultInvalid).Inc()
		return nil, fmt.Errorf("failed to decode lookup table %s: %w", addr, err)
	}

	tableFetches.WithLabelValues(resultOK).Inc()
	klog.V(3).Infof("fetched lookup table %s: %d addresses, active=%v", addr, len(state.Addresses), state.IsActive())
	return state, nil
}

// GetAddressLookupTables fetches the given tables concurrently. The result
// has one table per address, in the same order.
func (fetcher *RpcClient) GetAddressLookupTables(ctx context.Context, addrs []msgsolana.Address) ([]message.AddressLookupTable, error) {
	tables := make([]message.AddressLookupTable, len(addrs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, addr := range addrs {
		i, addr := i, addr
		g.Go(func() error {
			state, err := fetcher.GetLookupTableState(ctx, addr)
			if err != nil {
				return err
			}
			tables[i] = state.Table(addr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

var _ message.TableFetcher = (*RpcClient)(nil)
