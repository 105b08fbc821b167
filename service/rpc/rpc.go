// Package rpc wraps the go-ethereum JSON-RPC client with the narrow surface
// the cycle engine needs: dialing, the current chain head, and log
// filtering, grounded on gallery-so-go-gallery's service/rpc/indexer rpc.go
// usage of ethclient.
package rpc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/stryukovsky/go-evm-indexer/persist"
)

// Client is a thin, mockable wrapper over *ethclient.Client.
type Client struct {
	eth *ethclient.Client
}

// Dial establishes a JSON-RPC transport for the given endpoint URL.
func Dial(rpcURL string) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, persist.Errorf("dialing RPC endpoint %s: %s", rpcURL, err)
	}
	return &Client{eth: eth}, nil
}

// Close releases the underlying transport.
func (c *Client) Close() {
	c.eth.Close()
}

// BlockNumber returns the current chain head.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	number, err := c.eth.BlockNumber(ctx)
	if err != nil {
		return 0, persist.Errorf("fetching block number: %s", err)
	}
	return number, nil
}

// LogFilter is the wire shape of a single log query: one watched token
// address, an inclusive block range, and the 4-slot topic filter
// ([eventSig], slot1, slot2, slot3).
type LogFilter struct {
	Address   common.Address
	FromBlock uint64
	ToBlock   uint64
	Topics    [4][]common.Hash
}

// FilterLogs executes filter against the RPC endpoint and returns the
// matching logs.
func (c *Client) FilterLogs(ctx context.Context, filter LogFilter) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{filter.Address},
		FromBlock: new(big.Int).SetUint64(filter.FromBlock),
		ToBlock:   new(big.Int).SetUint64(filter.ToBlock),
		Topics:    filter.Topics[:],
	}
	logs, err := c.eth.FilterLogs(ctx, query)
	if err != nil {
		return nil, persist.Errorf("fetching logs for %s in [%d,%d]: %s", filter.Address.Hex(), filter.FromBlock, filter.ToBlock, err)
	}
	return logs, nil
}
