package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stryukovsky/go-evm-indexer/persist"
	"github.com/stryukovsky/go-evm-indexer/service/rpc"
)

type fakeIndexerStore struct {
	indexer persist.Indexer
}

func (f *fakeIndexerStore) LoadByName(ctx context.Context, name string) (persist.Indexer, error) {
	return f.indexer, nil
}

func (f *fakeIndexerStore) UpdateLastBlock(ctx context.Context, indexer *persist.Indexer, newLastBlock uint64) error {
	indexer.LastBlock = newLastBlock
	f.indexer.LastBlock = newLastBlock
	return nil
}

type fakeNetworkStore struct {
	network persist.Network
}

func (f *fakeNetworkStore) LoadByID(ctx context.Context, id int64) (persist.Network, error) {
	return f.network, nil
}

type fakeTokenStore struct {
	tokens []persist.Token
}

func (f *fakeTokenStore) LoadByIndexer(ctx context.Context, indexerID int64) ([]persist.Token, error) {
	return f.tokens, nil
}

type fakeTransferStore struct {
	batches int
}

func (f *fakeTransferStore) SaveBatch(ctx context.Context, transfers []persist.Transfer, token persist.Token, indexer persist.Indexer) error {
	f.batches++
	return nil
}

type fakeLogFetcher struct {
	head uint64
}

func (f *fakeLogFetcher) BlockNumber(ctx context.Context) (uint64, error) {
	return f.head, nil
}

func (f *fakeLogFetcher) FilterLogs(ctx context.Context, filter rpc.LogFilter) ([]types.Log, error) {
	return nil, nil
}

func (f *fakeLogFetcher) Close() {}

func TestBlockWindowAdvancement(t *testing.T) {
	from, to := blockWindow(1200, 1000, 50)
	assert.Equal(t, uint64(1000), from)
	assert.Equal(t, uint64(1050), to)

	from, to = blockWindow(1200, 1050, 50)
	assert.Equal(t, uint64(1050), from)
	assert.Equal(t, uint64(1100), to)
}

func TestCycleWindowAdvancesAcrossTwoIterations(t *testing.T) {
	indexerStore := &fakeIndexerStore{indexer: persist.Indexer{
		ID:               1,
		Name:             "main",
		LastBlock:        1000,
		Strategy:         string(persist.StrategyTokenScan),
		LongSleepSeconds: 1,
		NetworkID:        1,
		Status:           "active",
	}}
	networkStore := &fakeNetworkStore{network: persist.Network{ID: 1, MaxStep: 50, RPCURL: "fake://"}}
	tokenStore := &fakeTokenStore{tokens: []persist.Token{{Address: watchedTokenAddress, Name: "coin", Standard: persist.StandardERC20}}}
	transferStore := &fakeTransferStore{}

	fetcher := &fakeLogFetcher{head: 1200}
	deps := Deps{
		Indexers:  indexerStore,
		Networks:  networkStore,
		Tokens:    tokenStore,
		Transfers: transferStore,
		Dial:      func(string) (logFetcher, error) { return fetcher, nil },
		Sleep:     func(time.Duration) {},
	}

	idx := indexerStore.indexer
	require.NoError(t, cycleBody(context.Background(), deps, &idx))
	assert.Equal(t, uint64(1050), idx.LastBlock)

	require.NoError(t, cycleBody(context.Background(), deps, &idx))
	assert.Equal(t, uint64(1100), idx.LastBlock)

	assert.Equal(t, 2, transferStore.batches)
}

func TestCycleBodyPropagatesDialError(t *testing.T) {
	indexerStore := &fakeIndexerStore{indexer: persist.Indexer{ID: 1, NetworkID: 1, Strategy: string(persist.StrategyTokenScan)}}
	networkStore := &fakeNetworkStore{network: persist.Network{ID: 1, MaxStep: 50}}
	deps := Deps{
		Indexers: indexerStore,
		Networks: networkStore,
		Tokens:   &fakeTokenStore{},
		Dial:     func(string) (logFetcher, error) { return nil, errors.New("connection refused") },
	}

	idx := indexerStore.indexer
	err := cycleBody(context.Background(), deps, &idx)
	assert.Error(t, err)
}
