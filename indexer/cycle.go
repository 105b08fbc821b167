// Package indexer implements the outer control loop: pull a bounded block
// window forward, filter and decode each watched token's events, persist the
// decoded transfers, and advance the indexer's cursor exactly once per
// successful window.
package indexer

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/stryukovsky/go-evm-indexer/persist"
	"github.com/stryukovsky/go-evm-indexer/service/logger"
	"github.com/stryukovsky/go-evm-indexer/service/rpc"
)

// IndexerStore loads and mutates the Indexer row.
type IndexerStore interface {
	LoadByName(ctx context.Context, name string) (persist.Indexer, error)
	UpdateLastBlock(ctx context.Context, indexer *persist.Indexer, newLastBlock uint64) error
}

// NetworkStore loads the Network row.
type NetworkStore interface {
	LoadByID(ctx context.Context, id int64) (persist.Network, error)
}

// TokenStore loads the watched Token set.
type TokenStore interface {
	LoadByIndexer(ctx context.Context, indexerID int64) ([]persist.Token, error)
}

// TransferStore persists a decoded transfer batch.
type TransferStore interface {
	SaveBatch(ctx context.Context, transfers []persist.Transfer, token persist.Token, indexer persist.Indexer) error
}

// rpcDialer abstracts establishing an RPC transport, so tests can substitute
// a fake without dialing a real endpoint.
type rpcDialer func(rpcURL string) (logFetcher, error)

// logFetcher is the narrow surface of an RPC client the cycle needs.
type logFetcher interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, filter rpc.LogFilter) ([]types.Log, error)
	Close()
}

// Deps bundles every external collaborator the cycle engine needs. Tests
// substitute fakes for all of them; production wiring uses the postgres
// repositories and the real RPC dialer.
type Deps struct {
	Indexers  IndexerStore
	Networks  NetworkStore
	Tokens    TokenStore
	Transfers TransferStore
	Dial      rpcDialer
	Sleep     func(time.Duration)
}

// DialRPC adapts rpc.Dial to the rpcDialer shape used by Deps.
func DialRPC(rpcURL string) (logFetcher, error) {
	return rpc.Dial(rpcURL)
}

// Run loads the named indexer and drives its cycle loop until a step fails.
// There is no in-process retry: the caller (the process entrypoint) is
// expected to exit after Run returns, and an external supervisor restarts
// the process.
func Run(ctx context.Context, deps Deps, indexerName string) error {
	idx, err := deps.Indexers.LoadByName(ctx, indexerName)
	if err != nil {
		return persist.Errorf("instantiating indexer: %s", err)
	}
	logger.For(ctx).Infof("starting indexer %s", idx.String())

	for {
		if err := cycleBody(ctx, deps, &idx); err != nil {
			logger.For(ctx).Warnf("in cycle occurred error: %s", err.Error())
			return err
		}
		logger.For(ctx).Infof("sleeping %ds before next cycle", idx.LongSleepSeconds)
		deps.Sleep(time.Duration(idx.LongSleepSeconds) * time.Second)
	}
}

// cycleBody runs exactly one iteration: reload the network, dial RPC, compute
// the next block window, fetch and decode each watched token's events, save
// them, and advance the cursor only once every token has committed.
func cycleBody(ctx context.Context, deps Deps, idx *persist.Indexer) error {
	network, err := deps.Networks.LoadByID(ctx, idx.NetworkID)
	if err != nil {
		return persist.Errorf("fetching network: %s", err)
	}
	logger.For(ctx).Debugf("network initialized %s", network.Name)

	client, err := deps.Dial(network.RPCURL)
	if err != nil {
		return persist.Errorf("establishing RPC transport: %s", err)
	}
	defer client.Close()

	head, err := client.BlockNumber(ctx)
	if err != nil {
		return persist.Errorf("fetching block number: %s", err)
	}

	fromBlock, toBlock := blockWindow(head, idx.LastBlock, network.MaxStep)
	logger.For(ctx).Infof("fetching events from %d to %d blocks", fromBlock, toBlock)

	strategyTag, err := persist.ParseStrategyTag(idx.Strategy)
	if err != nil {
		return err
	}
	strat, err := buildStrategy(strategyTag)
	if err != nil {
		return err
	}
	slots, err := strat.payloadTopics(idx.StrategyParams)
	if err != nil {
		return persist.Errorf("preparing strategy for fetching events: %s", err)
	}
	logger.For(ctx).Debugf("prepared strategy for fetching events: %s", idx.Strategy)

	tokens, err := deps.Tokens.LoadByIndexer(ctx, idx.ID)
	if err != nil {
		return persist.Errorf("fetching tokens: %s", err)
	}
	logger.For(ctx).Infof("found %d tokens which are monitored by indexer", len(tokens))

	for _, token := range tokens {
		if err := processToken(ctx, deps, client, token, *idx, slots, fromBlock, toBlock); err != nil {
			return err
		}
	}

	logger.For(ctx).Infof("move indexer to block %d", toBlock)
	if err := deps.Indexers.UpdateLastBlock(ctx, idx, toBlock); err != nil {
		return persist.Errorf("updating last block of indexer %s to %d: %s", idx.Name, toBlock, err)
	}
	return nil
}

// processToken handles one watched token: for each event signature its
// standard emits, build the filter, fetch logs, decode, and persist the
// batch within its own transaction.
func processToken(ctx context.Context, deps Deps, client logFetcher, token persist.Token, idx persist.Indexer, slots payloadTopics, fromBlock, toBlock uint64) error {
	events := token.Standard.EventHashes()
	logger.For(ctx).Debugf("token %s has %d event type(s) to handle", token.Name, len(events))

	decode, err := decoderFor(token)
	if err != nil {
		return err
	}

	for _, eventSignature := range events {
		filter := buildLogFilter(token, eventSignature, slots, fromBlock, toBlock)
		logs, err := client.FilterLogs(ctx, filter)
		if err != nil {
			return persist.Errorf("fetching logs for token %s: %s", token.Name, err)
		}
		logger.For(ctx).Infof("fetched %d event(s) for token %s", len(logs), token.Name)

		transfers := make([]persist.Transfer, 0, len(logs))
		for _, log := range logs {
			transfer, err := decode.decode(log)
			if err != nil {
				return err
			}
			logger.For(ctx).Info(transfer.String())
			transfers = append(transfers, transfer)
		}

		logger.For(ctx).Infof("saving %d token transfer(s) to database", len(transfers))
		if err := deps.Transfers.SaveBatch(ctx, transfers, token, idx); err != nil {
			return persist.Errorf("saving token transfers for token %s: %s", token.Name, err)
		}
	}
	return nil
}

// blockWindow computes the bounded [from, to] range for the next cycle
// iteration: it never exceeds the chain head, and advances by at most
// maxStep blocks.
func blockWindow(chainHead, lastBlock, maxStep uint64) (from, to uint64) {
	to = chainHead
	if lastBlock+maxStep < to {
		to = lastBlock + maxStep
	}
	return lastBlock, to
}
