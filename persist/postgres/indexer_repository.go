package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stryukovsky/go-evm-indexer/persist"
)

const indexerTable = "indexer_api_indexer"

// IndexerRepository loads and mutates Indexer rows.
type IndexerRepository struct {
	db *sql.DB
}

func NewIndexerRepository(db *sql.DB) *IndexerRepository {
	return &IndexerRepository{db: db}
}

// LoadByName returns the single Indexer row with the given name. Zero or
// more than one matching row is an error: indexer names are expected to be
// unique, and an ambiguous lookup is a schema problem, not a retryable one.
func (r *IndexerRepository) LoadByName(ctx context.Context, name string) (persist.Indexer, error) {
	query := fmt.Sprintf(`SELECT id, name, last_block, strategy, short_sleep_seconds, long_sleep_seconds, strategy_params, network_id, status, indexer_type FROM %s WHERE name = $1`, indexerTable)
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return persist.Indexer{}, persist.Errorf("loading indexer %q: %s", name, err)
	}
	defer rows.Close()

	var found []persist.Indexer
	for rows.Next() {
		var (
			idx            persist.Indexer
			lastBlock      int64
			strategyParams []byte
		)
		if err := rows.Scan(&idx.ID, &idx.Name, &lastBlock, &idx.Strategy, &idx.ShortSleepSeconds, &idx.LongSleepSeconds, &strategyParams, &idx.NetworkID, &idx.Status, &idx.IndexerType); err != nil {
			return persist.Indexer{}, persist.Errorf("scanning indexer row: %s", err)
		}
		idx.LastBlock = uint64(lastBlock)
		if len(strategyParams) > 0 {
			idx.StrategyParams = json.RawMessage(strategyParams)
		}
		found = append(found, idx)
	}
	if err := rows.Err(); err != nil {
		return persist.Indexer{}, persist.Errorf("reading indexer rows: %s", err)
	}

	if len(found) != 1 {
		return persist.Indexer{}, persist.ErrNotFound{Entity: "indexer", Key: name}
	}
	return found[0], nil
}

// UpdateLastBlock advances the cursor for the named indexer. Called only
// after a whole window's transfers have committed.
func (r *IndexerRepository) UpdateLastBlock(ctx context.Context, indexer *persist.Indexer, newLastBlock uint64) error {
	query := fmt.Sprintf(`UPDATE %s SET last_block = $1 WHERE name = $2`, indexerTable)
	result, err := r.db.ExecContext(ctx, query, int64(newLastBlock), indexer.Name)
	if err != nil {
		return persist.Errorf("updating last_block for indexer %s to %d: %s", indexer.Name, newLastBlock, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return persist.Errorf("updating last_block for indexer %s: %s", indexer.Name, err)
	}
	if affected == 0 {
		return persist.ErrNotFound{Entity: "indexer", Key: indexer.Name}
	}
	indexer.LastBlock = newLastBlock
	return nil
}
