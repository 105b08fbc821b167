package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stryukovsky/go-evm-indexer/persist"
)

const (
	tokenTable               = "indexer_api_token"
	indexerWatchedTokenTable = "indexer_api_indexer_watched_tokens"
)

// TokenRepository loads the watched Token set for an indexer. Tokens are
// read-only to this module.
type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// LoadByIndexer returns every Token watched by the given indexer, joined
// through the indexer-tokens association table.
func (r *TokenRepository) LoadByIndexer(ctx context.Context, indexerID int64) ([]persist.Token, error) {
	query := fmt.Sprintf(
		`SELECT t.id, t.address, t.name, t.strategy, t.token_type, t.total_supply, t.volume, t.network_id
		 FROM %s t
		 INNER JOIN %s w ON t.id = w.token_id
		 WHERE w.indexer_id = $1`,
		tokenTable, indexerWatchedTokenTable,
	)
	rows, err := r.db.QueryContext(ctx, query, indexerID)
	if err != nil {
		return nil, persist.Errorf("loading tokens for indexer %d: %s", indexerID, err)
	}
	defer rows.Close()

	var tokens []persist.Token
	for rows.Next() {
		var (
			token                   persist.Token
			standardLabel           string
			totalSupply, volume decimal.Decimal
		)
		if err := rows.Scan(&token.ID, &token.Address, &token.Name, &token.Strategy, &standardLabel, &totalSupply, &volume, &token.NetworkID); err != nil {
			return nil, persist.Errorf("scanning token row: %s", err)
		}
		standard, err := persist.ParseTokenStandard(standardLabel)
		if err != nil {
			return nil, err
		}
		token.Address = persist.NormalizeAddress(token.Address)
		token.Standard = standard
		token.TotalSupply = totalSupply
		token.Volume = volume
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, persist.Errorf("reading token rows: %s", err)
	}
	return tokens, nil
}
