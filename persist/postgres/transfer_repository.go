package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/stryukovsky/go-evm-indexer/persist"
)

const transferTable = "indexer_api_tokentransfer"

const insertTransferQuery = `INSERT INTO ` + transferTable +
	` (operator, sender, recipient, tx_hash, token_id, amount, token_instance_id, fetched_by_id)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// TransferRepository persists decoded Transfers as TokenTransfer rows.
type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// SaveBatch persists transfers within a single database transaction,
// fanning each Transfer out into one or more rows (one per token id for a
// multi-token transfer, one row otherwise). Preparation failures abort
// before any row is inserted; commit failure is a hard error.
func (r *TransferRepository) SaveBatch(ctx context.Context, transfers []persist.Transfer, token persist.Token, indexer persist.Indexer) error {
	if len(transfers) == 0 {
		return nil
	}

	rows := make([]persist.TokenTransfer, 0, len(transfers))
	for _, transfer := range transfers {
		built, err := persist.BuildTokenTransferRows(transfer, token.ID, indexer.ID)
		if err != nil {
			return persist.Errorf("preparing transfer rows: %s", err)
		}
		rows = append(rows, built...)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persist.Errorf("beginning transfer transaction: %s", err)
	}

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insertTransferQuery,
			row.Operator, row.Sender, row.Recipient, row.TxHash,
			decimal.NewFromBigInt(row.TokenID, 0),
			decimal.NewFromBigInt(row.Amount, 0),
			row.TokenInstanceID, row.FetchedByID,
		); err != nil {
			_ = tx.Rollback()
			return persist.Errorf("inserting token transfer at %s: %s", row.TxHash, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persist.Errorf("committing transfer transaction: %s", err)
	}
	return nil
}
