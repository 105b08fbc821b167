package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stryukovsky/go-evm-indexer/persist"
)

const networkTable = "indexer_api_network"

// NetworkRepository loads Network rows. Networks are read-only to this
// module.
type NetworkRepository struct {
	db *sql.DB
}

func NewNetworkRepository(db *sql.DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

// LoadByID returns the single Network row with the given id. Zero or more
// than one matching row is an error.
func (r *NetworkRepository) LoadByID(ctx context.Context, id int64) (persist.Network, error) {
	query := fmt.Sprintf(`SELECT id, chain_id, name, rpc_url, max_step, network_type, need_poa, explorer_url FROM %s WHERE id = $1`, networkTable)
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return persist.Network{}, persist.Errorf("loading network %d: %s", id, err)
	}
	defer rows.Close()

	var found []persist.Network
	for rows.Next() {
		var (
			net     persist.Network
			maxStep int64
		)
		if err := rows.Scan(&net.ID, &net.ChainID, &net.Name, &net.RPCURL, &maxStep, &net.NetworkType, &net.NeedPoA, &net.ExplorerURL); err != nil {
			return persist.Network{}, persist.Errorf("scanning network row: %s", err)
		}
		net.MaxStep = uint64(maxStep)
		found = append(found, net)
	}
	if err := rows.Err(); err != nil {
		return persist.Network{}, persist.Errorf("reading network rows: %s", err)
	}

	if len(found) != 1 {
		return persist.Network{}, persist.ErrNotFound{Entity: "network", Key: fmt.Sprintf("%d", id)}
	}
	return found[0], nil
}
