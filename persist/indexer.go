package persist

import (
	"encoding/json"
	"fmt"
)

// Indexer is a named indexer configuration: which network it watches, how far
// it has progressed (LastBlock, the cursor), and which strategy constrains
// its log filters. Created and deleted out of band; this module only ever
// advances LastBlock.
type Indexer struct {
	ID                int64
	Name              string
	LastBlock         uint64
	Strategy          string
	StrategyParams    json.RawMessage // nullable; opaque to everything but the chosen Strategy
	ShortSleepSeconds int64
	LongSleepSeconds  int64
	NetworkID         int64
	Status            string
	IndexerType       string
}

// String renders a one-line human summary, used for the "Starting indexer"
// log line, mirroring the original's Display impl for Indexer.
func (i Indexer) String() string {
	return fmt.Sprintf("Indexer %s(#%d, %s) on network %d with last block at %d and strategy %s is %s",
		i.Name, i.ID, i.IndexerType, i.NetworkID, i.LastBlock, i.Strategy, i.Status)
}
