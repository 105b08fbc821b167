package persist

// Network is the read-only connection and chain configuration an Indexer
// operates against. Mutated only by operators out of band; this module only
// reads it, once per cycle iteration, so that RPC URL and step-size changes
// take effect without a restart.
type Network struct {
	ID           int64
	ChainID      int64
	Name         string
	RPCURL       string
	MaxStep      uint64
	NetworkType  string
	NeedPoA      bool
	ExplorerURL  string
}
