package indexer

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/stryukovsky/go-evm-indexer/persist"
	"github.com/stryukovsky/go-evm-indexer/service/rpc"
)

// buildLogFilter constructs the wire-shape log filter for one (token, event)
// pair: address = [token.address], block range, and topics =
// [[eventSignature], slot1, slot2, slot3].
func buildLogFilter(token persist.Token, eventSignature common.Hash, slots payloadTopics, fromBlock, toBlock uint64) rpc.LogFilter {
	return rpc.LogFilter{
		Address:   common.HexToAddress(token.Address),
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Topics: [4][]common.Hash{
			{eventSignature},
			slots[0],
			slots[1],
			slots[2],
		},
	}
}
