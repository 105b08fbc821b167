package indexer

import (
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/stryukovsky/go-evm-indexer/indexer/abiword"
	"github.com/stryukovsky/go-evm-indexer/persist"
)

// fungibleDecoder decodes erc20 Transfer(address,address,uint256) events.
type fungibleDecoder struct {
	token persist.Token
}

func (d fungibleDecoder) decode(log types.Log) (persist.Transfer, error) {
	topicCount, _, err := preflight(log, d.token)
	if err != nil {
		return persist.Transfer{}, err
	}
	sender, recipient := participants(log)
	txHash := abiword.Bytes32ToString(log.TxHash)

	word, err := valueWord(log, topicCount, txHash)
	if err != nil {
		return persist.Transfer{}, err
	}
	amount := abiword.WordToUint256(word)

	return persist.NewFungibleTransfer(d.token.Address, sender, recipient, txHash, amount), nil
}
