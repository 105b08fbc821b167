package indexer

import (
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/stryukovsky/go-evm-indexer/indexer/abiword"
	"github.com/stryukovsky/go-evm-indexer/persist"
)

// nonFungibleDecoder decodes erc721 Transfer(address,address,uint256) events,
// interpreting the value word as a token id instead of an amount.
type nonFungibleDecoder struct {
	token persist.Token
}

func (d nonFungibleDecoder) decode(log types.Log) (persist.Transfer, error) {
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
	tokenID := abiword.WordToUint256(word)

	return persist.NewNonFungibleTransfer(d.token.Address, sender, recipient, txHash, tokenID), nil
}
