package indexer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/stryukovsky/go-evm-indexer/indexer/abiword"
	"github.com/stryukovsky/go-evm-indexer/persist"
)

// multiTokenDecoder decodes erc1155 TransferSingle and TransferBatch events.
type multiTokenDecoder struct {
	token persist.Token
}

func (d multiTokenDecoder) decode(log types.Log) (persist.Transfer, error) {
	_, signature, err := preflight(log, d.token)
	if err != nil {
		return persist.Transfer{}, err
	}
	sender, recipient := participants(log)
	txHash := abiword.Bytes32ToString(log.TxHash)
	data := log.Data

	switch signature {
	case persist.TransferSingleEventHash:
		if len(data) != 64 {
			return persist.Transfer{}, persist.Errorf("erc1155 TransferSingle at %s expected 64 bytes for data, found %d", txHash, len(data))
		}
		var tokenIDWord, amountWord abiword.Word
		copy(tokenIDWord[:], data[0:32])
		copy(amountWord[:], data[32:64])
		tokenID := abiword.WordToUint256(tokenIDWord)
		amount := abiword.WordToUint256(amountWord)
		return mustMultiToken(d.token.Address, sender, recipient, txHash, []*big.Int{tokenID}, []*big.Int{amount})

	case persist.TransferBatchEventHash:
		if len(data) < 64 || len(data)%32 != 0 {
			return persist.Transfer{}, persist.Errorf("erc1155 TransferBatch at %s expected at least 64 bytes of data in whole 32-byte words, found %d", txHash, len(data))
		}
		var tokenIDsOffsetWord, amountsOffsetWord abiword.Word
		copy(tokenIDsOffsetWord[:], data[0:32])
		copy(amountsOffsetWord[:], data[32:64])
		tokenIDsOffset, err := abiword.WordToUsize(tokenIDsOffsetWord)
		if err != nil {
			return persist.Transfer{}, persist.Errorf("decoding TransferBatch token ids offset at %s: %s", txHash, err)
		}
		amountsOffset, err := abiword.WordToUsize(amountsOffsetWord)
		if err != nil {
			return persist.Transfer{}, persist.Errorf("decoding TransferBatch amounts offset at %s: %s", txHash, err)
		}
		tokenIDs, err := abiword.ReadUint256Array(data, tokenIDsOffset)
		if err != nil {
			return persist.Transfer{}, persist.Errorf("decoding TransferBatch token ids at %s: %s", txHash, err)
		}
		amounts, err := abiword.ReadUint256Array(data, amountsOffset)
		if err != nil {
			return persist.Transfer{}, persist.Errorf("decoding TransferBatch amounts at %s: %s", txHash, err)
		}
		return mustMultiToken(d.token.Address, sender, recipient, txHash, tokenIDs, amounts)

	default:
		return persist.Transfer{}, persist.Errorf("bad event signature %s for erc1155 token %s", signature.Hex(), d.token.Name)
	}
}

func mustMultiToken(contractAddress, sender, recipient, txHash string, tokenIDs, amounts []*big.Int) (persist.Transfer, error) {
	transfer, err := persist.NewMultiTokenTransfer(contractAddress, sender, recipient, txHash, tokenIDs, amounts)
	if err != nil {
		return persist.Transfer{}, err
	}
	return transfer, nil
}
