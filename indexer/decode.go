package indexer

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/stryukovsky/go-evm-indexer/indexer/abiword"
	"github.com/stryukovsky/go-evm-indexer/persist"
)

// decoder translates a raw log belonging to its target token into a
// normalized Transfer.
type decoder interface {
	decode(log types.Log) (persist.Transfer, error)
}

// decoderFor is the total dispatch from a token's standard to its decoder.
func decoderFor(token persist.Token) (decoder, error) {
	switch token.Standard {
	case persist.StandardERC20:
		return fungibleDecoder{token: token}, nil
	case persist.StandardERC721:
		return nonFungibleDecoder{token: token}, nil
	case persist.StandardERC1155:
		return multiTokenDecoder{token: token}, nil
	default:
		return nil, persist.Errorf("token %s has unsupported standard %q", token.Name, token.Standard)
	}
}

// preflight runs the checks shared by every decoder: address match, tx hash
// presence, topic count, and signature membership. It returns the checked
// topic count and the log's event signature.
func preflight(log types.Log, token persist.Token) (topicCount int, signature common.Hash, err error) {
	address := abiword.Bytes20ToAddress(log.Address)
	if !token.MatchesAddress(address) {
		return 0, common.Hash{}, persist.Errorf("mismatch: parser target token is %s but event address is %s", token.Address, address)
	}

	if log.TxHash == (common.Hash{}) {
		return 0, common.Hash{}, persist.Errorf("event has no tx hash, abort")
	}

	topicCount = len(log.Topics)
	if topicCount != 3 && topicCount != 4 {
		return 0, common.Hash{}, persist.Errorf("bad event: expected 3 or 4 topics, actual %d", topicCount)
	}

	signature = log.Topics[0]
	if !containsHash(token.Standard.EventHashes(), signature) {
		return 0, common.Hash{}, persist.Errorf("token %s should accept event(s) with signature(s) %v, encountered signature %s", token.Name, token.Standard.EventHashes(), signature.Hex())
	}

	return topicCount, signature, nil
}

func containsHash(hashes []common.Hash, target common.Hash) bool {
	for _, h := range hashes {
		if h == target {
			return true
		}
	}
	return false
}

// participants extracts sender and recipient from topics[1] and topics[2].
func participants(log types.Log) (sender, recipient string) {
	return abiword.WordToAddress(log.Topics[1]), abiword.WordToAddress(log.Topics[2])
}

// valueWord returns the single 32-byte word that carries a fungible amount
// or non-fungible token id: topics[3] when the value is indexed (4 topics),
// or the 32-byte data payload when it is not (3 topics).
func valueWord(log types.Log, topicCount int, txHash string) (abiword.Word, error) {
	switch {
	case topicCount == 4:
		return log.Topics[3], nil
	case topicCount == 3 && len(log.Data) == 32:
		var w abiword.Word
		copy(w[:], log.Data)
		return w, nil
	default:
		return abiword.Word{}, persist.Errorf("bad event %s: expected either 3 topics with 32-byte data or 4 topics", txHash)
	}
}
