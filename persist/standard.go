package persist

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// TokenStandard is the closed enumeration of token standards this indexer
// understands: fungible (erc20), non-fungible (erc721), and multi-token
// (erc1155).
type TokenStandard string

const (
	StandardERC20   TokenStandard = "erc20"
	StandardERC721  TokenStandard = "erc721"
	StandardERC1155 TokenStandard = "erc1155"
)

// Canonical event signatures, matching the original indexer's
// token_type.rs constants.
const (
	signatureTransfer       = "Transfer(address,address,uint256)"
	signatureTransferSingle = "TransferSingle(address,address,uint256,uint256)"
	signatureTransferBatch  = "TransferBatch(address,address,uint256[],uint256[])"
)

var (
	TransferEventHash       = crypto.Keccak256Hash([]byte(signatureTransfer))
	TransferSingleEventHash = crypto.Keccak256Hash([]byte(signatureTransferSingle))
	TransferBatchEventHash  = crypto.Keccak256Hash([]byte(signatureTransferBatch))
)

// ParseTokenStandard converts the exact lowercase labels used by the schema
// into a TokenStandard. Any other label is a configuration error.
func ParseTokenStandard(label string) (TokenStandard, error) {
	switch TokenStandard(label) {
	case StandardERC20, StandardERC721, StandardERC1155:
		return TokenStandard(label), nil
	default:
		return "", Errorf("unknown token standard %q", label)
	}
}

func (s TokenStandard) String() string {
	return string(s)
}

// EventHashes returns the ordered list of event topic-0 signatures this
// standard's contracts emit.
func (s TokenStandard) EventHashes() []common.Hash {
	switch s {
	case StandardERC20, StandardERC721:
		return []common.Hash{TransferEventHash}
	case StandardERC1155:
		return []common.Hash{TransferSingleEventHash, TransferBatchEventHash}
	default:
		return nil
	}
}
