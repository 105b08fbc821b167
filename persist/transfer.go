package persist

import (
	"fmt"
	"math/big"
)

// TransferKind discriminates the Transfer sum type's variant.
type TransferKind string

const (
	TransferFungible    TransferKind = "fungible"
	TransferNonFungible TransferKind = "non_fungible"
	TransferMultiToken  TransferKind = "multi_token"
)

// Transfer is the in-memory, standard-independent representation of a
// decoded token movement. Exactly one of the variant-specific field groups
// is populated, selected by Kind; Go has no sum types, so the constructors
// below are the only supported way to build one.
type Transfer struct {
	Kind            TransferKind
	ContractAddress string
	Sender          string
	Recipient       string
	TxHash          string

	// Fungible
	Amount *big.Int

	// NonFungible
	TokenID *big.Int

	// MultiToken: len(TokenIDs) == len(Amounts)
	TokenIDs []*big.Int
	Amounts  []*big.Int
}

// NewFungibleTransfer builds a Fungible transfer.
func NewFungibleTransfer(contractAddress, sender, recipient, txHash string, amount *big.Int) Transfer {
	return Transfer{
		Kind:            TransferFungible,
		ContractAddress: NormalizeAddress(contractAddress),
		Sender:          sender,
		Recipient:       recipient,
		TxHash:          txHash,
		Amount:          amount,
	}
}

// NewNonFungibleTransfer builds a NonFungible transfer.
func NewNonFungibleTransfer(contractAddress, sender, recipient, txHash string, tokenID *big.Int) Transfer {
	return Transfer{
		Kind:            TransferNonFungible,
		ContractAddress: NormalizeAddress(contractAddress),
		Sender:          sender,
		Recipient:       recipient,
		TxHash:          txHash,
		TokenID:         tokenID,
	}
}

// NewMultiTokenTransfer builds a MultiToken transfer. It returns an
// IndexerError if tokenIDs and amounts differ in length, enforcing the
// invariant |token_ids| == |amounts| at construction time.
func NewMultiTokenTransfer(contractAddress, sender, recipient, txHash string, tokenIDs, amounts []*big.Int) (Transfer, error) {
	if len(tokenIDs) != len(amounts) {
		return Transfer{}, Errorf("multi-token transfer at %s has %d token ids but %d amounts", txHash, len(tokenIDs), len(amounts))
	}
	return Transfer{
		Kind:            TransferMultiToken,
		ContractAddress: NormalizeAddress(contractAddress),
		Sender:          sender,
		Recipient:       recipient,
		TxHash:          txHash,
		TokenIDs:        tokenIDs,
		Amounts:         amounts,
	}, nil
}

// String renders a one-line human summary of the transfer, mirroring the
// original's Display impl for Transaction, used in the cycle's per-transfer
// info log.
func (t Transfer) String() string {
	switch t.Kind {
	case TransferFungible:
		return fmt.Sprintf("%s: %s -> %s fungible %s amount %s", t.TxHash, t.Sender, t.Recipient, t.ContractAddress, t.Amount.String())
	case TransferNonFungible:
		return fmt.Sprintf("%s: %s -> %s NFT %s with id %s", t.TxHash, t.Sender, t.Recipient, t.ContractAddress, t.TokenID.String())
	case TransferMultiToken:
		return fmt.Sprintf("%s: %s -> %s ERC1155 token %s with id(s) %v amount(s) %v", t.TxHash, t.Sender, t.Recipient, t.ContractAddress, t.TokenIDs, t.Amounts)
	default:
		return fmt.Sprintf("%s: %s -> %s unknown transfer", t.TxHash, t.Sender, t.Recipient)
	}
}

// TokenTransfer is a single persisted row. A Transfer fans out into one
// TokenTransfer per (token_id, amount) pair: one row for Fungible/NonFungible,
// len(TokenIDs) rows for MultiToken.
type TokenTransfer struct {
	ID              int64
	Operator        string
	Sender          string
	Recipient       string
	TxHash          string
	TokenID         *big.Int
	Amount          *big.Int
	TokenInstanceID int64
	FetchedByID     int64
}

// BuildTokenTransferRows fans a decoded Transfer out into its persisted rows.
// The operator column always mirrors sender, even for erc1155: the log's
// operator topic isn't tracked separately, so it is not necessarily the
// same party as the from-address.
func BuildTokenTransferRows(t Transfer, tokenInstanceID, fetchedByID int64) ([]TokenTransfer, error) {
	switch t.Kind {
	case TransferFungible:
		return []TokenTransfer{{
			Operator:        t.Sender,
			Sender:          t.Sender,
			Recipient:       t.Recipient,
			TxHash:          t.TxHash,
			TokenID:         big.NewInt(0),
			Amount:          t.Amount,
			TokenInstanceID: tokenInstanceID,
			FetchedByID:     fetchedByID,
		}}, nil
	case TransferNonFungible:
		return []TokenTransfer{{
			Operator:        t.Sender,
			Sender:          t.Sender,
			Recipient:       t.Recipient,
			TxHash:          t.TxHash,
			TokenID:         t.TokenID,
			Amount:          big.NewInt(0),
			TokenInstanceID: tokenInstanceID,
			FetchedByID:     fetchedByID,
		}}, nil
	case TransferMultiToken:
		if len(t.TokenIDs) != len(t.Amounts) {
			return nil, Errorf("multi-token transfer at %s has %d token ids but %d amounts", t.TxHash, len(t.TokenIDs), len(t.Amounts))
		}
		rows := make([]TokenTransfer, 0, len(t.TokenIDs))
		for i := range t.TokenIDs {
			rows = append(rows, TokenTransfer{
				Operator:        t.Sender,
				Sender:          t.Sender,
				Recipient:       t.Recipient,
				TxHash:          t.TxHash,
				TokenID:         t.TokenIDs[i],
				Amount:          t.Amounts[i],
				TokenInstanceID: tokenInstanceID,
				FetchedByID:     fetchedByID,
			})
		}
		return rows, nil
	default:
		return nil, Errorf("transfer at %s has unknown kind %q", t.TxHash, t.Kind)
	}
}
