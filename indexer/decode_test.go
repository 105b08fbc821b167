package indexer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stryukovsky/go-evm-indexer/indexer/abiword"
	"github.com/stryukovsky/go-evm-indexer/persist"
)

const watchedTokenAddress = "0x0000000000000000000000000000000000000abc"

func hashFromUint64(v uint64) common.Hash {
	var h common.Hash
	big.NewInt(0).SetUint64(v).FillBytes(h[:])
	return h
}

func addressTopic(addr string) common.Hash {
	w, err := abiword.ParseHexToWord(addr)
	if err != nil {
		panic(err)
	}
	return w
}

func newTestLog(address common.Address, topics []common.Hash, data []byte) types.Log {
	return types.Log{
		Address: address,
		Topics:  topics,
		Data:    data,
		TxHash:  common.HexToHash("0x01"),
	}
}

func fungibleTestToken() persist.Token {
	return persist.Token{Address: watchedTokenAddress, Name: "coin", Standard: persist.StandardERC20}
}

func TestDecodeERC20FourTopicsUsesIndexedAmount(t *testing.T) {
	token := fungibleTestToken()
	log := newTestLog(common.HexToAddress(watchedTokenAddress), []common.Hash{
		persist.TransferEventHash,
		addressTopic("0x000000000000000000000000000000000000000a"),
		addressTopic("0x000000000000000000000000000000000000000b"),
		hashFromUint64(100),
	}, nil)

	d, err := decoderFor(token)
	require.NoError(t, err)
	transfer, err := d.decode(log)
	require.NoError(t, err)

	assert.Equal(t, persist.TransferFungible, transfer.Kind)
	assert.Equal(t, "0x000000000000000000000000000000000000000a", transfer.Sender)
	assert.Equal(t, "0x000000000000000000000000000000000000000b", transfer.Recipient)
	assert.Equal(t, big.NewInt(100), transfer.Amount)
}

func TestDecodeERC20ThreeTopicsUsesDataAmount(t *testing.T) {
	token := fungibleTestToken()
	var amountWord abiword.Word
	big.NewInt(250).FillBytes(amountWord[:])
	log := newTestLog(common.HexToAddress(watchedTokenAddress), []common.Hash{
		persist.TransferEventHash,
		addressTopic("0x000000000000000000000000000000000000000a"),
		addressTopic("0x000000000000000000000000000000000000000b"),
	}, amountWord[:])

	d, err := decoderFor(token)
	require.NoError(t, err)
	transfer, err := d.decode(log)
	require.NoError(t, err)

	assert.Equal(t, persist.TransferFungible, transfer.Kind)
	assert.Equal(t, big.NewInt(250), transfer.Amount)
}

func TestDecodeWrongAddressIsMismatch(t *testing.T) {
	token := fungibleTestToken()
	log := newTestLog(common.HexToAddress("0x0000000000000000000000000000000000dead"), []common.Hash{
		persist.TransferEventHash,
		addressTopic("0x000000000000000000000000000000000000000a"),
		addressTopic("0x000000000000000000000000000000000000000b"),
		hashFromUint64(100),
	}, nil)

	d, err := decoderFor(token)
	require.NoError(t, err)
	_, err = d.decode(log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestDecodeERC721TransferYieldsTokenID(t *testing.T) {
	token := persist.Token{Address: watchedTokenAddress, Name: "nft", Standard: persist.StandardERC721}
	log := newTestLog(common.HexToAddress(watchedTokenAddress), []common.Hash{
		persist.TransferEventHash,
		addressTopic("0x000000000000000000000000000000000000000a"),
		addressTopic("0x000000000000000000000000000000000000000b"),
		hashFromUint64(42),
	}, nil)

	d, err := decoderFor(token)
	require.NoError(t, err)
	transfer, err := d.decode(log)
	require.NoError(t, err)

	assert.Equal(t, persist.TransferNonFungible, transfer.Kind)
	assert.Equal(t, big.NewInt(42), transfer.TokenID)
}

func TestDecodeERC1155TransferSingleYieldsOneTokenIDAndAmount(t *testing.T) {
	token := persist.Token{Address: watchedTokenAddress, Name: "multi", Standard: persist.StandardERC1155}
	var tokenIDWord, amountWord abiword.Word
	big.NewInt(7).FillBytes(tokenIDWord[:])
	big.NewInt(1000).FillBytes(amountWord[:])
	data := append(append([]byte{}, tokenIDWord[:]...), amountWord[:]...)

	log := newTestLog(common.HexToAddress(watchedTokenAddress), []common.Hash{
		persist.TransferSingleEventHash,
		addressTopic("0x000000000000000000000000000000000000000a"),
		addressTopic("0x000000000000000000000000000000000000000b"),
	}, data)

	d, err := decoderFor(token)
	require.NoError(t, err)
	transfer, err := d.decode(log)
	require.NoError(t, err)

	assert.Equal(t, persist.TransferMultiToken, transfer.Kind)
	require.Len(t, transfer.TokenIDs, 1)
	require.Len(t, transfer.Amounts, 1)
	assert.Equal(t, big.NewInt(7), transfer.TokenIDs[0])
	assert.Equal(t, big.NewInt(1000), transfer.Amounts[0])
}

func TestDecodeERC1155TransferBatchDecodesOffsetArrays(t *testing.T) {
	token := persist.Token{Address: watchedTokenAddress, Name: "multi", Standard: persist.StandardERC1155}

	appendWord := func(dst []byte, v uint64) []byte {
		var w abiword.Word
		big.NewInt(0).SetUint64(v).FillBytes(w[:])
		return append(dst, w[:]...)
	}
	var data []byte
	data = appendWord(data, 0x40)
	data = appendWord(data, 0xA0)
	data = appendWord(data, 2)
	data = appendWord(data, 3)
	data = appendWord(data, 4)
	data = appendWord(data, 2)
	data = appendWord(data, 30)
	data = appendWord(data, 40)

	log := newTestLog(common.HexToAddress(watchedTokenAddress), []common.Hash{
		persist.TransferBatchEventHash,
		addressTopic("0x000000000000000000000000000000000000000a"),
		addressTopic("0x000000000000000000000000000000000000000b"),
	}, data)

	d, err := decoderFor(token)
	require.NoError(t, err)
	transfer, err := d.decode(log)
	require.NoError(t, err)

	assert.Equal(t, persist.TransferMultiToken, transfer.Kind)
	require.Equal(t, []*big.Int{big.NewInt(3), big.NewInt(4)}, transfer.TokenIDs)
	require.Equal(t, []*big.Int{big.NewInt(30), big.NewInt(40)}, transfer.Amounts)
}
