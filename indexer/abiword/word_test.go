package abiword

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordFromUint64(t *testing.T, v uint64) Word {
	t.Helper()
	var w Word
	big.NewInt(0).SetUint64(v).FillBytes(w[12:])
	return w
}

func TestParseHexToWordThenWordToAddressRoundTrips(t *testing.T) {
	addr := "0x000000000000000000000000000000000000000a"
	w, err := ParseHexToWord(addr)
	require.NoError(t, err)
	assert.Equal(t, addr, WordToAddress(w))
}

func TestParseHexToWordRejectsOversizedInput(t *testing.T) {
	_, err := ParseHexToWord("0x" + strings.Repeat("00", wordSize+1))
	assert.Error(t, err)
}

func TestWordToUint256IsOrderPreserving(t *testing.T) {
	a := wordFromUint64(t, 100)
	b := wordFromUint64(t, 101)
	assert.True(t, WordToUint256(a).Cmp(WordToUint256(b)) <= 0)
}

func TestWordToUint256ZeroWord(t *testing.T) {
	assert.Equal(t, 0, big.NewInt(0).Cmp(WordToUint256(Word{})))
}

func TestReadUint256ArrayDecodesTwoArraysAtDistinctOffsets(t *testing.T) {
	// token_ids offset=0x40, amounts offset=0xA0, token_ids=[3,4], amounts=[30,40].
	data := make([]byte, 0, 8*wordSize)
	appendWord := func(v uint64) {
		var w Word
		big.NewInt(0).SetUint64(v).FillBytes(w[12:])
		data = append(data, w[:]...)
	}
	appendWord(0x40)
	appendWord(0xA0)
	appendWord(2)
	appendWord(3)
	appendWord(4)
	appendWord(2)
	appendWord(30)
	appendWord(40)

	tokenIDs, err := ReadUint256Array(data, 0x40)
	require.NoError(t, err)
	require.Len(t, tokenIDs, 2)
	assert.Equal(t, big.NewInt(3), tokenIDs[0])
	assert.Equal(t, big.NewInt(4), tokenIDs[1])

	amounts, err := ReadUint256Array(data, 0xA0)
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	assert.Equal(t, big.NewInt(30), amounts[0])
	assert.Equal(t, big.NewInt(40), amounts[1])
}

func TestReadUint256ArrayOutOfBounds(t *testing.T) {
	data := make([]byte, wordSize)
	_, err := ReadUint256Array(data, wordSize)
	assert.Error(t, err)
}

func TestReadUint256ArrayLengthOverflowsBounds(t *testing.T) {
	data := make([]byte, 2*wordSize)
	var lengthWord Word
	big.NewInt(0).SetUint64(5).FillBytes(lengthWord[12:])
	copy(data[0:wordSize], lengthWord[:])
	_, err := ReadUint256Array(data, 0)
	assert.Error(t, err)
}
