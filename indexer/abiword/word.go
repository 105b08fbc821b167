// Package abiword decodes the 32-byte ABI words that make up an EVM log's
// topics and data payload: addresses, big-endian unsigned integers, and the
// offset-indirected dynamic arrays used by batch events such as
// TransferBatch(address,address,uint256[],uint256[]).
package abiword

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Word is a single 32-byte ABI word, the base unit of log topics and data.
type Word = common.Hash

const wordSize = 32

// ParseHexToWord decodes a `0x`-prefixed or bare hex string into a Word,
// left-padding with zero bytes if it is shorter than 32 bytes.
func ParseHexToWord(s string) (Word, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	raw, err := hexutil.Decode("0x" + trimmed)
	if err != nil {
		return Word{}, fmt.Errorf("parsing hex word %q: %w", s, err)
	}
	if len(raw) > wordSize {
		return Word{}, fmt.Errorf("hex word %q is longer than %d bytes", s, wordSize)
	}
	var w Word
	copy(w[wordSize-len(raw):], raw)
	return w, nil
}

// WordToAddress returns the rightmost 20 bytes of w as a lower-case 0x-prefixed
// address string.
func WordToAddress(w Word) string {
	return strings.ToLower(common.BytesToAddress(w[12:]).Hex())
}

// Bytes20ToAddress formats an already-20-byte address as a lower-case
// 0x-prefixed string.
func Bytes20ToAddress(b common.Address) string {
	return strings.ToLower(b.Hex())
}

// Bytes32ToString formats a 32-byte word (typically a transaction hash) as a
// lower-case 0x-prefixed hex string.
func Bytes32ToString(w Word) string {
	return strings.ToLower(w.Hex())
}

// WordToUint256 decodes w as a big-endian unsigned integer. An all-zero word
// decodes to zero.
func WordToUint256(w Word) *big.Int {
	return new(big.Int).SetBytes(w[:])
}

// WordToUsize decodes w as a non-negative machine-sized integer, used only
// for ABI dynamic-array offsets. It fails if the value overflows uint64.
func WordToUsize(w Word) (uint64, error) {
	value := WordToUint256(w)
	if !value.IsUint64() {
		return 0, fmt.Errorf("offset word %s overflows uint64", value.String())
	}
	return value.Uint64(), nil
}

// ReadUint256Array reads a dynamic uint256[] ABI-encoded at offsetBytes within
// data: a 32-byte length word n, followed by n 32-byte big-endian words.
func ReadUint256Array(data []byte, offsetBytes uint64) ([]*big.Int, error) {
	if offsetBytes+wordSize > uint64(len(data)) {
		return nil, fmt.Errorf("array length word at offset %d is out of bounds (data length %d)", offsetBytes, len(data))
	}
	var lengthWord Word
	copy(lengthWord[:], data[offsetBytes:offsetBytes+wordSize])
	length, err := WordToUsize(lengthWord)
	if err != nil {
		return nil, fmt.Errorf("decoding array length at offset %d: %w", offsetBytes, err)
	}

	elementsStart := offsetBytes + wordSize
	elementsEnd := elementsStart + length*wordSize
	if elementsEnd > uint64(len(data)) {
		return nil, fmt.Errorf("array of %d elements at offset %d extends past data length %d", length, offsetBytes, len(data))
	}

	result := make([]*big.Int, 0, length)
	for i := uint64(0); i < length; i++ {
		start := elementsStart + i*wordSize
		var w Word
		copy(w[:], data[start:start+wordSize])
		result = append(result, WordToUint256(w))
	}
	return result, nil
}
