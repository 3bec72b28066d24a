// Package codec converts chunk payloads between raw bytes and the hexadecimal
// wire form expected by the storage contract.
//
// Writes carry "0x"-prefixed hex strings with two characters per byte. Reads
// come back as fixed-width 32-byte words; the caller knows the exact byte
// length it asked for and discards the padding of the last word.
package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// WirePrefix marks hex payloads and addresses in the contract ABI.
const WirePrefix = "0x"

// ErrShortPayload is returned when a payload holds fewer bytes than requested.
var ErrShortPayload = errors.New("payload shorter than requested length")

// Word is one fixed-width unit of chunk read-back.
type Word [common.WordSize]byte

// BytesToHex encodes b as lowercase hex without separators or prefix.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexToBytes decodes a hex string, with or without the wire prefix.
func HexToBytes(s string) ([]byte, error) {
	b, err := hexutil.Decode(AddWirePrefix(s))
	if err != nil {
		return nil, fmt.Errorf("decode hex payload: %w", err)
	}
	return b, nil
}

// HexToBytesN decodes exactly n bytes from the head of s. Anything after the
// first 2*n hex characters is padding and is dropped.
func HexToBytesN(s string, n int) ([]byte, error) {
	s = StripWirePrefix(s)
	if n < 0 || len(s) < 2*n {
		return nil, fmt.Errorf("want %d bytes, have %d hex chars: %w", n, len(s), ErrShortPayload)
	}
	return HexToBytes(s[:2*n])
}

// AddWirePrefix prepends the wire prefix unless s already carries it.
func AddWirePrefix(s string) string {
	if hasWirePrefix(s) {
		return s
	}
	return WirePrefix + s
}

// StripWirePrefix removes a leading "0x" or "0X".
func StripWirePrefix(s string) string {
	if hasWirePrefix(s) {
		return s[len(WirePrefix):]
	}
	return s
}

func hasWirePrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// EncodePayload is the upload form of a chunk: prefixed hex.
func EncodePayload(b []byte) string {
	return hexutil.Encode(b)
}

// PackWords lays b out in zero-padded words, the way the contract returns
// chunk data.
func PackWords(b []byte) []Word {
	words := make([]Word, (len(b)+common.WordSize-1)/common.WordSize)
	for i := range words {
		copy(words[i][:], b[i*common.WordSize:])
	}
	return words
}

// ConcatWords joins words into one hex string and decodes the first n bytes.
func ConcatWords(words []Word, n int) ([]byte, error) {
	var sb strings.Builder
	sb.Grow(len(words) * common.WordSize * 2)
	for i := range words {
		sb.WriteString(hex.EncodeToString(words[i][:]))
	}
	return HexToBytesN(sb.String(), n)
}
