package ledger

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DefaultContractAddress is the filestorage predeployed contract on SKALE
// chains.
const DefaultContractAddress = "0x69362535ec535F0643cBf62D16aDeDCAf32Ee6F7"

// maxBlockCount is the fixed length of the word array readChunk returns.
const maxBlockCount = 1 << 15

const contractABI = `[
  {"type":"function","name":"startUpload","stateMutability":"nonpayable",
   "inputs":[{"name":"fileName","type":"string"},{"name":"fileSize","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"uploadChunk","stateMutability":"nonpayable",
   "inputs":[{"name":"fileName","type":"string"},{"name":"position","type":"uint256"},{"name":"data","type":"bytes"}],"outputs":[]},
  {"type":"function","name":"finishUpload","stateMutability":"nonpayable",
   "inputs":[{"name":"fileName","type":"string"}],"outputs":[]},
  {"type":"function","name":"deleteFile","stateMutability":"nonpayable",
   "inputs":[{"name":"fileName","type":"string"}],"outputs":[]},
  {"type":"function","name":"readChunk","stateMutability":"view",
   "inputs":[{"name":"storagePath","type":"string"},{"name":"position","type":"uint256"},{"name":"length","type":"uint256"}],
   "outputs":[{"name":"out","type":"bytes32[32768]"}]},
  {"type":"function","name":"getFileSize","stateMutability":"view",
   "inputs":[{"name":"storagePath","type":"string"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getFileInfoList","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"}],
   "outputs":[{"name":"","type":"tuple[]","components":[
     {"name":"name","type":"string"},
     {"name":"size","type":"uint256"},
     {"name":"isChunkUploaded","type":"bool[]"}]}]}
]`

// fileInfo matches the struct type the ABI decoder builds for the
// getFileInfoList tuple, tags included, so decoded values convert directly.
type fileInfo = struct {
	Name            string   `json:"name"`
	Size            *big.Int `json:"size"`
	IsChunkUploaded []bool   `json:"isChunkUploaded"`
}

var parsedABI = mustParseABI()

func mustParseABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		panic(err)
	}
	return parsed
}
