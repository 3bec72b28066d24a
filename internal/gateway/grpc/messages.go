package grpc

import (
	"fmt"

	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
)

type empty struct{}

type startUploadRequest struct {
	Owner     string `json:"owner"`
	FileName  string `json:"file_name"`
	TotalSize int64  `json:"total_size"`
}

type uploadChunkRequest struct {
	Owner    string `json:"owner"`
	FileName string `json:"file_name"`
	Offset   int64  `json:"offset"`
	Payload  string `json:"payload"`
}

type fileRequest struct {
	Owner    string `json:"owner"`
	FileName string `json:"file_name"`
}

type pathRequest struct {
	StoragePath string `json:"storage_path"`
}

type sizeResponse struct {
	Size int64 `json:"size"`
}

type readChunkRequest struct {
	StoragePath string `json:"storage_path"`
	Offset      int64  `json:"offset"`
	Length      int64  `json:"length"`
}

// Words travel as unprefixed hex, one string per word.
type readChunkResponse struct {
	Words []string `json:"words"`
}

type ownerRequest struct {
	Owner string `json:"owner"`
}

type fileRecord struct {
	Name            string `json:"name"`
	Size            int64  `json:"size"`
	IsChunkUploaded []bool `json:"is_chunk_uploaded"`
}

type fileInfoListResponse struct {
	Files []fileRecord `json:"files"`
}

func encodeWords(words []codec.Word) []string {
	out := make([]string, len(words))
	for i := range words {
		out[i] = codec.BytesToHex(words[i][:])
	}
	return out
}

func decodeWords(in []string) ([]codec.Word, error) {
	out := make([]codec.Word, len(in))
	for i, s := range in {
		b, err := codec.HexToBytes(s)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		if len(b) != common.WordSize {
			return nil, fmt.Errorf("word %d has %d bytes", i, len(b))
		}
		copy(out[i][:], b)
	}
	return out, nil
}

func fromRecords(recs []gateway.FileRecord) []fileRecord {
	out := make([]fileRecord, len(recs))
	for i, r := range recs {
		out[i] = fileRecord{Name: r.Name, Size: r.Size, IsChunkUploaded: r.IsChunkUploaded}
	}
	return out
}

func toRecords(in []fileRecord) []gateway.FileRecord {
	out := make([]gateway.FileRecord, len(in))
	for i, r := range in {
		status := r.IsChunkUploaded
		if status == nil {
			status = []bool{}
		}
		out[i] = gateway.FileRecord{Name: r.Name, Size: r.Size, IsChunkUploaded: status}
	}
	return out
}
