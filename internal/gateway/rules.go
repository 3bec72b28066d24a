package gateway

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/common"
)

// Rules holds the contract checks shared by the local gateway
// implementations. ChunkLength must match the client's chunk length.
type Rules struct {
	ChunkLength int64
}

// CheckStart validates a StartUpload request.
func (r Rules) CheckStart(fileName string, totalSize int64) error {
	if fileName == "" || strings.Contains(fileName, "/") {
		return fmt.Errorf("%q: %w", fileName, ErrInvalidFileName)
	}
	if totalSize < 0 || ChunkCount(totalSize, r.ChunkLength) > MaxChunkCount {
		return fmt.Errorf("%d: %w", totalSize, ErrInvalidSize)
	}
	return nil
}

// CheckChunk validates an UploadChunk request against rec and returns the
// chunk index together with the decoded bytes.
func (r Rules) CheckChunk(rec FileRecord, offset int64, payload string) (int, []byte, error) {
	if offset < 0 || offset >= rec.Size || offset%r.ChunkLength != 0 {
		return 0, nil, fmt.Errorf("offset %d of %d bytes: %w", offset, rec.Size, ErrInvalidChunk)
	}

	data, err := codec.HexToBytes(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("%v: %w", err, ErrInvalidChunk)
	}

	want := min(r.ChunkLength, rec.Size-offset)
	if int64(len(data)) != want {
		return 0, nil, fmt.Errorf("chunk at %d has %d bytes, want %d: %w", offset, len(data), want, ErrInvalidChunk)
	}

	index := int(offset / r.ChunkLength)
	if rec.IsChunkUploaded[index] {
		return 0, nil, fmt.Errorf("chunk %d: %w", index, ErrChunkAlreadyUploaded)
	}

	return index, data, nil
}

// CheckFinish fails unless every chunk slot of rec is set.
func (r Rules) CheckFinish(rec FileRecord) error {
	if !rec.Complete() {
		return fmt.Errorf("%s: %w", rec.Name, ErrIncompleteUpload)
	}
	return nil
}

// MaxChunkCount bounds the chunk status vector of one file.
const MaxChunkCount = 1 << 20

// MaxReadLength is the most a single ReadChunk returns: the contract answers
// with a fixed array of 32768 words.
const MaxReadLength int64 = 32768 * common.WordSize

// CheckRead validates a ReadChunk range.
func (r Rules) CheckRead(rec FileRecord, offset, length int64) error {
	if offset < 0 || length < 0 || offset > rec.Size || length > rec.Size-offset {
		return fmt.Errorf("offset %d length %d of %d bytes: %w", offset, length, rec.Size, ErrOutOfRange)
	}
	if length > MaxReadLength {
		return fmt.Errorf("length %d over %d: %w", length, MaxReadLength, ErrOutOfRange)
	}
	return nil
}

// Chunks returns the indices of the chunks overlapping [offset, offset+length).
func (r Rules) Chunks(offset, length int64) (first, last int) {
	if length == 0 {
		return 0, -1
	}
	return int(offset / r.ChunkLength), int((offset + length - 1) / r.ChunkLength)
}
