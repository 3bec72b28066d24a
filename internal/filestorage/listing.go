package filestorage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filestorage/internal/gateway"
)

// FileInfo describes one stored file of an owner.
type FileInfo struct {
	Name        string
	Size        int64
	StoragePath string
	// UploadingProgress is the whole percentage of chunk slots uploaded.
	UploadingProgress int
}

// UploadingProgress returns floor(100 * uploaded / total) over the chunk
// status vector. A file with no chunks is reported as fully uploaded.
func UploadingProgress(status []bool) int {
	if len(status) == 0 {
		return 100
	}
	var uploaded int
	for _, ok := range status {
		if ok {
			uploaded++
		}
	}
	return uploaded * 100 / len(status)
}

// ListFiles returns the files of owner as reported by the gateway.
func (c *Client) ListFiles(ctx context.Context, owner string) ([]FileInfo, error) {
	records, err := c.gw.GetFileInfoList(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list files of %s: %w", owner, err)
	}

	files := make([]FileInfo, 0, len(records))
	for _, r := range records {
		files = append(files, FileInfo{
			Name:              r.Name,
			Size:              r.Size,
			StoragePath:       gateway.StoragePath(owner, r.Name),
			UploadingProgress: UploadingProgress(r.IsChunkUploaded),
		})
	}
	return files, nil
}
