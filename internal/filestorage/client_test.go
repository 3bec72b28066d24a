package filestorage

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"github.com/dmitrijs2005/filestorage/internal/gateway/memory"
	"github.com/dmitrijs2005/filestorage/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "0x5A11E"

type chunkCall struct {
	offset int64
	length int64
}

// recordingGateway forwards to a memory gateway, records chunk traffic and
// can fail selected operations.
type recordingGateway struct {
	gateway.Gateway

	calls   []string
	uploads []chunkCall
	reads   []chunkCall

	failUploadAt int64
	failRead     error
	failFinish   error
}

func newRecording(chunkLength int64) *recordingGateway {
	return &recordingGateway{Gateway: memory.New(chunkLength), failUploadAt: -1}
}

func (r *recordingGateway) StartUpload(ctx context.Context, owner, fileName string, totalSize int64) error {
	r.calls = append(r.calls, "start")
	return r.Gateway.StartUpload(ctx, owner, fileName, totalSize)
}

func (r *recordingGateway) UploadChunk(ctx context.Context, owner, fileName string, offset int64, payload string) error {
	r.calls = append(r.calls, "chunk")
	data, err := codec.HexToBytes(payload)
	if err != nil {
		return err
	}
	r.uploads = append(r.uploads, chunkCall{offset: offset, length: int64(len(data))})
	if offset == r.failUploadAt {
		return errors.New("reverted")
	}
	return r.Gateway.UploadChunk(ctx, owner, fileName, offset, payload)
}

func (r *recordingGateway) FinishUpload(ctx context.Context, owner, fileName string) error {
	r.calls = append(r.calls, "finish")
	if r.failFinish != nil {
		return r.failFinish
	}
	return r.Gateway.FinishUpload(ctx, owner, fileName)
}

func (r *recordingGateway) ReadChunk(ctx context.Context, storagePath string, offset, length int64) ([]codec.Word, error) {
	r.reads = append(r.reads, chunkCall{offset: offset, length: length})
	if r.failRead != nil && len(r.reads) > 1 {
		return nil, r.failRead
	}
	return r.Gateway.ReadChunk(ctx, storagePath, offset, length)
}

// sink records writes and whether it was closed.
type sink struct {
	bytes.Buffer
	writes int
	closed bool
}

func (s *sink) Write(p []byte) (int, error) {
	s.writes++
	return s.Buffer.Write(p)
}

func (s *sink) Close() error {
	s.closed = true
	return nil
}

func TestUploadDownload_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ctx := context.Background()

	for _, size := range []int{0, 1, 31, 32, 33, 63, 64, 65, 200, 1000} {
		gw := newRecording(64)
		c := New(gw, WithChunkLength(64))

		data := make([]byte, size)
		rng.Read(data)

		path, err := c.UploadFile(ctx, owner, "blob.bin", data)
		require.NoError(t, err)
		assert.Equal(t, "5A11E/blob.bin", path)

		got, err := c.DownloadToBuffer(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, data, got, "size %d", size)

		chunks := gateway.ChunkCount(int64(size), 64)
		require.Len(t, gw.uploads, chunks, "size %d", size)
		if chunks > 0 {
			last := gw.uploads[chunks-1].length
			want := int64(size % 64)
			if want == 0 {
				want = 64
			}
			assert.Equal(t, want, last, "size %d", size)
		}
	}
}

func TestUpload_TenBytesInFourByteChunks(t *testing.T) {
	ctx := context.Background()
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4))
	data := []byte("0123456789")

	path, err := c.UploadFile(ctx, owner, "ten", data)
	require.NoError(t, err)
	assert.Equal(t, []chunkCall{{0, 4}, {4, 4}, {8, 2}}, gw.uploads)
	assert.Equal(t, []string{"start", "chunk", "chunk", "chunk", "finish"}, gw.calls)

	got, err := c.DownloadToBuffer(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, []chunkCall{{0, 4}, {4, 4}, {8, 2}}, gw.reads)
}

func TestUpload_ZeroLengthFile(t *testing.T) {
	ctx := context.Background()
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4))

	path, err := c.UploadFile(ctx, owner, "empty", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "finish"}, gw.calls)
	assert.Empty(t, gw.uploads)

	got, err := c.DownloadToBuffer(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, gw.reads)
}

func TestUpload_ChunkFailureAbortsBeforeFinish(t *testing.T) {
	gw := newRecording(4)
	gw.failUploadAt = 4
	c := New(gw, WithChunkLength(4))

	_, err := c.UploadFile(context.Background(), owner, "f", []byte("0123456789"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverted")
	assert.Equal(t, []string{"start", "chunk", "chunk"}, gw.calls)
}

func TestUpload_ErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4))

	_, err := c.UploadFile(ctx, owner, "f", []byte("abc"))
	require.NoError(t, err)

	_, err = c.UploadFile(ctx, owner, "f", []byte("abc"))
	require.ErrorIs(t, err, gateway.ErrAlreadyExists)

	gw.failFinish = gateway.ErrIncompleteUpload
	_, err = c.UploadFile(ctx, owner, "g", []byte("abc"))
	require.ErrorIs(t, err, gateway.ErrIncompleteUpload)
}

func TestUpload_MismatchedChunkLengthIsRejectedByGateway(t *testing.T) {
	gw := newRecording(8)
	c := New(gw, WithChunkLength(4))

	_, err := c.UploadFile(context.Background(), owner, "f", []byte("0123456789"))
	require.ErrorIs(t, err, gateway.ErrInvalidChunk)
}

func TestDownload_MissingFile(t *testing.T) {
	c := New(newRecording(4), WithChunkLength(4))

	_, err := c.DownloadToBuffer(context.Background(), "5a11e/missing")
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestDownloadToStream_WritesEachChunkAndCloses(t *testing.T) {
	ctx := context.Background()
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4))
	data := []byte("0123456789")

	path, err := c.UploadFile(ctx, owner, "ten", data)
	require.NoError(t, err)

	s := &sink{}
	got, err := c.DownloadToStream(ctx, path, s)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, data, s.Bytes())
	assert.Equal(t, 3, s.writes)
	assert.True(t, s.closed)
}

func TestDownloadToStream_ClosesSinkOnError(t *testing.T) {
	ctx := context.Background()
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4))

	path, err := c.UploadFile(ctx, owner, "ten", []byte("0123456789"))
	require.NoError(t, err)

	boom := errors.New("node went away")
	gw.failRead = boom

	s := &sink{}
	_, err = c.DownloadToStream(ctx, path, s)
	require.ErrorIs(t, err, boom)
	assert.True(t, s.closed)
	assert.Equal(t, []byte("0123"), s.Bytes())
}

func TestDownloadToStream_NilSinkFailsFast(t *testing.T) {
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4))

	_, err := c.DownloadToStream(context.Background(), "5a11e/x", nil)
	require.ErrorIs(t, err, ErrStreamUnavailable)
	assert.Empty(t, gw.reads)
}

func TestDownloadToFile(t *testing.T) {
	ctx := context.Background()
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4), WithLogger(logging.Nop{}))
	data := []byte("file contents")

	path, err := c.UploadFile(ctx, owner, "doc.txt", data)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "downloads")
	local, err := c.DownloadToFile(ctx, path, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc.txt"), local)

	got, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDownloadToFile_RemovesPartialFile(t *testing.T) {
	ctx := context.Background()
	gw := newRecording(4)
	c := New(gw, WithChunkLength(4))

	path, err := c.UploadFile(ctx, owner, "doc.txt", []byte("file contents"))
	require.NoError(t, err)
	gw.failRead = errors.New("boom")

	dir := t.TempDir()
	_, err = c.DownloadToFile(ctx, path, dir)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "doc.txt"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = c.DownloadToFile(ctx, "no-slash", dir)
	require.ErrorIs(t, err, gateway.ErrInvalidStoragePath)
}

func TestDeleteFile(t *testing.T) {
	ctx := context.Background()
	c := New(newRecording(4), WithChunkLength(4))

	path, err := c.UploadFile(ctx, owner, "f", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, c.DeleteFile(ctx, owner, "f"))

	_, err = c.DownloadToBuffer(ctx, path)
	require.ErrorIs(t, err, gateway.ErrNotFound)
	require.ErrorIs(t, c.DeleteFile(ctx, owner, "f"), gateway.ErrNotFound)
}

func TestNew_Defaults(t *testing.T) {
	c := New(newRecording(4), WithChunkLength(0), WithLogger(nil))
	assert.Equal(t, int64(1<<20), c.ChunkLength())
}
