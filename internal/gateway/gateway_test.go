package gateway

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkCount(t *testing.T) {
	tests := []struct {
		size, chunk int64
		want        int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{10, 4, 3},
		{12, 4, 3},
		{1 << 20, 1 << 20, 1},
		{(1 << 20) + 1, 1 << 20, 2},
		{10, 0, 0},
		{math.MaxInt64, 1 << 20, 1 << 43},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChunkCount(tt.size, tt.chunk), "size=%d chunk=%d", tt.size, tt.chunk)
	}
}

func TestNewFileRecord(t *testing.T) {
	rec := NewFileRecord("song.mp3", 10, 4)
	assert.Equal(t, []bool{false, false, false}, rec.IsChunkUploaded)
	assert.False(t, rec.Complete())

	rec.IsChunkUploaded = []bool{true, true, true}
	assert.True(t, rec.Complete())

	assert.True(t, NewFileRecord("empty", 0, 4).Complete())
}

func TestStoragePath(t *testing.T) {
	assert.Equal(t, "ab12/cover.png", StoragePath("0xab12", "cover.png"))
	assert.Equal(t, "ab12/cover.png", StoragePath("ab12", "cover.png"))

	owner, name, err := SplitStoragePath("0xab12/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "ab12", owner)
	assert.Equal(t, "cover.png", name)

	for _, bad := range []string{"", "ab12", "/cover.png", "ab12/"} {
		_, _, err := SplitStoragePath(bad)
		assert.ErrorIs(t, err, ErrInvalidStoragePath, bad)
	}

	assert.Equal(t, "ab12", OwnerKey("0xAB12"))
}

func TestRules(t *testing.T) {
	r := Rules{ChunkLength: 4}
	rec := NewFileRecord("f", 10, 4)

	require.NoError(t, r.CheckStart("f", 0))
	assert.ErrorIs(t, r.CheckStart("", 1), ErrInvalidFileName)
	assert.ErrorIs(t, r.CheckStart("a/b", 1), ErrInvalidFileName)
	assert.ErrorIs(t, r.CheckStart("f", -1), ErrInvalidSize)
	assert.ErrorIs(t, r.CheckStart("f", math.MaxInt64), ErrInvalidSize)
	assert.NoError(t, r.CheckStart("f", MaxChunkCount*4))
	assert.ErrorIs(t, r.CheckStart("f", MaxChunkCount*4+1), ErrInvalidSize)

	idx, data, err := r.CheckChunk(rec, 8, "0x0102")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, []byte{1, 2}, data)

	_, _, err = r.CheckChunk(rec, 2, "0x01020304")
	assert.ErrorIs(t, err, ErrInvalidChunk, "unaligned offset")
	_, _, err = r.CheckChunk(rec, 12, "0x01")
	assert.ErrorIs(t, err, ErrInvalidChunk, "offset past the end")
	_, _, err = r.CheckChunk(rec, 0, "0x0102")
	assert.ErrorIs(t, err, ErrInvalidChunk, "short chunk")
	_, _, err = r.CheckChunk(rec, 0, "0xzz")
	assert.ErrorIs(t, err, ErrInvalidChunk, "bad hex")

	rec.IsChunkUploaded[0] = true
	_, _, err = r.CheckChunk(rec, 0, "0x01020304")
	assert.ErrorIs(t, err, ErrChunkAlreadyUploaded)

	assert.ErrorIs(t, r.CheckFinish(rec), ErrIncompleteUpload)
	rec.IsChunkUploaded = []bool{true, true, true}
	assert.NoError(t, r.CheckFinish(rec))

	assert.NoError(t, r.CheckRead(rec, 8, 2))
	assert.ErrorIs(t, r.CheckRead(rec, 8, 4), ErrOutOfRange)
	assert.ErrorIs(t, r.CheckRead(rec, 4, math.MaxInt64), ErrOutOfRange, "offset+length overflows")
	assert.ErrorIs(t, r.CheckRead(rec, math.MaxInt64, 1), ErrOutOfRange)
	assert.ErrorIs(t, r.CheckRead(rec, -1, 1), ErrOutOfRange)
	assert.NoError(t, r.CheckRead(rec, 10, 0))

	huge := FileRecord{Name: "huge", Size: math.MaxInt64}
	assert.NoError(t, r.CheckRead(huge, math.MaxInt64-MaxReadLength, MaxReadLength))
	assert.ErrorIs(t, r.CheckRead(huge, 0, MaxReadLength+1), ErrOutOfRange)

	first, last := r.Chunks(2, 7)
	assert.Equal(t, 0, first)
	assert.Equal(t, 2, last)
	first, last = r.Chunks(0, 0)
	assert.Greater(t, first, last)
}
