package gateway

import (
	"errors"

	"github.com/dmitrijs2005/filestorage/internal/common"
)

var (
	ErrNotFound      = common.ErrorNotFound
	ErrAlreadyExists = common.ErrorAlreadyExists

	ErrInvalidStoragePath   = errors.New("invalid storage path")
	ErrInvalidFileName      = errors.New("invalid file name")
	ErrInvalidSize          = errors.New("invalid file size")
	ErrInvalidChunk         = errors.New("invalid chunk")
	ErrChunkAlreadyUploaded = errors.New("chunk is already uploaded")
	ErrIncompleteUpload     = errors.New("file is not fully uploaded")
	ErrOutOfRange           = errors.New("read out of file bounds")
)
