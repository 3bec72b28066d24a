package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// codeSentinels lists, per status code, the sentinel errors a server may have
// mapped to it. The first entry is the fallback when the message names none.
var codeSentinels = map[codes.Code][]error{
	codes.NotFound:           {gateway.ErrNotFound},
	codes.AlreadyExists:      {gateway.ErrAlreadyExists, gateway.ErrChunkAlreadyUploaded},
	codes.FailedPrecondition: {gateway.ErrIncompleteUpload},
	codes.InvalidArgument: {
		gateway.ErrInvalidChunk,
		gateway.ErrInvalidStoragePath,
		gateway.ErrInvalidFileName,
		gateway.ErrInvalidSize,
	},
	codes.OutOfRange:       {gateway.ErrOutOfRange},
	codes.Unavailable:      {common.ErrUnavailable},
	codes.DeadlineExceeded: {common.ErrUnavailable},
}

// toStatus converts a gateway error into a status carrying the full message.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, gateway.ErrAlreadyExists), errors.Is(err, gateway.ErrChunkAlreadyUploaded):
		code = codes.AlreadyExists
	case errors.Is(err, gateway.ErrIncompleteUpload):
		code = codes.FailedPrecondition
	case errors.Is(err, gateway.ErrInvalidChunk),
		errors.Is(err, gateway.ErrInvalidStoragePath),
		errors.Is(err, gateway.ErrInvalidFileName),
		errors.Is(err, gateway.ErrInvalidSize):
		code = codes.InvalidArgument
	case errors.Is(err, gateway.ErrOutOfRange):
		code = codes.OutOfRange
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}
	return status.Error(code, err.Error())
}

// remoteError keeps the server's message and unwraps to the local sentinel.
type remoteError struct {
	msg      string
	sentinel error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.sentinel }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	candidates, ok := codeSentinels[st.Code()]
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	sentinel := candidates[0]
	for _, c := range candidates {
		if strings.Contains(st.Message(), c.Error()) {
			sentinel = c
			break
		}
	}
	return &remoteError{msg: st.Message(), sentinel: sentinel}
}
