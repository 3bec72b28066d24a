package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client is a gateway.Gateway backed by a remote Server.
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// NewClient prepares a connection to target. The connection is established
// lazily on the first call. A positive timeout bounds every call.
func NewClient(target string, timeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.CallContentSubtype(codecName),
			grpc.MaxCallRecvMsgSize(maxMessageSize),
			grpc.MaxCallSendMsgSize(maxMessageSize),
		),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return mapError(c.conn.Invoke(ctx, fullMethod(method), req, resp))
}

func (c *Client) StartUpload(ctx context.Context, owner, fileName string, totalSize int64) error {
	req := &startUploadRequest{Owner: owner, FileName: fileName, TotalSize: totalSize}
	return c.invoke(ctx, methodStartUpload, req, &empty{})
}

func (c *Client) UploadChunk(ctx context.Context, owner, fileName string, offset int64, payload string) error {
	req := &uploadChunkRequest{Owner: owner, FileName: fileName, Offset: offset, Payload: payload}
	return c.invoke(ctx, methodUploadChunk, req, &empty{})
}

func (c *Client) FinishUpload(ctx context.Context, owner, fileName string) error {
	return c.invoke(ctx, methodFinishUpload, &fileRequest{Owner: owner, FileName: fileName}, &empty{})
}

func (c *Client) DeleteFile(ctx context.Context, owner, fileName string) error {
	return c.invoke(ctx, methodDeleteFile, &fileRequest{Owner: owner, FileName: fileName}, &empty{})
}

func (c *Client) GetFileSize(ctx context.Context, storagePath string) (int64, error) {
	var resp sizeResponse
	if err := c.invoke(ctx, methodGetFileSize, &pathRequest{StoragePath: storagePath}, &resp); err != nil {
		return 0, err
	}
	return resp.Size, nil
}

func (c *Client) ReadChunk(ctx context.Context, storagePath string, offset, length int64) ([]codec.Word, error) {
	var resp readChunkResponse
	req := &readChunkRequest{StoragePath: storagePath, Offset: offset, Length: length}
	if err := c.invoke(ctx, methodReadChunk, req, &resp); err != nil {
		return nil, err
	}
	return decodeWords(resp.Words)
}

func (c *Client) GetFileInfoList(ctx context.Context, owner string) ([]gateway.FileRecord, error) {
	var resp fileInfoListResponse
	if err := c.invoke(ctx, methodGetFileInfoList, &ownerRequest{Owner: owner}, &resp); err != nil {
		return nil, err
	}
	return toRecords(resp.Files), nil
}
