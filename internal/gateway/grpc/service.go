package grpc

import (
	"context"

	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"google.golang.org/grpc"
)

const serviceName = "filestorage.Gateway"

const (
	methodStartUpload     = "StartUpload"
	methodUploadChunk     = "UploadChunk"
	methodFinishUpload    = "FinishUpload"
	methodDeleteFile      = "DeleteFile"
	methodGetFileSize     = "GetFileSize"
	methodReadChunk       = "ReadChunk"
	methodGetFileInfoList = "GetFileInfoList"
)

// maxMessageSize leaves room for a hex-encoded chunk plus framing.
const maxMessageSize = 16 << 20

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// unary builds a method descriptor that decodes Req, dispatches to the
// registered gateway.Gateway and maps its error to a status.
func unary[Req, Resp any](name string, call func(ctx context.Context, gw gateway.Gateway, req *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			gw := srv.(gateway.Gateway)
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(ctx, gw, req.(*Req))
				if err != nil {
					return nil, toStatus(err)
				}
				return resp, nil
			}

			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*gateway.Gateway)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodStartUpload, func(ctx context.Context, gw gateway.Gateway, req *startUploadRequest) (*empty, error) {
			return &empty{}, gw.StartUpload(ctx, req.Owner, req.FileName, req.TotalSize)
		}),
		unary(methodUploadChunk, func(ctx context.Context, gw gateway.Gateway, req *uploadChunkRequest) (*empty, error) {
			return &empty{}, gw.UploadChunk(ctx, req.Owner, req.FileName, req.Offset, req.Payload)
		}),
		unary(methodFinishUpload, func(ctx context.Context, gw gateway.Gateway, req *fileRequest) (*empty, error) {
			return &empty{}, gw.FinishUpload(ctx, req.Owner, req.FileName)
		}),
		unary(methodDeleteFile, func(ctx context.Context, gw gateway.Gateway, req *fileRequest) (*empty, error) {
			return &empty{}, gw.DeleteFile(ctx, req.Owner, req.FileName)
		}),
		unary(methodGetFileSize, func(ctx context.Context, gw gateway.Gateway, req *pathRequest) (*sizeResponse, error) {
			size, err := gw.GetFileSize(ctx, req.StoragePath)
			if err != nil {
				return nil, err
			}
			return &sizeResponse{Size: size}, nil
		}),
		unary(methodReadChunk, func(ctx context.Context, gw gateway.Gateway, req *readChunkRequest) (*readChunkResponse, error) {
			words, err := gw.ReadChunk(ctx, req.StoragePath, req.Offset, req.Length)
			if err != nil {
				return nil, err
			}
			return &readChunkResponse{Words: encodeWords(words)}, nil
		}),
		unary(methodGetFileInfoList, func(ctx context.Context, gw gateway.Gateway, req *ownerRequest) (*fileInfoListResponse, error) {
			recs, err := gw.GetFileInfoList(ctx, req.Owner)
			if err != nil {
				return nil, err
			}
			return &fileInfoListResponse{Files: fromRecords(recs)}, nil
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "filestorage/gateway",
}
