// Package grpc exposes a gateway.Gateway over gRPC and provides the matching
// remote client.
//
// The wire format is JSON, not protobuf: the service descriptor and message
// structs are written by hand and a "json" codec is registered with
// grpc/encoding, so the package builds without protoc or generated code.
// Both ends select it through the application/grpc+json content subtype;
// other gRPC clients must do the same.
package grpc

import (
	"context"
	"net"
	"sync"

	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"github.com/dmitrijs2005/filestorage/internal/logging"
	"google.golang.org/grpc"
)

type Server struct {
	address string
	gw      gateway.Gateway
	logger  logging.Logger
}

func NewServer(address string, gw gateway.Gateway, l logging.Logger) *Server {
	return &Server{
		address: address,
		gw:      gw,
		logger:  l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor),
		grpc.MaxRecvMsgSize(maxMessageSize),
		grpc.MaxSendMsgSize(maxMessageSize),
	)
	srv.RegisterService(&serviceDesc, s.gw)

	var wg sync.WaitGroup
	defer wg.Wait()

	done := make(chan struct{})
	defer close(done)

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-done:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
