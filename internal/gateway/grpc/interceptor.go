package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func (s *Server) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	args := []any{"method", info.FullMethod, "duration", time.Since(start)}
	if err != nil {
		st, _ := status.FromError(err)
		s.logger.Warn(ctx, "call failed", append(args, "code", st.Code().String(), "error", st.Message())...)
		return nil, err
	}

	s.logger.Debug(ctx, "call", args...)
	return resp, nil
}
