package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	args := []any{"method", info.FullMethod, "code", status.Code(err).String(), "latency", time.Since(start)}
	if err != nil {
		s.logger.Warn(ctx, "rpc", append(args, "error", err)...)
		return resp, err
	}
	s.logger.Debug(ctx, "rpc", args...)
	return resp, nil
}
