// Package grpc serves the standard gRPC health service so orchestrators can
// probe the pantry server. The reported status follows a periodic check of
// the backing store.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("")
// status.
const ServiceName = "pantrykeeper.Pantry"

const defaultCheckInterval = 15 * time.Second

// Checker reports whether the server can serve requests, e.g. by pinging the
// database.
type Checker func(ctx context.Context) error

type GRPCServer struct {
	address  string
	logger   logging.Logger
	check    Checker
	interval time.Duration
	health   *health.Server
}

func NewGRPCServer(address string, l logging.Logger, check Checker, interval time.Duration) *GRPCServer {
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		check:    check,
		interval: interval,
		health:   health.NewServer(),
	}
}

// Health exposes the underlying health server, mainly for tests.
func (s *GRPCServer) Health() *health.Server {
	return s.health
}

func (s *GRPCServer) setStatus(st healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// probe runs the checker once and publishes the result.
func (s *GRPCServer) probe(ctx context.Context) {
	if s.check == nil {
		s.setStatus(healthpb.HealthCheckResponse_SERVING)
		return
	}
	if err := s.check(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

func (s *GRPCServer) watch(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.probe(ctx)
		}
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		// Watchers see NOT_SERVING before the connection goes away.
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
