package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "userdirectory"

// Checker reports whether the backing store is usable.
type Checker func(ctx context.Context) error

// StartHealth serves grpc.health.v1 on addr. The status is refreshed from check
// once before returning and then every interval. The returned function stops
// the probe loop and the server.
func StartHealth(addr string, check Checker, interval time.Duration, log *logrus.Logger) (net.Addr, func(context.Context) error, error) {
	if check == nil {
		panic("health checker is required")
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		status := healthpb.HealthCheckResponse_SERVING
		if err := check(ctx); err != nil {
			log.WithError(err).Warn("health check failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", status)
		hs.SetServingStatus(ServiceName, status)
	}
	probe()

	stop := make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				probe()
			}
		}
	}()

	go func() { _ = srv.Serve(lis) }()

	return lis.Addr(), func(ctx context.Context) error {
		close(stop)
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
