// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/handler"
)

const healthInterval = 10 * time.Second

// HealthProbe reports whether a dependency of the control service is usable.
type HealthProbe interface {
	IsHealthy(ctx context.Context) bool
}

// GRPCServer manages the gRPC server lifecycle.
type GRPCServer struct {
	server  *grpc.Server
	health  *health.Server
	port    int
	session handler.Session
	probe   HealthProbe
}

// NewGRPCServer creates a new gRPC server instance serving session.
func NewGRPCServer(port int, session handler.Session) *GRPCServer {
	return &GRPCServer{
		port:    port,
		session: session,
	}
}

// SetHealthProbe makes the health service follow probe while serving.
func (s *GRPCServer) SetHealthProbe(probe HealthProbe) {
	s.probe = probe
}

// Setup configures the gRPC server with interceptors and registers the
// control service, reflection and health checks.
func (s *GRPCServer) Setup() error {
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}
	streamInterceptors := []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}

	// Create server with OpenTelemetry instrumentation
	s.server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unaryInterceptors...),
		grpc.ChainStreamInterceptor(streamInterceptors...),
	)

	handler.RegisterSolverControlServer(s.server, handler.NewControl(s.session))
	logrus.Infof("registered %s", handler.ServiceName)

	// - Reflection: allows tools like grpcurl to inspect services
	// - Health check: reports SERVING for the control service
	reflection.Register(s.server)
	s.health = health.NewServer()
	s.health.SetServingStatus(handler.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s.server, s.health)

	logrus.Infof("gRPC reflection and health check enabled")

	return nil
}

// Serve listens on the configured port and blocks until the server stops.
func (s *GRPCServer) Serve(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	if s.probe != nil {
		go s.watchHealth(ctx)
	}

	logrus.Infof("gRPC server listening on port %d", s.port)
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server failed: %w", err)
	}
	return nil
}

// watchHealth updates the serving status of the control service until ctx
// is done.
func (s *GRPCServer) watchHealth(ctx context.Context) {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		healthy := s.probe.IsHealthy(ctx)
		if healthy == serving {
			continue
		}
		serving = healthy

		status := grpc_health_v1.HealthCheckResponse_SERVING
		if !healthy {
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
		s.health.SetServingStatus(handler.ServiceName, status)
		logrus.Warnf("control service health changed to %s", status)
	}
}

// Shutdown gracefully stops the gRPC server.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down gRPC server...")
	if s.health != nil {
		s.health.Shutdown()
	}
	s.server.GracefulStop()
	logrus.Info("gRPC server stopped")
	return nil
}
