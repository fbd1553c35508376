package grpcserver

import (
	"fmt"
	"net"

	"dispatch/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName имя сервиса в health check, пустое имя отвечает за сервер целиком.
const ServiceName = "dispatch"

// Server отдает grpc.health.v1, по нему watcher и оркестратор понимают, что API готов.
type Server struct {
	log    logger.Logger
	server *grpc.Server
	health *health.Server
}

func New(log logger.Logger) *Server {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Server{
		log:    log.With(logger.NewField("component", "grpc-server")),
		server: server,
		health: healthServer,
	}
}

// Serve блокирующий вызов, возвращается после Stop.
func (s *Server) Serve(listener net.Listener) error {
	s.log.Info("grpc health server starting", logger.NewField("addr", listener.Addr().String()))
	if err := s.server.Serve(listener); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

func (s *Server) SetServing() {
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
}

// Shutdown переводит в NOT_SERVING и дожидается завершения вызовов.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.server.GracefulStop()
	s.log.Info("grpc health server stopped")
}
