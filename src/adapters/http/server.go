package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker é qualquer dependência que responde a um ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server expõe as rotas operacionais do job: health e métricas.
type Server struct {
	logger   *slog.Logger
	server   *http.Server
	mux      *http.ServeMux
	addr     string
	database HealthChecker
	redis    HealthChecker
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	addr string,
	database HealthChecker,
	gatherer prometheus.Gatherer,
) *Server {
	server := &Server{
		mux:      http.NewServeMux(),
		addr:     addr,
		logger:   logger,
		database: database,
	}

	server.server = &http.Server{
		Addr:         addr,
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.mux.HandleFunc("GET /health", server.Health)
	server.mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return server
}

// WithRedis adds Redis to the health check. Without it /health reports only the database.
func (s *Server) WithRedis(redis HealthChecker) *Server {
	s.redis = redis
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Ops server started", "addr", s.addr)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down ops server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
