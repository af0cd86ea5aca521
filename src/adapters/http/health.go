package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const healthTimeout = 2 * time.Second

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	response := HealthResponse{Status: "ok", Database: "ok"}
	var failures []string

	if err := s.database.Ping(ctx); err != nil {
		response.Database = "down"
		failures = append(failures, err.Error())
	}

	if s.redis != nil {
		response.Redis = "ok"
		if err := s.redis.Ping(ctx); err != nil {
			response.Redis = "down"
			failures = append(failures, err.Error())
		}
	}

	status := http.StatusOK
	if len(failures) > 0 {
		s.logger.Warn("Health check failed", "database", response.Database, "redis", response.Redis, "error", strings.Join(failures, "; "))
		response.Status = "unavailable"
		response.Error = strings.Join(failures, "; ")
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to encode health response", "error", err)
	}
}
