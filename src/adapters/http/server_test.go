package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	opshttp "personrefresh/src/adapters/http"
	"personrefresh/src/infra/metrics"
	"personrefresh/src/infra/redis"

	"github.com/alicebob/miniredis/v2"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

var _ = Describe("Server", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	serve := func(server *opshttp.Server, path string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, path, nil)
		server.Handler().ServeHTTP(recorder, request)
		return recorder
	}

	It("should report healthy when the database answers", func() {
		server := opshttp.NewServer(logger, ":0", stubPinger{}, metrics.NewRegistry())

		response := serve(server, "/health")

		Expect(response.Code).To(Equal(http.StatusOK))
		Expect(response.Body.String()).To(MatchJSON(`{"status": "ok", "database": "ok"}`))
	})

	It("should report unavailable when the database is down", func() {
		server := opshttp.NewServer(logger, ":0", stubPinger{err: errors.New("no route")}, metrics.NewRegistry())

		response := serve(server, "/health")

		Expect(response.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(response.Body.String()).To(MatchJSON(`{"status": "unavailable", "database": "down", "error": "no route"}`))
	})

	When("redis is part of the health check", func() {
		It("should report both dependencies healthy", func() {
			server := opshttp.NewServer(logger, ":0", stubPinger{}, metrics.NewRegistry()).WithRedis(stubPinger{})

			response := serve(server, "/health")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{"status": "ok", "database": "ok", "redis": "ok"}`))
		})

		It("should report unavailable when redis is down", func() {
			server := opshttp.NewServer(logger, ":0", stubPinger{}, metrics.NewRegistry()).
				WithRedis(stubPinger{err: errors.New("connection refused")})

			response := serve(server, "/health")

			Expect(response.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(response.Body.String()).To(MatchJSON(`{"status": "unavailable", "database": "ok", "redis": "down", "error": "connection refused"}`))
		})

		It("should answer against a live redis", func() {
			redisServer := miniredis.NewMiniRedis()
			Expect(redisServer.Start()).To(Succeed())
			redisClient := redis.NewRedisClient(redisServer.Addr(), 1, time.Minute)
			DeferCleanup(func() { _ = redisClient.Close() })
			server := opshttp.NewServer(logger, ":0", stubPinger{}, metrics.NewRegistry()).WithRedis(redisClient)

			healthy := serve(server, "/health")
			redisServer.Close()
			unhealthy := serve(server, "/health")

			Expect(healthy.Code).To(Equal(http.StatusOK))
			Expect(unhealthy.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(unhealthy.Body.String()).To(ContainSubstring(`"redis":"down"`))
		})
	})

	It("should expose the refresh metrics", func() {
		registry := metrics.NewRegistry()
		refreshMetrics := metrics.NewRefreshMetrics(registry)
		refreshMetrics.ObserveOutcome("updated", 250*time.Millisecond)
		refreshMetrics.ObserveBatch(metrics.BatchCompleted)
		server := opshttp.NewServer(logger, ":0", stubPinger{}, registry)

		response := serve(server, "/metrics")

		Expect(response.Code).To(Equal(http.StatusOK))
		Expect(response.Body.String()).To(ContainSubstring(`personrefresh_person_refresh_outcomes_total{status="updated"} 1`))
		Expect(response.Body.String()).To(ContainSubstring(`personrefresh_refresh_batches_total{result="completed"} 1`))
	})
})
