package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	opshttp "personrefresh/src/adapters/http"
	"personrefresh/src/helper/env"
	"personrefresh/src/infra/kafka"
	"personrefresh/src/infra/metrics"
	"personrefresh/src/infra/postgres"
	"personrefresh/src/infra/profileapi"
	"personrefresh/src/infra/redis"
	"personrefresh/src/repositories"
	"personrefresh/src/services/events"
	"personrefresh/src/services/refresh"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const defaultBatchLeaseTTL = 2 * time.Hour

// newApp monta o grafo de dependências comum aos comandos run e once.
func newApp(options ...fx.Option) *fx.App {
	return fx.New(append([]fx.Option{
		fx.Provide(
			newLogger,
			newRefreshConfig,
			newReadWriteClient,
			newPersonRepository,
			newRedisClient,
			newKafkaClient,
			newProfileClient,
			newRegistry,
			newRefreshMetrics,
			newRefreshService,
		),
		fx.Invoke(registerClientHooks),
	}, options...)...)
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newRefreshConfig() refresh.Config {
	return refresh.Config{
		FetchDelay:          env.GetMillis("FETCH_DELAY_MS", refresh.DefaultFetchDelay),
		BatchInterval:       env.GetMillis("BATCH_INTERVAL_MS", refresh.DefaultBatchInterval),
		StalenessThreshold:  env.GetHours("STALENESS_THRESHOLD_HOURS", refresh.DefaultStalenessThreshold),
		Identity:            env.GetString("LINKEDIN_EMAIL"),
		Secret:              env.GetString("LINKEDIN_PASSWORD"),
		LogFetchErrorDetail: env.GetBool("LOG_FETCH_ERROR_DETAIL", true),
	}
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	databaseURL := env.MustGetString("DATABASE_URL")
	databaseReadURL := env.GetString("DATABASE_READ_URL")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return postgres.NewReadWriteClient(ctx, databaseURL, databaseReadURL, maxConnections)
}

func newPersonRepository(readWriteClient *postgres.ReadWriteClient) *repositories.PersonRepository {
	return repositories.NewPersonRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
}

// Redis é opcional: sem REDIS_HOSTS não há cache de sessão nem lease.
func newRedisClient() *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisSessionTTL := env.GetSeconds("REDIS_SESSION_TTL_SECONDS", time.Hour)

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisSessionTTL).
		WithPrefix(env.GetString("REDIS_KEY_PREFIX", "personrefresh:"))
}

// Kafka também é opcional: sem KAFKA_BROKERS nenhum evento é publicado.
func newKafkaClient(logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		return nil, nil
	}

	return kafka.NewKafkaClient(logger, brokers)
}

func newProfileClient(logger *slog.Logger, redisClient *redis.RedisClient) *profileapi.Client {
	opts := profileapi.Options{
		Timeout:    env.GetMillis("PROFILE_API_TIMEOUT_MS", 15*time.Second),
		SessionTTL: env.GetSeconds("REDIS_SESSION_TTL_SECONDS", time.Hour),
	}
	if redisClient != nil {
		opts.Tokens = repositories.NewSessionRepository(redisClient)
	}

	return profileapi.NewClient(logger, env.MustGetString("PROFILE_API_URL"), opts)
}

func newRegistry() *prometheus.Registry {
	return metrics.NewRegistry()
}

func newRefreshMetrics(registry *prometheus.Registry) *metrics.RefreshMetrics {
	return metrics.NewRefreshMetrics(registry)
}

func newRefreshService(
	logger *slog.Logger,
	config refresh.Config,
	personRepository *repositories.PersonRepository,
	profileClient *profileapi.Client,
	redisClient *redis.RedisClient,
	kafkaClient *kafka.KafkaClient,
	refreshMetrics *metrics.RefreshMetrics,
) *refresh.RefreshService {
	options := []refresh.Option{
		refresh.WithSessionEstablisher(profileClient),
		refresh.WithMetrics(refreshMetrics),
	}

	if redisClient != nil {
		leaseTTL := env.GetSeconds("BATCH_LEASE_TTL_SECONDS", defaultBatchLeaseTTL)
		options = append(options, refresh.WithBatchLease(repositories.NewBatchLease(redisClient, leaseTTL)))
	}

	if kafkaClient != nil {
		topic := env.GetString("KAFKA_PERSON_EVENTS_TOPIC", "person-events")
		options = append(options, refresh.WithEventPublisher(events.NewPersonEventPublisher(logger, kafkaClient, topic)))
	}

	return refresh.NewRefreshService(logger, config, personRepository, profileClient, options...)
}

func newOpsServer(
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
	registry *prometheus.Registry,
) *opshttp.Server {
	server := opshttp.NewServer(logger, env.GetString("METRICS_ADDR", ":9090"), readWriteClient, registry)
	if redisClient != nil {
		server.WithRedis(redisClient)
	}
	return server
}

// registerClientHooks fecha as conexões na parada da aplicação.
func registerClientHooks(
	lc fx.Lifecycle,
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
	kafkaClient *kafka.KafkaClient,
) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if kafkaClient != nil {
				if err := kafkaClient.Close(); err != nil {
					logger.Error("Failed to close Kafka client", "error", err)
				}
			}
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					logger.Error("Failed to close Redis client", "error", err)
				}
			}
			readWriteClient.Close()
			logger.Info("Clients closed")
			return nil
		},
	})
}
