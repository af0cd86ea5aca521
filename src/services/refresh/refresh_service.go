// Package refresh keeps person records in sync with their external profiles.
//
// A batch selects the stale people, then fetches, normalizes and saves them
// strictly one at a time with a fixed delay before every fetch. A failure on
// one person is logged and reported as a failed outcome; only a failed
// candidate query aborts the batch.
package refresh

//go:generate mockgen -destination=mocks/mock_refresh_service.go -package=mocks -source=refresh_service.go PersonStore,ProfileFetcher,SessionEstablisher,EventPublisher,BatchLease

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"personrefresh/src/domain/entities"
	"personrefresh/src/infra/metrics"
)

const (
	DefaultFetchDelay         = 5 * time.Second
	DefaultBatchInterval      = 30 * time.Second
	DefaultStalenessThreshold = 72 * time.Hour
)

type PersonStore interface {
	FindRefreshCandidates(ctx context.Context, cutoff time.Time) ([]entities.Person, error)
	Save(ctx context.Context, person entities.Person) (entities.Person, error)
}

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, linkedinURL string) (json.RawMessage, error)
}

type SessionEstablisher interface {
	EstablishSession(ctx context.Context, identity string, secret string) error
}

type EventPublisher interface {
	PublishPersonRefreshed(ctx context.Context, person entities.Person, fieldsChanged []string) error
}

// BatchLease is held for the whole batch and renewed every RenewInterval.
type BatchLease interface {
	Acquire(ctx context.Context) (bool, error)
	Renew(ctx context.Context) (bool, error)
	RenewInterval() time.Duration
	Release(ctx context.Context) error
}

type Config struct {
	// Espera antes de cada fetch; é o único limitador de taxa.
	FetchDelay         time.Duration
	BatchInterval      time.Duration
	StalenessThreshold time.Duration

	// Credenciais opcionais do serviço externo.
	Identity string
	Secret   string

	// LogFetchErrorDetail adds the HTTP status and response body to fetch failure logs.
	LogFetchErrorDetail bool
}

func DefaultConfig() Config {
	return Config{
		FetchDelay:          DefaultFetchDelay,
		BatchInterval:       DefaultBatchInterval,
		StalenessThreshold:  DefaultStalenessThreshold,
		LogFetchErrorDetail: true,
	}
}

func (c Config) hasCredentials() bool {
	return c.Identity != "" && c.Secret != ""
}

type RefreshService struct {
	logger    *slog.Logger
	config    Config
	store     PersonStore
	fetcher   ProfileFetcher
	session   SessionEstablisher
	publisher EventPublisher
	lease     BatchLease
	metrics   *metrics.RefreshMetrics
	now       func() time.Time
}

// Option plugs the optional collaborators into the service.
type Option func(*RefreshService)

func WithSessionEstablisher(session SessionEstablisher) Option {
	return func(s *RefreshService) { s.session = session }
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *RefreshService) { s.publisher = publisher }
}

func WithBatchLease(lease BatchLease) Option {
	return func(s *RefreshService) { s.lease = lease }
}

func WithMetrics(m *metrics.RefreshMetrics) Option {
	return func(s *RefreshService) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *RefreshService) { s.now = now }
}

func NewRefreshService(
	logger *slog.Logger,
	config Config,
	store PersonStore,
	fetcher ProfileFetcher,
	opts ...Option,
) *RefreshService {
	s := &RefreshService{
		logger:  logger,
		config:  config,
		store:   store,
		fetcher: fetcher,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
