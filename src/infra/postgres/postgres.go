package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx"
	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tempo máximo aguardando o banco responder no boot.
const connectMaxElapsed = 30 * time.Second

// NewPostgresClient opens a pool for databaseURL and waits, with exponential
// backoff, until the database answers a ping.
func NewPostgresClient(ctx context.Context, databaseURL string, maxConnections int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	config.MaxConns = int32(maxConnections) //nolint:all
	config.MinConns = 1

	// Idle timeout - economiza recursos
	config.MaxConnIdleTime = 5 * time.Minute

	// Lifetime das conexões - evita problemas de timeout do PostgreSQL
	config.MaxConnLifetime = 30 * time.Minute

	config.HealthCheckPeriod = 1 * time.Minute

	config.ConnConfig.RuntimeParams = map[string]string{
		"timezone":                            "UTC",
		"statement_timeout":                   "30s",
		"lock_timeout":                        "10s",
		"idle_in_transaction_session_timeout": "60s",
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, pool.Ping(ctx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(connectMaxElapsed),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres did not become ready: %w", err)
	}

	return pool, nil
}

func NewNullString(s *string) pgtype.Text {
	if s == nil || len(*s) == 0 {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{
		String: *s,
		Status: pgtype.Present,
	}
}

func NewNullTime(t *time.Time) pgtype.Timestamptz {
	if t == nil || t.IsZero() {
		return pgtype.Timestamptz{Status: pgtype.Null}
	}
	return pgtype.Timestamptz{
		Time:   *t,
		Status: pgtype.Present,
	}
}

// NewNullJSON keeps an empty document as SQL NULL instead of an invalid jsonb.
func NewNullJSON(document []byte) []byte {
	if len(document) == 0 {
		return nil
	}
	return document
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgxv5.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
