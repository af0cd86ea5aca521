package repositories

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"

	"personrefresh/src/infra/redis"
)

// SessionRepository caches profile service session tokens in Redis so a
// restarted process can skip the login round trip.
type SessionRepository struct {
	redisClient *redis.RedisClient
}

func NewSessionRepository(redisClient *redis.RedisClient) *SessionRepository {
	return &SessionRepository{redisClient: redisClient}
}

func (r *SessionRepository) GetToken(ctx context.Context, identity string) (string, bool, error) {
	token, found, err := r.redisClient.GetKey(ctx, r.sessionKey(identity))
	if err != nil {
		return "", false, fmt.Errorf("failed to read session token: %w", err)
	}
	return token, found, nil
}

func (r *SessionRepository) SaveToken(ctx context.Context, identity string, token string, ttl time.Duration) error {
	if err := r.redisClient.SetKey(ctx, r.sessionKey(identity), token, ttl); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// A identidade (email) não vai em texto puro para a chave.
func (r *SessionRepository) sessionKey(identity string) string {
	hash := md5.Sum([]byte(identity))
	return fmt.Sprintf("profile:session:%x", hash)
}
