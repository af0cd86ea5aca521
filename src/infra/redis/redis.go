package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Remove a chave apenas se ela ainda pertence ao dono informado.
var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Renova o TTL apenas se a chave ainda pertence ao dono informado.
var compareAndExpire = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type RedisClient struct {
	client     redis.UniversalClient
	defaultTTL time.Duration
	prefix     string
}

// NewRedisClient accepts a comma separated address list. A single address
// yields a plain client, several addresses a cluster client.
func NewRedisClient(addrs string, poolSize int, defaultTTL time.Duration) *RedisClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),

		PoolSize:     poolSize,
		MinIdleConns: 2,

		// Cluster específico
		MaxRedirects: 3,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

// WithPrefix returns a client sharing the same connections whose keys are all
// namespaced under prefix.
func (rc *RedisClient) WithPrefix(prefix string) *RedisClient {
	return &RedisClient{
		client:     rc.client,
		defaultTTL: rc.defaultTTL,
		prefix:     rc.prefix + prefix,
	}
}

func (rc *RedisClient) key(key string) string {
	return rc.prefix + key
}

// SetKey stores value under key. A zero ttl uses the client default.
func (rc *RedisClient) SetKey(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = rc.defaultTTL
	}

	fields := map[string]interface{}{
		"data":      value,
		"cached_at": time.Now().Unix(),
	}

	pipe := rc.client.TxPipeline()
	pipe.HSet(ctx, rc.key(key), fields)
	pipe.Expire(ctx, rc.key(key), ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, rc.key(key), "data")

	// Cache miss
	if result.Err() == redis.Nil {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

// SetIfAbsent sets key to value only when key does not exist yet.
func (rc *RedisClient) SetIfAbsent(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = rc.defaultTTL
	}

	err := rc.client.SetArgs(ctx, rc.key(key), value, redis.SetArgs{Mode: "NX", TTL: ttl}).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteIfValue removes key only while it still holds value.
func (rc *RedisClient) DeleteIfValue(ctx context.Context, key string, value string) (bool, error) {
	deleted, err := compareAndDelete.Run(ctx, rc.client, []string{rc.key(key)}, value).Int()
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}

// ExpireIfValue resets the ttl of key only while it still holds value.
func (rc *RedisClient) ExpireIfValue(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = rc.defaultTTL
	}

	renewed, err := compareAndExpire.Run(ctx, rc.client, []string{rc.key(key)}, value, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return renewed == 1, nil
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
