package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"personrefresh/src/infra/redis"
	"personrefresh/src/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = Describe("Redis backed repositories", func() {
	var (
		ctx         context.Context
		server      *miniredis.Miniredis
		redisClient *redis.RedisClient
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = miniredis.NewMiniRedis()
		Expect(server.Start()).To(Succeed())
		redisClient = redis.NewRedisClient(server.Addr(), 5, time.Hour).WithPrefix("test:")
	})

	AfterEach(func() {
		_ = redisClient.Close()
		server.Close()
	})

	Describe("SessionRepository", func() {
		It("should round trip a token without storing the identity in the key", func() {
			sessions := repositories.NewSessionRepository(redisClient)

			Expect(sessions.SaveToken(ctx, "bot@example.com", "tok", time.Minute)).To(Succeed())
			token, found, err := sessions.GetToken(ctx, "bot@example.com")

			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(token).To(Equal("tok"))
			for _, key := range server.Keys() {
				Expect(key).ToNot(ContainSubstring("bot@example.com"))
			}
		})

		It("should miss once the token expired", func() {
			sessions := repositories.NewSessionRepository(redisClient)
			Expect(sessions.SaveToken(ctx, "bot@example.com", "tok", time.Minute)).To(Succeed())

			server.FastForward(2 * time.Minute)
			_, found, err := sessions.GetToken(ctx, "bot@example.com")

			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeFalse())
		})
	})

	Describe("BatchLease", func() {
		It("should let only one holder run at a time", func() {
			first := repositories.NewBatchLease(redisClient, time.Minute)
			second := repositories.NewBatchLease(redisClient, time.Minute)

			acquired, err := first.Acquire(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(acquired).To(BeTrue())

			acquired, err = second.Acquire(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(acquired).To(BeFalse())

			Expect(first.Release(ctx)).To(Succeed())

			acquired, err = second.Acquire(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(acquired).To(BeTrue())
		})

		It("should not release a lease held by someone else", func() {
			holder := repositories.NewBatchLease(redisClient, time.Minute)
			other := repositories.NewBatchLease(redisClient, time.Minute)

			_, _ = holder.Acquire(ctx)
			Expect(other.Release(ctx)).To(Succeed())

			Expect(server.Exists("test:refresh:batch:lease")).To(BeTrue())
		})

		It("should expire when the holder never releases", func() {
			holder := repositories.NewBatchLease(redisClient, time.Minute)
			other := repositories.NewBatchLease(redisClient, time.Minute)
			_, _ = holder.Acquire(ctx)

			server.FastForward(2 * time.Minute)
			acquired, err := other.Acquire(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(acquired).To(BeTrue())
		})

		It("should stay held through a batch longer than the ttl while it is renewed", func() {
			// ARRANGE
			holder := repositories.NewBatchLease(redisClient, 2*time.Hour)
			other := repositories.NewBatchLease(redisClient, 2*time.Hour)
			acquired, err := holder.Acquire(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(acquired).To(BeTrue())

			// ACT: 1500 candidates with a 5s delay before each one
			var sinceRenewal time.Duration
			for i := 0; i < 1500; i++ {
				server.FastForward(5 * time.Second)
				sinceRenewal += 5 * time.Second

				if sinceRenewal >= holder.RenewInterval() {
					renewed, err := holder.Renew(ctx)
					Expect(err).ToNot(HaveOccurred())
					Expect(renewed).To(BeTrue())
					sinceRenewal = 0
				}
			}
			acquiredByOther, err := other.Acquire(ctx)

			// ASSERT
			Expect(err).ToNot(HaveOccurred())
			Expect(acquiredByOther).To(BeFalse())
		})

		It("should report a lease taken over after expiry as lost", func() {
			holder := repositories.NewBatchLease(redisClient, time.Minute)
			other := repositories.NewBatchLease(redisClient, time.Minute)
			_, _ = holder.Acquire(ctx)
			server.FastForward(2 * time.Minute)
			_, _ = other.Acquire(ctx)

			renewed, err := holder.Renew(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(renewed).To(BeFalse())
			Expect(server.TTL("test:refresh:batch:lease")).To(Equal(time.Minute))
		})

		It("should renew at a third of the ttl", func() {
			lease := repositories.NewBatchLease(redisClient, 90*time.Minute)

			Expect(lease.RenewInterval()).To(Equal(30 * time.Minute))
		})
	})
})
