package refresh_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"personrefresh/src/domain"
	"personrefresh/src/domain/entities"
	"personrefresh/src/infra/metrics"
	"personrefresh/src/services/refresh"
	"personrefresh/src/services/refresh/mocks"
	"personrefresh/src/test_artefacts/fakes"
	"personrefresh/src/test_artefacts/stubs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("Run", func() {
	var (
		ctx     context.Context
		ctrl    *gomock.Controller
		config  refresh.Config
		store   *mocks.MockPersonStore
		fetcher *fakes.ProfileFetcher
		session *mocks.MockSessionEstablisher
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		config = refresh.DefaultConfig()
		config.FetchDelay = 0
		config.BatchInterval = 10 * time.Millisecond
		store = mocks.NewMockPersonStore(ctrl)
		fetcher = fakes.NewProfileFetcher(stubs.NewProfileStub().Get())
		session = mocks.NewMockSessionEstablisher(ctrl)
	})

	When("credentials are configured", func() {
		BeforeEach(func() {
			config.Identity = "bot@example.com"
			config.Secret = "s3cret"
		})

		It("should fail before any batch when the session is rejected", func() {
			service := refresh.NewRefreshService(discardLogger(), config, store, fetcher, refresh.WithSessionEstablisher(session))

			session.EXPECT().
				EstablishSession(gomock.Any(), "bot@example.com", "s3cret").
				Return(domain.ErrSessionRejected)

			err := service.Run(ctx)

			Expect(err).To(MatchError(domain.ErrSessionRejected))
		})

		It("should establish the session once and then run batches", func() {
			service := refresh.NewRefreshService(discardLogger(), config, store, fetcher, refresh.WithSessionEstablisher(session))
			queryErr := errors.New("database gone")

			session.EXPECT().EstablishSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
			gomock.InOrder(
				store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return([]entities.Person{}, nil).Times(2),
				store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return(nil, queryErr),
			)

			err := service.Run(ctx)

			Expect(err).To(MatchError(domain.ErrCandidateQuery))
			Expect(err).To(MatchError(queryErr))
		})

		It("should say the session client is missing rather than the credentials", func() {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))
			service := refresh.NewRefreshService(logger, config, store, fetcher)

			err := service.EstablishSession(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(logs.String()).To(ContainSubstring("no session client configured"))
			Expect(logs.String()).ToNot(ContainSubstring("credentials not configured"))
		})
	})

	When("credentials are absent", func() {
		It("should warn about the missing credentials", func() {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))
			service := refresh.NewRefreshService(logger, config, store, fetcher, refresh.WithSessionEstablisher(session))

			err := service.EstablishSession(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(logs.String()).To(ContainSubstring("credentials not configured"))
		})

		It("should skip the session and go straight to batching", func() {
			service := refresh.NewRefreshService(discardLogger(), config, store, fetcher, refresh.WithSessionEstablisher(session))

			store.EXPECT().
				FindRefreshCandidates(gomock.Any(), gomock.Any()).
				Return(nil, errors.New("boom"))

			err := service.Run(ctx)

			Expect(err).To(MatchError(domain.ErrCandidateQuery))
		})
	})

	It("should return when the context is cancelled during the batch interval", func() {
		config.BatchInterval = time.Hour
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher)
		cancelled, cancel := context.WithCancel(ctx)

		store.EXPECT().
			FindRefreshCandidates(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, time.Time) ([]entities.Person, error) {
				cancel()
				return []entities.Person{}, nil
			})

		err := service.Run(cancelled)

		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("RunOnce", func() {
	var (
		ctx      context.Context
		ctrl     *gomock.Controller
		config   refresh.Config
		store    *mocks.MockPersonStore
		lease    *mocks.MockBatchLease
		fetcher  *fakes.ProfileFetcher
		registry *prometheus.Registry
		m        *metrics.RefreshMetrics
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		config = refresh.DefaultConfig()
		config.FetchDelay = 0
		store = mocks.NewMockPersonStore(ctrl)
		lease = mocks.NewMockBatchLease(ctrl)
		fetcher = fakes.NewProfileFetcher(stubs.NewProfileStub().Get())
		registry = prometheus.NewRegistry()
		m = metrics.NewRefreshMetrics(registry)
	})

	It("should skip the batch when another instance holds the lease", func() {
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher,
			refresh.WithBatchLease(lease), refresh.WithMetrics(m))

		lease.EXPECT().Acquire(gomock.Any()).Return(false, nil)

		outcomes, err := service.RunOnce(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(outcomes).To(BeEmpty())
		Expect(testutil.ToFloat64(m.Batches(metrics.BatchSkipped))).To(Equal(1.0))
	})

	It("should release the lease after the batch", func() {
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher,
			refresh.WithBatchLease(lease), refresh.WithMetrics(m))
		person := stubs.NewPersonStub().WithID(7).Get()

		lease.EXPECT().RenewInterval().Return(time.Hour)
		gomock.InOrder(
			lease.EXPECT().Acquire(gomock.Any()).Return(true, nil),
			store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return([]entities.Person{person}, nil),
			store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p entities.Person) (entities.Person, error) { return p, nil }),
			lease.EXPECT().Release(gomock.Any()).Return(nil),
		)

		outcomes, err := service.RunOnce(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(outcomes).To(HaveLen(1))
		Expect(outcomes[0].Succeeded()).To(BeTrue())
		Expect(testutil.ToFloat64(m.Batches(metrics.BatchCompleted))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.Outcomes(string(domain.OutcomeUpdated)))).To(Equal(1.0))
	})

	It("should release the lease even when the batch fails", func() {
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher,
			refresh.WithBatchLease(lease), refresh.WithMetrics(m))

		lease.EXPECT().Acquire(gomock.Any()).Return(true, nil)
		lease.EXPECT().RenewInterval().Return(time.Hour)
		store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
		lease.EXPECT().Release(gomock.Any()).Return(nil)

		_, err := service.RunOnce(ctx)

		Expect(err).To(MatchError(domain.ErrCandidateQuery))
		Expect(testutil.ToFloat64(m.Batches(metrics.BatchFailed))).To(Equal(1.0))
	})

	It("should run without the lease when it cannot be acquired", func() {
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher, refresh.WithBatchLease(lease))

		lease.EXPECT().Acquire(gomock.Any()).Return(false, errors.New("redis unreachable"))
		store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return([]entities.Person{}, nil)

		outcomes, err := service.RunOnce(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(outcomes).To(BeEmpty())
	})

	It("should keep renewing the lease while a long batch runs", func() {
		// ARRANGE
		config.FetchDelay = 20 * time.Millisecond
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher,
			refresh.WithBatchLease(lease), refresh.WithMetrics(m))
		people := []entities.Person{
			stubs.NewPersonStub().WithID(1).Get(),
			stubs.NewPersonStub().WithID(2).Get(),
			stubs.NewPersonStub().WithID(3).Get(),
		}
		var renewals atomic.Int32

		lease.EXPECT().Acquire(gomock.Any()).Return(true, nil)
		lease.EXPECT().RenewInterval().Return(5 * time.Millisecond)
		lease.EXPECT().Renew(gomock.Any()).DoAndReturn(func(context.Context) (bool, error) {
			renewals.Add(1)
			return true, nil
		}).AnyTimes()
		store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return(people, nil)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Person) (entities.Person, error) { return p, nil }).Times(3)
		lease.EXPECT().Release(gomock.Any()).Return(nil)

		// ACT
		outcomes, err := service.RunOnce(ctx)

		// ASSERT
		Expect(err).ToNot(HaveOccurred())
		Expect(outcomes).To(HaveLen(3))
		Expect(renewals.Load()).To(BeNumerically(">=", 2))
		Expect(testutil.ToFloat64(m.Batches(metrics.BatchCompleted))).To(Equal(1.0))
	})

	It("should stop fetching once the lease is lost to another instance", func() {
		// ARRANGE
		config.FetchDelay = time.Hour
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher,
			refresh.WithBatchLease(lease), refresh.WithMetrics(m))
		people := []entities.Person{
			stubs.NewPersonStub().WithID(1).Get(),
			stubs.NewPersonStub().WithID(2).Get(),
		}

		lease.EXPECT().Acquire(gomock.Any()).Return(true, nil)
		lease.EXPECT().RenewInterval().Return(5 * time.Millisecond)
		lease.EXPECT().Renew(gomock.Any()).Return(false, nil)
		store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return(people, nil)

		// ACT
		outcomes, err := service.RunOnce(ctx)

		// ASSERT: no Release call, the lease belongs to someone else now
		Expect(err).ToNot(HaveOccurred())
		Expect(outcomes).To(BeEmpty())
		Expect(fetcher.CalledURLs()).To(BeEmpty())
		Expect(testutil.ToFloat64(m.Batches(metrics.BatchAborted))).To(Equal(1.0))
	})

	It("should keep the batch going when a renewal fails", func() {
		config.FetchDelay = 20 * time.Millisecond
		service := refresh.NewRefreshService(discardLogger(), config, store, fetcher, refresh.WithBatchLease(lease))
		person := stubs.NewPersonStub().WithID(1).Get()

		lease.EXPECT().Acquire(gomock.Any()).Return(true, nil)
		lease.EXPECT().RenewInterval().Return(5 * time.Millisecond)
		lease.EXPECT().Renew(gomock.Any()).Return(false, errors.New("redis unreachable")).AnyTimes()
		store.EXPECT().FindRefreshCandidates(gomock.Any(), gomock.Any()).Return([]entities.Person{person}, nil)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Person) (entities.Person, error) { return p, nil })
		lease.EXPECT().Release(gomock.Any()).Return(nil)

		outcomes, err := service.RunOnce(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(outcomes).To(HaveLen(1))
		Expect(outcomes[0].Succeeded()).To(BeTrue())
	})
})
