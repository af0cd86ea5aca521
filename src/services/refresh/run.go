package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"personrefresh/src/domain"
	"personrefresh/src/infra/metrics"
)

// RunOnce runs a single batch guarded by the batch lease, when one is
// configured. A batch skipped because another instance holds the lease
// returns no outcomes and no error. The lease is renewed while the batch runs;
// if it is lost anyway the batch stops after the current candidate and RunOnce
// returns the outcomes gathered so far without an error.
func (s *RefreshService) RunOnce(ctx context.Context) ([]domain.RefreshOutcome, error) {
	batchCtx := ctx
	var keeper *leaseKeeper

	if s.lease != nil {
		acquired, err := s.lease.Acquire(ctx)
		switch {
		case err != nil:
			s.logger.Warn("batch lease unavailable, running without it", slog.String("error", err.Error()))
		case !acquired:
			s.logger.Info("refresh batch skipped, lease held by another instance")
			s.metrics.ObserveBatch(metrics.BatchSkipped)
			return nil, nil
		default:
			keeper = s.keepLease(ctx)
			defer s.releaseLease(keeper)
			batchCtx = keeper.ctx
		}
	}

	outcomes, err := s.RefreshAll(batchCtx)
	if err != nil {
		if keeper != nil && keeper.lost.Load() && ctx.Err() == nil {
			s.logger.Warn("refresh batch aborted, batch lease lost", slog.Int("processed", len(outcomes)))
			s.metrics.ObserveBatch(metrics.BatchAborted)
			return outcomes, nil
		}

		s.metrics.ObserveBatch(metrics.BatchFailed)
		return outcomes, err
	}

	s.metrics.ObserveBatch(metrics.BatchCompleted)
	return outcomes, nil
}

type leaseKeeper struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	lost   atomic.Bool
}

// keepLease renews the lease every RenewInterval until stop is called. When a
// renewal reports the lease as gone the returned context is cancelled. A
// renewal error is only logged; the lease may still be alive.
func (s *RefreshService) keepLease(ctx context.Context) *leaseKeeper {
	batchCtx, cancel := context.WithCancel(ctx)
	keeper := &leaseKeeper{ctx: batchCtx, cancel: cancel, done: make(chan struct{})}
	interval := s.lease.RenewInterval()

	go func() {
		defer close(keeper.done)
		if interval <= 0 {
			<-batchCtx.Done()
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-batchCtx.Done():
				return
			case <-ticker.C:
				renewed, err := s.lease.Renew(batchCtx)
				switch {
				case err != nil:
					s.logger.Warn("failed to renew batch lease", slog.String("error", err.Error()))
				case !renewed:
					keeper.lost.Store(true)
					cancel()
					return
				}
			}
		}
	}()

	return keeper
}

func (k *leaseKeeper) stop() {
	k.cancel()
	<-k.done
}

// O contexto do lote pode já ter sido cancelado; a liberação usa um novo.
func (s *RefreshService) releaseLease(keeper *leaseKeeper) {
	keeper.stop()
	if keeper.lost.Load() {
		return
	}

	if err := s.lease.Release(context.Background()); err != nil {
		s.logger.Warn("failed to release batch lease", slog.String("error", err.Error()))
	}
}

// Run establishes the external session when credentials are configured and
// then repeats RunOnce forever, waiting BatchInterval after each batch. A
// session failure with configured credentials is fatal. Run returns only on a
// fatal error or when ctx is done.
func (s *RefreshService) Run(ctx context.Context) error {
	if err := s.EstablishSession(ctx); err != nil {
		return err
	}

	for {
		if _, err := s.RunOnce(ctx); err != nil {
			return err
		}

		if err := wait(ctx, s.config.BatchInterval); err != nil {
			return err
		}
	}
}

// EstablishSession logs in to the external service when credentials are
// configured. Without credentials it only warns and returns nil.
func (s *RefreshService) EstablishSession(ctx context.Context) error {
	if !s.config.hasCredentials() {
		s.logger.Warn("external service credentials not configured, skipping session setup")
		return nil
	}
	if s.session == nil {
		s.logger.Warn("no session client configured, skipping session setup")
		return nil
	}

	if err := s.session.EstablishSession(ctx, s.config.Identity, s.config.Secret); err != nil {
		return fmt.Errorf("RefreshService.EstablishSession - %w", err)
	}

	s.logger.Info("external session established")
	return nil
}
