package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	opshttp "personrefresh/src/adapters/http"
	"personrefresh/src/domain"
	"personrefresh/src/helper/env"
	"personrefresh/src/infra/postgres"
	"personrefresh/src/services/refresh"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const stopTimeout = 10 * time.Second

func runLoop(_ *cobra.Command, _ []string) error {
	app := newApp(
		fx.Provide(newOpsServer),
		fx.Invoke(registerOpsServerHooks, registerRefreshLoop),
	)

	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start refresher: %w", err)
	}

	// Sinal do SO ou Shutdown do loop de refresh.
	shutdown := <-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		slog.Error("Failed to stop refresher gracefully", "error", err)
	}

	if shutdown.ExitCode != 0 {
		return fmt.Errorf("refresher stopped with exit code %d", shutdown.ExitCode)
	}
	return nil
}

func runOnce(_ *cobra.Command, _ []string) error {
	var (
		logger  *slog.Logger
		service *refresh.RefreshService
	)

	app := newApp(fx.Populate(&logger, &service))

	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start refresher: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := service.EstablishSession(ctx); err != nil {
		logger.Error("External session failed", "error", err)
		return err
	}

	outcomes, err := service.RunOnce(ctx)
	if err != nil {
		logger.Error("Refresh batch failed", "error", err)
		return err
	}

	updated, failed := domain.CountOutcomes(outcomes)
	logger.Info("Refresh batch summary", "candidates", len(outcomes), "updated", updated, "failed", failed)
	return nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	if err := postgres.RunMigrations(env.MustGetString("DATABASE_URL")); err != nil {
		logger.Error("Migrations failed", "error", err)
		return err
	}

	logger.Info("Migrations applied")
	return nil
}

// registerRefreshLoop roda o loop em background e derruba a aplicação com
// código 1 quando ele termina por erro fatal.
func registerRefreshLoop(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *slog.Logger,
	service *refresh.RefreshService,
) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)

				err := service.Run(ctx)
				if err == nil || errors.Is(err, context.Canceled) {
					return
				}

				logger.Error("Refresh loop stopped", "error", err)
				if shutdownErr := shutdowner.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					logger.Error("Failed to request shutdown", "error", shutdownErr)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				logger.Info("Refresh loop stopped")
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

// registerOpsServerHooks registers lifecycle hooks for the ops HTTP server
func registerOpsServerHooks(lc fx.Lifecycle, logger *slog.Logger, srv *opshttp.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					logger.Error("Ops server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Ops server forced to shutdown", "error", err)
				return err
			}
			return nil
		},
	})
}
