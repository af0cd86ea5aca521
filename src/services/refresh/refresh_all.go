package refresh

import (
	"context"
	"log/slog"

	"personrefresh/src/domain"
)

// RefreshAll selects the candidates and updates them one at a time, waiting
// FetchDelay before every fetch. It returns one outcome per candidate in
// selection order. On cancellation the outcomes collected so far are returned
// together with the context error.
func (s *RefreshService) RefreshAll(ctx context.Context) ([]domain.RefreshOutcome, error) {
	candidates, err := s.SelectCandidates(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("refresh batch started", slog.Int("candidates", len(candidates)))

	outcomes := make([]domain.RefreshOutcome, 0, len(candidates))
	for _, person := range candidates {
		if err := wait(ctx, s.config.FetchDelay); err != nil {
			return outcomes, err
		}

		outcomes = append(outcomes, s.UpdatePerson(ctx, person))
	}

	updated, failed := domain.CountOutcomes(outcomes)
	s.logger.Info("refresh batch finished",
		slog.Int("candidates", len(candidates)),
		slog.Int("updated", updated),
		slog.Int("failed", failed),
	)

	return outcomes, nil
}
