package refresh

import (
	"context"
	"fmt"

	"personrefresh/src/domain"
	"personrefresh/src/domain/entities"
)

// SelectCandidates returns every person whose profile is missing or older than
// the staleness threshold. A failed query is fatal for the current batch.
func (s *RefreshService) SelectCandidates(ctx context.Context) ([]entities.Person, error) {
	cutoff := s.now().Add(-s.config.StalenessThreshold)

	candidates, err := s.store.FindRefreshCandidates(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("RefreshService.SelectCandidates - %w: %w", domain.ErrCandidateQuery, err)
	}

	s.metrics.ObserveCandidates(len(candidates))
	return candidates, nil
}
