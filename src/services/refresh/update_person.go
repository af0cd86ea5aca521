package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"personrefresh/src/domain"
	"personrefresh/src/domain/entities"
)

// statusError é satisfeito pelos erros HTTP do cliente de perfis.
type statusError interface {
	Status() int
	Response() string
}

// UpdatePerson fetches, normalizes and saves one person. It never returns an
// error: failures are logged and reported as a failed outcome, and the stored
// record is left untouched.
func (s *RefreshService) UpdatePerson(ctx context.Context, person entities.Person) domain.RefreshOutcome {
	started := time.Now()

	outcome := s.updatePerson(ctx, person)

	s.metrics.ObserveOutcome(string(outcome.Status), time.Since(started))
	return outcome
}

func (s *RefreshService) updatePerson(ctx context.Context, person entities.Person) domain.RefreshOutcome {
	raw, err := s.fetcher.FetchProfile(ctx, person.LinkedinURL)
	if err != nil {
		return s.fetchFailed(person, err)
	}

	profile, err := domain.DecodeExternalProfile(raw)
	if err != nil {
		return s.fetchFailed(person, err)
	}

	update := NormalizeProfile(profile)

	updated := person
	if profile.PublicProfileURL != "" {
		updated.LinkedinURL = profile.PublicProfileURL
	}
	update.ApplyTo(&updated)

	fetchedAt := s.now()
	updated.Metadata = entities.PersonMetadata{
		LinkedinProfile:     append([]byte(nil), raw...),
		LinkedinLastFetched: &fetchedAt,
	}

	saved, err := s.store.Save(ctx, updated)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrPersonPersist, err)
		s.logger.Warn("failed to save refreshed person",
			slog.Int64("person_id", person.ID),
			slog.String("linkedin_url", person.LinkedinURL),
			slog.String("error", err.Error()),
		)
		return domain.FailedOutcome(person.ID, err)
	}

	s.publish(ctx, saved, update.Fields())

	s.logger.Info("person refreshed",
		slog.Int64("person_id", saved.ID),
		slog.String("linkedin_url", saved.LinkedinURL),
		slog.Any("fields", update.Fields()),
	)

	return domain.UpdatedOutcome(saved)
}

func (s *RefreshService) fetchFailed(person entities.Person, cause error) domain.RefreshOutcome {
	err := fmt.Errorf("%w: %w", domain.ErrProfileFetch, cause)

	attrs := []any{
		slog.Int64("person_id", person.ID),
		slog.String("linkedin_url", person.LinkedinURL),
		slog.String("error", cause.Error()),
	}

	var httpErr statusError
	if s.config.LogFetchErrorDetail && errors.As(cause, &httpErr) {
		attrs = append(attrs,
			slog.Int("status", httpErr.Status()),
			slog.String("response", httpErr.Response()),
		)
	}

	s.logger.Warn("failed to fetch external profile", attrs...)
	return domain.FailedOutcome(person.ID, err)
}

// O evento é best-effort: o registro já foi salvo.
func (s *RefreshService) publish(ctx context.Context, person entities.Person, fields []string) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishPersonRefreshed(ctx, person, fields); err != nil {
		s.logger.Error("failed to publish person refreshed event",
			slog.Int64("person_id", person.ID),
			slog.String("error", err.Error()),
		)
	}
}
