package fakes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"personrefresh/src/domain"
	"personrefresh/src/domain/entities"
)

// PersonStore is an in-memory store applying the same eligibility rule as the
// SQL predicate. Records are returned by id order.
type PersonStore struct {
	mu        sync.Mutex
	people    map[int64]entities.Person
	threshold time.Duration
	QueryErr  error
	SaveErr   error
	Saves     int
}

func NewPersonStore(threshold time.Duration, people ...entities.Person) *PersonStore {
	store := &PersonStore{
		people:    make(map[int64]entities.Person, len(people)),
		threshold: threshold,
	}
	for _, person := range people {
		store.people[person.ID] = person
	}
	return store
}

func (s *PersonStore) FindRefreshCandidates(_ context.Context, cutoff time.Time) ([]entities.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.QueryErr != nil {
		return nil, s.QueryErr
	}

	candidates := make([]entities.Person, 0)
	for _, person := range s.people {
		// cutoff = now - threshold
		if person.IsEligibleForRefresh(cutoff.Add(s.threshold), s.threshold) {
			candidates = append(candidates, person)
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates, nil
}

func (s *PersonStore) Save(_ context.Context, person entities.Person) (entities.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return entities.Person{}, s.SaveErr
	}
	if _, ok := s.people[person.ID]; !ok {
		return entities.Person{}, fmt.Errorf("person %d: %w", person.ID, domain.ErrPersonNotFound)
	}

	person.UpdatedAt = time.Now().UTC()
	s.people[person.ID] = person
	s.Saves++
	return person, nil
}

func (s *PersonStore) Get(id int64) (entities.Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person, ok := s.people[id]
	return person, ok
}
