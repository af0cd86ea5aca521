package domain

import (
	"time"

	"personrefresh/src/domain/entities"

	"github.com/google/uuid"
)

const EventTypePersonProfileRefreshed = "person.profile_refreshed"

// PersonRefreshedEvent is published after a person was refreshed and saved.
type PersonRefreshedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	PersonID      int64     `json:"person_id"`
	LinkedinURL   string    `json:"linkedin_url"`
	FieldsChanged []string  `json:"fields_changed"`
	FetchedAt     time.Time `json:"fetched_at"`
}

func NewPersonRefreshedEvent(person entities.Person, fieldsChanged []string) PersonRefreshedEvent {
	event := PersonRefreshedEvent{
		EventID:       uuid.NewString(),
		EventType:     EventTypePersonProfileRefreshed,
		OccurredAt:    time.Now().UTC(),
		PersonID:      person.ID,
		LinkedinURL:   person.LinkedinURL,
		FieldsChanged: fieldsChanged,
	}
	if person.Metadata.LinkedinLastFetched != nil {
		event.FetchedAt = person.Metadata.LinkedinLastFetched.UTC()
	}
	if event.FieldsChanged == nil {
		event.FieldsChanged = []string{}
	}
	return event
}
