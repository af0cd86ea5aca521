package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"personrefresh/src/domain"
	"personrefresh/src/domain/entities"
	"personrefresh/src/infra/kafka"
)

const sourceService = "person-refresh"

type PersonEventPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewPersonEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *PersonEventPublisher {
	return &PersonEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

// PublishPersonRefreshed publishes one person.profile_refreshed event keyed by
// person ID, so all events of a person land on the same partition in order.
func (p *PersonEventPublisher) PublishPersonRefreshed(ctx context.Context, person entities.Person, fieldsChanged []string) error {
	event := domain.NewPersonRefreshedEvent(person, fieldsChanged)

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType, err)
	}

	message := kafka.Message{
		Key:     strconv.FormatInt(person.ID, 10),
		Value:   eventBytes,
		Headers: p.createEventHeaders(event),
	}

	if err := p.kafkaClient.Producer([]kafka.Message{message}, p.topic); err != nil {
		return fmt.Errorf("failed to publish %s event to topic %s: %w", event.EventType, p.topic, err)
	}

	p.logger.Debug("Published person event",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"person_id", person.ID,
		"topic", p.topic)

	return nil
}

// createEventHeaders creates Kafka headers so consumers can filter without decoding the body
func (p *PersonEventPublisher) createEventHeaders(event domain.PersonRefreshedEvent) map[string]string {
	headers := map[string]string{
		"event_type":     event.EventType,
		"source_service": sourceService,
		"schema_version": "v1",
		"event_id":       event.EventID,
	}

	if len(event.FieldsChanged) > 0 {
		headers["fields_changed"] = strings.Join(event.FieldsChanged, ",")
	}

	return headers
}
