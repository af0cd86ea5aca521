package kafka

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// KafkaClient publishes messages through a synchronous sarama producer.
type KafkaClient struct {
	logger   *slog.Logger
	producer sarama.SyncProducer
}

type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string
}

func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0
	config.ClientID = "personrefresh"

	// Um evento por pessoa atualizada: prioriza durabilidade sobre vazão.
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 250 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1024 * 1024

	return config
}

func NewKafkaClient(logger *slog.Logger, brokers string) (*KafkaClient, error) {
	brokerList := strings.Split(brokers, ",")

	producer, err := sarama.NewSyncProducer(brokerList, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	logger.Info("Kafka producer initialized", "brokers", brokerList)

	return &KafkaClient{
		logger:   logger,
		producer: producer,
	}, nil
}

// NewKafkaClientWithProducer wraps an already built producer.
func NewKafkaClientWithProducer(logger *slog.Logger, producer sarama.SyncProducer) *KafkaClient {
	return &KafkaClient{logger: logger, producer: producer}
}

func (k *KafkaClient) Producer(messages []Message, topic string) error {
	if len(messages) == 0 {
		return nil
	}

	kafkaMessages := make([]*sarama.ProducerMessage, len(messages))
	for i, msg := range messages {
		kafkaMessages[i] = &sarama.ProducerMessage{
			Topic:   topic,
			Key:     sarama.StringEncoder(msg.Key),
			Value:   sarama.ByteEncoder(msg.Value),
			Headers: toRecordHeaders(msg.Headers),
		}
	}

	if err := k.producer.SendMessages(kafkaMessages); err != nil {
		var producerErrors sarama.ProducerErrors
		if errors.As(err, &producerErrors) {
			return fmt.Errorf("batch send failed: %d/%d messages failed: %w", len(producerErrors), len(messages), err)
		}
		return fmt.Errorf("batch send failed: %w", err)
	}

	k.logger.Debug("Batch sent", "topic", topic, "messages", len(messages))
	return nil
}

func (k *KafkaClient) Close() error {
	if err := k.producer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	return nil
}

func toRecordHeaders(headers map[string]string) []sarama.RecordHeader {
	if len(headers) == 0 {
		return nil
	}

	recordHeaders := make([]sarama.RecordHeader, 0, len(headers))
	for key, value := range headers {
		recordHeaders = append(recordHeaders, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}
	return recordHeaders
}
