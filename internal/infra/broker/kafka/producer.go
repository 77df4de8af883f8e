package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
)

// Producer delivers outbox records to Kafka. Delivery is synchronous,
// idempotent and acknowledged by all in-sync replicas so the outbox can
// mark a record dispatched only after the broker owns it.
type Producer struct {
	client sarama.SyncProducer
}

func NewProducer(brokers []string, cfg *sarama.Config) (*Producer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	// Idempotent production requires a single in-flight request.
	cfg.Net.MaxOpenRequests = 1

	client, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: connecting producer: %w", err)
	}
	return &Producer{client: client}, nil
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(payload),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}
	for name, value := range headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(name),
			Value: []byte(value),
		})
	}
	if _, _, err := p.client.SendMessage(msg); err != nil {
		return fmt.Errorf("kafka: publishing to %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
