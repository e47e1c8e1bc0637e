// Package kafka publishes ledger events to a Kafka topic after commit.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"forge/internal/domain/transaction"
)

// Publisher implements transaction.EventPublisher on top of a kafka-go
// writer. Messages are keyed by tenant id so one tenant's events stay
// ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) TransactionPosted(ctx context.Context, event transaction.PostedEvent) error {
	return p.publish(ctx, "transaction.posted", event.TenantID.String(), event)
}

func (p *Publisher) TransactionDeleted(ctx context.Context, event transaction.DeletedEvent) error {
	return p.publish(ctx, "transaction.deleted", event.TenantID.String(), event)
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
