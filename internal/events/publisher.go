package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher announces the banking domain events on their Redis streams. Each
// event type has a dedicated method so callers cannot publish a payload on
// the wrong stream.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishBillCreated announces a newly opened bill.
func (p *Publisher) PublishBillCreated(ctx context.Context, data BillCreatedEvent) error {
	return p.publish(ctx, BillEventsStream, BillCreated, data)
}

// PublishTransactionCreated announces a pending transfer awaiting its
// authorization key.
func (p *Publisher) PublishTransactionCreated(ctx context.Context, data TransactionCreatedEvent) error {
	return p.publish(ctx, TransactionEventsStream, TransactionCreated, data)
}

// PublishTransactionConfirmed announces a confirmed transfer; the snapshot
// refresher consumes these to keep bill display balances current.
func (p *Publisher) PublishTransactionConfirmed(ctx context.Context, data TransactionConfirmedEvent) error {
	return p.publish(ctx, TransactionEventsStream, TransactionConfirmed, data)
}

func (p *Publisher) publish(ctx context.Context, stream, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	return nil
}
