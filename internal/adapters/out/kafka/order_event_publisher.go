package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"shoporders/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventPublisher writes ports.OrderEvent values as JSON.
type OrderEventPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewOrderEventPublisher(writer MessageWriter, logger *slog.Logger) *OrderEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderEventPublisher{writer: writer, logger: logger.With("component", "kafka_order_events")}
}

func (p *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event ports.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event for order %s: %w", event.Type, event.OrderID, err)
	}

	p.logger.DebugContext(ctx, "order event published", "type", event.Type, "orderId", event.OrderID)
	return nil
}

// Close flushes pending messages.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

// DisabledPublisher drops events. It stands in when no broker is configured.
type DisabledPublisher struct{}

func (DisabledPublisher) PublishOrderEvent(context.Context, ports.OrderEvent) error { return nil }

func (DisabledPublisher) Close() error { return nil }
