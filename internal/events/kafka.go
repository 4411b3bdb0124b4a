// Package events publishes order status changes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic = "order-events"

	// BatchTimeout caps how long a synchronous publish waits for its batch to fill.
	BatchTimeout = 10 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per event, keyed by order id so that the
// events of one order stay in partition order.
type KafkaPublisher struct {
	writer messageWriter
}

var _ port.OrderEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           BatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

type orderEventMessage struct {
	OrderID    string    `json:"order_id"`
	CheckoutID string    `json:"checkout_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	value, err := json.Marshal(orderEventMessage{
		OrderID:    event.OrderID.String(),
		CheckoutID: event.CheckoutID.String(),
		CustomerID: event.CustomerID.String(),
		Status:     event.Status.String(),
		Total:      event.Total.Major(),
		Currency:   event.Total.Currency.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order." + event.Status.String())},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, domain.OrderEvent) error {
	return nil
}
