// Package kafka publishes order lifecycle events.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"donations/internal/core/ports"
	"donations/internal/pkg/logger"

	"github.com/IBM/sarama"
)

var ErrTopicRequired = errors.New("kafka topic is required")

type orderStateChangedMessage struct {
	OrderID            string    `json:"order_id"`
	Code               string    `json:"code"`
	Event              string    `json:"event"`
	FromState          string    `json:"from_state"`
	ToState            string    `json:"to_state"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	ActorID            string    `json:"actor_id"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// Publisher writes OrderStateChanged events keyed by order id, so events of one order
// stay on one partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

var _ ports.OrderEventPublisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string, log *logger.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	config.Producer.RequiredAcks = sarama.WaitForAll
	prod, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	p, err := NewPublisherWithProducer(prod, topic, log)
	if err != nil {
		_ = prod.Close()
		return nil, err
	}
	return p, nil
}

func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) (*Publisher, error) {
	if topic == "" {
		return nil, ErrTopicRequired
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{producer: producer, topic: topic, log: log}, nil
}

func (p *Publisher) PublishStateChanged(ctx context.Context, event ports.OrderStateChanged) error {
	payload, err := json.Marshal(orderStateChangedMessage{
		OrderID:            event.OrderID.String(),
		Code:               event.Code,
		Event:              event.Event,
		FromState:          event.FromState,
		ToState:            event.ToState,
		CancellationReason: event.CancellationReason,
		ActorID:            event.Actor.String(),
		OccurredAt:         event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event"), Value: []byte(event.Event)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send order event to %s: %w", p.topic, err)
	}

	ctx = p.log.WithOrderID(ctx, event.OrderID.String())
	p.log.Debug(ctx, fmt.Sprintf("order event stored in %s/%d/%d", p.topic, partition, offset))
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// DiscardPublisher drops events. Used when no brokers are configured.
type DiscardPublisher struct{}

func (DiscardPublisher) PublishStateChanged(context.Context, ports.OrderStateChanged) error {
	return nil
}
