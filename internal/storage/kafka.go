package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"eats-backend/internal/domain"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher mirrors order lifecycle events to a durable topic, keyed by
// order id so all events for one order land on the same partition.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.OrderID)),
		Value: payload,
	})
}
