package storage

import (
	"context"
	"encoding/json"
	"log"

	"eats-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisBus carries order lifecycle events over Redis pub/sub channels. Each
// Subscribe call gets its own connection and stream; delivery is best-effort
// with no replay for late subscribers.
type RedisBus struct {
	Client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{Client: client}
}

func (b *RedisBus) Publish(ctx context.Context, channel string, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.Client.Publish(ctx, channel, payload).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, channel string) (<-chan domain.OrderEvent, func(), error) {
	sub := b.Client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	events := make(chan domain.OrderEvent)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event domain.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[bus] decode event on %s: %v", channel, err)
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() { sub.Close() }
	return events, cancel, nil
}
