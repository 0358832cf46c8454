// Package feed carries availability changes between booking sessions over a
// Redis pub/sub channel. Delivery is at-least-once with no ordering
// guarantee; the consumer side stays correct because AvailabilityStore
// applies changes idempotently.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/casamar/booking-api/internal/core/domain"
)

const DefaultChannel = "availability.changes"

type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, change domain.AvailabilityChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to encode availability change: %w", err)
	}

	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Subscriber consumes the change channel and applies each message to the
// local availability store. The subscription lives exactly as long as the
// context passed to Run: cancelling it closes the channel, so subscriptions
// cannot accumulate across screen navigations.
type Subscriber struct {
	client  *redis.Client
	channel string
	apply   func(domain.AvailabilityChange) error
}

func NewSubscriber(client *redis.Client, channel string, apply func(domain.AvailabilityChange) error) *Subscriber {
	return &Subscriber{client: client, channel: channel, apply: apply}
}

func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			change, err := decodeChange(msg.Payload)
			if err != nil {
				log.Printf("dropping malformed availability change: %v", err)
				continue
			}

			if err := s.apply(change); err != nil {
				log.Printf("failed to apply availability change for reservation %s: %v", change.ReservationID, err)
			}
		}
	}
}

func decodeChange(payload string) (domain.AvailabilityChange, error) {
	var change domain.AvailabilityChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return domain.AvailabilityChange{}, err
	}

	if change.Op != domain.ChangeAdd && change.Op != domain.ChangeRemove {
		return domain.AvailabilityChange{}, fmt.Errorf("unknown op %q", change.Op)
	}

	return change, nil
}
