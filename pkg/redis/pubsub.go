package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

// envelope keeps the partition key of a pack, redis channels carry a single
// payload only.
type envelope struct {
	Key  []byte    `json:"key"`
	Msg  []byte    `json:"msg"`
	Time time.Time `json:"time"`
}

type publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *publisher {
	return &publisher{client: client}
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	b, err := json.Marshal(envelope{Key: pack.Key, Msg: pack.Msg, Time: time.Now().UTC()})
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, topic, b).Err(); err != nil {
		return fmt.Errorf("p.client.Publish: %w", err)
	}

	return nil
}

type subscriber struct {
	client  *redis.Client
	topics  []string
	handler pubsub.SubscribeHandler
}

func NewSubscriber(client *redis.Client, topics []string, handler pubsub.SubscribeHandler) *subscriber {
	return &subscriber{client: client, topics: topics, handler: handler}
}

func (s *subscriber) Subscribe(ctx context.Context) {
	ps := s.client.Subscribe(ctx, s.topics...)
	defer ps.Close()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var e envelope
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot decode message of channel %s: %v", msg.Channel, err)
				continue
			}

			s.handler(ctx, &pubsub.Pack{Key: e.Key, Msg: e.Msg}, e.Time)
		}
	}
}

func (s *subscriber) Stop(ctx context.Context) error {
	return s.client.Close()
}
