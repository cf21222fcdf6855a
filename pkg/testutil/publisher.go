package testutil

import (
	"context"
	"sync"

	"github.com/pointroulette/backend/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

// RecordPublisher keeps every published pack.
type RecordPublisher struct {
	mu    sync.Mutex
	packs []*pubsub.Pack
}

func (p *RecordPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.packs = append(p.packs, pack)
	return nil
}

func (p *RecordPublisher) Packs() []*pubsub.Pack {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*pubsub.Pack(nil), p.packs...)
}
