package pubsub

import (
	"context"
	"time"
)

// SubscribeHandler receives one ledger event pack with its publish time.
// Packs sharing a key arrive in commit order.
type SubscribeHandler func(context.Context, *Pack, time.Time)

// Subscriber feeds the ledger event topics to a SubscribeHandler until Stop.
// Subscribe blocks until ctx is done.
type Subscriber interface {
	Subscribe(context.Context)
	Stop(ctx context.Context) error
}
