package domain

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/xcontext"
)

const (
	EventParticipated          = "participated"
	EventParticipationCanceled = "participation_canceled"
	EventOrderCreated          = "order_created"
	EventOrderCanceled         = "order_canceled"
)

// ledgerEventPublisher announces committed ledger operations. A failure to
// publish is logged only, the operation stays committed.
type ledgerEventPublisher struct {
	publisher pubsub.Publisher
}

func newLedgerEventPublisher(publisher pubsub.Publisher) *ledgerEventPublisher {
	if publisher == nil {
		publisher = pubsub.NewNoopPublisher()
	}

	return &ledgerEventPublisher{publisher: publisher}
}

func (p *ledgerEventPublisher) publish(ctx context.Context, event model.LedgerEvent) {
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal ledger event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Publisher.Topic
	err = p.publisher.Publish(ctx, topic, &pubsub.Pack{
		Key: []byte(strconv.FormatInt(event.UserID, 10)),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event of %s: %v", event.Type, event.ReferenceID, err)
	}
}
