package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/pkg/kafka"
	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/redis"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startEvents(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)
	topics := []string{cfg.Publisher.Topic}

	var subscriber pubsub.Subscriber
	switch cfg.Publisher.Backend {
	case "kafka":
		sub, err := kafka.NewSubscriber(cfg.Kafka.GroupID, cfg.Kafka.Addrs, topics, s.printEvent)
		if err != nil {
			return err
		}

		subscriber = sub
	case "redis":
		client, err := redis.NewClient(s.ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}

		subscriber = redis.NewSubscriber(client, topics, s.printEvent)
	default:
		return errors.New("events need the kafka or redis publisher backend")
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	subscriber.Subscribe(ctx)
	return subscriber.Stop(s.ctx)
}

func (s *srv) printEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event model.LedgerEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode ledger event: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Event %s of user %d ref=%s points=%d at %s",
		event.Type, event.UserID, event.ReferenceID, event.Points, t.Format(time.RFC3339))
}
