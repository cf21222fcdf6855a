package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/jonboulle/clockwork"
	"github.com/pointroulette/backend/config"
	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/internal/domain"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/database"
	"github.com/pointroulette/backend/pkg/kafka"
	"github.com/pointroulette/backend/pkg/logger"
	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/redis"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app   *cli.App
	ctx   context.Context
	clock clockwork.Clock

	publisher pubsub.Publisher

	budgetRepo           repository.BudgetRepository
	pointUnitRepo        repository.PointUnitRepository
	pointTransactionRepo repository.PointTransactionRepository
	productRepo          repository.ProductRepository
	orderRepo            repository.OrderRepository
	participationRepo    repository.ParticipationRepository

	budgetDomain   domain.BudgetDomain
	pointDomain    domain.PointDomain
	productDomain  domain.ProductDomain
	rouletteDomain domain.RouletteDomain
	orderDomain    domain.OrderDomain
	reversalDomain domain.ReversalDomain
}

// load prepares everything a command needs, in dependency order.
func (s *srv) load(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadRepos(); err != nil {
		return err
	}

	s.loadDomains()
	return nil
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"), cctx.StringSlice("env-file")...)
	if err != nil {
		return err
	}

	if cctx.IsSet("log-level") {
		cfg.Log.Level = cctx.String("log-level")
	}

	if cctx.IsSet("db-driver") {
		cfg.Database.Driver = cctx.String("db-driver")
	}

	if cctx.IsSet("db-dsn") {
		cfg.Database.DSN = cctx.String("db-dsn")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	s.clock = clockwork.NewRealClock()
	s.ctx = xcontext.WithConfigs(cctx.Context, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(cfg.Log.Level, cfg.Log.Format).With("env", cfg.Env))
	s.ctx = xcontext.WithClock(s.ctx, s.clock)
	return nil
}

func (s *srv) loadDatabase() error {
	db, err := database.Open(xcontext.Configs(s.ctx).Database)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx)
	switch cfg.Publisher.Backend {
	case "kafka":
		publisher, err := kafka.NewPublisher(cfg.Kafka.ClientID, cfg.Kafka.Addrs)
		if err != nil {
			return err
		}

		s.publisher = publisher
	case "redis":
		client, err := redis.NewClient(s.ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}

		s.publisher = redis.NewPublisher(client)
	default:
		s.publisher = pubsub.NewNoopPublisher()
	}

	return nil
}

func (s *srv) loadRepos() error {
	node, err := snowflake.NewNode(xcontext.Configs(s.ctx).Ledger.NodeID)
	if err != nil {
		return fmt.Errorf("cannot create snowflake node: %w", err)
	}

	s.budgetRepo = repository.NewBudgetRepository()
	s.pointUnitRepo = repository.NewPointUnitRepository()
	s.pointTransactionRepo = repository.NewPointTransactionRepository(node)
	s.productRepo = repository.NewProductRepository()
	s.orderRepo = repository.NewOrderRepository()
	s.participationRepo = repository.NewParticipationRepository()
	return nil
}

func (s *srv) loadDomains() {
	s.budgetDomain = domain.NewBudgetDomain(s.budgetRepo)
	s.pointDomain = domain.NewPointDomain(s.pointUnitRepo, s.pointTransactionRepo)
	s.productDomain = domain.NewProductDomain(s.productRepo)
	s.rouletteDomain = domain.NewRouletteDomain(s.participationRepo, s.budgetRepo, s.budgetDomain,
		s.pointDomain, domain.NewWeightedRewardSelector(common.RouletteRewards), s.publisher)
	s.orderDomain = domain.NewOrderDomain(s.orderRepo, s.productRepo, s.productDomain,
		s.pointDomain, s.publisher)
	s.reversalDomain = domain.NewReversalDomain(s.participationRepo, s.budgetRepo, s.budgetDomain,
		s.pointDomain, s.publisher)
}
