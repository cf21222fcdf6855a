package main

import (
	"os/signal"
	"syscall"

	"github.com/pointroulette/backend/internal/domain/cron"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx).Cron
	cronJobManager := cron.NewCronJobManager(s.clock)

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		cronJobManager.Cancel(s.ctx)
	}()

	cronJobManager.Start(
		s.ctx,
		cron.NewBudgetProvisionCronJob(s.budgetDomain, s.clock, cfg.BudgetProvisionHour),
		cron.NewPointExpiryCronJob(s.pointDomain, s.clock, cfg.PointExpiryInterval.Duration),
	)

	return nil
}
