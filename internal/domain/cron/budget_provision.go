package cron

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pointroulette/backend/internal/domain"
	"github.com/pointroulette/backend/pkg/dateutil"
	"github.com/pointroulette/backend/pkg/xcontext"
)

// BudgetProvisionCronJob creates the budget of the next day ahead of time, so
// the first spins of a day do not race on creating it.
type BudgetProvisionCronJob struct {
	budgetDomain domain.BudgetDomain
	clock        clockwork.Clock
	hour         int
}

func NewBudgetProvisionCronJob(
	budgetDomain domain.BudgetDomain,
	clock clockwork.Clock,
	hour int,
) *BudgetProvisionCronJob {
	return &BudgetProvisionCronJob{
		budgetDomain: budgetDomain,
		clock:        clock,
		hour:         hour,
	}
}

func (job *BudgetProvisionCronJob) Do(ctx context.Context) {
	now := job.clock.Now().UTC()
	total := xcontext.Configs(ctx).Ledger.DefaultDailyBudget
	for _, date := range []string{dateutil.Date(now), dateutil.Date(now.AddDate(0, 0, 1))} {
		if err := job.budgetDomain.Ensure(ctx, date, total); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot provision budget of %s: %v", date, err)
		}
	}
}

func (job *BudgetProvisionCronJob) RunNow() bool {
	return true
}

// Next returns the next occurrence of the configured hour in UTC.
func (job *BudgetProvisionCronJob) Next() time.Time {
	now := job.clock.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), job.hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
