package cron

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pointroulette/backend/internal/domain"
	"github.com/pointroulette/backend/pkg/xcontext"
)

// PointExpiryCronJob expires the units of users who are idle. Operations
// still sweep the units of their own user before reading them.
type PointExpiryCronJob struct {
	pointDomain domain.PointDomain
	clock       clockwork.Clock
	interval    time.Duration
}

func NewPointExpiryCronJob(
	pointDomain domain.PointDomain,
	clock clockwork.Clock,
	interval time.Duration,
) *PointExpiryCronJob {
	return &PointExpiryCronJob{
		pointDomain: pointDomain,
		clock:       clock,
		interval:    interval,
	}
}

func (job *PointExpiryCronJob) Do(ctx context.Context) {
	n, err := job.pointDomain.SweepExpired(ctx, job.clock.Now().UTC())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sweep expired points: %v", err)
		return
	}

	if n > 0 {
		xcontext.Logger(ctx).Infof("Expired %d point units", n)
	}
}

func (job *PointExpiryCronJob) RunNow() bool {
	return false
}

func (job *PointExpiryCronJob) Next() time.Time {
	return job.clock.Now().Add(job.interval)
}
