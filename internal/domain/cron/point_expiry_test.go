package cron

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pointroulette/backend/internal/domain"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_PointExpiryCronJob(t *testing.T) {
	ctx, clock := testutil.MockContextWithClock()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	pointUnitRepo := repository.NewPointUnitRepository()
	pointDomain := domain.NewPointDomain(pointUnitRepo, repository.NewPointTransactionRepository(node))
	job := NewPointExpiryCronJob(pointDomain, clock, 30*time.Minute)

	require.False(t, job.RunNow())
	require.Equal(t, testutil.Now.Add(30*time.Minute), job.Next())

	now := clock.Now()
	soon, err := pointDomain.Grant(ctx, 1, entity.PointEventRouletteReward, 100, now, now.Add(time.Hour), model.PointSource{})
	require.NoError(t, err)
	late, err := pointDomain.Grant(ctx, 2, entity.PointEventRouletteReward, 100, now, now.Add(48*time.Hour), model.PointSource{})
	require.NoError(t, err)

	job.Do(ctx)
	unit, err := pointUnitRepo.GetByID(ctx, soon.ID)
	require.NoError(t, err)
	require.Equal(t, entity.PointUnitAvailable, unit.Status)

	clock.Advance(2 * time.Hour)
	job.Do(ctx)

	unit, err = pointUnitRepo.GetByID(ctx, soon.ID)
	require.NoError(t, err)
	require.Equal(t, entity.PointUnitExpired, unit.Status)
	require.Equal(t, int64(0), unit.RemainingAmount)

	unit, err = pointUnitRepo.GetByID(ctx, late.ID)
	require.NoError(t, err)
	require.Equal(t, entity.PointUnitAvailable, unit.Status)
}
