package domain

import (
	"testing"
	"time"

	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func Test_reversalDomain_CancelParticipation(t *testing.T) {
	l := newLedger(t, 500)
	l.setBudget(t, 1000)
	p := l.participate(t, 1)

	resp, err := l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{
		ParticipationID: p.Participation.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Participation.Canceled)
	require.NotNil(t, resp.Participation.CanceledAt)
	require.Equal(t, int64(500), resp.RevokedPoints)
	require.Equal(t, int64(1000), resp.RemainingBudget)
	require.Equal(t, int64(0), l.balance(t, 1))

	unit, err := l.pointUnitRepo.GetByID(l.ctx, p.PointUnitID)
	require.NoError(t, err)
	require.Equal(t, "CANCELED", string(unit.Status))

	_, err = l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{
		ParticipationID: p.Participation.ID,
	})
	require.True(t, errorx.Is(err, errorx.RouletteParticipationAlreadyCanceled))

	_, err = l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{ParticipationID: "unknown"})
	require.True(t, errorx.Is(err, errorx.RouletteParticipationNotFound))

	// The user may spin again the same day.
	again := l.participate(t, 1)
	require.NotEqual(t, p.Participation.ID, again.Participation.ID)
	require.Equal(t, int64(500), l.balance(t, 1))

	l.requireConsistent(t)
}

func Test_reversalDomain_CancelParticipation_PointsUsed(t *testing.T) {
	l := newLedger(t, 500)
	p := l.participate(t, 1)
	coffeeID := l.createProduct(t, "coffee", 100, 5)
	order := l.createOrder(t, 1, coffeeID, 1)

	_, err := l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{
		ParticipationID: p.Participation.ID,
	})
	require.True(t, errorx.Is(err, errorx.PointAlreadyUsed))

	// Nothing moved.
	require.Equal(t, int64(400), l.balance(t, 1))
	require.Equal(t, int64(500), l.getBudget(t).UsedPoints)

	// A refund is a new unit and does not make the reward whole again.
	_, err = l.order.CancelOrder(l.ctx, &model.CancelOrderRequest{OrderID: order.Order.ID})
	require.NoError(t, err)

	_, err = l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{
		ParticipationID: p.Participation.ID,
	})
	require.True(t, errorx.Is(err, errorx.PointAlreadyUsed))

	l.requireConsistent(t)
}

func Test_reversalDomain_CancelParticipation_Expired(t *testing.T) {
	l := newLedger(t, 500)
	l.setBudget(t, 1000)
	p := l.participate(t, 1)

	l.clock.Advance(31 * 24 * time.Hour)

	recoverable, err := l.point.Recoverable(l.ctx, p.Participation.ID, l.clock.Now())
	require.NoError(t, err)
	require.Equal(t, int64(0), recoverable)

	_, err = l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{
		ParticipationID: p.Participation.ID,
	})
	require.True(t, errorx.Is(err, errorx.PointAlreadyUsed), err)

	participation, err := l.participationRepo.GetByID(l.ctx, p.Participation.ID)
	require.NoError(t, err)
	require.False(t, participation.Canceled)

	budget, err := l.budgetRepo.GetByDate(l.ctx, p.Participation.Date)
	require.NoError(t, err)
	require.Equal(t, int64(500), budget.UsedPoints)
}
