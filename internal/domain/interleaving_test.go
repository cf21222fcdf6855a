package domain

import (
	"context"
	"testing"
	"time"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// racingPointUnitRepository runs a competing write right around a read, the
// way another transaction could on a store that does not serialize them.
// Each hook fires once.
type racingPointUnitRepository struct {
	repository.PointUnitRepository

	afterGetAvailable        func(ctx context.Context, units []entity.PointUnit)
	beforeGetByParticipation func(ctx context.Context, participationID string)
	afterGetByParticipation  func(ctx context.Context, units []entity.PointUnit)
}

func (r *racingPointUnitRepository) GetAvailableByUserID(
	ctx context.Context, userID int64, asOf time.Time,
) ([]entity.PointUnit, error) {
	units, err := r.PointUnitRepository.GetAvailableByUserID(ctx, userID, asOf)
	if err == nil && r.afterGetAvailable != nil {
		hook := r.afterGetAvailable
		r.afterGetAvailable = nil
		hook(ctx, units)
	}

	return units, err
}

func (r *racingPointUnitRepository) GetByParticipationID(
	ctx context.Context, participationID string,
) ([]entity.PointUnit, error) {
	if r.beforeGetByParticipation != nil {
		hook := r.beforeGetByParticipation
		r.beforeGetByParticipation = nil
		hook(ctx, participationID)
	}

	units, err := r.PointUnitRepository.GetByParticipationID(ctx, participationID)
	if err == nil && r.afterGetByParticipation != nil {
		hook := r.afterGetByParticipation
		r.afterGetByParticipation = nil
		hook(ctx, units)
	}

	return units, err
}

// blindParticipationRepository never sees an active participation, leaving
// the unique active key as the only guard.
type blindParticipationRepository struct {
	repository.ParticipationRepository
}

func (blindParticipationRepository) GetActive(context.Context, int64, string) (*entity.Participation, error) {
	return nil, gorm.ErrRecordNotFound
}

func (l *ledger) pointTransactions(t *testing.T, userID int64) []entity.PointTransaction {
	txs, err := l.pointTxRepo.GetByUserID(l.ctx, userID, 0, 100)
	require.NoError(t, err)
	return txs
}

func Test_orderDomain_CreateOrder_UnitDrainedAfterRead(t *testing.T) {
	l := newLedger(t, 500)
	l.setBudget(t, 1000)
	p := l.participate(t, 1)
	productID := l.createProduct(t, "Mug", 300, 5)

	inner := l.pointUnitRepo
	racing := &racingPointUnitRepository{PointUnitRepository: inner}
	racing.afterGetAvailable = func(ctx context.Context, units []entity.PointUnit) {
		for _, u := range units {
			require.NoError(t, inner.Deduct(ctx, u.ID, u.RemainingAmount))
		}
	}
	l.pointUnitRepo = racing
	l.wire()

	_, err := l.order.CreateOrder(l.ctx, &model.CreateOrderRequest{
		UserID:    1,
		ProductID: productID,
		Quantity:  1,
	})
	require.True(t, errorx.Is(err, errorx.PointDeductionConflict), err)

	// Nothing of the order survives, the competing write included.
	require.Equal(t, int64(5), l.stock(t, productID))

	orders, err := l.orderRepo.GetList(l.ctx, repository.OrderFilter{UserID: 1})
	require.NoError(t, err)
	require.Empty(t, orders)
	require.Len(t, l.pointTransactions(t, 1), 1)

	unit, err := inner.GetByID(l.ctx, p.PointUnitID)
	require.NoError(t, err)
	require.Equal(t, int64(500), unit.RemainingAmount)
	require.Equal(t, entity.PointUnitAvailable, unit.Status)
	require.Equal(t, int64(500), l.balance(t, 1))
	l.requireConsistent(t)
}

func Test_reversalDomain_CancelParticipation_UnitTouchedAfterRead(t *testing.T) {
	l := newLedger(t, 500)
	l.setBudget(t, 1000)
	p := l.participate(t, 1)

	inner := l.pointUnitRepo
	racing := &racingPointUnitRepository{PointUnitRepository: inner}
	racing.afterGetByParticipation = func(ctx context.Context, units []entity.PointUnit) {
		require.Len(t, units, 1)
		require.NoError(t, inner.Deduct(ctx, units[0].ID, 100))
	}
	l.pointUnitRepo = racing
	l.wire()

	_, err := l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{
		ParticipationID: p.Participation.ID,
	})
	require.True(t, errorx.Is(err, errorx.PointAlreadyUsed), err)
	require.Contains(t, err.Error(), "were used")

	participation, err := l.participationRepo.GetByID(l.ctx, p.Participation.ID)
	require.NoError(t, err)
	require.False(t, participation.Canceled)
	require.Equal(t, int64(500), l.getBudget(t).UsedPoints)
	require.Len(t, l.pointTransactions(t, 1), 1)

	unit, err := inner.GetByID(l.ctx, p.PointUnitID)
	require.NoError(t, err)
	require.Equal(t, int64(500), unit.RemainingAmount)
	require.Equal(t, entity.PointUnitAvailable, unit.Status)
	l.requireConsistent(t)
}

func Test_reversalDomain_CancelParticipation_UnitTouchedBeforeRevoke(t *testing.T) {
	l := newLedger(t, 500)
	l.setBudget(t, 1000)
	p := l.participate(t, 1)

	inner := l.pointUnitRepo
	racing := &racingPointUnitRepository{PointUnitRepository: inner}
	racing.beforeGetByParticipation = func(ctx context.Context, participationID string) {
		require.NoError(t, inner.Deduct(ctx, p.PointUnitID, 100))
	}
	l.pointUnitRepo = racing
	l.wire()

	_, err := l.reversal.CancelParticipation(l.ctx, &model.CancelParticipationRequest{
		ParticipationID: p.Participation.ID,
	})
	require.True(t, errorx.Is(err, errorx.PointAlreadyUsed), err)
	require.Contains(t, err.Error(), "were revoked")

	participation, err := l.participationRepo.GetByID(l.ctx, p.Participation.ID)
	require.NoError(t, err)
	require.False(t, participation.Canceled)
	require.Equal(t, int64(500), l.getBudget(t).UsedPoints)
	require.Equal(t, int64(500), l.balance(t, 1))
	l.requireConsistent(t)
}

func Test_rouletteDomain_Participate_ActiveKeyTaken(t *testing.T) {
	l := newLedger(t, 300)
	l.setBudget(t, 1000)
	first := l.participate(t, 1)

	l.participationRepo = blindParticipationRepository{ParticipationRepository: l.participationRepo}
	l.wire()

	_, err := l.roulette.Participate(l.ctx, &model.ParticipateRequest{UserID: 1})
	require.True(t, errorx.Is(err, errorx.RouletteAlreadyParticipatedToday), err)

	// The allocation of the rejected spin is unwound.
	require.Equal(t, int64(300), l.getBudget(t).UsedPoints)
	require.Equal(t, int64(300), l.balance(t, 1))

	participations, err := l.participationRepo.GetByDate(l.ctx, first.Participation.Date)
	require.NoError(t, err)
	require.Len(t, participations, 1)
	l.requireConsistent(t)
}
