package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPointUnit(userID, amount int64, expiresAt time.Time, participationID string) *entity.PointUnit {
	return &entity.PointUnit{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          userID,
		EventType:       entity.PointEventRouletteReward,
		OriginalAmount:  amount,
		RemainingAmount: amount,
		EarnedAt:        testutil.Now,
		ExpiresAt:       expiresAt,
		Status:          entity.PointUnitAvailable,
		ParticipationID: sql.NullString{String: participationID, Valid: participationID != ""},
	}
}

func Test_pointUnitRepository_GetAvailableByUserID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewPointUnitRepository()

	late := newPointUnit(1, 100, testutil.Now.Add(72*time.Hour), "")
	soon := newPointUnit(1, 200, testutil.Now.Add(time.Hour), "")
	expired := newPointUnit(1, 300, testutil.Now.Add(-time.Hour), "")
	other := newPointUnit(2, 400, testutil.Now.Add(time.Hour), "")
	for _, u := range []*entity.PointUnit{late, soon, expired, other} {
		require.NoError(t, repo.Create(ctx, u))
	}

	units, err := repo.GetAvailableByUserID(ctx, 1, testutil.Now)
	require.NoError(t, err)
	require.Len(t, units, 2)
	require.Equal(t, soon.ID, units[0].ID)
	require.Equal(t, late.ID, units[1].ID)

	total, err := repo.SumAvailable(ctx, 1, testutil.Now)
	require.NoError(t, err)
	require.Equal(t, int64(300), total)

	expiring, err := repo.SumExpiring(ctx, 1, testutil.Now, testutil.Now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(200), expiring)

	expiringUnits, err := repo.GetExpiringByUserID(ctx, 1, testutil.Now, testutil.Now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, expiringUnits, 1)
	require.Equal(t, soon.ID, expiringUnits[0].ID)
}

func Test_pointUnitRepository_Deduct(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewPointUnitRepository()

	unit := newPointUnit(1, 100, testutil.Now.Add(time.Hour), "")
	require.NoError(t, repo.Create(ctx, unit))

	require.NoError(t, repo.Deduct(ctx, unit.ID, 60))
	require.ErrorIs(t, repo.Deduct(ctx, unit.ID, 41), gorm.ErrRecordNotFound)

	got, err := repo.GetByID(ctx, unit.ID)
	require.NoError(t, err)
	require.Equal(t, int64(40), got.RemainingAmount)
	require.Equal(t, entity.PointUnitAvailable, got.Status)
	require.Equal(t, int64(1), got.Version)

	// Draining the unit marks it used.
	require.NoError(t, repo.Deduct(ctx, unit.ID, 40))
	got, err = repo.GetByID(ctx, unit.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.RemainingAmount)
	require.Equal(t, entity.PointUnitUsed, got.Status)
	require.Equal(t, int64(100), got.OriginalAmount)
	require.Equal(t, int64(2), got.Version)

	require.ErrorIs(t, repo.Deduct(ctx, unit.ID, 1), gorm.ErrRecordNotFound)
}

func Test_pointUnitRepository_CancelByParticipationID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewPointUnitRepository()

	untouched := newPointUnit(1, 100, testutil.Now.Add(time.Hour), "p1")
	touched := newPointUnit(1, 100, testutil.Now.Add(time.Hour), "p2")
	require.NoError(t, repo.Create(ctx, untouched))
	require.NoError(t, repo.Create(ctx, touched))
	require.NoError(t, repo.Deduct(ctx, touched.ID, 10))

	recoverable, err := repo.SumRecoverable(ctx, "p2", testutil.Now)
	require.NoError(t, err)
	require.Equal(t, int64(90), recoverable)

	recoverable, err = repo.SumRecoverable(ctx, "p1", untouched.ExpiresAt)
	require.NoError(t, err)
	require.Equal(t, int64(0), recoverable)

	n, err := repo.CancelByParticipationID(ctx, "p2")
	require.NoError(t, err)
	require.Equal(t, int64(0), n)

	n, err = repo.CancelByParticipationID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, untouched.ID)
	require.NoError(t, err)
	require.Equal(t, entity.PointUnitCanceled, got.Status)
	require.Equal(t, int64(0), got.RemainingAmount)

	units, err := repo.GetByParticipationID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, units, 1)

	// Canceling twice touches nothing.
	n, err = repo.CancelByParticipationID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func Test_pointUnitRepository_Expire(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewPointUnitRepository()

	u1 := newPointUnit(1, 100, testutil.Now.Add(-time.Minute), "")
	u2 := newPointUnit(2, 100, testutil.Now, "")
	u3 := newPointUnit(2, 100, testutil.Now.Add(time.Minute), "")
	for _, u := range []*entity.PointUnit{u1, u2, u3} {
		require.NoError(t, repo.Create(ctx, u))
	}

	n, err := repo.ExpireByUserID(ctx, 2, testutil.Now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = repo.Expire(ctx, testutil.Now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	for id, status := range map[string]entity.PointUnitStatus{
		u1.ID: entity.PointUnitExpired,
		u2.ID: entity.PointUnitExpired,
		u3.ID: entity.PointUnitAvailable,
	} {
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, status, got.Status)
	}

	units, err := repo.GetByUserID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, units, 2)
}
