package repository

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/database"
	"github.com/pointroulette/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newParticipation(userID int64, date string, points int64) *entity.Participation {
	return &entity.Participation{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          userID,
		ParticipateDate: date,
		ActiveKey: sql.NullString{
			String: entity.ParticipationActiveKey(userID, date),
			Valid:  true,
		},
		AwardedPoints: points,
		AwardedAt:     testutil.Now,
		ExpiresAt:     testutil.Now.AddDate(0, 0, 30),
	}
}

func Test_participationRepository_ActiveKey(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewParticipationRepository()

	first := newParticipation(1, "2024-03-15", 100)
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newParticipation(1, "2024-03-15", 300))
	require.True(t, database.IsDuplicateKey(err))

	active, err := repo.GetActive(ctx, 1, "2024-03-15")
	require.NoError(t, err)
	require.Equal(t, first.ID, active.ID)

	require.NoError(t, repo.Cancel(ctx, first.ID, testutil.Now))
	require.ErrorIs(t, repo.Cancel(ctx, first.ID, testutil.Now), gorm.ErrRecordNotFound)

	_, err = repo.GetActive(ctx, 1, "2024-03-15")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// A canceled participation frees the day for the user.
	second := newParticipation(1, "2024-03-15", 500)
	require.NoError(t, repo.Create(ctx, second))

	canceled, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, canceled.Canceled)
	require.False(t, canceled.ActiveKey.Valid)
}

func Test_participationRepository_GetStatsByDate(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewParticipationRepository()

	p1 := newParticipation(1, "2024-03-15", 100)
	p2 := newParticipation(2, "2024-03-15", 300)
	p3 := newParticipation(3, "2024-03-15", 1000)
	p4 := newParticipation(1, "2024-03-16", 500)
	for _, p := range []*entity.Participation{p1, p2, p3, p4} {
		require.NoError(t, repo.Create(ctx, p))
	}
	require.NoError(t, repo.Cancel(ctx, p3.ID, testutil.Now))

	stats, err := repo.GetStatsByDate(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Count)
	require.Equal(t, int64(400), stats.AwardedPoints)

	participations, err := repo.GetByDate(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, participations, 3)

	stats, err = repo.GetStatsByDate(ctx, "2024-03-17")
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.Count)
	require.Equal(t, int64(0), stats.AwardedPoints)
}
