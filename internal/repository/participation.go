package repository

import (
	"context"
	"time"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ParticipationStats struct {
	Count         int64
	AwardedPoints int64
}

type ParticipationRepository interface {
	Create(ctx context.Context, participation *entity.Participation) error
	GetByID(ctx context.Context, id string) (*entity.Participation, error)
	GetActive(ctx context.Context, userID int64, date string) (*entity.Participation, error)
	GetByDate(ctx context.Context, date string) ([]entity.Participation, error)
	GetStatsByDate(ctx context.Context, date string) (*ParticipationStats, error)
	Cancel(ctx context.Context, id string, canceledAt time.Time) error
}

type participationRepository struct{}

func NewParticipationRepository() *participationRepository {
	return &participationRepository{}
}

func (r *participationRepository) Create(ctx context.Context, participation *entity.Participation) error {
	return xcontext.DB(ctx).Create(participation).Error
}

func (r *participationRepository) GetByID(ctx context.Context, id string) (*entity.Participation, error) {
	var result entity.Participation
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participationRepository) GetActive(ctx context.Context, userID int64, date string) (*entity.Participation, error) {
	var result entity.Participation
	err := xcontext.DB(ctx).
		Take(&result, "active_key=?", entity.ParticipationActiveKey(userID, date)).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participationRepository) GetByDate(ctx context.Context, date string) ([]entity.Participation, error) {
	var result []entity.Participation
	err := xcontext.DB(ctx).Where("participate_date=?", date).
		Order("awarded_at DESC").Order("id").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *participationRepository) GetStatsByDate(ctx context.Context, date string) (*ParticipationStats, error) {
	var result ParticipationStats
	err := xcontext.DB(ctx).Model(&entity.Participation{}).
		Select("COUNT(*) AS count, COALESCE(SUM(awarded_points), 0) AS awarded_points").
		Where("participate_date=? AND canceled=?", date, false).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Cancel marks the participation canceled and frees its active key. It
// returns gorm.ErrRecordNotFound if the participation is canceled already.
func (r *participationRepository) Cancel(ctx context.Context, id string, canceledAt time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Participation{}).
		Where("id=? AND canceled=?", id, false).
		Updates(map[string]any{
			"canceled":    true,
			"canceled_at": canceledAt,
			"active_key":  gorm.Expr("NULL"),
			"version":     gorm.Expr("version+1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
