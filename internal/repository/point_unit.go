package repository

import (
	"context"
	"time"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PointUnitRepository interface {
	Create(ctx context.Context, unit *entity.PointUnit) error
	GetByID(ctx context.Context, id string) (*entity.PointUnit, error)
	GetByUserID(ctx context.Context, userID int64) ([]entity.PointUnit, error)
	GetAvailableByUserID(ctx context.Context, userID int64, asOf time.Time) ([]entity.PointUnit, error)
	GetExpiringByUserID(ctx context.Context, userID int64, asOf, until time.Time) ([]entity.PointUnit, error)
	GetByParticipationID(ctx context.Context, participationID string) ([]entity.PointUnit, error)
	SumAvailable(ctx context.Context, userID int64, asOf time.Time) (int64, error)
	SumExpiring(ctx context.Context, userID int64, asOf, until time.Time) (int64, error)
	SumRecoverable(ctx context.Context, participationID string, asOf time.Time) (int64, error)
	Deduct(ctx context.Context, unitID string, amount int64) error
	CancelByParticipationID(ctx context.Context, participationID string) (int64, error)
	Expire(ctx context.Context, asOf time.Time) (int64, error)
	ExpireByUserID(ctx context.Context, userID int64, asOf time.Time) (int64, error)
}

type pointUnitRepository struct{}

func NewPointUnitRepository() *pointUnitRepository {
	return &pointUnitRepository{}
}

func (r *pointUnitRepository) Create(ctx context.Context, unit *entity.PointUnit) error {
	return xcontext.DB(ctx).Create(unit).Error
}

func (r *pointUnitRepository) GetByID(ctx context.Context, id string) (*entity.PointUnit, error) {
	var result entity.PointUnit
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pointUnitRepository) GetByUserID(ctx context.Context, userID int64) ([]entity.PointUnit, error) {
	var result []entity.PointUnit
	err := xcontext.DB(ctx).Where("user_id=?", userID).
		Order("earned_at DESC").Order("id").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetAvailableByUserID returns the spendable units of the user, soonest
// expiring first.
func (r *pointUnitRepository) GetAvailableByUserID(
	ctx context.Context, userID int64, asOf time.Time,
) ([]entity.PointUnit, error) {
	var result []entity.PointUnit
	err := xcontext.DB(ctx).
		Where("user_id=? AND status=? AND expires_at > ?", userID, entity.PointUnitAvailable, asOf).
		Order("expires_at ASC").Order("earned_at ASC").Order("id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointUnitRepository) GetExpiringByUserID(
	ctx context.Context, userID int64, asOf, until time.Time,
) ([]entity.PointUnit, error) {
	var result []entity.PointUnit
	err := xcontext.DB(ctx).
		Where("user_id=? AND status=? AND expires_at > ? AND expires_at <= ?",
			userID, entity.PointUnitAvailable, asOf, until).
		Order("expires_at ASC").Order("id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointUnitRepository) GetByParticipationID(
	ctx context.Context, participationID string,
) ([]entity.PointUnit, error) {
	var result []entity.PointUnit
	if err := xcontext.DB(ctx).Find(&result, "participation_id=?", participationID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointUnitRepository) SumAvailable(ctx context.Context, userID int64, asOf time.Time) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.PointUnit{}).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Where("user_id=? AND status=? AND expires_at > ?", userID, entity.PointUnitAvailable, asOf).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *pointUnitRepository) SumExpiring(
	ctx context.Context, userID int64, asOf, until time.Time,
) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.PointUnit{}).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Where("user_id=? AND status=? AND expires_at > ? AND expires_at <= ?",
			userID, entity.PointUnitAvailable, asOf, until).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// SumRecoverable returns the points of the participation which still sit in
// available units not expired at asOf.
func (r *pointUnitRepository) SumRecoverable(
	ctx context.Context, participationID string, asOf time.Time,
) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.PointUnit{}).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Where("participation_id=? AND status=? AND expires_at > ?",
			participationID, entity.PointUnitAvailable, asOf).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// Deduct takes amount from an available unit holding at least amount and
// marks the unit used when it is drained, in one versioned statement. Status
// is assigned first because MySQL evaluates assignments left to right. It
// returns gorm.ErrRecordNotFound if the unit no longer satisfies the guard.
func (r *pointUnitRepository) Deduct(ctx context.Context, unitID string, amount int64) error {
	tx := xcontext.DB(ctx).Exec(`
		UPDATE point_units SET
			status = CASE WHEN remaining_amount = ? THEN ? ELSE status END,
			remaining_amount = remaining_amount - ?,
			version = version + 1,
			updated_at = ?
		WHERE id = ? AND status = ? AND remaining_amount >= ?
	`, amount, entity.PointUnitUsed, amount, xcontext.Now(ctx),
		unitID, entity.PointUnitAvailable, amount)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// CancelByParticipationID forces the untouched available units of the
// participation to canceled and returns how many were canceled.
func (r *pointUnitRepository) CancelByParticipationID(ctx context.Context, participationID string) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.PointUnit{}).
		Where("participation_id=? AND status=? AND remaining_amount=original_amount",
			participationID, entity.PointUnitAvailable).
		Updates(map[string]any{
			"status":           entity.PointUnitCanceled,
			"remaining_amount": 0,
			"version":          gorm.Expr("version+1"),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

func (r *pointUnitRepository) Expire(ctx context.Context, asOf time.Time) (int64, error) {
	return r.expire(xcontext.DB(ctx).Where("status=? AND expires_at <= ?", entity.PointUnitAvailable, asOf))
}

func (r *pointUnitRepository) ExpireByUserID(ctx context.Context, userID int64, asOf time.Time) (int64, error) {
	return r.expire(xcontext.DB(ctx).
		Where("user_id=? AND status=? AND expires_at <= ?", userID, entity.PointUnitAvailable, asOf))
}

func (r *pointUnitRepository) expire(db *gorm.DB) (int64, error) {
	tx := db.Model(&entity.PointUnit{}).Updates(map[string]any{
		"status":           entity.PointUnitExpired,
		"remaining_amount": 0,
		"version":          gorm.Expr("version+1"),
	})
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}
