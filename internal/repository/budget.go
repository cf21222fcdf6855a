package repository

import (
	"context"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetRepository interface {
	CreateIfNotExists(ctx context.Context, budget *entity.DailyBudget) (bool, error)
	GetByDate(ctx context.Context, date string) (*entity.DailyBudget, error)
	Allocate(ctx context.Context, date string, amount int64) error
	Release(ctx context.Context, date string, amount int64) error
	Resize(ctx context.Context, date string, total int64) error
}

type budgetRepository struct{}

func NewBudgetRepository() *budgetRepository {
	return &budgetRepository{}
}

// CreateIfNotExists inserts the budget unless a row for the same date exists
// and reports whether it inserted. Losing a concurrent insert is not an
// error.
func (r *budgetRepository) CreateIfNotExists(ctx context.Context, budget *entity.DailyBudget) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "budget_date"}},
			DoNothing: true,
		}).Create(budget)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *budgetRepository) GetByDate(ctx context.Context, date string) (*entity.DailyBudget, error) {
	var result entity.DailyBudget
	if err := xcontext.DB(ctx).Take(&result, "budget_date=?", date).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *budgetRepository) Allocate(ctx context.Context, date string, amount int64) error {
	tx := xcontext.DB(ctx).Model(&entity.DailyBudget{}).
		Where("budget_date=? AND used_points+? <= total_points", date, amount).
		Updates(map[string]any{
			"used_points": gorm.Expr("used_points+?", amount),
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

func (r *budgetRepository) Release(ctx context.Context, date string, amount int64) error {
	tx := xcontext.DB(ctx).Model(&entity.DailyBudget{}).
		Where("budget_date=? AND used_points >= ?", date, amount).
		Updates(map[string]any{
			"used_points": gorm.Expr("used_points-?", amount),
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

func (r *budgetRepository) Resize(ctx context.Context, date string, total int64) error {
	tx := xcontext.DB(ctx).Model(&entity.DailyBudget{}).
		Where("budget_date=? AND used_points <= ?", date, total).
		Updates(map[string]any{
			"total_points": total,
			"version":      gorm.Expr("version+1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
