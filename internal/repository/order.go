package repository

import (
	"context"
	"time"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderFilter struct {
	UserID int64
	Status entity.OrderStatus
	Offset int
	Limit  int
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetList(ctx context.Context, filter OrderFilter) ([]entity.Order, error)
	Cancel(ctx context.Context, id string, canceledAt time.Time) error
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error
}

type orderRepository struct{}

func NewOrderRepository() *orderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var result entity.Order
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *orderRepository) GetList(ctx context.Context, filter OrderFilter) ([]entity.Order, error) {
	tx := xcontext.DB(ctx).Model(&entity.Order{}).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
	if filter.UserID != 0 {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.Order
	if err := tx.Order("ordered_at DESC").Order("id").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// Cancel moves a placed order to canceled. It returns gorm.ErrRecordNotFound
// if the order is not placed anymore.
func (r *orderRepository) Cancel(ctx context.Context, id string, canceledAt time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Order{}).
		Where("id=? AND status=?", id, entity.OrderPlaced).
		Updates(map[string]any{
			"status":      entity.OrderCanceled,
			"canceled_at": canceledAt,
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

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error {
	tx := xcontext.DB(ctx).Model(&entity.Order{}).
		Where("id=? AND status=?", id, from).
		Updates(map[string]any{
			"status":  to,
			"version": gorm.Expr("version+1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
