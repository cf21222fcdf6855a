package repository

import (
	"context"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProductFilter struct {
	ActiveOnly bool
	Offset     int
	Limit      int
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	GetList(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	Update(ctx context.Context, id string, data map[string]any) error
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int64) error
	IncrementStock(ctx context.Context, id string, quantity int64) error
}

type productRepository struct{}

func NewProductRepository() *productRepository {
	return &productRepository{}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return xcontext.DB(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var result entity.Product
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var result entity.Product
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *productRepository) GetList(ctx context.Context, filter ProductFilter) ([]entity.Product, error) {
	tx := xcontext.DB(ctx).Model(&entity.Product{})
	if filter.ActiveOnly {
		tx = tx.Where("status=?", entity.ProductActive)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.Product
	if err := tx.Order("created_at DESC").Order("id").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *productRepository) Update(ctx context.Context, id string, data map[string]any) error {
	data["version"] = gorm.Expr("version+1")
	tx := xcontext.DB(ctx).Model(&entity.Product{}).Where("id=?", id).Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Product{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DecrementStock takes quantity from an active product holding at least
// quantity.
func (r *productRepository) DecrementStock(ctx context.Context, id string, quantity int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Product{}).
		Where("id=? AND status=? AND stock >= ?", id, entity.ProductActive, quantity).
		Updates(map[string]any{
			"stock":   gorm.Expr("stock-?", quantity),
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

// IncrementStock restocks the product whatever its status, deleted products
// included.
func (r *productRepository) IncrementStock(ctx context.Context, id string, quantity int64) error {
	tx := xcontext.DB(ctx).Unscoped().Model(&entity.Product{}).
		Where("id=?", id).
		Updates(map[string]any{
			"stock":   gorm.Expr("stock+?", quantity),
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
