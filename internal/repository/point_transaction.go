package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/xcontext"
)

type PointTransactionRepository interface {
	Create(ctx context.Context, txs ...*entity.PointTransaction) error
	GetByUserID(ctx context.Context, userID int64, offset, limit int) ([]entity.PointTransaction, error)
}

type pointTransactionRepository struct {
	node *snowflake.Node
}

func NewPointTransactionRepository(node *snowflake.Node) *pointTransactionRepository {
	return &pointTransactionRepository{node: node}
}

// Create appends the records to the log. Ids are assigned here so that the log
// sorts by insertion.
func (r *pointTransactionRepository) Create(ctx context.Context, txs ...*entity.PointTransaction) error {
	if len(txs) == 0 {
		return nil
	}

	for _, tx := range txs {
		if tx.ID == 0 {
			tx.ID = r.node.Generate().Int64()
		}
	}

	return xcontext.DB(ctx).Create(txs).Error
}

func (r *pointTransactionRepository) GetByUserID(
	ctx context.Context, userID int64, offset, limit int,
) ([]entity.PointTransaction, error) {
	var result []entity.PointTransaction
	err := xcontext.DB(ctx).Where("user_id=?", userID).
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
