package entity

import (
	"context"
	"time"

	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SoftDeleteBase struct {
	Base
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type SnowFlakeBase struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

// MigrateTable creates or updates every ledger table to the latest layout.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&DailyBudget{},
		&PointUnit{},
		&PointTransaction{},
		&Product{},
		&Order{},
		&Participation{},
	)
}
