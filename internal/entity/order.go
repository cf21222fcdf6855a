package entity

import (
	"database/sql"
	"time"

	"github.com/pointroulette/backend/pkg/enum"
)

type OrderStatus string

var (
	OrderPlaced    = enum.New(OrderStatus("PLACED"), "PLACED")
	OrderCompleted = enum.New(OrderStatus("COMPLETED"), "COMPLETED")
	OrderCanceled  = enum.New(OrderStatus("CANCELED"), "CANCELED")
)

type Order struct {
	Base

	UserID    int64   `gorm:"index"`
	ProductID string  `gorm:"index;size:36"`
	Product   Product `gorm:"foreignKey:ProductID"`

	Quantity      int
	PointsCharged int64
	Status        OrderStatus `gorm:"size:16;index"`
	OrderedAt     time.Time
	CanceledAt    sql.NullTime
	Version       int64
}
