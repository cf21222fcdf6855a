package entity

import (
	"database/sql"
	"time"

	"github.com/pointroulette/backend/pkg/enum"
)

type PointEventType string

var (
	PointEventRouletteReward = enum.New(PointEventType("ROULETTE_REWARD"), "ROULETTE_REWARD")
	PointEventOrderUse       = enum.New(PointEventType("ORDER_USE"), "ORDER_USE")
	PointEventOrderRefund    = enum.New(PointEventType("ORDER_REFUND"), "ORDER_REFUND")
	PointEventRouletteRevoke = enum.New(PointEventType("ROULETTE_REVOKE"), "ROULETTE_REVOKE")
)

type PointUnitStatus string

var (
	PointUnitAvailable = enum.New(PointUnitStatus("AVAILABLE"), "AVAILABLE")
	PointUnitUsed      = enum.New(PointUnitStatus("USED"), "USED")
	PointUnitExpired   = enum.New(PointUnitStatus("EXPIRED"), "EXPIRED")
	PointUnitCanceled  = enum.New(PointUnitStatus("CANCELED"), "CANCELED")
)

type PointDirection string

var (
	PointCredit = enum.New(PointDirection("CREDIT"), "CREDIT")
	PointDebit  = enum.New(PointDirection("DEBIT"), "DEBIT")
)

// PointUnit is one expiring grant of points. OriginalAmount never changes,
// RemainingAmount only goes down until the unit is used, expired or
// canceled.
type PointUnit struct {
	Base

	UserID          int64          `gorm:"index:idx_point_unit_user_status_expiry,priority:1"`
	EventType       PointEventType `gorm:"size:32"`
	OriginalAmount  int64
	RemainingAmount int64
	EarnedAt        time.Time
	ExpiresAt       time.Time       `gorm:"index:idx_point_unit_user_status_expiry,priority:3"`
	Status          PointUnitStatus `gorm:"size:16;index:idx_point_unit_user_status_expiry,priority:2"`
	ParticipationID sql.NullString  `gorm:"index;size:36"`
	OrderID         sql.NullString  `gorm:"index;size:36"`
	Version         int64
}

// PointTransaction is an append-only audit record. It is never updated.
type PointTransaction struct {
	SnowFlakeBase

	UserID          int64          `gorm:"index"`
	EventType       PointEventType `gorm:"size:32"`
	Direction       PointDirection `gorm:"size:8"`
	Amount          int64
	PointUnitID     string         `gorm:"size:36"`
	ParticipationID sql.NullString `gorm:"size:36"`
	OrderID         sql.NullString `gorm:"size:36"`
	OccurredAt      time.Time
}
