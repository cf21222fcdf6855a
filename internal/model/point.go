package model

import "time"

type PointUnit struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"user_id"`
	EventType       string    `json:"event_type"`
	OriginalAmount  int64     `json:"original_amount"`
	RemainingAmount int64     `json:"remaining_amount"`
	EarnedAt        time.Time `json:"earned_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	Status          string    `json:"status"`
	ParticipationID string    `json:"participation_id,omitempty"`
	OrderID         string    `json:"order_id,omitempty"`
}

type PointTransaction struct {
	ID              int64     `json:"id,string"`
	UserID          int64     `json:"user_id"`
	EventType       string    `json:"event_type"`
	Direction       string    `json:"direction"`
	Amount          int64     `json:"amount"`
	PointUnitID     string    `json:"point_unit_id"`
	ParticipationID string    `json:"participation_id,omitempty"`
	OrderID         string    `json:"order_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// PointConsumption is the part of one unit taken by a FIFO debit.
type PointConsumption struct {
	PointUnitID string `json:"point_unit_id"`
	Amount      int64  `json:"amount"`
}

// PointSource tells which participation or order a grant comes from.
type PointSource struct {
	ParticipationID string
	OrderID         string
}

type GetBalanceRequest struct {
	UserID int64 `json:"user_id"`
}

type GetBalanceResponse struct {
	UserID             int64 `json:"user_id"`
	AvailablePoints    int64 `json:"available_points"`
	ExpiringSoonPoints int64 `json:"expiring_soon_points"`
}

type GetExpiringPointsRequest struct {
	UserID     int64 `json:"user_id"`
	WithinDays int   `json:"within_days"`
}

type GetExpiringPointsResponse struct {
	TotalPoints int64       `json:"total_points"`
	Units       []PointUnit `json:"units"`
}

type GetPointUnitsRequest struct {
	UserID int64 `json:"user_id"`
}

type GetPointUnitsResponse struct {
	Units []PointUnit `json:"units"`
}

type GetPointTransactionsRequest struct {
	UserID int64 `json:"user_id"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type GetPointTransactionsResponse struct {
	Transactions []PointTransaction `json:"transactions"`
}
