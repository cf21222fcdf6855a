package model

import "time"

// LedgerEvent is published after a ledger operation committed.
type LedgerEvent struct {
	Type        string    `json:"type"`
	UserID      int64     `json:"user_id"`
	ReferenceID string    `json:"reference_id"`
	Points      int64     `json:"points"`
	OccurredAt  time.Time `json:"occurred_at"`
}
