package model

import "time"

type Participation struct {
	ID            string     `json:"id"`
	UserID        int64      `json:"user_id"`
	Date          string     `json:"date"`
	AwardedPoints int64      `json:"awarded_points"`
	AwardedAt     time.Time  `json:"awarded_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	Canceled      bool       `json:"canceled"`
	CanceledAt    *time.Time `json:"canceled_at,omitempty"`
}

type ParticipateRequest struct {
	UserID int64 `json:"user_id"`

	// Date defaults to the current UTC date.
	Date string `json:"date"`
}

type ParticipateResponse struct {
	Participation   Participation `json:"participation"`
	PointUnitID     string        `json:"point_unit_id"`
	RemainingBudget int64         `json:"remaining_budget"`
}

type GetTodayStatusRequest struct {
	UserID int64  `json:"user_id"`
	Date   string `json:"date"`
}

type GetTodayStatusResponse struct {
	Participated    bool           `json:"participated"`
	Participation   *Participation `json:"participation,omitempty"`
	RemainingBudget int64          `json:"remaining_budget"`
}

type GetParticipantsRequest struct {
	Date string `json:"date"`
}

type GetParticipantsResponse struct {
	Date               string          `json:"date"`
	Count              int64           `json:"count"`
	TotalAwardedPoints int64           `json:"total_awarded_points"`
	Participations     []Participation `json:"participations"`
}

type CancelParticipationRequest struct {
	ParticipationID string `json:"participation_id"`
}

type CancelParticipationResponse struct {
	Participation   Participation `json:"participation"`
	RevokedPoints   int64         `json:"revoked_points"`
	RemainingBudget int64         `json:"remaining_budget"`
}
