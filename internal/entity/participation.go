package entity

import (
	"database/sql"
	"fmt"
	"time"
)

// Participation is one roulette spin of a user on a day.
//
// ActiveKey is "<user>:<date>" while the participation is not canceled and
// NULL afterwards. Its unique index allows at most one non-canceled
// participation per user and day while canceled rows may pile up.
type Participation struct {
	Base

	UserID          int64          `gorm:"index:idx_participation_date_user,priority:2"`
	ParticipateDate string         `gorm:"size:10;index:idx_participation_date_user,priority:1"`
	ActiveKey       sql.NullString `gorm:"uniqueIndex;size:40"`
	AwardedPoints   int64
	AwardedAt       time.Time
	ExpiresAt       time.Time
	Canceled        bool
	CanceledAt      sql.NullTime
	Version         int64
}

func ParticipationActiveKey(userID int64, date string) string {
	return fmt.Sprintf("%d:%s", userID, date)
}
