package domain

import (
	"context"

	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/pkg/dateutil"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/xcontext"
)

// requestDate returns date if it is a valid calendar date, or the current
// UTC date if it is empty.
func requestDate(ctx context.Context, date string) (string, error) {
	if date == "" {
		return dateutil.Date(xcontext.Now(ctx)), nil
	}

	if _, err := dateutil.ParseDate(date); err != nil {
		return "", errorx.New(errorx.InvalidRequest, "Invalid date %s", date)
	}

	return date, nil
}

func checkUserID(userID int64) error {
	if userID <= 0 {
		return errorx.New(errorx.InvalidRequest, "Invalid user id %d", userID)
	}

	return nil
}

func pageLimit(limit int) int {
	if limit <= 0 {
		return common.DefaultPageLimit
	}

	if limit > common.MaxPageLimit {
		return common.MaxPageLimit
	}

	return limit
}
