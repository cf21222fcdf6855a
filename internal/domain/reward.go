package domain

import (
	"context"

	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/pkg/crypto"
)

// RewardSelector draws the points of one roulette spin.
type RewardSelector interface {
	Select(ctx context.Context) int64
}

type weightedRewardSelector struct {
	bands []common.RouletteBand
}

func NewWeightedRewardSelector(bands []common.RouletteBand) *weightedRewardSelector {
	return &weightedRewardSelector{bands: bands}
}

func (s *weightedRewardSelector) Select(ctx context.Context) int64 {
	return s.pick(crypto.RandRange(1, 101))
}

// pick maps a draw in [1, 100] to the first band covering it.
func (s *weightedRewardSelector) pick(draw int) int64 {
	for _, band := range s.bands {
		if draw <= band.UpperBound {
			return band.Points
		}
	}

	return s.bands[len(s.bands)-1].Points
}
