package domain

import (
	"context"
	"testing"

	"github.com/pointroulette/backend/internal/common"
	"github.com/stretchr/testify/require"
)

func Test_weightedRewardSelector_pick(t *testing.T) {
	s := NewWeightedRewardSelector(common.RouletteRewards)

	tests := []struct {
		draw int
		want int64
	}{
		{draw: 1, want: 100},
		{draw: 40, want: 100},
		{draw: 41, want: 300},
		{draw: 70, want: 300},
		{draw: 71, want: 500},
		{draw: 90, want: 500},
		{draw: 91, want: 1000},
		{draw: 100, want: 1000},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, s.pick(tt.draw), "draw %d", tt.draw)
	}
}

func Test_weightedRewardSelector_Select(t *testing.T) {
	s := NewWeightedRewardSelector(common.RouletteRewards)

	allowed := map[int64]bool{100: true, 300: true, 500: true, 1000: true}
	for i := 0; i < 1000; i++ {
		require.True(t, allowed[s.Select(context.Background())])
	}
}
