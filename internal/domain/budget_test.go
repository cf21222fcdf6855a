package domain

import (
	"testing"

	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/testutil"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_budgetDomain_GetBudget(t *testing.T) {
	l := newLedger(t, 100)

	budget := l.getBudget(t)
	require.Equal(t, "2024-03-15", budget.Date)
	require.Equal(t, xcontext.Configs(l.ctx).Ledger.DefaultDailyBudget, budget.TotalPoints)
	require.Equal(t, budget.TotalPoints, budget.RemainingPoints)

	resp, err := l.budget.GetBudget(l.ctx, &model.GetBudgetRequest{Date: "2024-02-30"})
	require.Nil(t, resp)
	require.True(t, errorx.Is(err, errorx.InvalidRequest))
}

func Test_budgetDomain_ResizeBudget(t *testing.T) {
	l := newLedger(t, 300)
	l.setBudget(t, 1000)
	l.participate(t, 1)

	tests := []struct {
		name     string
		total    int64
		wantCode errorx.Code
	}{
		{name: "negative total", total: -1, wantCode: errorx.BudgetInvalidTotal},
		{name: "less than used", total: 299, wantCode: errorx.BudgetTotalLessThanUsed},
		{name: "equal to used", total: 300},
		{name: "grow", total: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := l.budget.ResizeBudget(l.ctx, &model.ResizeBudgetRequest{TotalPoints: tt.total})
			if tt.wantCode != "" {
				require.True(t, errorx.Is(err, tt.wantCode), "got %v", err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.total, resp.Budget.TotalPoints)
			require.Equal(t, int64(300), resp.Budget.UsedPoints)
			require.Equal(t, tt.total-300, resp.Budget.RemainingPoints)
		})
	}
}

func Test_budgetDomain_ResizeBudget_OtherDay(t *testing.T) {
	l := newLedger(t, 100)

	// A budget resized before anyone asked for it starts with that total.
	resp, err := l.budget.ResizeBudget(l.ctx, &model.ResizeBudgetRequest{Date: "2024-03-20", TotalPoints: 42})
	require.NoError(t, err)
	require.Equal(t, int64(42), resp.Budget.TotalPoints)

	got, err := l.budget.GetBudget(l.ctx, &model.GetBudgetRequest{Date: "2024-03-20"})
	require.NoError(t, err)
	require.Equal(t, int64(42), got.Budget.TotalPoints)
}

func Test_budgetDomain_AllocateRelease(t *testing.T) {
	l := newLedger(t, 100)
	l.setBudget(t, 500)

	require.True(t, errorx.Is(l.budget.Allocate(l.ctx, "2024-03-15", 0), errorx.InvalidRequest))
	require.NoError(t, l.budget.Allocate(l.ctx, "2024-03-15", 500))
	require.True(t, errorx.Is(l.budget.Allocate(l.ctx, "2024-03-15", 1), errorx.BudgetInsufficient))

	require.True(t, errorx.Is(l.budget.Release(l.ctx, "2024-03-15", 501), errorx.BudgetReleaseFailed))
	require.NoError(t, l.budget.Release(l.ctx, "2024-03-15", 200))
	require.Equal(t, int64(300), l.getBudget(t).UsedPoints)
}

func Test_budgetDomain_ResizeVersusAllocate(t *testing.T) {
	l := newLedger(t, 100)
	l.setBudget(t, 3000)

	outcome := testutil.RunConcurrently(60, func(i int) error {
		if i%2 == 0 {
			return l.budget.Allocate(l.ctx, "2024-03-15", 100)
		}

		_, err := l.budget.ResizeBudget(l.ctx, &model.ResizeBudgetRequest{TotalPoints: int64(i) * 50})
		return err
	})

	require.Equal(t, 60, outcome.Total())
	require.Zero(t, outcome.Count(errorx.InternalError))
	require.Equal(t, 60, outcome.Success()+
		outcome.Count(errorx.BudgetInsufficient)+
		outcome.Count(errorx.BudgetTotalLessThanUsed))

	budget := l.getBudget(t)
	require.LessOrEqual(t, budget.UsedPoints, budget.TotalPoints)
	require.Zero(t, budget.UsedPoints%100)
}
