package common

import (
	"testing"

	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveLedgerOperation(t *testing.T) {
	counter := PromCounters[LedgerOperationTotal]
	before := testutil.ToFloat64(counter.WithLabelValues("participate", "OK"))

	ObserveLedgerOperation("participate", nil)
	ObserveLedgerOperation("participate", errorx.New(errorx.BudgetInsufficient, "Budget is insufficient"))

	require.Equal(t, before+1, testutil.ToFloat64(counter.WithLabelValues("participate", "OK")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(counter.WithLabelValues("participate", string(errorx.BudgetInsufficient))))
}
