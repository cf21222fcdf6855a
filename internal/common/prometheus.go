package common

import (
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	LedgerOperationTotal = "ledger_operations_total"
	LedgerSweptUnitTotal = "ledger_swept_point_units_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		LedgerOperationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LedgerOperationTotal,
			Help: "Count of all ledger operations by result code",
		}, []string{"operation", "result"}),
		LedgerSweptUnitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LedgerSweptUnitTotal,
			Help: "Count of point units moved to expired",
		}, []string{"trigger"}),
	}
)

// ObserveLedgerOperation counts one call of operation. Successful calls are
// labeled "OK", failed calls with their error code.
func ObserveLedgerOperation(operation string, err error) {
	result := "OK"
	if err != nil {
		result = string(errorx.CodeOf(err))
	}

	PromCounters[LedgerOperationTotal].WithLabelValues(operation, result).Inc()
}
