// Package metrics holds the Prometheus collectors exported by connstore.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "connstore_scan_pages_fetched_total",
		Help: "Total scan pages fetched from the store, including empty end-of-data pages.",
	}, []string{"table"})

	RecordsScanned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "connstore_scan_records_total",
		Help: "Total records decoded and yielded by paginated scans.",
	}, []string{"table"})

	Scans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "connstore_scans_total",
		Help: "Total full-table scans by result (ok|error).",
	}, []string{"table", "result"})

	Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "connstore_store_operations_total",
		Help: "Total store calls by operation and result (ok|error).",
	}, []string{"operation", "result"})
)

// Register adds every connstore collector to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		PagesFetched, RecordsScanned,
		Scans,
		Operations,
	)
}

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveOperation counts one store call.
func ObserveOperation(op string, err error) {
	Operations.WithLabelValues(op, Result(err)).Inc()
}
