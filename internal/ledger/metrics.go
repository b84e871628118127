package ledger

import "github.com/prometheus/client_golang/prometheus"

var admissionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "disbursement_admissions_total",
		Help: "How many admission decisions were made, partitioned by result.",
	},
	[]string{"result"},
)

var rolloversTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "disbursement_rollovers_total",
		Help: "How many monthly rollovers were processed.",
	},
)

// Metrics are the Prometheus collectors of this package. The router registers
// them together with its own.
var Metrics = []prometheus.Collector{
	admissionsTotal,
	rolloversTotal,
}
