package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for ledger operations.
type Metrics struct {
	// Operation outcomes by operation name and result code
	Operations *prometheus.CounterVec

	// Operation latency by operation name
	OperationDuration *prometheus.HistogramVec

	// Tickets sold through the purchase path
	TicketsSold prometheus.Counter

	// Current treasury balance in native units
	TreasuryBalance prometheus.Gauge

	// 1 while the pause gate is engaged
	PauseState prometheus.Gauge
}

// New creates a Metrics instance with all ledger metrics registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketd_ledger_operations_total",
			Help: "Total ledger operations by operation and outcome code",
		}, []string{"operation", "outcome"}),

		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ticketd_ledger_operation_duration_seconds",
			Help:    "Duration of ledger operations including serialization wait",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}, []string{"operation"}),

		TicketsSold: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketd_tickets_sold_total",
			Help: "Total ticket units credited through purchases",
		}),

		TreasuryBalance: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ticketd_treasury_balance",
			Help: "Current treasury balance in native currency units",
		}),

		PauseState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ticketd_paused",
			Help: "1 while the pause gate is engaged, 0 otherwise",
		}),
	}
}

// ObserveOperation records one operation outcome and its duration.
func (m *Metrics) ObserveOperation(op, outcome string, d time.Duration) {
	if m != nil {
		m.Operations.WithLabelValues(op, outcome).Inc()
		m.OperationDuration.WithLabelValues(op).Observe(d.Seconds())
	}
}

// AddTicketsSold records ticket units credited by a purchase.
func (m *Metrics) AddTicketsSold(count int64) {
	if m != nil {
		m.TicketsSold.Add(float64(count))
	}
}

// SetTreasuryBalance records the treasury level after a mutation.
func (m *Metrics) SetTreasuryBalance(v float64) {
	if m != nil {
		m.TreasuryBalance.Set(v)
	}
}

// SetPaused records the pause gate state.
func (m *Metrics) SetPaused(paused bool) {
	if m != nil {
		if paused {
			m.PauseState.Set(1)
		} else {
			m.PauseState.Set(0)
		}
	}
}
