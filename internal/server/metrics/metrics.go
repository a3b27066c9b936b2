// Package metrics exposes ledger activity as Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the ledger counters.
const (
	ResultOK                = "ok"
	ResultDuplicate         = "duplicate"
	ResultInvalid           = "invalid"
	ResultNotFound          = "not_found"
	ResultUnauthorized      = "unauthorized"
	ResultValueMismatch     = "value_mismatch"
	ResultInsufficientFunds = "insufficient_funds"
	ResultTransferFailed    = "transfer_failed"
	ResultError             = "error"
)

// Metrics holds the ledger collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	sendsTotal         *prometheus.CounterVec
	maskQueriesTotal   *prometheus.CounterVec
	contactsAddedTotal prometheus.Counter
	tipsTotal          *prometheus.CounterVec
	tippedAmountTotal  prometheus.Counter
	rollingStateBytes  prometheus.Gauge
	snapshotsTotal     *prometheus.CounterVec
}

// New creates the collectors on a private registry, so several ledgers can
// coexist in one process (tests do).
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "amail_sends_total",
			Help: "Send calls by result.",
		}, []string{"result"}),
		maskQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "amail_mask_queries_total",
			Help: "Mask and classifier queries by result.",
		}, []string{"result"}),
		contactsAddedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amail_contacts_added_total",
			Help: "Contacts appended to contact lists.",
		}),
		tipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "amail_tips_total",
			Help: "Tip calls by result.",
		}, []string{"result"}),
		tippedAmountTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amail_tipped_amount_total",
			Help: "Value transferred by successful tips.",
		}),
		rollingStateBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amail_rolling_state_bytes",
			Help: "Length of the current rolling state.",
		}),
		snapshotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "amail_snapshots_total",
			Help: "Snapshot exports by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.sendsTotal,
		m.maskQueriesTotal,
		m.contactsAddedTotal,
		m.tipsTotal,
		m.tippedAmountTotal,
		m.rollingStateBytes,
		m.snapshotsTotal,
	)
	return m
}

func (m *Metrics) ObserveSend(result string) {
	m.sendsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveMaskQuery(result string) {
	m.maskQueriesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveContactAdded() {
	m.contactsAddedTotal.Inc()
}

// ObserveTip counts a tip call; amount is added to the volume only on success.
func (m *Metrics) ObserveTip(result string, amount int64) {
	m.tipsTotal.WithLabelValues(result).Inc()
	if result == ResultOK && amount > 0 {
		m.tippedAmountTotal.Add(float64(amount))
	}
}

func (m *Metrics) SetRollingStateLen(n int) {
	m.rollingStateBytes.Set(float64(n))
}

func (m *Metrics) ObserveSnapshot(result string) {
	m.snapshotsTotal.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
