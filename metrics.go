package strata

import (
	"github.com/hexbee-net/strata/compression"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "strata"

// Metrics holds the Prometheus metrics of writers and readers. A nil
// *Metrics records nothing.
type Metrics struct {
	PagesWritten     *prometheus.CounterVec
	BytesWritten     *prometheus.CounterVec
	RowGroupsWritten prometheus.Counter
	PagesRead        prometheus.Counter
	BytesRead        prometheus.Counter
	DecodeErrors     prometheus.Counter
	PageRows         prometheus.Histogram
}

// NewMetrics creates the metrics and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PagesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pages_written_total",
			Help:      "Total number of pages written.",
		}, []string{"codec"}),
		BytesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bytes_written_total",
			Help:      "Total number of page bytes written.",
		}, []string{"codec"}),
		RowGroupsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "row_groups_written_total",
			Help:      "Total number of row groups written.",
		}),
		PagesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pages_read_total",
			Help:      "Total number of pages decoded.",
		}),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bytes_read_total",
			Help:      "Total number of page bytes read.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "decode_errors_total",
			Help:      "Total number of pages that failed to decode.",
		}),
		PageRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "page_rows",
			Help:      "Number of rows per written page.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.PagesWritten,
			m.BytesWritten,
			m.RowGroupsWritten,
			m.PagesRead,
			m.BytesRead,
			m.DecodeErrors,
			m.PageRows,
		)
	}

	return m
}

func (m *Metrics) pageWritten(codec compression.Codec, bytes uint64, rows int) {
	if m == nil {
		return
	}

	m.PagesWritten.WithLabelValues(codec.String()).Inc()
	m.BytesWritten.WithLabelValues(codec.String()).Add(float64(bytes))
	m.PageRows.Observe(float64(rows))
}

func (m *Metrics) rowGroupWritten() {
	if m == nil {
		return
	}

	m.RowGroupsWritten.Inc()
}

func (m *Metrics) pageRead(bytes uint64) {
	if m == nil {
		return
	}

	m.PagesRead.Inc()
	m.BytesRead.Add(float64(bytes))
}

func (m *Metrics) decodeError() {
	if m == nil {
		return
	}

	m.DecodeErrors.Inc()
}
