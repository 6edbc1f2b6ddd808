package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels shared by the intake and admin flows.
const (
	OutcomeCreated   = "created"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
	OutcomeSuccess   = "success"
	OutcomeDenied    = "denied"
)

// SubmissionMetrics exposes counters for the submission intake and admin flows.
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
	exportsTotal     *prometheus.CounterVec
	exportedRows     prometheus.Counter
	adminLoginsTotal *prometheus.CounterVec
	notifyTotal      *prometheus.CounterVec
	notifyLatency    *prometheus.HistogramVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thebar",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Form submissions received, by form and outcome",
		}, []string{"form", "outcome"}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thebar",
			Subsystem: "admin",
			Name:      "csv_exports_total",
			Help:      "CSV exports requested by operators",
		}, []string{"outcome"}),
		exportedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "thebar",
			Subsystem: "admin",
			Name:      "csv_exported_rows_total",
			Help:      "Rows written across all CSV exports",
		}),
		adminLoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thebar",
			Subsystem: "admin",
			Name:      "logins_total",
			Help:      "Admin login attempts",
		}, []string{"outcome"}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thebar",
			Subsystem: "notify",
			Name:      "deliveries_total",
			Help:      "Operator notifications by channel and outcome",
		}, []string{"channel", "outcome"}),
		notifyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "thebar",
			Subsystem: "notify",
			Name:      "delivery_latency_seconds",
			Help:      "Latency of operator notification delivery",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.exportsTotal, m.exportedRows, m.adminLoginsTotal, m.notifyTotal, m.notifyLatency)
	return m
}

func (m *SubmissionMetrics) ObserveSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, outcome).Inc()
}

func (m *SubmissionMetrics) ObserveExport(outcome string, rows int) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(outcome).Inc()
	if rows > 0 {
		m.exportedRows.Add(float64(rows))
	}
}

func (m *SubmissionMetrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.adminLoginsTotal.WithLabelValues(outcome).Inc()
}

func (m *SubmissionMetrics) ObserveNotify(channel, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(channel, outcome).Inc()
	m.notifyLatency.WithLabelValues(channel).Observe(seconds)
}
