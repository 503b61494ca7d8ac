package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records outcomes of checkout attempts.
type CheckoutMetrics struct {
	duration          *prometheus.HistogramVec
	committed         *prometheus.CounterVec
	failed            *prometheus.CounterVec
	insufficientStock prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout commits in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	committed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_committed_total",
		Help: "Successfully committed sales.",
	}, []string{"payment_method"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Failed checkout attempts by error code.",
	}, []string{"code"})
	insufficientStock := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_insufficient_stock_total",
		Help: "Checkouts rejected because stock ran out.",
	})
	reg.MustRegister(duration, committed, failed, insufficientStock)
	return &CheckoutMetrics{
		duration:          duration,
		committed:         committed,
		failed:            failed,
		insufficientStock: insufficientStock,
	}
}

// ObserveDuration records how long a checkout attempt took.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncCommitted increments the committed counter for the payment method.
func (c *CheckoutMetrics) IncCommitted(paymentMethod string) {
	if c == nil || c.committed == nil {
		return
	}
	c.committed.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// IncFailed increments the failure counter for the error code.
func (c *CheckoutMetrics) IncFailed(code string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(code)).Inc()
}

// IncInsufficientStock counts stock-shortfall rejections.
func (c *CheckoutMetrics) IncInsufficientStock() {
	if c == nil || c.insufficientStock == nil {
		return
	}
	c.insufficientStock.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
