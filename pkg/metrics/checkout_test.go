package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCheckoutMetricsRegisterAndCount(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.IncCommitted("cash")
	m.IncCommitted("cash")
	m.IncFailed("CONFLICT")
	m.IncInsufficientStock()
	m.ObserveDuration("committed", 120*time.Millisecond)

	if got := testutil.ToFloat64(m.committed.WithLabelValues("cash")); got != 2 {
		t.Fatalf("expected 2 committed, got %v", got)
	}
	if got := testutil.ToFloat64(m.failed.WithLabelValues("CONFLICT")); got != 1 {
		t.Fatalf("expected 1 failed, got %v", got)
	}
	if got := testutil.ToFloat64(m.insufficientStock); got != 1 {
		t.Fatalf("expected 1 insufficient stock, got %v", got)
	}
}

func TestCheckoutMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *CheckoutMetrics
	m.IncCommitted("cash")
	m.IncFailed("x")
	m.IncInsufficientStock()
	m.ObserveDuration("", time.Second)

	empty := NewCheckoutMetrics(nil)
	empty.IncCommitted("card")
}
