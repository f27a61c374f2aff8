package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_LedgerCounters(t *testing.T) {
	m := NewWithRegistry("ledger-test", prometheus.NewRegistry())

	m.BookingCreated(false)
	m.BookingCreated(true)
	m.BookingCreated(true)
	m.VersionConflict("create_booking")
	m.Contention("create_booking")
	m.BookingCancelled()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("ledger-test", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("ledger-test", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VersionConflicts.WithLabelValues("ledger-test", "create_booking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContentionFailures.WithLabelValues("ledger-test", "create_booking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCancelled.WithLabelValues("ledger-test")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.BookingCreated(true)
		m.SlotFull(false)
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveDBQuery("query", time.Millisecond)
	})
	assert.Equal(t, "", m.ServiceName())
}
