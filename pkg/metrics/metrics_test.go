package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return NewWithRegisterer("rental-test", prometheus.NewRegistry())
}

func TestObserveHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.ObserveHTTPRequest("POST", "/api/v1/reservations", 201, 15*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/reservations", 201, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/reservations", "201")))
}

func TestObserveDBQuery_CountsErrorsExceptNoRows(t *testing.T) {
	m := newTestMetrics()

	m.ObserveDBQuery("select", time.Millisecond, sql.ErrNoRows)
	m.ObserveDBQuery("select", time.Millisecond, errors.New("connection reset"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("select")))
}

func TestIncEvent_IgnoresNonPositive(t *testing.T) {
	m := newTestMetrics()

	m.IncEvent(EventHoldReleased, 0)
	m.IncEvent(EventHoldReleased, 3)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.businessEvents.WithLabelValues(EventHoldReleased)))
}

func TestSetDBPoolStats(t *testing.T) {
	m := newTestMetrics()

	m.SetDBPoolStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbOpenConnections))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbIdleConnections))
}
