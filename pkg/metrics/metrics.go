package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках
// сервисы получают nil и вызовы превращаются в no-op
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingsCreated    *prometheus.CounterVec
	BookingsCancelled  *prometheus.CounterVec
	SlotFullRejections *prometheus.CounterVec
	VersionConflicts   *prometheus.CounterVec
	ContentionFailures *prometheus.CounterVec
}

// New создает метрики и регистрирует их в стандартном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном регистре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_bookings_created_total",
			Help: "Bookings created",
		}, []string{"service", "premium"}),

		BookingsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_bookings_cancelled_total",
			Help: "Bookings cancelled",
		}, []string{"service"}),

		SlotFullRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_slot_full_total",
			Help: "Booking attempts rejected because the slot was full",
		}, []string{"service", "premium"}),

		VersionConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_version_conflicts_total",
			Help: "Conditional day updates that lost a race and were retried",
		}, []string{"service", "operation"}),

		ContentionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_contention_failures_total",
			Help: "Operations that gave up after exhausting retries",
		}, []string{"service", "operation"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingsCancelled,
		m.SlotFullRejections,
		m.VersionConflicts,
		m.ContentionFailures,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHTTPRequest фиксирует выполненный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// BookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCreated(premium bool) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.serviceName, strconv.FormatBool(premium)).Inc()
}

// BookingCancelled увеличивает счетчик отмененных бронирований
func (m *Metrics) BookingCancelled() {
	if m == nil {
		return
	}
	m.BookingsCancelled.WithLabelValues(m.serviceName).Inc()
}

// SlotFull увеличивает счетчик отказов из-за заполненного слота
func (m *Metrics) SlotFull(premium bool) {
	if m == nil {
		return
	}
	m.SlotFullRejections.WithLabelValues(m.serviceName, strconv.FormatBool(premium)).Inc()
}

// VersionConflict увеличивает счетчик конфликтов версий дня
func (m *Metrics) VersionConflict(operation string) {
	if m == nil {
		return
	}
	m.VersionConflicts.WithLabelValues(m.serviceName, operation).Inc()
}

// Contention увеличивает счетчик операций, исчерпавших попытки
func (m *Metrics) Contention(operation string) {
	if m == nil {
		return
	}
	m.ContentionFailures.WithLabelValues(m.serviceName, operation).Inc()
}
