package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
)

func TestHandler_Live(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(nil, logger.Nop()).Live(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_Ready(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	NewHandler(map[string]Pinger{"storage": ok, "redis": ok}, logger.Nop()).
		Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"storage":"ok","redis":"ok"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewHandler(map[string]Pinger{"storage": ok, "redis": down}, logger.Nop()).
		Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"storage":"ok","redis":"unavailable"}}`, rec.Body.String())
}

func TestHandler_SkipsNilCheckers(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(map[string]Pinger{"redis": nil}, logger.Nop()).
		Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
