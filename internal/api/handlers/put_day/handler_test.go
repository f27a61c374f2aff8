package put_day

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) SeedDay(ctx context.Context, date time.Time, slots []domain.TimeSlot) (*domain.DayAvailability, error) {
	args := m.Called(ctx, date, slots)
	if day := args.Get(0); day != nil {
		return day.(*domain.DayAvailability), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h *Handler, date, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/availability/"+date, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"date": date})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_PutDay_NormalizesLabels(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	want := []domain.TimeSlot{
		{Label: types.SlotLabel("09:00 AM"), MaxRegular: 3, MaxPremium: 1},
	}

	svc := &mockService{}
	svc.On("SeedDay", mock.Anything, date, want).Return(&domain.DayAvailability{
		Date: date, Slots: want, Version: 1,
	}, nil)

	rec := serve(NewHandler(svc, logger.Nop()), "2025-01-02", `{"slots":[{"time":"9:00 am","maxRegular":3,"maxPremium":1}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"date":"2025-01-02","version":1,"isOpen":true,
		"slots":[{"time":"09:00 AM","maxRegular":3,"currentRegular":0,"maxPremium":1,"currentPremium":0,"isOpen":true}]
	}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_PutDay_Errors(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, serve(h, "2025-13-01", `{"slots":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "2025-01-02", `{"slots":[{"time":"25:00"}]}`).Code)
	svc.AssertNotCalled(t, "SeedDay", mock.Anything, mock.Anything, mock.Anything)

	svc.On("SeedDay", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: current exceeds max", availability.ErrInvalidInput)).Once()
	assert.Equal(t, http.StatusBadRequest,
		serve(h, "2025-01-02", `{"slots":[{"time":"9:00 AM","maxRegular":1,"currentRegular":2}]}`).Code)
}
