package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

var reportDate = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

func seedBookings(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()

	add := func(id, label string, status domain.BookingStatus, price float64, rating *int) {
		require.NoError(t, store.Create(ctx, &domain.Booking{
			ID:           id,
			UserID:       "user-1",
			VehicleID:    "vehicle-1",
			ServiceName:  "Basic Wash",
			ServicePrice: price,
			Date:         reportDate,
			TimeLabel:    types.MustParseSlotLabel(label),
			Status:       status,
			Payment:      domain.Payment{Method: "GCash", Status: domain.PaymentPending, Amount: price},
			Rating:       rating,
			Assignment:   &domain.BayAssignment{Bay: 1, Team: "AM Team", CycleCode: "W4-W6"},
		}))
	}

	add("b-3", "01:30 PM", domain.StatusPending, 200, nil)
	add("b-1", "08:00 AM", domain.StatusCompleted, 350, ptr.Ptr(5))
	add("b-2", "09:30 AM", domain.StatusCompleted, 500, ptr.Ptr(4))
	add("b-4", "09:30 AM", domain.StatusCancelled, 200, nil)

	require.NoError(t, store.Create(ctx, &domain.Booking{
		ID:        "other-day",
		Date:      reportDate.AddDate(0, 0, 1),
		TimeLabel: types.MustParseSlotLabel("08:00 AM"),
		Status:    domain.StatusPending,
	}))
}

func TestService_BookingsForDate_OrderedByTime(t *testing.T) {
	store := memory.NewStore()
	seedBookings(t, store)
	svc := NewService(store, store, logger.Nop())

	resp, err := svc.BookingsForDate(context.Background(), reportDate)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 4)
	assert.Equal(t, "b-1", resp.Bookings[0].ID)
	assert.Equal(t, "01:30 PM", resp.Bookings[3].Time)
}

func TestService_Dashboard(t *testing.T) {
	store := memory.NewStore()
	seedBookings(t, store)
	svc := NewService(store, store, logger.Nop())

	resp, err := svc.Dashboard(context.Background(), reportDate)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", resp.Date)
	assert.Equal(t, 4, resp.TotalBookings)
	assert.Equal(t, 2, resp.ByStatus["Completed"])
	assert.Equal(t, 1, resp.ByStatus["Cancelled"])
	assert.Equal(t, 0, resp.ByStatus["Ongoing"])
	assert.InDelta(t, 850.0, resp.Revenue, 0.001)
	assert.InDelta(t, 4.5, resp.AverageRating, 0.001)
	assert.Equal(t, 0, resp.ActiveStaff)
}

func TestService_Dashboard_CountsStaffOnWork(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedBookings(t, store)

	for id, a := range map[string]domain.WasherAvailability{
		"w1": domain.WasherOnWork,
		"w2": domain.WasherOnWork,
		"w3": domain.WasherOnBreak,
		"w4": domain.WasherOffDuty,
	} {
		require.NoError(t, store.CreateWasher(ctx, &domain.Washer{ID: id, Name: id, Availability: a}))
	}

	svc := NewService(store, store, logger.Nop())

	resp, err := svc.Dashboard(ctx, reportDate)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ActiveStaff)

	require.NoError(t, store.SetWasherAvailability(ctx, "w3", domain.WasherOnWork))
	resp, err = svc.Dashboard(ctx, reportDate)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ActiveStaff)
}

func TestService_RecentBookings(t *testing.T) {
	store := memory.NewStore()
	seedBookings(t, store)
	svc := NewService(store, store, logger.Nop())

	resp, err := svc.RecentBookings(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = svc.RecentBookings(context.Background(), domain.MaxRecentLimit+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ExportBookings(t *testing.T) {
	store := memory.NewStore()
	seedBookings(t, store)
	svc := NewService(store, store, logger.Nop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportBookings(context.Background(), reportDate, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("2025-01-02")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "b-1", rows[1][0])
	assert.Equal(t, "W4-W6", rows[1][13])
	assert.Equal(t, "5", rows[1][15])
}
