package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/capacity"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

var (
	testDate = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	nineAM   = types.MustParseSlotLabel("09:00 AM")
	owner    = models.Actor{UserID: "user-1"}
	staff    = models.Actor{UserID: "staff-1", Staff: true}
)

type countingMetrics struct {
	cancelled int
}

func (m *countingMetrics) BookingCancelled() { m.cancelled++ }

type fixture struct {
	store   *memory.Store
	svc     *Service
	metrics *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	guard := capacity.NewGuard(store, store, nil, nil, domain.DefaultMaxAttempts, log)
	m := &countingMetrics{}

	day, err := domain.NewDay(testDate, []domain.TimeSlot{
		{Label: nineAM, MaxRegular: 2, CurrentRegular: 1, MaxPremium: 1, CurrentPremium: 1},
	})
	require.NoError(t, err)
	require.NoError(t, store.SeedDay(context.Background(), day))

	return &fixture{
		store:   store,
		svc:     NewService(store, store, guard, store, m, log),
		metrics: m,
	}
}

func (f *fixture) addBooking(t *testing.T, id string, status domain.BookingStatus, premium bool) {
	t.Helper()
	require.NoError(t, f.store.Create(context.Background(), &domain.Booking{
		ID:          id,
		UserID:      owner.UserID,
		VehicleID:   "vehicle-1",
		ServiceName: "Basic Wash",
		IsPremium:   premium,
		Date:        testDate,
		TimeLabel:   nineAM,
		Status:      status,
		Payment:     domain.Payment{Method: "GCash", Status: domain.PaymentPending, Amount: 200},
	}))
}

func (f *fixture) slot(t *testing.T) domain.TimeSlot {
	t.Helper()
	day, err := f.store.GetDay(context.Background(), testDate)
	require.NoError(t, err)
	slot, ok := day.Slot(nineAM)
	require.True(t, ok)
	return *slot
}

func TestGetByID_AccessControl(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "b1", domain.StatusPending, false)

	resp, err := f.svc.GetByID(ctx, "b1", owner)
	require.NoError(t, err)
	assert.Equal(t, "09:00 AM", resp.Time)

	_, err = f.svc.GetByID(ctx, "b1", staff)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, "b1", models.Actor{UserID: "someone-else"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, "missing", owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReleasesMatchingPool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "premium", domain.StatusPending, true)

	resp, err := f.svc.Cancel(ctx, "premium", owner)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	slot := f.slot(t)
	assert.Equal(t, 0, slot.CurrentPremium)
	assert.Equal(t, 1, slot.CurrentRegular)
	assert.Equal(t, 1, f.metrics.cancelled)

	_, err = f.svc.Cancel(ctx, "premium", owner)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, 0, f.slot(t).CurrentPremium)
}

func TestCancel_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "done", domain.StatusCompleted, false)
	f.addBooking(t, "pending", domain.StatusPending, false)

	_, err := f.svc.Cancel(ctx, "missing", owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.Cancel(ctx, "done", owner)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Cancel(ctx, "pending", models.Actor{UserID: "intruder"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	assert.Equal(t, 1, f.slot(t).CurrentRegular)
}

func TestCancel_DeletedDayStillCancels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "b1", domain.StatusPending, false)
	require.NoError(t, f.store.DeleteDay(ctx, testDate))

	resp, err := f.svc.Cancel(ctx, "b1", owner)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancel_ExpiredContextIsTimeout(t *testing.T) {
	f := newFixture(t)
	f.addBooking(t, "b1", domain.StatusPending, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Cancel(ctx, "b1", owner)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestAdvanceStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("full lifecycle", func(t *testing.T) {
		f := newFixture(t)
		f.addBooking(t, "b1", domain.StatusPending, false)

		resp, err := f.svc.AdvanceStatus(ctx, "b1", &models.AdvanceStatusRequest{Status: "Ongoing"})
		require.NoError(t, err)
		assert.Equal(t, "Ongoing", resp.Status)

		resp, err = f.svc.AdvanceStatus(ctx, "b1", &models.AdvanceStatusRequest{Status: "Completed"})
		require.NoError(t, err)
		assert.Equal(t, "Completed", resp.Status)

		_, err = f.svc.AdvanceStatus(ctx, "b1", &models.AdvanceStatusRequest{Status: "Ongoing"})
		assert.ErrorIs(t, err, ErrInvalidTransition)

		// место не освобождается при завершении
		assert.Equal(t, 1, f.slot(t).CurrentRegular)
	})

	t.Run("skip ahead rejected", func(t *testing.T) {
		f := newFixture(t)
		f.addBooking(t, "b1", domain.StatusPending, false)

		_, err := f.svc.AdvanceStatus(ctx, "b1", &models.AdvanceStatusRequest{Status: "Completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancel from ongoing releases capacity", func(t *testing.T) {
		f := newFixture(t)
		f.addBooking(t, "b1", domain.StatusOngoing, false)

		resp, err := f.svc.AdvanceStatus(ctx, "b1", &models.AdvanceStatusRequest{Status: "Cancelled"})
		require.NoError(t, err)
		assert.Equal(t, "Cancelled", resp.Status)
		assert.Equal(t, 0, f.slot(t).CurrentRegular)
		assert.Equal(t, 1, f.metrics.cancelled)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)
		f.addBooking(t, "b1", domain.StatusPending, false)

		_, err := f.svc.AdvanceStatus(ctx, "b1", &models.AdvanceStatusRequest{Status: "Paused"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AdvanceStatus(ctx, "missing", &models.AdvanceStatusRequest{Status: "Ongoing"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "pending", domain.StatusPending, false)
	f.addBooking(t, "done", domain.StatusCompleted, false)

	_, err := f.svc.Rate(ctx, "pending", &models.RateBookingRequest{UserID: owner.UserID, Rating: 5})
	assert.ErrorIs(t, err, ErrInvalidState)

	for _, rating := range []int{0, 6} {
		_, err = f.svc.Rate(ctx, "done", &models.RateBookingRequest{UserID: owner.UserID, Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidInput, "rating %d", rating)
	}

	_, err = f.svc.Rate(ctx, "done", &models.RateBookingRequest{UserID: "intruder", Rating: 4})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.Rate(ctx, "done", &models.RateBookingRequest{
		UserID: owner.UserID,
		Rating: 4,
		Review: ptr.Ptr("  great  "),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 4, *resp.Rating)
	require.NotNil(t, resp.Review)
	assert.Equal(t, "great", *resp.Review)

	_, err = f.svc.Rate(ctx, "done", &models.RateBookingRequest{UserID: owner.UserID, Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyRated)
}

func (f *fixture) addWasher(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.store.CreateWasher(context.Background(), &domain.Washer{
		ID:           id,
		UserID:       "staff-" + id,
		Name:         "Washer " + id,
		Availability: domain.WasherOnWork,
	}))
}

func TestAssignWasher(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "b1", domain.StatusPending, false)
	f.addWasher(t, "w1")

	_, err := f.svc.AssignWasher(ctx, "b1", &models.AssignWasherRequest{WasherID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.AssignWasher(ctx, "missing", &models.AssignWasherRequest{WasherID: "w1"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	resp, err := f.svc.AssignWasher(ctx, "b1", &models.AssignWasherRequest{WasherID: "w1"})
	require.NoError(t, err)
	require.NotNil(t, resp.WasherID)
	assert.Equal(t, "w1", *resp.WasherID)

	washer, err := f.store.GetWasher(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, washer.AssignedBookings)

	// повторное назначение не дублирует запись у сотрудника
	_, err = f.svc.AssignWasher(ctx, "b1", &models.AssignWasherRequest{WasherID: "w1"})
	require.NoError(t, err)
	washer, err = f.store.GetWasher(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, washer.AssignedBookings)
}

func TestAssignWasher_UnknownWasherLeavesBookingUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "b1", domain.StatusPending, false)

	_, err := f.svc.AssignWasher(ctx, "b1", &models.AssignWasherRequest{WasherID: "ghost"})
	assert.ErrorIs(t, err, ErrWasherNotFound)

	b, err := f.store.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, b.WasherID)
}

func TestAssignWasher_RejectsClosedBookings(t *testing.T) {
	ctx := context.Background()

	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			f.addBooking(t, "b1", status, false)
			f.addWasher(t, "w1")

			_, err := f.svc.AssignWasher(ctx, "b1", &models.AssignWasherRequest{WasherID: "w1"})
			assert.ErrorIs(t, err, ErrNotAssignable)

			b, err := f.store.GetByID(ctx, "b1")
			require.NoError(t, err)
			assert.Nil(t, b.WasherID)

			washer, err := f.store.GetWasher(ctx, "w1")
			require.NoError(t, err)
			assert.Empty(t, washer.AssignedBookings)
		})
	}

	t.Run("ongoing is assignable", func(t *testing.T) {
		f := newFixture(t)
		f.addBooking(t, "b1", domain.StatusOngoing, false)
		f.addWasher(t, "w1")

		_, err := f.svc.AssignWasher(ctx, "b1", &models.AssignWasherRequest{WasherID: "w1"})
		assert.NoError(t, err)
	})
}

func TestGetUserBookings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBooking(t, "b1", domain.StatusPending, false)
	f.addBooking(t, "b2", domain.StatusCompleted, false)

	all, err := f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: owner.UserID})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	completed, err := f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		UserID: owner.UserID,
		Status: ptr.Ptr("Completed"),
	})
	require.NoError(t, err)
	require.Len(t, completed.Bookings, 1)
	assert.Equal(t, "b2", completed.Bookings[0].ID)

	_, err = f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		UserID: owner.UserID,
		Status: ptr.Ptr("Paused"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
