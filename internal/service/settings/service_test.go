package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/settings/models"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/ptr"
)

func TestService_Current_Defaults(t *testing.T) {
	svc := NewService(memory.NewStore(), logger.Nop())

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBookingCutoffHours, current.BookingCutoffHours)
	assert.Equal(t, []time.Weekday{time.Sunday}, current.ClosedWeekdays)
	assert.Equal(t, []string{"GCash", "Card", "Maya"}, current.PaymentMethods)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, logger.Nop())

	resp, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		BookingCutoffHours: ptr.Ptr(4),
		ClosedWeekdays:     &[]int{0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.BookingCutoffHours)
	assert.Equal(t, domain.DefaultMaxAdvanceBookingDays, resp.MaxAdvanceBookingDays)
	assert.Equal(t, []int{0, 1}, resp.ClosedWeekdays)
	assert.NotNil(t, resp.UpdatedAt)

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.BookingCutoffHours)
}

func TestService_Update_Validation(t *testing.T) {
	svc := NewService(memory.NewStore(), logger.Nop())

	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{name: "negative cutoff", req: models.UpdateSettingsRequest{BookingCutoffHours: ptr.Ptr(-1)}},
		{name: "weekday out of range", req: models.UpdateSettingsRequest{ClosedWeekdays: &[]int{7}}},
		{name: "duplicate weekday", req: models.UpdateSettingsRequest{ClosedWeekdays: &[]int{2, 2}}},
		{name: "no payment methods", req: models.UpdateSettingsRequest{PaymentMethods: &[]string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
