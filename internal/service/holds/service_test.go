package holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

func setup() (*memstore.Store, *memstore.Recorder, *Service) {
	store := memstore.New()
	recorder := memstore.NewRecorder()
	svc := NewService(store.Reservations, store.Slots, store.Tx, recorder, recorder, memstore.NopLogger{})
	return store, recorder, svc
}

func pendingOn(store *memstore.Store) domain.Reservation {
	client := store.AddClient("ana")
	slot := store.AddSlot(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	return store.AddReservation(domain.Reservation{
		ClientID:      client.ID,
		SlotID:        slot.ID,
		PaymentMethod: domain.PaymentCash,
		Currency:      domain.CurrencyLocal,
		Status:        domain.ReservationPendingPayment,
	})
}

func TestRelease_PendingReservation(t *testing.T) {
	store, recorder, svc := setup()
	res := pendingOn(store)

	released, err := svc.Release(context.Background(), res.ID)

	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, domain.ReservationCancelled, store.Reservation(res.ID).Status)
	assert.Equal(t, domain.SlotAvailable, store.Slot(res.SlotID).Status)
	assert.Equal(t, []events.Type{events.ReservationReleased}, recorder.Types())
	assert.Equal(t, 1, recorder.Counters[metrics.EventHoldReleased])
}

func TestRelease_SecondCallIsNoop(t *testing.T) {
	store, recorder, svc := setup()
	res := pendingOn(store)

	_, err := svc.Release(context.Background(), res.ID)
	require.NoError(t, err)

	released, err := svc.Release(context.Background(), res.ID)
	require.NoError(t, err)
	assert.False(t, released)
	assert.Len(t, recorder.Events, 1)
}

func TestRelease_UnknownReservation(t *testing.T) {
	_, _, svc := setup()

	released, err := svc.Release(context.Background(), 42)

	require.NoError(t, err)
	assert.False(t, released)
}

func TestRelease_FailureKeepsHold(t *testing.T) {
	store, _, svc := setup()
	res := pendingOn(store)
	store.FailOn("slots.UpdateStatus", errors.New("disk full"))

	released, err := svc.Release(context.Background(), res.ID)

	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, released)
	assert.Equal(t, domain.ReservationPendingPayment, store.Reservation(res.ID).Status)
}
