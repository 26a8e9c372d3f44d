package cancel_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RentalService/pkg/clock"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var now = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	recorder *memstore.Recorder
	uc       *UseCase
	client   domain.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	recorder := memstore.NewRecorder()
	return &fixture{
		store:    store,
		recorder: recorder,
		client:   store.AddClient("ana"),
		uc: NewUseCase(
			store.Reservations,
			store.Slots,
			store.Payments,
			store.Clients,
			store.Tx,
			&clock.Fixed{At: now},
			recorder,
			recorder,
			memstore.NopLogger{},
		),
	}
}

func (f *fixture) reservation(lead time.Duration, status domain.ReservationStatus) domain.Reservation {
	slot := f.store.AddSlot(now.Add(lead))
	return f.store.AddReservation(domain.Reservation{
		ClientID:      f.client.ID,
		SlotID:        slot.ID,
		PartySize:     1,
		PaymentMethod: domain.PaymentCash,
		Currency:      domain.CurrencyForeign,
		Status:        status,
	})
}

func TestExecute_PaidReservationRefundsFullAmount(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(5*time.Hour, domain.ReservationPaid)
	f.store.AddPayment(domain.Payment{
		ReservationID: res.ID,
		Amount:        decimal.RequireFromString("57.50"),
		Currency:      domain.CurrencyForeign,
		PaymentMethod: domain.PaymentCash,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(res.ID)})
	require.NoError(t, err)

	require.NotNil(t, resp.Refund)
	assert.True(t, resp.Refund.Amount.Equal(decimal.RequireFromString("57.50")))
	assert.Equal(t, string(domain.CurrencyForeign), resp.Refund.Currency)
	assert.True(t, resp.Balance.Foreign.Equal(decimal.RequireFromString("57.50")))
	assert.True(t, resp.Balance.Local.IsZero())
	assert.Equal(t, string(domain.ReservationPaid), resp.Reservation.PreviousStatus)

	assert.Equal(t, domain.ReservationCancelled, f.store.Reservation(res.ID).Status)
	assert.Equal(t, domain.SlotAvailable, f.store.Slot(res.SlotID).Status)
	assert.True(t, f.store.Balance(f.client.ID).Foreign.Equal(decimal.RequireFromString("57.50")))
	assert.Equal(t, []events.Type{events.ReservationCancelled}, f.recorder.Types())
}

func TestExecute_PendingReservationBySlot(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(3*time.Hour, domain.ReservationPendingPayment)

	resp, err := f.uc.Execute(context.Background(), &Request{SlotID: ptr.Ptr(res.SlotID)})
	require.NoError(t, err)

	assert.Equal(t, res.ID, resp.Reservation.ID)
	assert.Nil(t, resp.Refund)
	assert.True(t, resp.Balance.Local.IsZero())
	assert.Equal(t, string(domain.SlotAvailable), resp.Slot.Status)
	assert.Equal(t, domain.ReservationCancelled, f.store.Reservation(res.ID).Status)
}

func TestExecute_Deadline(t *testing.T) {
	f := newFixture(t)
	late := f.reservation(2*time.Hour-time.Minute, domain.ReservationPendingPayment)
	onTime := f.reservation(2*time.Hour, domain.ReservationPendingPayment)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(late.ID)})
	assert.ErrorIs(t, err, ErrCancellationDeadline)
	assert.Equal(t, domain.ReservationPendingPayment, f.store.Reservation(late.ID).Status)

	_, err = f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(onTime.ID)})
	assert.NoError(t, err)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(5*time.Hour, domain.ReservationCancelled)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(res.ID)})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_LookupErrors(t *testing.T) {
	f := newFixture(t)
	free := f.store.AddSlot(now.Add(5 * time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(int64(1)), SlotID: ptr.Ptr(int64(1))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(int64(777))})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{SlotID: ptr.Ptr(int64(777))})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{SlotID: ptr.Ptr(free.ID)})
	assert.ErrorIs(t, err, ErrNoActiveReservation)
}

func TestExecute_PaidWithoutPaymentRollsBack(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(5*time.Hour, domain.ReservationPaid)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(res.ID)})

	assert.ErrorIs(t, err, ErrPaymentMissing)
	assert.Equal(t, domain.ReservationPaid, f.store.Reservation(res.ID).Status)
	assert.Equal(t, domain.SlotReserved, f.store.Slot(res.SlotID).Status)
}

func TestExecute_CreditFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	res := f.reservation(5*time.Hour, domain.ReservationPaid)
	f.store.AddPayment(domain.Payment{ReservationID: res.ID, Amount: decimal.NewFromInt(90), Currency: domain.CurrencyLocal})
	f.store.FailOn("clients.Credit", errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: ptr.Ptr(res.ID)})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.ReservationPaid, f.store.Reservation(res.ID).Status)
	assert.Equal(t, domain.SlotReserved, f.store.Slot(res.SlotID).Status)
	assert.True(t, f.store.Balance(f.client.ID).Local.IsZero())
	assert.Empty(t, f.recorder.Events)
}
