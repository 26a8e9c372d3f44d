package apply_storm_insurance

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
)

var now = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

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
			store.Clients,
			store.Reservations,
			store.Slots,
			store.Payments,
			store.Tx,
			&clock.Fixed{At: now},
			recorder,
			recorder,
			memstore.NopLogger{},
		),
	}
}

func (f *fixture) paid(startsAt time.Time, currency domain.Currency, insured bool, amount string) domain.Reservation {
	slot := f.store.AddSlot(startsAt)
	res := f.store.AddReservation(domain.Reservation{
		ClientID:          f.client.ID,
		SlotID:            slot.ID,
		PartySize:         1,
		PaymentMethod:     domain.PaymentCash,
		Currency:          currency,
		IncludesInsurance: insured,
		Status:            domain.ReservationPaid,
	})
	if amount != "" {
		f.store.AddPayment(domain.Payment{
			ReservationID: res.ID,
			Amount:        decimal.RequireFromString(amount),
			Currency:      currency,
			PaymentMethod: domain.PaymentCash,
		})
	}
	return res
}

func TestExecute_RefundsHalfAndClosesSlot(t *testing.T) {
	f := newFixture(t)
	res := f.paid(now.Add(2*time.Hour), domain.CurrencyLocal, true, "57.50")

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CancelledCount)
	assert.True(t, resp.LocalRefund.Equal(decimal.RequireFromString("28.75")), resp.LocalRefund.String())
	assert.True(t, resp.ForeignRefund.IsZero())
	assert.True(t, resp.Balance.Local.Equal(decimal.RequireFromString("28.75")))

	assert.Equal(t, domain.ReservationCancelled, f.store.Reservation(res.ID).Status)
	assert.Equal(t, domain.SlotCancelled, f.store.Slot(res.SlotID).Status)
	assert.True(t, f.store.Balance(f.client.ID).Local.Equal(decimal.RequireFromString("28.75")))
	assert.Equal(t, []events.Type{events.ReservationStormCancelled}, f.recorder.Types())
}

func TestExecute_RefundFollowsPaymentCurrency(t *testing.T) {
	f := newFixture(t)
	res := f.paid(now.Add(2*time.Hour), domain.CurrencyLocal, true, "")
	// Платеж записан в иностранной валюте, хотя бронирование в локальной
	f.store.AddPayment(domain.Payment{
		ReservationID: res.ID,
		Amount:        decimal.RequireFromString("40"),
		Currency:      domain.CurrencyForeign,
		PaymentMethod: domain.PaymentCash,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, string(domain.CurrencyForeign), resp.Items[0].Currency)
	assert.True(t, resp.ForeignRefund.Equal(decimal.RequireFromString("20")), resp.ForeignRefund.String())
	assert.True(t, resp.LocalRefund.IsZero())

	balance := f.store.Balance(f.client.ID)
	assert.True(t, balance.Foreign.Equal(decimal.RequireFromString("20")), balance.Foreign.String())
	assert.True(t, balance.Local.IsZero())
}

func TestExecute_FiltersByInsuranceAndWindow(t *testing.T) {
	f := newFixture(t)
	uninsured := f.paid(now.Add(time.Hour), domain.CurrencyLocal, false, "100")
	tomorrow := f.paid(now.Add(20*time.Hour), domain.CurrencyLocal, true, "100")
	foreign := f.paid(now.Add(3*time.Hour), domain.CurrencyForeign, true, "51.75")
	noPayment := f.paid(now.Add(4*time.Hour), domain.CurrencyLocal, true, "")

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CancelledCount)
	assert.Equal(t, foreign.ID, resp.Items[0].ReservationID)
	assert.True(t, resp.ForeignRefund.Equal(decimal.RequireFromString("25.875")), resp.ForeignRefund.String())

	assert.Equal(t, domain.ReservationPaid, f.store.Reservation(uninsured.ID).Status)
	assert.Equal(t, domain.ReservationPaid, f.store.Reservation(tomorrow.ID).Status)
	assert.Equal(t, domain.ReservationPaid, f.store.Reservation(noPayment.ID).Status)
}

func TestExecute_NothingToCancelIsSuccess(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.CancelledCount)
	assert.True(t, resp.LocalRefund.IsZero())
	assert.Empty(t, resp.Items)
	assert.Empty(t, f.recorder.Events)
}

func TestExecute_UnknownClient(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 999})
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{ClientID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_FailureRollsBackAllRefunds(t *testing.T) {
	f := newFixture(t)
	first := f.paid(now.Add(time.Hour), domain.CurrencyLocal, true, "100")
	f.paid(now.Add(2*time.Hour), domain.CurrencyLocal, true, "100")
	f.store.FailOn("slots.UpdateStatus", errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.ReservationPaid, f.store.Reservation(first.ID).Status)
	assert.True(t, f.store.Balance(f.client.ID).Local.IsZero())
}

func TestTodayWindow(t *testing.T) {
	from, to := todayWindow(time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 6, 9, 21, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 10, 20, 59, 59, int(999*time.Millisecond), time.UTC), to)
}
