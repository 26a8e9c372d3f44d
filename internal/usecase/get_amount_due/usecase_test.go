package get_amount_due

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/internal/testutil/memstore"
)

var now = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	store   *memstore.Store
	uc      *UseCase
	client  domain.Client
	product domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	return &fixture{
		store:  store,
		client: store.AddClient("ana"),
		product: store.AddProduct(domain.Product{
			Type:      domain.ProductDiveGear,
			Name:      "Dive kit",
			BasePrice: decimal.NewFromInt(100),
		}),
		uc: NewUseCase(
			store.Clients,
			store.Reservations,
			store.Products,
			pricing.NewRateLoader(store.Products),
			memstore.NopLogger{},
		),
	}
}

func (f *fixture) pending(lead time.Duration, method domain.PaymentMethod, currency domain.Currency, insured bool) domain.Reservation {
	slot := f.store.AddSlot(now.Add(lead))
	return f.store.AddReservation(domain.Reservation{
		ClientID:          f.client.ID,
		ProductID:         f.product.ID,
		SlotID:            slot.ID,
		PartySize:         1,
		PaymentMethod:     method,
		Currency:          currency,
		IncludesInsurance: insured,
		Status:            domain.ReservationPendingPayment,
	})
}

func TestExecute_MixedCurrenciesWithDiscount(t *testing.T) {
	f := newFixture(t)
	f.store.SetRate(domain.CurrencyForeign, dec("2.0"))
	local := f.pending(3*time.Hour, domain.PaymentCash, domain.CurrencyLocal, false)
	foreign := f.pending(4*time.Hour, domain.PaymentCash, domain.CurrencyForeign, true)

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	assert.True(t, resp.DiscountApplied)
	assert.Equal(t, 10, resp.DiscountPercent)
	assert.True(t, resp.LocalTotal.Equal(dec("90")), resp.LocalTotal.String())
	assert.True(t, resp.ForeignTotal.Equal(dec("51.75")), resp.ForeignTotal.String())
	assert.True(t, resp.ForeignTotalInLocal.Equal(dec("103.5")), resp.ForeignTotalInLocal.String())
	assert.True(t, resp.GrandTotalLocal.Equal(dec("193.5")), resp.GrandTotalLocal.String())
	assert.True(t, resp.TotalBeforeDiscount.Equal(dec("215")), resp.TotalBeforeDiscount.String())
	require.NotNil(t, resp.ExchangeRate)
	assert.True(t, resp.ExchangeRate.Equal(dec("2")))

	require.Len(t, resp.Groups, 2)
	assert.Equal(t, string(domain.CurrencyForeign), resp.Groups[0].Currency)
	assert.Equal(t, []int64{foreign.ID}, resp.Groups[0].ReservationIDs)
	assert.Equal(t, string(domain.CurrencyLocal), resp.Groups[1].Currency)
	assert.Equal(t, []int64{local.ID}, resp.Groups[1].ReservationIDs)

	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[1].OriginalAmount.Equal(dec("50")))
	assert.True(t, resp.Items[1].WithInsurance.Equal(dec("57.5")))
	assert.True(t, resp.Items[1].FinalAmount.Equal(dec("51.75")))
}

func TestExecute_SingleReservationHasNoDiscount(t *testing.T) {
	f := newFixture(t)
	f.pending(3*time.Hour, domain.PaymentTransfer, domain.CurrencyLocal, false)

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})
	require.NoError(t, err)

	assert.False(t, resp.DiscountApplied)
	assert.Equal(t, 0, resp.DiscountPercent)
	assert.True(t, resp.GrandTotalLocal.Equal(dec("100")))
	assert.Nil(t, resp.ExchangeRate)
}

func TestExecute_NoPendingReservations(t *testing.T) {
	f := newFixture(t)
	slot := f.store.AddSlot(now.Add(time.Hour))
	f.store.AddReservation(domain.Reservation{
		ClientID:      f.client.ID,
		ProductID:     f.product.ID,
		SlotID:        slot.ID,
		PartySize:     1,
		PaymentMethod: domain.PaymentCash,
		Currency:      domain.CurrencyLocal,
		Status:        domain.ReservationPaid,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Groups)
	assert.True(t, resp.GrandTotalLocal.IsZero())
}

func TestExecute_MissingRate(t *testing.T) {
	f := newFixture(t)
	f.pending(3*time.Hour, domain.PaymentCash, domain.CurrencyForeign, false)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID})
	assert.ErrorIs(t, err, ErrRateNotConfigured)
}

func TestExecute_ClientErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ClientID: 404})
	assert.ErrorIs(t, err, ErrClientNotFound)
}
