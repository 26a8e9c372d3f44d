package create_reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var base = time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestExceedsConsecutiveLimit(t *testing.T) {
	tests := []struct {
		name      string
		held      []time.Time
		candidate time.Time
		want      bool
	}{
		{name: "empty", held: nil, candidate: at(0), want: false},
		{name: "third in a row", held: []time.Time{at(0), at(30)}, candidate: at(60), want: false},
		{name: "fourth after the run", held: []time.Time{at(0), at(30), at(60)}, candidate: at(90), want: true},
		{name: "fourth before the run", held: []time.Time{at(30), at(60), at(90)}, candidate: at(0), want: true},
		{name: "fills the gap", held: []time.Time{at(0), at(30), at(90)}, candidate: at(60), want: true},
		{name: "45 minute gap resets", held: []time.Time{at(0), at(30), at(60)}, candidate: at(105), want: false},
		{name: "unrelated run", held: []time.Time{at(0), at(30), at(60), at(90)}, candidate: at(300), want: false},
		{name: "unordered input", held: []time.Time{at(60), at(0), at(30)}, candidate: at(90), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exceedsConsecutiveLimit(tt.held, tt.candidate))
		})
	}
}

func TestValidateSlotTiming(t *testing.T) {
	now := base

	assert.ErrorIs(t, validateSlotTiming(now.Add(-time.Minute), now, domain.PaymentTransfer), ErrSlotInPast)
	assert.NoError(t, validateSlotTiming(now, now, domain.PaymentTransfer))
	assert.NoError(t, validateSlotTiming(now.Add(48*time.Hour), now, domain.PaymentTransfer))
	assert.ErrorIs(t, validateSlotTiming(now.Add(48*time.Hour+time.Minute), now, domain.PaymentTransfer), ErrSlotTooFar)

	assert.ErrorIs(t, validateSlotTiming(now.Add(time.Hour), now, domain.PaymentCash), ErrCashLeadTime)
	assert.ErrorIs(t, validateSlotTiming(now.Add(2*time.Hour-time.Minute), now, domain.PaymentCash), ErrCashLeadTime)
	assert.NoError(t, validateSlotTiming(now.Add(2*time.Hour), now, domain.PaymentCash))
}

func TestValidateRequest(t *testing.T) {
	valid := func() *Request {
		return &Request{
			ClientID:      1,
			ProductID:     2,
			SlotIDs:       []int64{3},
			PartySize:     1,
			PaymentMethod: "CASH",
			Currency:      "FOREIGN",
		}
	}

	_, _, err := validateRequest(valid())
	assert.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{name: "no client", mutate: func(r *Request) { r.ClientID = 0 }, want: ErrInvalidInput},
		{name: "no product", mutate: func(r *Request) { r.ProductID = 0 }, want: ErrInvalidInput},
		{name: "no slots", mutate: func(r *Request) { r.SlotIDs = nil }, want: ErrInvalidInput},
		{name: "four slots", mutate: func(r *Request) { r.SlotIDs = []int64{1, 2, 3, 4} }, want: ErrTooManySlots},
		{name: "repeated slot", mutate: func(r *Request) { r.SlotIDs = []int64{3, 3} }, want: ErrInvalidInput},
		{name: "empty party", mutate: func(r *Request) { r.PartySize = 0 }, want: ErrInvalidInput},
		{name: "unknown method", mutate: func(r *Request) { r.PaymentMethod = "CARD" }, want: ErrInvalidPaymentMethod},
		{name: "unknown currency", mutate: func(r *Request) { r.Currency = "EUR" }, want: ErrInvalidCurrency},
		{name: "transfer in foreign", mutate: func(r *Request) { r.PaymentMethod = "TRANSFER" }, want: ErrTransferForeignCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			_, _, err := validateRequest(req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
