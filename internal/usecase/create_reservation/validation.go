package create_reservation

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.PaymentMethod, domain.Currency, error) {
	if req.ClientID <= 0 {
		return "", "", fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	if req.ProductID <= 0 {
		return "", "", fmt.Errorf("%w: productId must be positive", ErrInvalidInput)
	}

	if len(req.SlotIDs) == 0 {
		return "", "", fmt.Errorf("%w: slotIds is required", ErrInvalidInput)
	}

	if len(req.SlotIDs) > domain.MaxSlotsPerRequest {
		return "", "", ErrTooManySlots
	}

	seen := make(map[int64]bool, len(req.SlotIDs))
	for _, id := range req.SlotIDs {
		if id <= 0 {
			return "", "", fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
		}
		if seen[id] {
			return "", "", fmt.Errorf("%w: slot id=%d repeated", ErrInvalidInput, id)
		}
		seen[id] = true
	}

	if req.PartySize < 1 {
		return "", "", fmt.Errorf("%w: partySize must be at least 1", ErrInvalidInput)
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	currency := domain.Currency(req.Currency)
	if !currency.IsValid() {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidCurrency, req.Currency)
	}

	// Перевод только в локальной валюте
	if !method.Supports(currency) {
		return "", "", ErrTransferForeignCurrency
	}

	return method, currency, nil
}

// validateSlotTiming проверяет время слота относительно текущего момента
func validateSlotTiming(startsAt, now time.Time, method domain.PaymentMethod) error {
	if startsAt.Before(now) {
		return ErrSlotInPast
	}

	lead := startsAt.Sub(now)
	if lead > domain.BookingHorizon {
		return ErrSlotTooFar
	}

	if method == domain.PaymentCash && lead < domain.CashPaymentLeadTime {
		return ErrCashLeadTime
	}

	return nil
}

// exceedsConsecutiveLimit сообщает, образует ли новый слот вместе с уже занятыми клиентом
// серию длиннее MaxConsecutiveSlots. Серия: слоты с шагом ровно SlotDuration
func exceedsConsecutiveLimit(held []time.Time, candidate time.Time) bool {
	times := make([]time.Time, 0, len(held)+1)
	times = append(times, held...)
	times = append(times, candidate)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	candidateIdx := -1
	for i, t := range times {
		if t.Equal(candidate) {
			candidateIdx = i
			break
		}
	}

	streak := 1
	for i := 1; i < len(times); i++ {
		if times[i].Sub(times[i-1]) == domain.SlotDuration {
			streak++
		} else {
			streak = 1
		}

		// Новый слот должен входить в последние позиции серии
		if streak > domain.MaxConsecutiveSlots &&
			candidateIdx >= i-domain.MaxConsecutiveSlots && candidateIdx <= i {
			return true
		}
	}

	return false
}
