package apply_storm_insurance

import (
	"time"

	"github.com/shopspring/decimal"

	applyStormInsurance "github.com/m04kA/SMC-RentalService/internal/usecase/apply_storm_insurance"
)

// StormInsuranceResponse HTTP response model
type StormInsuranceResponse struct {
	ClientID       int64           `json:"clientId"`
	CancelledCount int             `json:"cancelledCount"`
	LocalRefund    decimal.Decimal `json:"localRefund"`
	ForeignRefund  decimal.Decimal `json:"foreignRefund"`
	Items          []ItemResponse  `json:"items"`
	Balance        BalanceResponse `json:"balance"`
	WindowFrom     string          `json:"windowFrom"`
	WindowTo       string          `json:"windowTo"`
	AppliedAt      string          `json:"appliedAt"`
}

// ItemResponse отмененное бронирование с возвратом
type ItemResponse struct {
	ReservationID int64           `json:"reservationId"`
	SlotID        int64           `json:"slotId"`
	SlotStartsAt  string          `json:"slotStartsAt"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Refund        decimal.Decimal `json:"refund"`
	Currency      string          `json:"currency"`
}

type BalanceResponse struct {
	Local   decimal.Decimal `json:"local"`
	Foreign decimal.Decimal `json:"foreign"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyStormInsurance.Response) *StormInsuranceResponse {
	result := &StormInsuranceResponse{
		ClientID:       resp.ClientID,
		CancelledCount: resp.CancelledCount,
		LocalRefund:    resp.LocalRefund,
		ForeignRefund:  resp.ForeignRefund,
		Items:          make([]ItemResponse, 0, len(resp.Items)),
		Balance: BalanceResponse{
			Local:   resp.Balance.Local,
			Foreign: resp.Balance.Foreign,
		},
		WindowFrom: resp.WindowFrom.Format(time.RFC3339),
		WindowTo:   resp.WindowTo.Format(time.RFC3339),
		AppliedAt:  resp.AppliedAt.Format(time.RFC3339),
	}

	for _, item := range resp.Items {
		result.Items = append(result.Items, ItemResponse{
			ReservationID: item.ReservationID,
			SlotID:        item.SlotID,
			SlotStartsAt:  item.SlotStartsAt.Format(time.RFC3339),
			PaidAmount:    item.PaidAmount,
			Refund:        item.Refund,
			Currency:      item.Currency,
		})
	}

	return result
}
