package cancel_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	cancelReservation "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_reservation"
)

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Slot        SlotResponse        `json:"slot"`
	Refund      *RefundResponse     `json:"refund,omitempty"`
	Balance     BalanceResponse     `json:"balance"`
}

type ReservationResponse struct {
	ID             int64  `json:"id"`
	ClientID       int64  `json:"clientId"`
	ProductID      int64  `json:"productId"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
}

type SlotResponse struct {
	ID       int64  `json:"id"`
	StartsAt string `json:"startsAt"`
	Status   string `json:"status"`
}

type RefundResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type BalanceResponse struct {
	ClientID int64           `json:"clientId"`
	Local    decimal.Decimal `json:"local"`
	Foreign  decimal.Decimal `json:"foreign"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	result := &CancelReservationResponse{
		Reservation: ReservationResponse{
			ID:             resp.Reservation.ID,
			ClientID:       resp.Reservation.ClientID,
			ProductID:      resp.Reservation.ProductID,
			Status:         resp.Reservation.Status,
			PreviousStatus: resp.Reservation.PreviousStatus,
		},
		Slot: SlotResponse{
			ID:       resp.Slot.ID,
			StartsAt: resp.Slot.StartsAt.Format(time.RFC3339),
			Status:   resp.Slot.Status,
		},
		Balance: BalanceResponse{
			ClientID: resp.Balance.ClientID,
			Local:    resp.Balance.Local,
			Foreign:  resp.Balance.Foreign,
		},
	}

	if resp.Refund != nil {
		result.Refund = &RefundResponse{
			Amount:   resp.Refund.Amount,
			Currency: resp.Refund.Currency,
		}
	}

	return result
}
