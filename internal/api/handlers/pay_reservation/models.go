package pay_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	payReservation "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
)

// PayReservationRequest HTTP request model. Тело необязательно
type PayReservationRequest struct {
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Currency      *string `json:"currency,omitempty"`
}

// PayReservationResponse HTTP response model
type PayReservationResponse struct {
	Reservation         ReservationResponse `json:"reservation"`
	Payment             PaymentResponse     `json:"payment"`
	OriginalAmount      decimal.Decimal     `json:"originalAmount"`
	AmountWithInsurance decimal.Decimal     `json:"amountWithInsurance"`
	FinalAmount         decimal.Decimal     `json:"finalAmount"`
	InsurancePercent    int                 `json:"insurancePercent"`
	DiscountApplied     bool                `json:"discountApplied"`
	DiscountPercent     int                 `json:"discountPercent"`
	Currency            string              `json:"currency"`
}

// ReservationResponse бронирование после оплаты
type ReservationResponse struct {
	ID                int64  `json:"id"`
	ClientID          int64  `json:"clientId"`
	ProductID         int64  `json:"productId"`
	SlotID            int64  `json:"slotId"`
	SlotStartsAt      string `json:"slotStartsAt"`
	Status            string `json:"status"`
	PaymentMethod     string `json:"paymentMethod"`
	Currency          string `json:"currency"`
	IncludesInsurance bool   `json:"includesInsurance"`
}

// PaymentResponse созданный платеж
type PaymentResponse struct {
	ID              int64           `json:"id"`
	ReservationID   int64           `json:"reservationId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	PaymentMethod   string          `json:"paymentMethod"`
	DiscountApplied bool            `json:"discountApplied"`
	DiscountPercent int             `json:"discountPercent"`
	CreatedAt       string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PayReservationRequest) ToUseCaseRequest(reservationID int64) *payReservation.Request {
	return &payReservation.Request{
		ReservationID: reservationID,
		PaymentMethod: r.PaymentMethod,
		Currency:      r.Currency,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *payReservation.Response) *PayReservationResponse {
	return &PayReservationResponse{
		Reservation: ReservationResponse{
			ID:                resp.Reservation.ID,
			ClientID:          resp.Reservation.ClientID,
			ProductID:         resp.Reservation.ProductID,
			SlotID:            resp.Reservation.SlotID,
			SlotStartsAt:      resp.Reservation.SlotStartsAt.Format(time.RFC3339),
			Status:            resp.Reservation.Status,
			PaymentMethod:     resp.Reservation.PaymentMethod,
			Currency:          resp.Reservation.Currency,
			IncludesInsurance: resp.Reservation.IncludesInsurance,
		},
		Payment: PaymentResponse{
			ID:              resp.Payment.ID,
			ReservationID:   resp.Payment.ReservationID,
			Amount:          resp.Payment.Amount,
			Currency:        resp.Payment.Currency,
			PaymentMethod:   resp.Payment.PaymentMethod,
			DiscountApplied: resp.Payment.DiscountApplied,
			DiscountPercent: resp.Payment.DiscountPercent,
			CreatedAt:       resp.Payment.CreatedAt.Format(time.RFC3339),
		},
		OriginalAmount:      resp.OriginalAmount,
		AmountWithInsurance: resp.AmountWithInsurance,
		FinalAmount:         resp.FinalAmount,
		InsurancePercent:    resp.InsurancePercent,
		DiscountApplied:     resp.DiscountApplied,
		DiscountPercent:     resp.DiscountPercent,
		Currency:            resp.Currency,
	}
}
