package pay_batch

import (
	"github.com/shopspring/decimal"

	payReservation "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
)

// PayBatchRequest HTTP request model
type PayBatchRequest struct {
	ReservationIDs []int64 `json:"reservationIds"`
}

// PayBatchResponse HTTP response model
type PayBatchResponse struct {
	ClientID        int64               `json:"clientId"`
	Paid            []PaidItemResponse  `json:"paid"`
	Groups          []GroupResponse     `json:"groups"`
	LocalTotal      decimal.Decimal     `json:"localTotal"`
	ForeignTotal    decimal.Decimal     `json:"foreignTotal"`
	Count           int                 `json:"count"`
	InsuredCount    int                 `json:"insuredCount"`
	DiscountApplied bool                `json:"discountApplied"`
	DiscountPercent int                 `json:"discountPercent"`
	Errors          []ItemErrorResponse `json:"errors"`
}

// PaidItemResponse оплаченное бронирование
type PaidItemResponse struct {
	ReservationID       int64           `json:"reservationId"`
	PaymentID           int64           `json:"paymentId"`
	Currency            string          `json:"currency"`
	PaymentMethod       string          `json:"paymentMethod"`
	IncludesInsurance   bool            `json:"includesInsurance"`
	OriginalAmount      decimal.Decimal `json:"originalAmount"`
	AmountWithInsurance decimal.Decimal `json:"amountWithInsurance"`
	FinalAmount         decimal.Decimal `json:"finalAmount"`
}

// GroupResponse итог пары (валюта, способ оплаты)
type GroupResponse struct {
	Currency       string          `json:"currency"`
	PaymentMethod  string          `json:"paymentMethod"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	ReservationIDs []int64         `json:"reservationIds"`
}

// ItemErrorResponse бронирование, которое не удалось оплатить
type ItemErrorResponse struct {
	ReservationID int64  `json:"reservationId"`
	Reason        string `json:"reason"`
	Message       string `json:"message"`
	Released      bool   `json:"released"`
}

// NothingToPayResponse ответ 400, когда ни одно бронирование пакета нельзя оплатить
type NothingToPayResponse struct {
	Code    int                 `json:"code"`
	Reason  string              `json:"reason"`
	Message string              `json:"message"`
	Errors  []ItemErrorResponse `json:"errors"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PayBatchRequest) ToUseCaseRequest() *payReservation.BatchRequest {
	return &payReservation.BatchRequest{ReservationIDs: r.ReservationIDs}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *payReservation.BatchResponse) *PayBatchResponse {
	result := &PayBatchResponse{
		ClientID:        resp.ClientID,
		Paid:            make([]PaidItemResponse, 0, len(resp.Paid)),
		Groups:          make([]GroupResponse, 0, len(resp.Groups)),
		LocalTotal:      resp.LocalTotal,
		ForeignTotal:    resp.ForeignTotal,
		Count:           resp.Count,
		InsuredCount:    resp.InsuredCount,
		DiscountApplied: resp.DiscountApplied,
		DiscountPercent: resp.DiscountPercent,
		Errors:          FromUseCaseItemErrors(resp.Errors),
	}

	for _, p := range resp.Paid {
		result.Paid = append(result.Paid, PaidItemResponse{
			ReservationID:       p.ReservationID,
			PaymentID:           p.PaymentID,
			Currency:            p.Currency,
			PaymentMethod:       p.PaymentMethod,
			IncludesInsurance:   p.IncludesInsurance,
			OriginalAmount:      p.OriginalAmount,
			AmountWithInsurance: p.AmountWithInsurance,
			FinalAmount:         p.FinalAmount,
		})
	}
	for _, g := range resp.Groups {
		result.Groups = append(result.Groups, GroupResponse{
			Currency:       g.Currency,
			PaymentMethod:  g.PaymentMethod,
			Subtotal:       g.Subtotal,
			Total:          g.Total,
			ReservationIDs: g.ReservationIDs,
		})
	}

	return result
}

// FromUseCaseItemErrors конвертирует причины отказа по бронированиям
func FromUseCaseItemErrors(items []payReservation.ItemError) []ItemErrorResponse {
	result := make([]ItemErrorResponse, 0, len(items))
	for _, e := range items {
		result = append(result, ItemErrorResponse{
			ReservationID: e.ReservationID,
			Reason:        e.Reason,
			Message:       e.Message,
			Released:      e.Released,
		})
	}
	return result
}
