package get_amount_due

import (
	"time"

	"github.com/shopspring/decimal"

	getAmountDue "github.com/m04kA/SMC-RentalService/internal/usecase/get_amount_due"
)

// AmountDueResponse HTTP response model
type AmountDueResponse struct {
	ClientID            int64            `json:"clientId"`
	Count               int              `json:"count"`
	Items               []ItemResponse   `json:"items"`
	Groups              []GroupResponse  `json:"groups"`
	LocalTotal          decimal.Decimal  `json:"localTotal"`
	ForeignTotal        decimal.Decimal  `json:"foreignTotal"`
	ForeignTotalInLocal decimal.Decimal  `json:"foreignTotalInLocal"`
	GrandTotalLocal     decimal.Decimal  `json:"grandTotalLocal"`
	TotalBeforeDiscount decimal.Decimal  `json:"totalBeforeDiscount"`
	DiscountApplied     bool             `json:"discountApplied"`
	DiscountPercent     int              `json:"discountPercent"`
	ExchangeRate        *decimal.Decimal `json:"exchangeRate,omitempty"`
}

type ItemResponse struct {
	ReservationID     int64           `json:"reservationId"`
	ProductID         int64           `json:"productId"`
	SlotStartsAt      string          `json:"slotStartsAt"`
	Currency          string          `json:"currency"`
	PaymentMethod     string          `json:"paymentMethod"`
	IncludesInsurance bool            `json:"includesInsurance"`
	OriginalAmount    decimal.Decimal `json:"originalAmount"`
	WithInsurance     decimal.Decimal `json:"withInsurance"`
	FinalAmount       decimal.Decimal `json:"finalAmount"`
}

type GroupResponse struct {
	Currency       string          `json:"currency"`
	PaymentMethod  string          `json:"paymentMethod"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	TotalLocal     decimal.Decimal `json:"totalLocal"`
	ReservationIDs []int64         `json:"reservationIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAmountDue.Response) *AmountDueResponse {
	result := &AmountDueResponse{
		ClientID:            resp.ClientID,
		Count:               resp.Count,
		Items:               make([]ItemResponse, 0, len(resp.Items)),
		Groups:              make([]GroupResponse, 0, len(resp.Groups)),
		LocalTotal:          resp.LocalTotal,
		ForeignTotal:        resp.ForeignTotal,
		ForeignTotalInLocal: resp.ForeignTotalInLocal,
		GrandTotalLocal:     resp.GrandTotalLocal,
		TotalBeforeDiscount: resp.TotalBeforeDiscount,
		DiscountApplied:     resp.DiscountApplied,
		DiscountPercent:     resp.DiscountPercent,
		ExchangeRate:        resp.ExchangeRate,
	}

	for _, item := range resp.Items {
		result.Items = append(result.Items, ItemResponse{
			ReservationID:     item.ReservationID,
			ProductID:         item.ProductID,
			SlotStartsAt:      item.SlotStartsAt.Format(time.RFC3339),
			Currency:          item.Currency,
			PaymentMethod:     item.PaymentMethod,
			IncludesInsurance: item.IncludesInsurance,
			OriginalAmount:    item.OriginalAmount,
			WithInsurance:     item.WithInsurance,
			FinalAmount:       item.FinalAmount,
		})
	}
	for _, g := range resp.Groups {
		result.Groups = append(result.Groups, GroupResponse{
			Currency:       g.Currency,
			PaymentMethod:  g.PaymentMethod,
			Subtotal:       g.Subtotal,
			Total:          g.Total,
			TotalLocal:     g.TotalLocal,
			ReservationIDs: g.ReservationIDs,
		})
	}

	return result
}
