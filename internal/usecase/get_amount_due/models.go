package get_amount_due

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса суммы к оплате
type Request struct {
	ClientID int64
}

// Response сумма к оплате по всем бронированиям клиента в ожидании оплаты.
// Суммы округлены до копеек только для отображения
type Response struct {
	ClientID            int64
	Count               int
	Items               []Item
	Groups              []Group
	LocalTotal          decimal.Decimal // Итог в локальной валюте
	ForeignTotal        decimal.Decimal // Итог в иностранной валюте
	ForeignTotalInLocal decimal.Decimal // Итог в иностранной валюте, пересчитанный в локальную
	GrandTotalLocal     decimal.Decimal // Общий итог в локальном эквиваленте
	TotalBeforeDiscount decimal.Decimal // Общий итог до скидки в локальном эквиваленте
	DiscountApplied     bool
	DiscountPercent     int
	ExchangeRate        *decimal.Decimal // nil, если иностранная валюта не участвует
}

// Item позиция расчета
type Item struct {
	ReservationID     int64
	ProductID         int64
	SlotStartsAt      time.Time
	Currency          string
	PaymentMethod     string
	IncludesInsurance bool
	OriginalAmount    decimal.Decimal
	WithInsurance     decimal.Decimal
	FinalAmount       decimal.Decimal
}

// Group итог по паре (валюта, способ оплаты)
type Group struct {
	Currency       string
	PaymentMethod  string
	Subtotal       decimal.Decimal // До скидки, в валюте оплаты
	Total          decimal.Decimal // После скидки, в валюте оплаты
	TotalLocal     decimal.Decimal // После скидки, локальный эквивалент
	ReservationIDs []int64
}
