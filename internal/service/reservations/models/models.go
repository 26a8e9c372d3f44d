package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetClientReservationsRequest запрос на получение бронирований клиента
type GetClientReservationsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                int64  `json:"id"`
	ClientID          int64  `json:"clientId"`
	ProductID         int64  `json:"productId"`
	SlotID            int64  `json:"slotId"`
	SlotStartsAt      string `json:"slotStartsAt"` // RFC 3339
	PartySize         int    `json:"partySize"`
	PaymentMethod     string `json:"paymentMethod"`
	Currency          string `json:"currency"`
	IncludesInsurance bool   `json:"includesInsurance"`
	Status            string `json:"status"`

	// Денормализованные данные
	ProductName *string          `json:"productName,omitempty"`
	ProductType *string          `json:"productType,omitempty"`
	SlotStatus  *string          `json:"slotStatus,omitempty"`
	Payment     *PaymentResponse `json:"payment,omitempty"`
	Devices     []DeviceResponse `json:"devices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentResponse платеж бронирования
type PaymentResponse struct {
	ID              int64           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	PaymentMethod   string          `json:"paymentMethod"`
	DiscountApplied bool            `json:"discountApplied"`
	DiscountPercent int             `json:"discountPercent"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// DeviceResponse выданное защитное снаряжение
type DeviceResponse struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
	Code string `json:"code"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// BalanceResponse баланс клиента
type BalanceResponse struct {
	ClientID int64           `json:"clientId"`
	Local    decimal.Decimal `json:"local"`
	Foreign  decimal.Decimal `json:"foreign"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, slotStartsAt time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:                r.ID,
		ClientID:          r.ClientID,
		ProductID:         r.ProductID,
		SlotID:            r.SlotID,
		SlotStartsAt:      slotStartsAt.Format(domain.DateTimeFormat),
		PartySize:         r.PartySize,
		PaymentMethod:     string(r.PaymentMethod),
		Currency:          string(r.Currency),
		IncludesInsurance: r.IncludesInsurance,
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований со слотами в DTO
func FromDomainReservationList(list []*domain.ReservationWithSlot) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}

	for _, item := range list {
		r := FromDomainReservation(&item.Reservation, item.SlotStartsAt)
		slotStatus := string(item.SlotStatus)
		r.SlotStatus = &slotStatus
		resp.Reservations = append(resp.Reservations, *r)
	}

	return resp
}

// FromDomainPayment конвертирует платеж в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:              p.ID,
		Amount:          p.Amount,
		Currency:        string(p.Currency),
		PaymentMethod:   string(p.PaymentMethod),
		DiscountApplied: p.DiscountApplied,
		DiscountPercent: p.DiscountPercent,
		CreatedAt:       p.CreatedAt,
	}
}

// FromDomainDevices конвертирует список снаряжения в DTO
func FromDomainDevices(devices []domain.SafetyDevice) []DeviceResponse {
	resp := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		resp = append(resp, DeviceResponse{ID: d.ID, Kind: string(d.Kind), Code: d.Code})
	}
	return resp
}

// FromDomainBalance конвертирует баланс в DTO
func FromDomainBalance(clientID int64, b *domain.Balance) *BalanceResponse {
	if b == nil {
		return &BalanceResponse{ClientID: clientID, Local: decimal.Zero, Foreign: decimal.Zero}
	}
	return &BalanceResponse{ClientID: clientID, Local: b.Local, Foreign: b.Foreign}
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
