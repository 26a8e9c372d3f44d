package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ListProductsRequest запрос каталога
type ListProductsRequest struct {
	Type *string `json:"type,omitempty"`
}

// ListSlotsRequest запрос свободных слотов
type ListSlotsRequest struct {
	Date *string `json:"date,omitempty"` // YYYY-MM-DD, без даты возвращаются все будущие слоты
}

// ProductResponse товар каталога
type ProductResponse struct {
	ID             int64           `json:"id"`
	Type           string          `json:"type"`
	Name           string          `json:"name"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	MaxCapacity    *int            `json:"maxCapacity,omitempty"`
	BoardSize      *string         `json:"boardSize,omitempty"`
	RequiredDevice *string         `json:"requiredDevice,omitempty"`
}

// ProductListResponse список товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// SlotResponse свободный слот
type SlotResponse struct {
	ID       int64     `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Status   string    `json:"status"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Date  *string        `json:"date,omitempty"`
	Slots []SlotResponse `json:"slots"`
}

// FromDomainProduct конвертирует товар в DTO
func FromDomainProduct(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Type:        string(p.Type),
		Name:        p.Name,
		BasePrice:   p.BasePrice,
		MaxCapacity: p.MaxCapacity,
	}
	if p.BoardSize != nil {
		size := string(*p.BoardSize)
		resp.BoardSize = &size
	}
	if kind, ok := p.RequiredDevice(); ok {
		device := string(kind)
		resp.RequiredDevice = &device
	}
	return resp
}

// FromDomainSlots конвертирует список слотов в DTO
func FromDomainSlots(slots []*domain.Slot, date *string) *SlotListResponse {
	resp := &SlotListResponse{
		Date:  date,
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:       s.ID,
			StartsAt: s.StartsAt,
			EndsAt:   s.EndsAt(),
			Status:   string(s.Status),
		})
	}
	return resp
}
