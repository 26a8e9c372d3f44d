package generate_slots

import (
	"time"

	generateSlots "github.com/m04kA/SMC-RentalService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model. Тело необязательно
type GenerateSlotsRequest struct {
	Count *int `json:"count,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Slots        []SlotResponse `json:"slots"`
	CreatedCount int            `json:"createdCount"`
	SkippedCount int            `json:"skippedCount"`
	From         string         `json:"from"`
	To           string         `json:"to"`
}

type SlotResponse struct {
	ID       int64  `json:"id"`
	StartsAt string `json:"startsAt"`
	Status   string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest() *generateSlots.Request {
	return &generateSlots.Request{Count: r.Count}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	result := &GenerateSlotsResponse{
		Slots:        make([]SlotResponse, 0, len(resp.Slots)),
		CreatedCount: resp.CreatedCount,
		SkippedCount: resp.SkippedCount,
		From:         resp.From.Format(time.RFC3339),
		To:           resp.To.Format(time.RFC3339),
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			ID:       s.ID,
			StartsAt: s.StartsAt.Format(time.RFC3339),
			Status:   s.Status,
		})
	}
	return result
}
