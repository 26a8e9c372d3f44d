package release_holds

import (
	"time"

	releaseUnpaidHolds "github.com/m04kA/SMC-RentalService/internal/usecase/release_unpaid_holds"
)

// ReleaseHoldsResponse HTTP response model
type ReleaseHoldsResponse struct {
	ReleasedCount int            `json:"releasedCount"`
	Released      []ItemResponse `json:"released"`
	FailedCount   int            `json:"failedCount"`
	RanAt         string         `json:"ranAt"`
}

type ItemResponse struct {
	ReservationID int64  `json:"reservationId"`
	ClientID      int64  `json:"clientId"`
	SlotID        int64  `json:"slotId"`
	SlotStartsAt  string `json:"slotStartsAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *releaseUnpaidHolds.Response) *ReleaseHoldsResponse {
	result := &ReleaseHoldsResponse{
		ReleasedCount: resp.ReleasedCount,
		Released:      make([]ItemResponse, 0, len(resp.Released)),
		FailedCount:   resp.FailedCount,
		RanAt:         resp.RanAt.Format(time.RFC3339),
	}
	for _, item := range resp.Released {
		result.Released = append(result.Released, ItemResponse{
			ReservationID: item.ReservationID,
			ClientID:      item.ClientID,
			SlotID:        item.SlotID,
			SlotStartsAt:  item.SlotStartsAt.Format(time.RFC3339),
		})
	}
	return result
}
