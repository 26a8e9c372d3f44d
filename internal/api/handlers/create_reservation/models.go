package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ClientID          int64   `json:"clientId"`
	ProductID         int64   `json:"productId"`
	SlotIDs           []int64 `json:"slotIds"`
	PartySize         int     `json:"partySize"`
	PaymentMethod     string  `json:"paymentMethod"` // CASH | TRANSFER
	Currency          string  `json:"currency"`      // LOCAL | FOREIGN
	IncludesInsurance bool    `json:"includesInsurance"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                int64            `json:"id"`
	ClientID          int64            `json:"clientId"`
	ProductID         int64            `json:"productId"`
	SlotID            int64            `json:"slotId"`
	SlotStartsAt      string           `json:"slotStartsAt"`
	PartySize         int              `json:"partySize"`
	PaymentMethod     string           `json:"paymentMethod"`
	Currency          string           `json:"currency"`
	IncludesInsurance bool             `json:"includesInsurance"`
	Status            string           `json:"status"`
	Devices           []DeviceResponse `json:"devices"`
	CreatedAt         string           `json:"createdAt"`
}

// DeviceResponse выданное снаряжение
type DeviceResponse struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
	Code string `json:"code"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		ClientID:          r.ClientID,
		ProductID:         r.ProductID,
		SlotIDs:           r.SlotIDs,
		PartySize:         r.PartySize,
		PaymentMethod:     r.PaymentMethod,
		Currency:          r.Currency,
		IncludesInsurance: r.IncludesInsurance,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	result := &CreateReservationResponse{
		Reservations: make([]ReservationResponse, 0, len(resp.Reservations)),
	}

	for _, res := range resp.Reservations {
		devices := make([]DeviceResponse, 0, len(res.Devices))
		for _, d := range res.Devices {
			devices = append(devices, DeviceResponse{ID: d.ID, Kind: string(d.Kind), Code: d.Code})
		}

		result.Reservations = append(result.Reservations, ReservationResponse{
			ID:                res.ID,
			ClientID:          res.ClientID,
			ProductID:         res.ProductID,
			SlotID:            res.SlotID,
			SlotStartsAt:      res.SlotStartsAt.Format(time.RFC3339),
			PartySize:         res.PartySize,
			PaymentMethod:     res.PaymentMethod,
			Currency:          res.Currency,
			IncludesInsurance: res.IncludesInsurance,
			Status:            res.Status,
			Devices:           devices,
			CreatedAt:         res.CreatedAt.Format(time.RFC3339),
		})
	}

	return result
}
