package events

import "time"

// Type тип события бронирования
type Type string

const (
	ReservationCreated        Type = "reservation.created"
	ReservationPaid           Type = "reservation.paid"
	ReservationCancelled      Type = "reservation.cancelled"
	ReservationStormCancelled Type = "reservation.storm_cancelled"
	ReservationReleased       Type = "reservation.released"
)

// Event сообщение, публикуемое в очередь после фиксации транзакции
type Event struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	ClientID      int64     `json:"client_id"`
	SlotID        int64     `json:"slot_id"`
	Amount        *string   `json:"amount,omitempty"`
	Currency      *string   `json:"currency,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
