package release_unpaid_holds

import "time"

// Response результат прохода
type Response struct {
	ReleasedCount int
	Released      []Item
	FailedCount   int // Бронирования, которые не удалось освободить (повторятся при следующем запуске)
	RanAt         time.Time
}

// Item освобожденное бронирование
type Item struct {
	ReservationID int64
	ClientID      int64
	SlotID        int64
	SlotStartsAt  time.Time
}
