package domain

import "time"

// SlotStatus состояние временного слота
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotReserved  SlotStatus = "RESERVED"
	SlotCancelled SlotStatus = "CANCELLED" // Закрыт штормом, повторно не выдаётся
)

// Slot получасовой интервал аренды
type Slot struct {
	ID        int64
	StartsAt  time.Time // Локальное настенное время, хранится в UTC
	Status    SlotStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// EndsAt возвращает время окончания слота
func (s *Slot) EndsAt() time.Time {
	return s.StartsAt.Add(SlotDuration)
}

// SlotFilter фильтр выборки слотов
type SlotFilter struct {
	Status *SlotStatus
	From   *time.Time // Включительно
	To     *time.Time // Не включительно
}
