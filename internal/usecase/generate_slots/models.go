package generate_slots

import "time"

// Request модель запроса на генерацию слотов
type Request struct {
	Count *int // Количество слотов, по умолчанию DefaultSlotSeedCount
}

// Response модель ответа
type Response struct {
	Slots        []Slot // Созданные слоты
	CreatedCount int
	SkippedCount int
	From         time.Time
	To           time.Time // Окончание последнего слота
}

// Slot слот сетки
type Slot struct {
	ID       int64
	StartsAt time.Time
	Status   string
}
