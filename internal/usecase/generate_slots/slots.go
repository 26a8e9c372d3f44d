package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// gridStart первый слот сетки: через SlotSeedLeadTime от текущего времени, минуты отбрасываются
func gridStart(now time.Time) time.Time {
	return now.Add(domain.SlotSeedLeadTime).Truncate(time.Hour)
}

// generateTimeSlots возвращает count подряд идущих получасовых слотов начиная с start
func generateTimeSlots(start time.Time, count int) []time.Time {
	slots := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		slots = append(slots, start.Add(time.Duration(i)*domain.SlotDuration))
	}
	return slots
}
