package apply_storm_insurance

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// todayWindow возвращает окно "сегодня" для штормовой страховки:
// [00:00, 23:59:59.999] текущей даты, оба конца сдвинуты на StormWindowShift назад
func todayWindow(now time.Time) (from, to time.Time) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)
	return dayStart.Add(-domain.StormWindowShift), dayEnd.Add(-domain.StormWindowShift)
}
