package device

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий защитного снаряжения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория снаряжения
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAvailable получает до limit единиц снаряжения указанного вида, не выданных
// по активным бронированиям того же слота.
// Внутри транзакции найденные строки блокируются (FOR UPDATE), поэтому проверка
// количества и создание связей выполняются атомарно с созданием бронирования
func (r *Repository) ListAvailable(ctx context.Context, kind domain.DeviceKind, slotID int64, limit int) ([]domain.SafetyDevice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("d.id", "d.kind", "d.code").
		From("safety_devices d").
		Where(squirrel.Eq{"d.kind": kind}).
		Where(`NOT EXISTS (
			SELECT 1 FROM reservation_devices rd
			JOIN reservations r ON r.id = rd.reservation_id
			WHERE rd.device_id = d.id AND r.slot_id = ? AND r.status IN (?, ?))`,
			slotID, domain.ReservationPendingPayment, domain.ReservationPaid).
		OrderBy("d.id ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF d")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	devices := make([]domain.SafetyDevice, 0, limit)
	for rows.Next() {
		var d domain.SafetyDevice
		if err := rows.Scan(&d.ID, &d.Kind, &d.Code); err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %v", ErrScanRow, err)
		}
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows iteration: %v", ErrScanRow, err)
	}

	return devices, nil
}
