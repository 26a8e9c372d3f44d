package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const (
	tableReservations       = "reservations"
	tableReservationDevices = "reservation_devices"

	// Код ошибки PostgreSQL unique_violation
	pgUniqueViolation = "23505"
)

var reservationColumns = []string{
	"r.id",
	"r.client_id",
	"r.product_id",
	"r.slot_id",
	"r.party_size",
	"r.payment_method",
	"r.currency",
	"r.includes_insurance",
	"r.status",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри транзакции создания вместе с переводом слота в RESERVED.
// Частичный уникальный индекс по slot_id не даёт появиться второму активному бронированию
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"client_id",
			"product_id",
			"slot_id",
			"party_size",
			"payment_method",
			"currency",
			"includes_insurance",
			"status",
		).
		Values(
			res.ClientID,
			res.ProductID,
			res.SlotID,
			res.PartySize,
			res.PaymentMethod,
			res.Currency,
			res.IncludesInsurance,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotAlreadyTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations + " r").
		Where(squirrel.Eq{"r.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetActiveBySlotID получает активное (PENDING_PAYMENT или PAID) бронирование слота
func (r *Repository) GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations + " r").
		Where(squirrel.Eq{"r.slot_id": slotID}).
		Where(squirrel.Eq{"r.status": statusStrings(domain.ActiveReservationStatuses)}).
		OrderBy("r.id DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlotID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования вместе со временем и статусом слота
// Поддерживает фильтрацию по клиенту, слоту, статусам, способу оплаты и периоду слота.
// Сортировка по времени слота (ASC).
//
// Примеры использования:
//
// 1. Активные бронирования клиента (проверка серии слотов):
//    filter := domain.ReservationFilter{ClientID: &id, Statuses: domain.ActiveReservationStatuses}
//
// 2. Неоплаченные наличные (освобождение слотов):
//    filter := domain.ReservationFilter{Statuses: []domain.ReservationStatus{domain.ReservationPendingPayment}, PaymentMethod: &cash}
//
// 3. Оплаченные бронирования клиента за день (штормовая страховка):
//    filter := domain.ReservationFilter{ClientID: &id, Statuses: paid, SlotFrom: &from, SlotTo: &to}
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationWithSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, reservationColumns...), "s.starts_at", "s.status")
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableReservations + " r").
		Join("slots s ON s.id = r.slot_id").
		OrderBy("s.starts_at ASC", "r.id ASC")

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.client_id": *filter.ClientID})
	}
	if filter.SlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.slot_id": *filter.SlotID})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": statusStrings(filter.Statuses)})
	}
	if filter.PaymentMethod != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.payment_method": *filter.PaymentMethod})
	}
	if filter.SlotFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.starts_at": *filter.SlotFrom})
	}
	if filter.SlotTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"s.starts_at": *filter.SlotTo})
	}

	// Внутри транзакции блокируем только строки бронирований
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ReservationWithSlot, 0)
	for rows.Next() {
		var item domain.ReservationWithSlot
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(
			&item.ID,
			&item.ClientID,
			&item.ProductID,
			&item.SlotID,
			&item.PartySize,
			&item.PaymentMethod,
			&item.Currency,
			&item.IncludesInsurance,
			&item.Status,
			&createdAt,
			&updatedAt,
			&item.SlotStartsAt,
			&item.SlotStatus,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountByClientAndStatus возвращает количество бронирований клиента в указанном статусе
func (r *Repository) CountByClientAndStatus(ctx context.Context, clientID int64, status domain.ReservationStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableReservations).
		Where(squirrel.Eq{"client_id": clientID}).
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByClientAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByClientAndStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// AttachDevices связывает бронирование с выданным снаряжением (по одной единице на устройство)
func (r *Repository) AttachDevices(ctx context.Context, reservationID int64, deviceIDs []int64) error {
	if len(deviceIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableReservationDevices).
		Columns("reservation_id", "device_id", "quantity")
	for _, deviceID := range deviceIDs {
		insertBuilder = insertBuilder.Values(reservationID, deviceID, 1)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AttachDevices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AttachDevices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetDevices получает снаряжение, выданное по бронированию
func (r *Repository) GetDevices(ctx context.Context, reservationID int64) ([]domain.SafetyDevice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("d.id", "d.kind", "d.code").
		From(tableReservationDevices + " rd").
		Join("safety_devices d ON d.id = rd.device_id").
		Where(squirrel.Eq{"rd.reservation_id": reservationID}).
		OrderBy("d.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDevices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDevices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	devices := make([]domain.SafetyDevice, 0)
	for rows.Next() {
		var d domain.SafetyDevice
		if err := rows.Scan(&d.ID, &d.Kind, &d.Code); err != nil {
			return nil, fmt.Errorf("%w: GetDevices - scan row: %v", ErrScanRow, err)
		}
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDevices - rows iteration: %v", ErrScanRow, err)
	}

	return devices, nil
}

// scanReservation сканирует одну строку бронирования
func scanReservation(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.ClientID,
		&res.ProductID,
		&res.SlotID,
		&res.PartySize,
		&res.PaymentMethod,
		&res.Currency,
		&res.IncludesInsurance,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
