package equipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInsufficientEquipment возвращается, когда свободного снаряжения меньше, чем людей
	ErrInsufficientEquipment = errors.New("equipment: insufficient safety equipment")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("equipment: internal error")
)

// DeviceRepository источник свободного снаряжения
type DeviceRepository interface {
	ListAvailable(ctx context.Context, kind domain.DeviceKind, slotID int64, limit int) ([]domain.SafetyDevice, error)
}

// Allocator выдаёт защитное снаряжение: одна единица на человека для товаров,
// которым оно требуется. Должен вызываться внутри транзакции создания бронирования
type Allocator struct {
	devices DeviceRepository
}

func NewAllocator(devices DeviceRepository) *Allocator {
	return &Allocator{devices: devices}
}

// Allocate возвращает снаряжение для partySize человек на слот slotID.
// Для товаров без требований возвращает пустой список. Частичная выдача невозможна
func (a *Allocator) Allocate(ctx context.Context, product *domain.Product, slotID int64, partySize int) ([]domain.SafetyDevice, error) {
	kind, required := product.RequiredDevice()
	if !required || partySize <= 0 {
		return []domain.SafetyDevice{}, nil
	}

	devices, err := a.devices.ListAvailable(ctx, kind, slotID, partySize)
	if err != nil {
		return nil, fmt.Errorf("%w: list available %s: %v", ErrInternal, kind, err)
	}

	if len(devices) < partySize {
		return nil, &ShortageError{Kind: kind, Requested: partySize, Available: len(devices)}
	}

	return devices, nil
}

// ShortageError нехватка снаряжения с указанием вида и недостающего количества
type ShortageError struct {
	Kind      domain.DeviceKind
	Requested int
	Available int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("%s: need %d %s, available %d (short by %d)",
		ErrInsufficientEquipment, e.Requested, e.Kind, e.Available, e.Shortfall())
}

// Shortfall количество недостающих единиц
func (e *ShortageError) Shortfall() int {
	return e.Requested - e.Available
}

func (e *ShortageError) Unwrap() error {
	return ErrInsufficientEquipment
}
