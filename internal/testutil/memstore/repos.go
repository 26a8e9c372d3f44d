package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/client"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/slot"
)

// ClientRepo клиенты и балансы
type ClientRepo struct{ s *Store }

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("clients.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.st.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return &c, nil
}

func (r *ClientRepo) GetBalance(_ context.Context, clientID int64) (*domain.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("clients.GetBalance"); err != nil {
		return nil, err
	}
	b, ok := r.s.st.balances[clientID]
	if !ok {
		return nil, clientRepo.ErrBalanceNotFound
	}
	return &b, nil
}

func (r *ClientRepo) Credit(_ context.Context, clientID int64, currency domain.Currency, amount decimal.Decimal) (*domain.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("clients.Credit"); err != nil {
		return nil, err
	}
	b, ok := r.s.st.balances[clientID]
	if !ok {
		b = domain.Balance{ClientID: clientID, Local: decimal.Zero, Foreign: decimal.Zero}
	}
	b.Credit(currency, amount)
	b.UpdatedAt = time.Now()
	r.s.st.balances[clientID] = b
	return &b, nil
}

// ProductRepo товары и курсы валют
type ProductRepo struct{ s *Store }

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepo) List(_ context.Context, productType *domain.ProductType) ([]*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.List"); err != nil {
		return nil, err
	}
	result := make([]*domain.Product, 0, len(r.s.st.products))
	for _, p := range r.s.st.products {
		if productType != nil && p.Type != *productType {
			continue
		}
		p := p
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *ProductRepo) GetCurrencyConfig(_ context.Context, currency domain.Currency) (*domain.CurrencyConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.GetCurrencyConfig"); err != nil {
		return nil, err
	}
	c, ok := r.s.st.currencies[currency]
	if !ok {
		return nil, productRepo.ErrCurrencyNotFound
	}
	return &c, nil
}

// SlotRepo слоты
type SlotRepo struct{ s *Store }

func (r *SlotRepo) CreateIfAbsent(_ context.Context, startsAt time.Time) (*domain.Slot, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("slots.CreateIfAbsent"); err != nil {
		return nil, false, err
	}
	for _, slot := range r.s.st.slots {
		if slot.StartsAt.Equal(startsAt) {
			return nil, false, nil
		}
	}
	slot := domain.Slot{ID: r.s.id(), StartsAt: startsAt, Status: domain.SlotAvailable}
	r.s.st.slots[slot.ID] = slot
	return &slot, true, nil
}

func (r *SlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("slots.GetByID"); err != nil {
		return nil, err
	}
	slot, ok := r.s.st.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepo) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("slots.List"); err != nil {
		return nil, err
	}
	result := make([]*domain.Slot, 0)
	for _, slot := range r.s.st.slots {
		if filter.Status != nil && slot.Status != *filter.Status {
			continue
		}
		if filter.From != nil && slot.StartsAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !slot.StartsAt.Before(*filter.To) {
			continue
		}
		slot := slot
		result = append(result, &slot)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartsAt.Before(result[j].StartsAt) })
	return result, nil
}

func (r *SlotRepo) UpdateStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("slots.UpdateStatus"); err != nil {
		return err
	}
	slot, ok := r.s.st.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	slot.Status = status
	r.s.st.slots[id] = slot
	return nil
}

// ReservationRepo бронирования и выданное снаряжение
type ReservationRepo struct{ s *Store }

func (r *ReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.st.reservations {
		if existing.SlotID == res.SlotID && existing.IsActive() {
			return nil, reservationRepo.ErrSlotAlreadyTaken
		}
	}
	created := *res
	created.ID = r.s.id()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.st.reservations[created.ID] = created
	return &created, nil
}

func (r *ReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.GetByID"); err != nil {
		return nil, err
	}
	res, ok := r.s.st.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &res, nil
}

func (r *ReservationRepo) GetActiveBySlotID(_ context.Context, slotID int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.GetActiveBySlotID"); err != nil {
		return nil, err
	}
	var found *domain.Reservation
	for _, res := range r.s.st.reservations {
		if res.SlotID != slotID || !res.IsActive() {
			continue
		}
		if found == nil || res.ID > found.ID {
			res := res
			found = &res
		}
	}
	if found == nil {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return found, nil
}

func (r *ReservationRepo) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.ReservationWithSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.List"); err != nil {
		return nil, err
	}
	result := make([]*domain.ReservationWithSlot, 0)
	for _, res := range r.s.st.reservations {
		slot := r.s.st.slots[res.SlotID]
		if filter.ClientID != nil && res.ClientID != *filter.ClientID {
			continue
		}
		if filter.SlotID != nil && res.SlotID != *filter.SlotID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, res.Status) {
			continue
		}
		if filter.PaymentMethod != nil && res.PaymentMethod != *filter.PaymentMethod {
			continue
		}
		if filter.SlotFrom != nil && slot.StartsAt.Before(*filter.SlotFrom) {
			continue
		}
		if filter.SlotTo != nil && slot.StartsAt.After(*filter.SlotTo) {
			continue
		}
		result = append(result, &domain.ReservationWithSlot{
			Reservation:  res,
			SlotStartsAt: slot.StartsAt,
			SlotStatus:   slot.Status,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SlotStartsAt.Equal(result[j].SlotStartsAt) {
			return result[i].SlotStartsAt.Before(result[j].SlotStartsAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *ReservationRepo) CountByClientAndStatus(_ context.Context, clientID int64, status domain.ReservationStatus) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.CountByClientAndStatus"); err != nil {
		return 0, err
	}
	count := 0
	for _, res := range r.s.st.reservations {
		if res.ClientID == clientID && res.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *ReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.UpdateStatus"); err != nil {
		return err
	}
	res, ok := r.s.st.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = status
	res.UpdatedAt = time.Now()
	r.s.st.reservations[id] = res
	return nil
}

func (r *ReservationRepo) AttachDevices(_ context.Context, reservationID int64, deviceIDs []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.AttachDevices"); err != nil {
		return err
	}
	for _, id := range deviceIDs {
		r.s.st.links = append(r.s.st.links, domain.ReservationDevice{ReservationID: reservationID, DeviceID: id, Quantity: 1})
	}
	return nil
}

func (r *ReservationRepo) GetDevices(_ context.Context, reservationID int64) ([]domain.SafetyDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("reservations.GetDevices"); err != nil {
		return nil, err
	}
	devices := make([]domain.SafetyDevice, 0)
	for _, l := range r.s.st.links {
		if l.ReservationID == reservationID {
			devices = append(devices, r.s.st.devices[l.DeviceID])
		}
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices, nil
}

// PaymentRepo платежи
type PaymentRepo struct{ s *Store }

func (r *PaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("payments.Create"); err != nil {
		return nil, err
	}
	created := *p
	created.ID = r.s.id()
	created.CreatedAt = time.Now()
	r.s.st.payments[created.ID] = created
	return &created, nil
}

func (r *PaymentRepo) GetByReservationID(_ context.Context, reservationID int64) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("payments.GetByReservationID"); err != nil {
		return nil, err
	}
	var found *domain.Payment
	for _, p := range r.s.st.payments {
		if p.ReservationID != reservationID {
			continue
		}
		if found == nil || p.ID < found.ID {
			p := p
			found = &p
		}
	}
	if found == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return found, nil
}

// DeviceRepo защитное снаряжение
type DeviceRepo struct{ s *Store }

func (r *DeviceRepo) ListAvailable(_ context.Context, kind domain.DeviceKind, slotID int64, limit int) ([]domain.SafetyDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("devices.ListAvailable"); err != nil {
		return nil, err
	}
	taken := make(map[int64]bool)
	for _, l := range r.s.st.links {
		res := r.s.st.reservations[l.ReservationID]
		if res.SlotID == slotID && res.IsActive() {
			taken[l.DeviceID] = true
		}
	}
	devices := make([]domain.SafetyDevice, 0)
	for _, d := range r.s.st.devices {
		if d.Kind == kind && !taken[d.ID] {
			devices = append(devices, d)
		}
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	if len(devices) > limit {
		devices = devices[:limit]
	}
	return devices, nil
}

func containsStatus(statuses []domain.ReservationStatus, status domain.ReservationStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
