// Package memstore in-memory реализация репозиториев и менеджера транзакций для тестов usecase'ов.
// Транзакции сериализуются и откатываются восстановлением снимка состояния.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type state struct {
	clients      map[int64]domain.Client
	balances     map[int64]domain.Balance
	products     map[int64]domain.Product
	currencies   map[domain.Currency]domain.CurrencyConfig
	slots        map[int64]domain.Slot
	reservations map[int64]domain.Reservation
	payments     map[int64]domain.Payment
	devices      map[int64]domain.SafetyDevice
	links        []domain.ReservationDevice
	nextID       int64
}

func (s *state) clone() *state {
	c := &state{
		clients:      make(map[int64]domain.Client, len(s.clients)),
		balances:     make(map[int64]domain.Balance, len(s.balances)),
		products:     make(map[int64]domain.Product, len(s.products)),
		currencies:   make(map[domain.Currency]domain.CurrencyConfig, len(s.currencies)),
		slots:        make(map[int64]domain.Slot, len(s.slots)),
		reservations: make(map[int64]domain.Reservation, len(s.reservations)),
		payments:     make(map[int64]domain.Payment, len(s.payments)),
		devices:      make(map[int64]domain.SafetyDevice, len(s.devices)),
		links:        append([]domain.ReservationDevice(nil), s.links...),
		nextID:       s.nextID,
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.currencies {
		c.currencies[k] = v
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.devices {
		c.devices[k] = v
	}
	return c
}

// Store общее состояние и доступ к репозиториям
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	st    *state
	fails map[string]error

	Clients      *ClientRepo
	Products     *ProductRepo
	Slots        *SlotRepo
	Reservations *ReservationRepo
	Payments     *PaymentRepo
	Devices      *DeviceRepo
	Tx           *TxManager
}

// New создает пустое хранилище
func New() *Store {
	s := &Store{
		st: &state{
			clients:      map[int64]domain.Client{},
			balances:     map[int64]domain.Balance{},
			products:     map[int64]domain.Product{},
			currencies:   map[domain.Currency]domain.CurrencyConfig{},
			slots:        map[int64]domain.Slot{},
			reservations: map[int64]domain.Reservation{},
			payments:     map[int64]domain.Payment{},
			devices:      map[int64]domain.SafetyDevice{},
		},
		fails: map[string]error{},
	}
	s.Clients = &ClientRepo{s: s}
	s.Products = &ProductRepo{s: s}
	s.Slots = &SlotRepo{s: s}
	s.Reservations = &ReservationRepo{s: s}
	s.Payments = &PaymentRepo{s: s}
	s.Devices = &DeviceRepo{s: s}
	s.Tx = &TxManager{s: s}
	return s
}

// FailOn заставляет операцию (например, "payments.Create") вернуть err при следующем вызове
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[op] = err
}

// failure вызывается под mu
func (s *Store) failure(op string) error {
	if err, ok := s.fails[op]; ok {
		delete(s.fails, op)
		return err
	}
	return nil
}

func (s *Store) id() int64 {
	s.st.nextID++
	return s.st.nextID
}

// Наполнение данными

func (s *Store) AddClient(name string) domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Client{ID: s.id(), Name: name, DocumentNumber: name}
	s.st.clients[c.ID] = c
	return c
}

func (s *Store) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	s.st.products[p.ID] = p
	return p
}

func (s *Store) SetRate(currency domain.Currency, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.currencies[currency] = domain.CurrencyConfig{ID: s.id(), Currency: currency, Name: string(currency), Rate: rate}
}

func (s *Store) AddSlot(startsAt time.Time) domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := domain.Slot{ID: s.id(), StartsAt: startsAt, Status: domain.SlotAvailable}
	s.st.slots[slot.ID] = slot
	return slot
}

func (s *Store) AddDevices(kind domain.DeviceKind, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		d := domain.SafetyDevice{ID: s.id(), Kind: kind}
		d.Code = string(kind)
		s.st.devices[d.ID] = d
	}
}

// AddReservation добавляет бронирование напрямую (слот переводится в RESERVED для активных)
func (s *Store) AddReservation(r domain.Reservation) domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	s.st.reservations[r.ID] = r
	if r.IsActive() {
		slot := s.st.slots[r.SlotID]
		slot.Status = domain.SlotReserved
		s.st.slots[r.SlotID] = slot
	}
	return r
}

func (s *Store) AddPayment(p domain.Payment) domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	s.st.payments[p.ID] = p
	return p
}

// Чтение состояния в проверках

func (s *Store) Slot(id int64) domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.slots[id]
}

func (s *Store) Reservation(id int64) domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.reservations[id]
}

func (s *Store) Balance(clientID int64) domain.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.balances[clientID]
	if !ok {
		return domain.Balance{ClientID: clientID, Local: decimal.Zero, Foreign: decimal.Zero}
	}
	return b
}

func (s *Store) AllReservations() []domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.Reservation, 0, len(s.st.reservations))
	for _, r := range s.st.reservations {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) PaymentsOf(reservationID int64) []domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.Payment, 0)
	for _, p := range s.st.payments {
		if p.ReservationID == reservationID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) DeviceLinks(reservationID int64) []domain.ReservationDevice {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.ReservationDevice, 0)
	for _, l := range s.st.links {
		if l.ReservationID == reservationID {
			result = append(result, l)
		}
	}
	return result
}

type txKey struct{}

// TxManager сериализует транзакции и откатывает состояние при ошибке
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snapshot := m.s.st.clone()
	m.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.mu.Lock()
		m.s.st = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}
