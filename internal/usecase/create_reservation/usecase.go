package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/client"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/internal/service/equipment"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	clientRepo      ClientRepository
	productRepo     ProductRepository
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	allocator       EquipmentAllocator
	txManager       TransactionManager
	timeProvider    TimeProvider
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clientRepo ClientRepository,
	productRepo ProductRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	allocator EquipmentAllocator,
	txManager TransactionManager,
	timeProvider TimeProvider,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		clientRepo:      clientRepo,
		productRepo:     productRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		allocator:       allocator,
		txManager:       txManager,
		timeProvider:    timeProvider,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Все проверки и запись выполняются в одной сериализуемой транзакции:
// перевод слотов в RESERVED, создание бронирований и выдача снаряжения либо фиксируются вместе, либо откатываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, product=%d, slots=%v, party=%d, method=%s, currency=%s, insurance=%t",
		req.ClientID, req.ProductID, req.SlotIDs, req.PartySize, req.PaymentMethod, req.Currency, req.IncludesInsurance)

	// 1. Валидация входных данных
	method, currency, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	var created []Reservation

	// 2. Выполняем проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]
		now := uc.timeProvider.Now()

		// 2.1. Клиент и товар
		if _, err := uc.clientRepo.GetByID(txCtx, req.ClientID); err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("CreateReservation: client id=%d not found", req.ClientID)
				return ErrClientNotFound
			}
			uc.logger.Error("CreateReservation: failed to get client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}

		product, err := uc.productRepo.GetByID(txCtx, req.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				uc.logger.Warn("CreateReservation: product id=%d not found", req.ProductID)
				return ErrProductNotFound
			}
			uc.logger.Error("CreateReservation: failed to get product id=%d: %v", req.ProductID, err)
			return fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
		}

		// 2.2. Слоты существуют и свободны (строки блокируются до конца транзакции)
		slots := make([]*domain.Slot, 0, len(req.SlotIDs))
		for _, slotID := range req.SlotIDs {
			slot, err := uc.slotRepo.GetByID(txCtx, slotID)
			if err != nil {
				if errors.Is(err, slotRepo.ErrSlotNotFound) {
					uc.logger.Warn("CreateReservation: slot id=%d not found", slotID)
					return fmt.Errorf("%w: id=%d", ErrSlotNotFound, slotID)
				}
				uc.logger.Error("CreateReservation: failed to get slot id=%d: %v", slotID, err)
				return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
			}
			if !slot.IsAvailable() {
				uc.logger.Warn("CreateReservation: slot id=%d has status %s", slotID, slot.Status)
				return fmt.Errorf("%w: id=%d", ErrSlotNotAvailable, slotID)
			}
			slots = append(slots, slot)
		}

		// 2.3. Вместимость товара
		partySize, ok := product.EffectivePartySize(req.PartySize)
		if !ok {
			uc.logger.Warn("CreateReservation: party size %d exceeds capacity of product id=%d", req.PartySize, product.ID)
			return fmt.Errorf("%w: max %d", ErrCapacityExceeded, *product.MaxCapacity)
		}

		// 2.4. Активные слоты клиента для проверки дублей и серий
		held, err := uc.reservationRepo.List(txCtx, domain.ReservationFilter{
			ClientID: &req.ClientID,
			Statuses: domain.ActiveReservationStatuses,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations of client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		heldTimes := make([]time.Time, 0, len(held)+len(slots))
		heldSlots := make(map[int64]bool, len(held))
		for _, r := range held {
			heldTimes = append(heldTimes, r.SlotStartsAt)
			heldSlots[r.SlotID] = true
		}

		// 2.5. Проверки по каждому слоту и создание бронирования
		for _, slot := range slots {
			if err := validateSlotTiming(slot.StartsAt, now, method); err != nil {
				uc.logger.Warn("CreateReservation: slot id=%d at %s rejected: %v",
					slot.ID, slot.StartsAt.Format(domain.DateTimeFormat), err)
				return fmt.Errorf("%w: slot id=%d", err, slot.ID)
			}

			if heldSlots[slot.ID] {
				uc.logger.Warn("CreateReservation: client id=%d already holds slot id=%d", req.ClientID, slot.ID)
				return fmt.Errorf("%w: slot id=%d", ErrDuplicateBooking, slot.ID)
			}

			if exceedsConsecutiveLimit(heldTimes, slot.StartsAt) {
				uc.logger.Warn("CreateReservation: slot id=%d would exceed %d consecutive slots for client id=%d",
					slot.ID, domain.MaxConsecutiveSlots, req.ClientID)
				return fmt.Errorf("%w: slot id=%d", ErrConsecutiveLimit, slot.ID)
			}

			res, err := uc.reserve(txCtx, req, product, slot, partySize, method, currency)
			if err != nil {
				return err
			}

			created = append(created, *res)
			heldTimes = append(heldTimes, slot.StartsAt)
			heldSlots[slot.ID] = true
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncEvent(metrics.EventReservationCreated, len(created))
	for _, res := range created {
		uc.publisher.PublishWithGracefulDegradation(ctx, events.Event{
			Type:          events.ReservationCreated,
			ReservationID: res.ID,
			ClientID:      res.ClientID,
			SlotID:        res.SlotID,
			Currency:      &res.Currency,
		})
	}

	uc.logger.Info("CreateReservation: created %d reservation(s) for client id=%d", len(created), req.ClientID)

	return &Response{Reservations: created}, nil
}

// reserve выдает снаряжение, создает бронирование и занимает слот
func (uc *UseCase) reserve(
	ctx context.Context,
	req *Request,
	product *domain.Product,
	slot *domain.Slot,
	partySize int,
	method domain.PaymentMethod,
	currency domain.Currency,
) (*Reservation, error) {
	// Снаряжение на каждого человека
	devices, err := uc.allocator.Allocate(ctx, product, slot.ID, partySize)
	if err != nil {
		var shortage *equipment.ShortageError
		if errors.As(err, &shortage) {
			uc.logger.Warn("CreateReservation: %v", shortage)
			return nil, fmt.Errorf("%w: %w", ErrInsufficientEquipment, shortage)
		}
		uc.logger.Error("CreateReservation: failed to allocate equipment for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to allocate equipment: %v", ErrInternal, err)
	}

	reservation, err := uc.reservationRepo.Create(ctx, &domain.Reservation{
		ClientID:          req.ClientID,
		ProductID:         product.ID,
		SlotID:            slot.ID,
		PartySize:         partySize,
		PaymentMethod:     method,
		Currency:          currency,
		IncludesInsurance: req.IncludesInsurance,
		Status:            domain.ReservationPendingPayment,
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSlotAlreadyTaken) {
			uc.logger.Warn("CreateReservation: slot id=%d taken concurrently", slot.ID)
			return nil, fmt.Errorf("%w: id=%d", ErrSlotNotAvailable, slot.ID)
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	if err := uc.slotRepo.UpdateStatus(ctx, slot.ID, domain.SlotReserved); err != nil {
		uc.logger.Error("CreateReservation: failed to reserve slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
	}

	deviceIDs := make([]int64, 0, len(devices))
	for _, d := range devices {
		deviceIDs = append(deviceIDs, d.ID)
	}
	if err := uc.reservationRepo.AttachDevices(ctx, reservation.ID, deviceIDs); err != nil {
		uc.logger.Error("CreateReservation: failed to attach devices to reservation id=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: failed to attach devices: %v", ErrInternal, err)
	}

	return &Reservation{
		ID:                reservation.ID,
		ClientID:          reservation.ClientID,
		ProductID:         reservation.ProductID,
		SlotID:            reservation.SlotID,
		SlotStartsAt:      slot.StartsAt,
		PartySize:         reservation.PartySize,
		PaymentMethod:     string(reservation.PaymentMethod),
		Currency:          string(reservation.Currency),
		IncludesInsurance: reservation.IncludesInsurance,
		Status:            string(reservation.Status),
		Devices:           devices,
		CreatedAt:         reservation.CreatedAt,
	}, nil
}
