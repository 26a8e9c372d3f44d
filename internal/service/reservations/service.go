package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/client"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

// Service сервис чтения бронирований и балансов
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	productRepo     ProductRepository
	paymentRepo     PaymentRepository
	clientRepo      ClientRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	productRepo ProductRepository,
	paymentRepo PaymentRepository,
	clientRepo ClientRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		productRepo:     productRepo,
		paymentRepo:     paymentRepo,
		clientRepo:      clientRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID вместе со слотом, товаром, платежом и снаряжением
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	slot, err := s.slotRepo.GetByID(ctx, res.SlotID)
	if err != nil {
		s.logger.Error("GetByID: failed to get slot id=%d: %v", res.SlotID, err)
		return nil, fmt.Errorf("%w: GetByID - slot: %v", ErrInternal, err)
	}

	product, err := s.productRepo.GetByID(ctx, res.ProductID)
	if err != nil {
		s.logger.Error("GetByID: failed to get product id=%d: %v", res.ProductID, err)
		return nil, fmt.Errorf("%w: GetByID - product: %v", ErrInternal, err)
	}

	resp := models.FromDomainReservation(res, slot.StartsAt)
	productType := string(product.Type)
	slotStatus := string(slot.Status)
	resp.ProductName = &product.Name
	resp.ProductType = &productType
	resp.SlotStatus = &slotStatus

	// Платеж есть только у оплаченных (и отмененных после оплаты) бронирований
	payment, err := s.paymentRepo.GetByReservationID(ctx, res.ID)
	switch {
	case err == nil:
		resp.Payment = models.FromDomainPayment(payment)
	case !errors.Is(err, paymentRepo.ErrPaymentNotFound):
		s.logger.Error("GetByID: failed to get payment of reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - payment: %v", ErrInternal, err)
	}

	devices, err := s.reservationRepo.GetDevices(ctx, res.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to get devices of reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - devices: %v", ErrInternal, err)
	}
	resp.Devices = models.FromDomainDevices(devices)

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return resp, nil
}

// GetClientReservations получает бронирования клиента, отсортированные по времени слота.
// Опционально фильтрует по статусу
func (s *Service) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d, status=%v", req.ClientID, req.Status)

	filter := domain.ReservationFilter{ClientID: &req.ClientID}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientReservations: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	if err := s.ensureClient(ctx, req.ClientID, "GetClientReservations"); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: successfully fetched %d reservations for client=%d", len(list), req.ClientID)
	return models.FromDomainReservationList(list), nil
}

// GetBalance получает баланс клиента. Клиент без возвратов имеет нулевой баланс
func (s *Service) GetBalance(ctx context.Context, clientID int64) (*models.BalanceResponse, error) {
	s.logger.Info("GetBalance: fetching balance for client=%d", clientID)

	if err := s.ensureClient(ctx, clientID, "GetBalance"); err != nil {
		return nil, err
	}

	balance, err := s.clientRepo.GetBalance(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrBalanceNotFound) {
			return models.FromDomainBalance(clientID, nil), nil
		}
		s.logger.Error("GetBalance: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetBalance - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBalance(clientID, balance), nil
}

func (s *Service) ensureClient(ctx context.Context, clientID int64, op string) error {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("%s: client id=%d not found", op, clientID)
			return ErrClientNotFound
		}
		s.logger.Error("%s: failed to get client id=%d: %v", op, clientID, err)
		return fmt.Errorf("%w: %s - client: %v", ErrInternal, op, err)
	}
	return nil
}
