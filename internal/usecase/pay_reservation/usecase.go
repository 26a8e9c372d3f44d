package pay_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// UseCase use case для оплаты бронирований
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	productRepo     ProductRepository
	paymentRepo     PaymentRepository
	rates           RateLoader
	holds           HoldReleaser
	txManager       TransactionManager
	timeProvider    TimeProvider
	publisher       EventPublisher
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	productRepo ProductRepository,
	paymentRepo PaymentRepository,
	rates RateLoader,
	holds HoldReleaser,
	txManager TransactionManager,
	timeProvider TimeProvider,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		productRepo:     productRepo,
		paymentRepo:     paymentRepo,
		rates:           rates,
		holds:           holds,
		txManager:       txManager,
		timeProvider:    timeProvider,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute оплачивает одно бронирование.
// Скидка определяется единым правилом pricing.DiscountEligible по числу бронирований клиента
// в ожидании оплаты (включая оплачиваемое)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PayReservation: reservation=%d", req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PayReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		result        *Response
		paidClientID  int64
		paidSlotID    int64
		releaseNeeded bool
	)

	// 2. Проверки, расчет и запись платежа в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		releaseNeeded = false

		// 2.1. Бронирование (блокируется до конца транзакции)
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("PayReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("PayReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Статус
		if !res.CanBePaid() {
			uc.logger.Warn("PayReservation: reservation id=%d has status %s", res.ID, res.Status)
			return fmt.Errorf("%w: current status %s", ErrWrongState, res.Status)
		}

		slot, err := uc.slotRepo.GetByID(txCtx, res.SlotID)
		if err != nil {
			uc.logger.Error("PayReservation: failed to get slot id=%d: %v", res.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.3. Время слота и срок оплаты наличными
		_, release, err := checkPayable(res, slot, uc.timeProvider.Now())
		if err != nil {
			uc.logger.Warn("PayReservation: reservation id=%d rejected: %v", res.ID, err)
			releaseNeeded = release
			return err
		}

		// 2.4. Совпадение указанных способа оплаты и валюты
		if err := validateMatches(req, res); err != nil {
			uc.logger.Warn("PayReservation: reservation id=%d: %v", res.ID, err)
			return err
		}

		// 2.5. Расчет суммы
		pending, err := uc.reservationRepo.CountByClientAndStatus(txCtx, res.ClientID, domain.ReservationPendingPayment)
		if err != nil {
			uc.logger.Error("PayReservation: failed to count pending reservations of client id=%d: %v", res.ClientID, err)
			return fmt.Errorf("%w: failed to count pending reservations: %v", ErrInternal, err)
		}

		allocation, err := uc.price(txCtx, []*domain.Reservation{res}, pricing.DiscountEligible(pending))
		if err != nil {
			return err
		}
		item := allocation.Items[0]
		amount := pricing.RoundMoney(item.Final)

		// 2.6. Платеж и перевод в PAID
		payment, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			ReservationID:   res.ID,
			Amount:          amount,
			Currency:        res.Currency,
			PaymentMethod:   res.PaymentMethod,
			DiscountApplied: allocation.DiscountApplied,
			DiscountPercent: allocation.DiscountPercent,
		})
		if err != nil {
			uc.logger.Error("PayReservation: failed to create payment for reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, domain.ReservationPaid); err != nil {
			uc.logger.Error("PayReservation: failed to mark reservation id=%d paid: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		paidClientID = res.ClientID
		paidSlotID = res.SlotID
		result = &Response{
			Reservation: Reservation{
				ID:                res.ID,
				ClientID:          res.ClientID,
				ProductID:         res.ProductID,
				SlotID:            res.SlotID,
				SlotStartsAt:      slot.StartsAt,
				Status:            string(domain.ReservationPaid),
				PaymentMethod:     string(res.PaymentMethod),
				Currency:          string(res.Currency),
				IncludesInsurance: res.IncludesInsurance,
			},
			Payment: Payment{
				ID:              payment.ID,
				ReservationID:   res.ID,
				Amount:          payment.Amount,
				Currency:        string(payment.Currency),
				PaymentMethod:   string(payment.PaymentMethod),
				DiscountApplied: payment.DiscountApplied,
				DiscountPercent: payment.DiscountPercent,
				CreatedAt:       payment.CreatedAt,
			},
			OriginalAmount:      pricing.RoundMoney(item.Original),
			AmountWithInsurance: pricing.RoundMoney(item.WithInsurance),
			FinalAmount:         amount,
			InsurancePercent:    insurancePercent(res.IncludesInsurance),
			DiscountApplied:     allocation.DiscountApplied,
			DiscountPercent:     allocation.DiscountPercent,
			Currency:            string(res.Currency),
		}
		return nil
	})

	if err != nil {
		// 3. Просроченное удержание освобождается отдельной транзакцией
		if releaseNeeded {
			if _, relErr := uc.holds.Release(ctx, req.ReservationID); relErr != nil {
				uc.logger.Error("PayReservation: failed to release reservation id=%d: %v", req.ReservationID, relErr)
			}
		}
		return nil, err
	}

	amount := result.FinalAmount.StringFixed(domain.MoneyScale)
	uc.metrics.IncEvent(metrics.EventReservationPaid, 1)
	uc.publisher.PublishWithGracefulDegradation(ctx, events.Event{
		Type:          events.ReservationPaid,
		ReservationID: result.Reservation.ID,
		ClientID:      paidClientID,
		SlotID:        paidSlotID,
		Amount:        &amount,
		Currency:      &result.Currency,
	})

	uc.logger.Info("PayReservation: reservation id=%d paid, amount=%s %s, discount=%t",
		result.Reservation.ID, amount, result.Currency, result.DiscountApplied)

	return result, nil
}

// price рассчитывает суммы для бронирований, оплачиваемых вместе
func (uc *UseCase) price(ctx context.Context, reservations []*domain.Reservation, discountEligible bool) (*pricing.Allocation, error) {
	items := make([]pricing.Item, 0, len(reservations))
	products := make(map[int64]*domain.Product)
	needForeign := false

	for _, res := range reservations {
		product, ok := products[res.ProductID]
		if !ok {
			var err error
			product, err = uc.productRepo.GetByID(ctx, res.ProductID)
			if err != nil {
				uc.logger.Error("PayReservation: failed to get product id=%d: %v", res.ProductID, err)
				return nil, fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
			}
			products[res.ProductID] = product
		}

		if res.Currency == domain.CurrencyForeign {
			needForeign = true
		}

		items = append(items, pricing.Item{
			ReservationID:     res.ID,
			BasePrice:         product.BasePrice,
			Currency:          res.Currency,
			PaymentMethod:     res.PaymentMethod,
			IncludesInsurance: res.IncludesInsurance,
		})
	}

	rates, err := uc.rates.Load(ctx, needForeign)
	if err != nil {
		return nil, uc.rateError(err)
	}

	allocation, err := pricing.PriceBatch(items, discountEligible, rates)
	if err != nil {
		return nil, uc.rateError(err)
	}

	return allocation, nil
}

func (uc *UseCase) rateError(err error) error {
	if errors.Is(err, pricing.ErrExchangeRateNotConfigured) {
		uc.logger.Error("PayReservation: exchange rate is not configured: %v", err)
		return fmt.Errorf("%w: %v", ErrRateNotConfigured, err)
	}
	uc.logger.Error("PayReservation: failed to price reservations: %v", err)
	return fmt.Errorf("%w: failed to price reservations: %v", ErrInternal, err)
}

func insurancePercent(included bool) int {
	if included {
		return domain.InsuranceSurchargePercent
	}
	return 0
}
