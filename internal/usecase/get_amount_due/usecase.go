package get_amount_due

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	clientRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/client"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
)

// UseCase use case расчета суммы к оплате
type UseCase struct {
	clientRepo      ClientRepository
	reservationRepo ReservationRepository
	productRepo     ProductRepository
	rates           RateLoader
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clientRepo ClientRepository,
	reservationRepo ReservationRepository,
	productRepo ProductRepository,
	rates RateLoader,
	logger Logger,
) *UseCase {
	return &UseCase{
		clientRepo:      clientRepo,
		reservationRepo: reservationRepo,
		productRepo:     productRepo,
		rates:           rates,
		logger:          logger,
	}
}

// Execute считает, сколько клиент заплатит, если оплатит все бронирования в ожидании оплаты
// одним пакетом. Скидка определяется тем же правилом, что и при оплате
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ClientID <= 0 {
		uc.logger.Warn("GetAmountDue: invalid client id=%d", req.ClientID)
		return nil, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	// 2. Клиент
	if _, err := uc.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("GetAmountDue: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("GetAmountDue: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 3. Бронирования в ожидании оплаты
	pending, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		ClientID: &req.ClientID,
		Statuses: []domain.ReservationStatus{domain.ReservationPendingPayment},
	})
	if err != nil {
		uc.logger.Error("GetAmountDue: failed to list reservations of client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	result := &Response{
		ClientID:            req.ClientID,
		Count:               len(pending),
		Items:               make([]Item, 0, len(pending)),
		Groups:              make([]Group, 0),
		LocalTotal:          decimal.Zero,
		ForeignTotal:        decimal.Zero,
		ForeignTotalInLocal: decimal.Zero,
		GrandTotalLocal:     decimal.Zero,
		TotalBeforeDiscount: decimal.Zero,
	}
	if len(pending) == 0 {
		return result, nil
	}

	// 4. Позиции расчета
	products := make(map[int64]*domain.Product)
	items := make([]pricing.Item, 0, len(pending))
	needForeign := false
	for _, res := range pending {
		product, ok := products[res.ProductID]
		if !ok {
			product, err = uc.productRepo.GetByID(ctx, res.ProductID)
			if err != nil {
				uc.logger.Error("GetAmountDue: failed to get product id=%d: %v", res.ProductID, err)
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

	// 5. Курс и распределение
	rates, err := uc.rates.Load(ctx, needForeign)
	if err != nil {
		return nil, uc.rateError(err)
	}

	allocation, err := pricing.PriceBatch(items, pricing.DiscountEligible(len(pending)), rates)
	if err != nil {
		return nil, uc.rateError(err)
	}

	// 6. Ответ
	for i, res := range pending {
		item := allocation.Items[i]
		result.Items = append(result.Items, Item{
			ReservationID:     res.ID,
			ProductID:         res.ProductID,
			SlotStartsAt:      res.SlotStartsAt,
			Currency:          string(res.Currency),
			PaymentMethod:     string(res.PaymentMethod),
			IncludesInsurance: res.IncludesInsurance,
			OriginalAmount:    pricing.RoundMoney(item.Original),
			WithInsurance:     pricing.RoundMoney(item.WithInsurance),
			FinalAmount:       pricing.RoundMoney(item.Final),
		})
	}

	for _, pair := range allocation.Pairs {
		result.Groups = append(result.Groups, Group{
			Currency:       string(pair.Pair.Currency),
			PaymentMethod:  string(pair.Pair.PaymentMethod),
			Subtotal:       pricing.RoundMoney(pair.Subtotal),
			Total:          pricing.RoundMoney(pair.Share),
			TotalLocal:     pricing.RoundMoney(pair.ShareLocal),
			ReservationIDs: pair.ReservationIDs,
		})
		if pair.Pair.Currency == domain.CurrencyForeign {
			result.ForeignTotal = result.ForeignTotal.Add(pair.Share)
			result.ForeignTotalInLocal = result.ForeignTotalInLocal.Add(pair.ShareLocal)
		} else {
			result.LocalTotal = result.LocalTotal.Add(pair.Share)
		}
	}

	result.LocalTotal = pricing.RoundMoney(result.LocalTotal)
	result.ForeignTotal = pricing.RoundMoney(result.ForeignTotal)
	result.ForeignTotalInLocal = pricing.RoundMoney(result.ForeignTotalInLocal)
	result.GrandTotalLocal = pricing.RoundMoney(allocation.DiscountedTotalLocal)
	result.TotalBeforeDiscount = pricing.RoundMoney(allocation.TotalLocal)
	result.DiscountApplied = allocation.DiscountApplied
	result.DiscountPercent = allocation.DiscountPercent
	if needForeign {
		rate := rates.Foreign
		result.ExchangeRate = &rate
	}

	uc.logger.Info("GetAmountDue: client id=%d, count=%d, total=%s",
		req.ClientID, result.Count, result.GrandTotalLocal.String())

	return result, nil
}

func (uc *UseCase) rateError(err error) error {
	if errors.Is(err, pricing.ErrExchangeRateNotConfigured) {
		uc.logger.Error("GetAmountDue: exchange rate is not configured: %v", err)
		return fmt.Errorf("%w: %v", ErrRateNotConfigured, err)
	}
	uc.logger.Error("GetAmountDue: failed to price reservations: %v", err)
	return fmt.Errorf("%w: failed to price reservations: %v", ErrInternal, err)
}
