package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/catalog/models"
)

// Service сервис каталога товаров и свободных слотов
type Service struct {
	productRepo  ProductRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	productRepo ProductRepository,
	slotRepo SlotRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		productRepo:  productRepo,
		slotRepo:     slotRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListProducts возвращает товары каталога, опционально только указанного типа
func (s *Service) ListProducts(ctx context.Context, req *models.ListProductsRequest) (*models.ProductListResponse, error) {
	var productType *domain.ProductType
	if req.Type != nil {
		t := domain.ProductType(*req.Type)
		if !t.IsValid() {
			s.logger.Warn("ListProducts: invalid type=%s", *req.Type)
			return nil, fmt.Errorf("%w: unknown product type %q", ErrInvalidInput, *req.Type)
		}
		productType = &t
	}

	products, err := s.productRepo.List(ctx, productType)
	if err != nil {
		s.logger.Error("ListProducts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - repository error: %v", ErrInternal, err)
	}

	resp := &models.ProductListResponse{Products: make([]models.ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, models.FromDomainProduct(p))
	}
	return resp, nil
}

// ListAvailableSlots возвращает слоты в статусе AVAILABLE по времени начала.
// С датой: слоты этих суток, без даты: все слоты, которые еще не начались
func (s *Service) ListAvailableSlots(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	status := domain.SlotAvailable
	filter := domain.SlotFilter{Status: &status}

	if req.Date != nil {
		day, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			s.logger.Warn("ListAvailableSlots: invalid date=%s", *req.Date)
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		to := day.Add(24 * time.Hour)
		filter.From = &day
		filter.To = &to
	} else {
		now := s.timeProvider.Now()
		filter.From = &now
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAvailableSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailableSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailableSlots: date=%v, found=%d", req.Date, len(slots))
	return models.FromDomainSlots(slots, req.Date), nil
}
