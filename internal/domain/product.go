package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductType тип арендуемого оборудования
type ProductType string

const (
	ProductJetsky    ProductType = "JETSKY"
	ProductATV       ProductType = "ATV"
	ProductDiveGear  ProductType = "DIVE_GEAR"
	ProductSurfboard ProductType = "SURFBOARD"
)

// BoardSize размер доски для серфинга
type BoardSize string

const (
	BoardAdult BoardSize = "ADULT"
	BoardChild BoardSize = "CHILD"
)

// ErrInvalidProduct возвращается, когда поля товара противоречат его типу
var ErrInvalidProduct = errors.New("domain: product fields do not match its type")

// ProductRule правила, которые определяются типом товара
type ProductRule struct {
	HasCapacity    bool       // Товар рассчитан на несколько человек (capacity обязательна)
	HasBoardSize   bool       // Товар имеет размер доски
	RequiredDevice DeviceKind // Защитное снаряжение на каждого человека ("" если не нужно)
}

var productRules = map[ProductType]ProductRule{
	ProductJetsky:    {HasCapacity: true, RequiredDevice: DeviceLifeVest},
	ProductATV:       {HasCapacity: true, RequiredDevice: DeviceHelmet},
	ProductDiveGear:  {},
	ProductSurfboard: {HasBoardSize: true},
}

// Rule возвращает правила типа товара
func (t ProductType) Rule() (ProductRule, bool) {
	rule, ok := productRules[t]
	return rule, ok
}

func (t ProductType) IsValid() bool {
	_, ok := productRules[t]
	return ok
}

func (s BoardSize) IsValid() bool {
	return s == BoardAdult || s == BoardChild
}

// Product товар каталога
type Product struct {
	ID          int64
	Type        ProductType
	Name        string
	BasePrice   decimal.Decimal // Цена в локальной валюте
	MaxCapacity *int            // Только для JETSKY и ATV
	BoardSize   *BoardSize      // Только для SURFBOARD
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate проверяет, что capacity и размер доски соответствуют типу товара
func (p *Product) Validate() error {
	rule, ok := p.Type.Rule()
	if !ok {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidProduct, p.Type)
	}
	if p.BasePrice.IsNegative() {
		return fmt.Errorf("%w: negative base price", ErrInvalidProduct)
	}
	if rule.HasCapacity {
		if p.MaxCapacity == nil || *p.MaxCapacity < 1 {
			return fmt.Errorf("%w: %s requires a positive max capacity", ErrInvalidProduct, p.Type)
		}
	} else if p.MaxCapacity != nil {
		return fmt.Errorf("%w: %s must not have a max capacity", ErrInvalidProduct, p.Type)
	}
	if rule.HasBoardSize {
		if p.BoardSize == nil || !p.BoardSize.IsValid() {
			return fmt.Errorf("%w: %s requires a board size", ErrInvalidProduct, p.Type)
		}
	} else if p.BoardSize != nil {
		return fmt.Errorf("%w: %s must not have a board size", ErrInvalidProduct, p.Type)
	}
	return nil
}

// EffectivePartySize возвращает итоговое количество человек.
// Для товаров без вместимости всегда 1, иначе ok=false при превышении вместимости
func (p *Product) EffectivePartySize(requested int) (size int, ok bool) {
	if p.MaxCapacity == nil {
		return 1, true
	}
	if requested > *p.MaxCapacity {
		return requested, false
	}
	return requested, true
}

// RequiredDevice возвращает вид защитного снаряжения для товара
func (p *Product) RequiredDevice() (DeviceKind, bool) {
	rule, ok := p.Type.Rule()
	if !ok || rule.RequiredDevice == "" {
		return "", false
	}
	return rule.RequiredDevice, true
}
