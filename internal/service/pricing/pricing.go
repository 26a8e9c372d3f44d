package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	one              = decimal.NewFromInt(1)
	insuranceFactor  = one.Add(domain.InsuranceSurchargeRate)
	discountedFactor = one.Sub(domain.MultiItemDiscountRate)
)

// Quote цена одной позиции в валюте оплаты
type Quote struct {
	Original      decimal.Decimal // Без страховки
	WithInsurance decimal.Decimal // Со страховкой (если включена), до скидки
}

// PriceOne считает цену позиции: базовая цена, пересчёт в иностранную валюту
// (деление на курс) и надбавка 15% за страховку
func PriceOne(basePrice decimal.Decimal, currency domain.Currency, includesInsurance bool, rates Rates) (Quote, error) {
	original, err := rates.ToCharge(basePrice, currency)
	if err != nil {
		return Quote{}, err
	}

	withInsurance := original
	if includesInsurance {
		withInsurance = original.Mul(insuranceFactor)
	}

	return Quote{Original: original, WithInsurance: withInsurance}, nil
}

// DiscountEligible единое правило скидки: у клиента в момент расчёта не меньше двух
// бронирований в ожидании оплаты (считая рассчитываемые)
func DiscountEligible(pendingCount int) bool {
	return pendingCount >= domain.MinItemsForDiscount
}

// DiscountFactor множитель суммы (0.9 со скидкой, 1 без)
func DiscountFactor(eligible bool) decimal.Decimal {
	if eligible {
		return discountedFactor
	}
	return one
}

// DiscountPercent процент скидки для записи платежа
func DiscountPercent(eligible bool) int {
	if eligible {
		return domain.MultiItemDiscountPercent
	}
	return 0
}

// RoundMoney округляет сумму до копеек. Применяется только при сохранении платежа
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(domain.MoneyScale)
}

// Item позиция пакетного расчёта
type Item struct {
	ReservationID     int64
	BasePrice         decimal.Decimal
	Currency          domain.Currency
	PaymentMethod     domain.PaymentMethod
	IncludesInsurance bool
}

// ItemAllocation итог по одной позиции (в валюте оплаты, без округления)
type ItemAllocation struct {
	ReservationID int64
	Pair          domain.PairKey
	Original      decimal.Decimal
	WithInsurance decimal.Decimal
	Final         decimal.Decimal
}

// PairAllocation итог по паре (валюта, способ оплаты)
type PairAllocation struct {
	Pair           domain.PairKey
	Subtotal       decimal.Decimal // До скидки, в валюте оплаты
	SubtotalLocal  decimal.Decimal // До скидки, локальный эквивалент
	Share          decimal.Decimal // Доля итоговой суммы, в валюте оплаты
	ShareLocal     decimal.Decimal // Доля итоговой суммы, локальный эквивалент
	ReservationIDs []int64
}

// Allocation результат пакетного расчёта
type Allocation struct {
	Items                []ItemAllocation
	Pairs                []PairAllocation
	TotalLocal           decimal.Decimal // Сумма до скидки, локальный эквивалент
	DiscountedTotalLocal decimal.Decimal // Итог после скидки, локальный эквивалент
	DiscountApplied      bool
	DiscountPercent      int
	Rates                Rates
}

// TotalsByCurrency итог после скидки по каждой валюте оплаты
func (a *Allocation) TotalsByCurrency() map[domain.Currency]decimal.Decimal {
	totals := make(map[domain.Currency]decimal.Decimal)
	for _, p := range a.Pairs {
		totals[p.Pair.Currency] = totals[p.Pair.Currency].Add(p.Share)
	}
	return totals
}

// Item возвращает распределение по бронированию
func (a *Allocation) Item(reservationID int64) (ItemAllocation, bool) {
	for _, item := range a.Items {
		if item.ReservationID == reservationID {
			return item, true
		}
	}
	return ItemAllocation{}, false
}

// PriceBatch считает набор позиций, оплачиваемых вместе.
// Скидка применяется к общей сумме (в локальном эквиваленте), затем итог распределяется
// по парам и позициям пропорционально их доле в сумме до скидки:
// share = subtotal / total * discountedTotal
func PriceBatch(items []Item, discountEligible bool, rates Rates) (*Allocation, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	allocation := &Allocation{
		Items:           make([]ItemAllocation, 0, len(items)),
		DiscountApplied: discountEligible,
		DiscountPercent: DiscountPercent(discountEligible),
		Rates:           rates,
		TotalLocal:      decimal.Zero,
	}

	itemLocal := make([]decimal.Decimal, len(items))
	pairIndex := make(map[domain.PairKey]int)

	// 1. Цена каждой позиции и группировка по парам
	for i, item := range items {
		quote, err := PriceOne(item.BasePrice, item.Currency, item.IncludesInsurance, rates)
		if err != nil {
			return nil, err
		}
		local, err := rates.ToLocal(quote.WithInsurance, item.Currency)
		if err != nil {
			return nil, err
		}
		itemLocal[i] = local

		pair := domain.PairKey{Currency: item.Currency, PaymentMethod: item.PaymentMethod}
		allocation.Items = append(allocation.Items, ItemAllocation{
			ReservationID: item.ReservationID,
			Pair:          pair,
			Original:      quote.Original,
			WithInsurance: quote.WithInsurance,
		})

		idx, ok := pairIndex[pair]
		if !ok {
			idx = len(allocation.Pairs)
			pairIndex[pair] = idx
			allocation.Pairs = append(allocation.Pairs, PairAllocation{
				Pair:          pair,
				Subtotal:      decimal.Zero,
				SubtotalLocal: decimal.Zero,
			})
		}
		p := &allocation.Pairs[idx]
		p.Subtotal = p.Subtotal.Add(quote.WithInsurance)
		p.SubtotalLocal = p.SubtotalLocal.Add(local)
		p.ReservationIDs = append(p.ReservationIDs, item.ReservationID)

		allocation.TotalLocal = allocation.TotalLocal.Add(local)
	}

	// 2. Скидка на общую сумму
	allocation.DiscountedTotalLocal = allocation.TotalLocal.Mul(DiscountFactor(discountEligible))

	// 3. Пропорциональное распределение итога
	for i := range allocation.Pairs {
		p := &allocation.Pairs[i]
		p.ShareLocal = proportionalShare(p.SubtotalLocal, allocation.TotalLocal, allocation.DiscountedTotalLocal)
		share, err := rates.ToCharge(p.ShareLocal, p.Pair.Currency)
		if err != nil {
			return nil, err
		}
		p.Share = share
	}
	for i := range allocation.Items {
		item := &allocation.Items[i]
		shareLocal := proportionalShare(itemLocal[i], allocation.TotalLocal, allocation.DiscountedTotalLocal)
		final, err := rates.ToCharge(shareLocal, item.Pair.Currency)
		if err != nil {
			return nil, err
		}
		item.Final = final
	}

	sort.SliceStable(allocation.Pairs, func(i, j int) bool {
		a, b := allocation.Pairs[i].Pair, allocation.Pairs[j].Pair
		if a.Currency != b.Currency {
			return a.Currency < b.Currency
		}
		return a.PaymentMethod < b.PaymentMethod
	})

	return allocation, nil
}

func proportionalShare(part, total, discountedTotal decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(discountedTotal)
}
