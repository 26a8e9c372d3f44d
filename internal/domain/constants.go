package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Временные ограничения бронирования
const (
	SlotDuration         = 30 * time.Minute // Длительность одного слота
	MaxSlotsPerRequest   = 3                // Максимум слотов в одном запросе
	MaxConsecutiveSlots  = 3                // Максимальная серия подряд идущих слотов клиента
	BookingHorizon       = 48 * time.Hour   // Насколько вперёд можно бронировать
	CashPaymentLeadTime  = 2 * time.Hour    // Наличные: оплата не позднее чем за 2 часа до слота
	CancellationLeadTime = 2 * time.Hour    // Отмена не позднее чем за 2 часа до слота
	StormWindowShift     = 3 * time.Hour    // Сдвиг окна "сегодня" при штормовой страховке
	SlotSeedLeadTime     = 3 * time.Hour    // Генерация слотов начинается не раньше чем через 3 часа
	DefaultSlotSeedCount = 16               // Количество слотов при генерации по умолчанию
	MaxSlotSeedCount     = 96               // Сутки получасовых слотов
)

// Денежные константы
var (
	InsuranceSurchargeRate = decimal.RequireFromString("0.15") // Надбавка за страховку
	MultiItemDiscountRate  = decimal.RequireFromString("0.10") // Скидка за 2+ позиции
	StormRefundRatio       = decimal.RequireFromString("0.5")  // Доля возврата при шторме
)

const (
	InsuranceSurchargePercent = 15
	MultiItemDiscountPercent  = 10
	MinItemsForDiscount       = 2
	MoneyScale                = 2 // Знаков после запятой при сохранении платежа
)

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = time.RFC3339
)

// ActiveReservationStatuses статусы, удерживающие слот за клиентом
var ActiveReservationStatuses = []ReservationStatus{
	ReservationPendingPayment,
	ReservationPaid,
}
