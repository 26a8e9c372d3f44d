package domain

// DeviceKind вид защитного снаряжения
type DeviceKind string

const (
	DeviceHelmet   DeviceKind = "HELMET"
	DeviceLifeVest DeviceKind = "LIFE_VEST"
)

// SafetyDevice единица защитного снаряжения
type SafetyDevice struct {
	ID   int64
	Kind DeviceKind
	Code string
}

// ReservationDevice связь бронирования с выданным снаряжением
type ReservationDevice struct {
	ReservationID int64
	DeviceID      int64
	Quantity      int
}
