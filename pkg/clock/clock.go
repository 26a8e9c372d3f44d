package clock

import "time"

// Local возвращает "локальное" настенное время с фиксированным смещением от UTC,
// представленное в зоне UTC. Результат не зависит от часового пояса сервера
type Local struct {
	offset time.Duration
}

// NewLocal создает провайдер времени со смещением в минутах (например, -180 для UTC-3)
func NewLocal(offsetMinutes int) *Local {
	return &Local{offset: time.Duration(offsetMinutes) * time.Minute}
}

// Now возвращает текущее локальное время
func (c *Local) Now() time.Time {
	return time.Now().UTC().Add(c.offset)
}

// Fixed провайдер времени с заранее заданным значением (для тестов и разовых запусков)
type Fixed struct {
	At time.Time
}

func (c *Fixed) Now() time.Time {
	return c.At
}

// Advance сдвигает зафиксированное время
func (c *Fixed) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}
