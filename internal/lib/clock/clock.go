// Package clock определяет источник текущего времени для отчётных
// вычислений. Все сравнения дат в отчётах выполняются относительно
// "сегодня" на момент запроса; интерфейс позволяет фиксировать дату
// в тестах.
package clock

import "time"

// Clock возвращает текущее время.
type Clock interface {
	Now() time.Time
}

// Real — источник времени на основе time.Now.
type Real struct{}

// Now возвращает текущее системное время.
func (Real) Now() time.Time { return time.Now() }

// Fixed — источник времени с фиксированным значением, для тестов.
type Fixed struct {
	Time time.Time
}

// Now возвращает зафиксированное время.
func (f Fixed) Now() time.Time { return f.Time }

// Today обрезает момент времени до начала суток в UTC.
// Используется как опорная дата для отчётных окон.
func Today(c Clock) time.Time {
	now := c.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
