package models

import "time"

// LeaseStatus — закрытый тип статуса договора аренды.
type LeaseStatus string

// Допустимые статусы договора аренды.
const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusExpired    LeaseStatus = "expired"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

// Valid сообщает, входит ли значение в список допустимых статусов.
func (s LeaseStatus) Valid() bool {
	switch s {
	case LeaseStatusActive, LeaseStatusExpired, LeaseStatusTerminated:
		return true
	}
	return false
}

// Lease представляет договор аренды между объектом недвижимости
// и арендатором. PropertyTitle и TenantName — вычисляемые поля ответа.
type Lease struct {
	ID              int         `json:"id"`
	PropertyID      int         `json:"property"`
	TenantID        int         `json:"tenant"`
	PropertyTitle   string      `json:"property_title"`
	TenantName      string      `json:"tenant_name"`
	StartDate       time.Time   `json:"start_date"`
	EndDate         time.Time   `json:"end_date"`
	RentAmount      float64     `json:"rent_amount"`
	SecurityDeposit float64     `json:"security_deposit"`
	Status          LeaseStatus `json:"status"`
	Notes           *string     `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// DummyLease используется для приёма данных договора аренды из
// JSON-запроса. Даты приходят строками в формате 2006-01-02.
// Порядок дат моделью не проверяется: качество данных остаётся
// на стороне вызывающего.
type DummyLease struct {
	PropertyID      int     `json:"property" validate:"required,gt=0"`
	TenantID        int     `json:"tenant" validate:"required,gt=0"`
	StartDate       string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	RentAmount      float64 `json:"rent_amount" validate:"required,gt=0"`
	SecurityDeposit float64 `json:"security_deposit" validate:"omitempty,gte=0"`
	Status          string  `json:"status" validate:"omitempty,oneof=active expired terminated"`
	Notes           *string `json:"notes" validate:"omitempty"`
}
