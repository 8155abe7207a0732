package models

import "time"

// PaymentStatus — закрытый тип статуса платежа.
type PaymentStatus string

// Допустимые статусы платежа.
const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusLate      PaymentStatus = "late"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Valid сообщает, входит ли значение в список допустимых статусов.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusLate, PaymentStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod — закрытый тип способа оплаты.
type PaymentMethod string

// Допустимые способы оплаты.
const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodCheck        PaymentMethod = "check"
)

// Valid сообщает, входит ли значение в список допустимых способов оплаты.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodCheck:
		return true
	}
	return false
}

// Payment представляет платёж по договору аренды. PaymentDate равен nil,
// пока платёж не проведён. PropertyTitle и TenantName — вычисляемые
// поля ответа.
type Payment struct {
	ID            int            `json:"id"`
	LeaseID       int            `json:"lease"`
	PropertyTitle string         `json:"property_title"`
	TenantName    string         `json:"tenant_name"`
	Amount        float64        `json:"amount"`
	DueDate       time.Time      `json:"due_date"`
	PaymentDate   *time.Time     `json:"payment_date,omitempty"`
	Status        PaymentStatus  `json:"status"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	Reference     *string        `json:"reference,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
// Даты приходят строками в формате 2006-01-02.
type DummyPayment struct {
	LeaseID       int     `json:"lease" validate:"required,gt=0"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	DueDate       string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	PaymentDate   *string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending paid late cancelled"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer credit_card check"`
	Reference     *string `json:"reference" validate:"omitempty,max=100"`
	Notes         *string `json:"notes" validate:"omitempty"`
}

// MonthlyIncome — сумма проведённых платежей за один календарный месяц.
type MonthlyIncome struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}
