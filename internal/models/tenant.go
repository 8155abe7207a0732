package models

import "time"

// Tenant представляет профиль арендатора, связанный с учётной записью
// пользователя один к одному. В ответах вложенная учётная запись
// отдаётся целиком (UserInfo), а не ссылкой.
type Tenant struct {
	ID               int       `json:"id"`
	User             UserInfo  `json:"user"`
	Phone            string    `json:"phone"`
	EmergencyContact *string   `json:"emergency_contact,omitempty"`
	EmergencyPhone   *string   `json:"emergency_phone,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DummyTenant используется для приёма данных профиля арендатора
// из JSON-запроса. Профиль привязывается к существующему пользователю
// по его username.
type DummyTenant struct {
	Username         string  `json:"username" validate:"required,min=3,max=50"`
	Phone            string  `json:"phone" validate:"required,max=20"`
	EmergencyContact *string `json:"emergency_contact" validate:"omitempty,max=100"`
	EmergencyPhone   *string `json:"emergency_phone" validate:"omitempty,max=20"`
}
