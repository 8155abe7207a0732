package models

import "time"

// MaintenanceStatus — закрытый тип статуса заявки на обслуживание.
type MaintenanceStatus string

// Допустимые статусы заявки.
const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

// Valid сообщает, входит ли значение в список допустимых статусов.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress,
		MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	}
	return false
}

// MaintenancePriority — закрытый тип приоритета заявки.
type MaintenancePriority string

// Допустимые приоритеты заявки.
const (
	MaintenancePriorityLow       MaintenancePriority = "low"
	MaintenancePriorityMedium    MaintenancePriority = "medium"
	MaintenancePriorityHigh      MaintenancePriority = "high"
	MaintenancePriorityEmergency MaintenancePriority = "emergency"
)

// Valid сообщает, входит ли значение в список допустимых приоритетов.
func (p MaintenancePriority) Valid() bool {
	switch p {
	case MaintenancePriorityLow, MaintenancePriorityMedium,
		MaintenancePriorityHigh, MaintenancePriorityEmergency:
		return true
	}
	return false
}

// Maintenance представляет заявку на обслуживание объекта недвижимости.
// RequestDate выставляется сервисом в момент создания заявки.
// PropertyTitle и TenantName — вычисляемые поля ответа.
type Maintenance struct {
	ID             int                 `json:"id"`
	PropertyID     int                 `json:"property"`
	TenantID       int                 `json:"tenant"`
	PropertyTitle  string              `json:"property_title"`
	TenantName     string              `json:"tenant_name"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         MaintenanceStatus   `json:"status"`
	Priority       MaintenancePriority `json:"priority"`
	RequestDate    time.Time           `json:"request_date"`
	ScheduledDate  *time.Time          `json:"scheduled_date,omitempty"`
	CompletionDate *time.Time          `json:"completion_date,omitempty"`
	Cost           *float64            `json:"cost,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// DummyMaintenance используется для приёма данных заявки из JSON-запроса.
// Даты приходят строками в формате 2006-01-02.
type DummyMaintenance struct {
	PropertyID     int      `json:"property" validate:"required,gt=0"`
	TenantID       int      `json:"tenant" validate:"required,gt=0"`
	Title          string   `json:"title" validate:"required,max=100"`
	Description    string   `json:"description" validate:"required"`
	Status         string   `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority       string   `json:"priority" validate:"omitempty,oneof=low medium high emergency"`
	ScheduledDate  *string  `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	CompletionDate *string  `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	Cost           *float64 `json:"cost" validate:"omitempty,gte=0"`
	Notes          *string  `json:"notes" validate:"omitempty"`
}
