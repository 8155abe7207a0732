package models

import "time"

// PropertyType — закрытый тип вида недвижимости.
type PropertyType string

// Допустимые виды недвижимости.
const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeCommercial PropertyType = "commercial"
)

// Valid сообщает, входит ли значение в список допустимых видов.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeStudio, PropertyTypeCommercial:
		return true
	}
	return false
}

// PropertyStatus — закрытый тип статуса недвижимости.
type PropertyStatus string

// Допустимые статусы недвижимости.
const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusOccupied  PropertyStatus = "occupied"
)

// Valid сообщает, входит ли значение в список допустимых статусов.
func (s PropertyStatus) Valid() bool {
	return s == PropertyStatusAvailable || s == PropertyStatusOccupied
}

// Property представляет объект недвижимости, принадлежащий владельцу.
// Поле OwnerName — вычисляемое поле ответа: полное имя владельца.
type Property struct {
	ID           int            `json:"id"`
	OwnerUID     string         `json:"owner"`
	OwnerName    string         `json:"owner_name"`
	Title        string         `json:"title"`
	Address      string         `json:"address"`
	PropertyType PropertyType   `json:"property_type"`
	Status       PropertyStatus `json:"status"`
	Price        float64        `json:"price"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	Area         int            `json:"area"`
	Description  *string        `json:"description,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DummyProperty используется для приёма данных объекта недвижимости
// из JSON-запроса до их валидации и преобразования в Property.
type DummyProperty struct {
	Title        string  `json:"title" validate:"required,max=100"`
	Address      string  `json:"address" validate:"required"`
	PropertyType string  `json:"property_type" validate:"required,oneof=apartment house studio commercial"`
	Status       string  `json:"status" validate:"omitempty,oneof=available occupied"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Bedrooms     *int    `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *int    `json:"bathrooms" validate:"omitempty,gte=0"`
	Area         int     `json:"area" validate:"required,gt=0"`
	Description  *string `json:"description" validate:"omitempty"`
}

// PropertyStats — агрегированная статистика по объектам владельца.
type PropertyStats struct {
	Total         int     `json:"total"`
	Occupied      int     `json:"occupied"`
	Available     int     `json:"available"`
	OccupancyRate float64 `json:"occupancy_rate"`
}
