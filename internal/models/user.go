// Package models содержит доменные структуры сервиса аренды недвижимости:
// пользователей, объекты недвижимости, арендаторов, договоры аренды,
// платежи и заявки на обслуживание, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Пользователь может быть владельцем недвижимости или быть связан
// с профилем арендатора.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	FirstName    string    // Имя
	LastName     string    // Фамилия
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Дата создания учётной записи
}

// UserInfo — публичная часть учётной записи, встраиваемая в ответы
// (например, внутри профиля арендатора). Хэш пароля наружу не отдаётся.
type UserInfo struct {
	UUID      string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName возвращает полное имя пользователя для вычисляемых полей ответов.
func (u UserInfo) FullName() string {
	return u.FirstName + " " + u.LastName
}
