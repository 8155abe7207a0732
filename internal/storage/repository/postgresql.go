// Package repository реализует хранилище данных на основе PostgreSQL
// для сервиса управления арендой недвижимости. Все запросы по сущностям
// ограничены видимостью владельца: запись доступна, только если она
// транзитивно связана с объектом недвижимости текущего пользователя.
// Благодаря этому чужой и несуществующий идентификатор неотличимы:
// оба дают ErrNotFound.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound возвращается, когда запись отсутствует в видимом
// наборе пользователя.
var ErrNotFound = errors.New("not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы со всеми сущностями сервиса.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'properties'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table properties missing or query error: %w", err)
	}
	return nil
}
