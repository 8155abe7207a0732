package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/rental-manager/internal/migrations"
)

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
// и применяет к ней миграции схемы.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	storage, err := New(connStr)
	require.NoError(t, err, "failed to create storage")

	err = migrations.Run(storage.DB, filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err, "failed to run migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}

	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, 'hashedpassword', 'Тест', 'Тестов') RETURNING uid`,
		username, email).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateProperty создает тестовый объект недвижимости
func (f *TestDataFactory) CreateProperty(t *testing.T, ownerUID, title, status string, price float64) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO properties
		(owner_uid, title, address, property_type, status, price, area)
		VALUES ($1, $2, 'ул. Ленина, д. 1', 'apartment', $3, $4, 50) RETURNING id`,
		ownerUID, title, status, price).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTenant создает тестового арендатора, привязанного к пользователю
func (f *TestDataFactory) CreateTenant(t *testing.T, userUID, phone string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO tenants (user_uid, phone)
		VALUES ($1, $2) RETURNING id`,
		userUID, phone).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateLease создает тестовый договор аренды
func (f *TestDataFactory) CreateLease(t *testing.T, propertyID, tenantID int,
	startDate, endDate time.Time, rentAmount float64, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO leases
		(property_id, tenant_id, start_date, end_date, rent_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		propertyID, tenantID, startDate, endDate, rentAmount, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreatePayment создает тестовый платеж
func (f *TestDataFactory) CreatePayment(t *testing.T, leaseID int, amount float64,
	dueDate time.Time, paymentDate *time.Time, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO payments
		(lease_id, amount, due_date, payment_date, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		leaseID, amount, dueDate, paymentDate, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateMaintenance создает тестовую заявку на обслуживание
func (f *TestDataFactory) CreateMaintenance(t *testing.T, propertyID, tenantID int,
	title, status, priority string, requestDate time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO maintenance_requests
		(property_id, tenant_id, title, description, status, priority, request_date)
		VALUES ($1, $2, $3, 'описание заявки', $4, $5, $6) RETURNING id`,
		propertyID, tenantID, title, status, priority, requestDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// countRows возвращает количество строк таблицы, удовлетворяющих условию
func countRows(t *testing.T, storage *Storage, table, condition string, args ...any) int {
	var count int
	err := storage.DB.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE "+condition, args...).Scan(&count)
	require.NoError(t, err)
	return count
}
