// Package services содержит бизнес-логику для работы с платежами,
// включая отчёты о просроченных и предстоящих платежах и помесячный
// доход за текущий год.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-manager/internal/lib/clock"
	"github.com/magabrotheeeer/rental-manager/internal/lib/sl"
	"github.com/magabrotheeeer/rental-manager/internal/models"
	"github.com/magabrotheeeer/rental-manager/internal/storage/repository"
)

// upcomingWindowDays — горизонт отчёта о предстоящих платежах.
const upcomingWindowDays = 30

const dateLayout = "2006-01-02"

// PaymentRepository определяет методы для работы с платежами в хранилище.
type PaymentRepository interface {
	// CreatePayment добавляет новый платёж и возвращает его ID.
	CreatePayment(ctx context.Context, pay models.Payment) (int, error)
	// ListPayments возвращает платежи по договорам владельца с пагинацией.
	ListPayments(ctx context.Context, username string, limit, offset int) ([]*models.Payment, error)
	// ReadPayment возвращает платёж владельца по ID.
	ReadPayment(ctx context.Context, username string, id int) (*models.Payment, error)
	// UpdatePayment обновляет платёж владельца по ID.
	UpdatePayment(ctx context.Context, username string, id int, pay models.Payment) (int, error)
	// RemovePayment удаляет платёж владельца по ID.
	RemovePayment(ctx context.Context, username string, id int) (int, error)
	// ListOverduePayments возвращает ожидающие платежи со сроком строго раньше today.
	ListOverduePayments(ctx context.Context, username string, today time.Time) ([]*models.Payment, error)
	// ListUpcomingPayments возвращает ожидающие платежи со сроком в [from, to] включительно.
	ListUpcomingPayments(ctx context.Context, username string, from, to time.Time) ([]*models.Payment, error)
	// SumMonthlyIncome возвращает суммы проведённых платежей по месяцам
	// за интервал [yearStart, yearEnd). Месяцы без платежей опущены.
	SumMonthlyIncome(ctx context.Context, username string, yearStart, yearEnd time.Time) ([]models.MonthlyIncome, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PaymentService реализует бизнес-логику работы с платежами.
type PaymentService struct {
	repo  PaymentRepository
	cache Cache
	clk   clock.Clock
	log   *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, cache Cache, clk clock.Clock, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:  repo,
		cache: cache,
		clk:   clk,
		log:   log,
	}
}

func incomeCacheKey(username string, year int) string {
	return fmt.Sprintf("monthly_income:%s:%d", username, year)
}

func (s *PaymentService) invalidateIncome(username string) {
	key := incomeCacheKey(username, clock.Today(s.clk).Year())
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate income cache", slog.String("key", key), sl.Err(err))
	}
}

func buildPayment(req models.DummyPayment) (models.Payment, error) {
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return models.Payment{}, fmt.Errorf("parse due_date: %w", err)
	}

	pay := models.Payment{
		LeaseID:   req.LeaseID,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Status:    models.PaymentStatus(req.Status),
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	if req.Status == "" {
		pay.Status = models.PaymentStatusPending
	}
	if req.PaymentDate != nil {
		paymentDate, err := time.Parse(dateLayout, *req.PaymentDate)
		if err != nil {
			return models.Payment{}, fmt.Errorf("parse payment_date: %w", err)
		}
		pay.PaymentDate = &paymentDate
	}
	if req.PaymentMethod != nil {
		method := models.PaymentMethod(*req.PaymentMethod)
		pay.PaymentMethod = &method
	}
	return pay, nil
}

// Create создает новый платёж и возвращает его ID.
func (s *PaymentService) Create(ctx context.Context, username string, req models.DummyPayment) (int, error) {
	pay, err := buildPayment(req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreatePayment(ctx, pay)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new payment", slog.Int("id", id))
	s.invalidateIncome(username)
	return id, nil
}

// List возвращает платежи владельца с пагинацией.
func (s *PaymentService) List(ctx context.Context, username string, limit, offset int) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, username, limit, offset)
}

// Read возвращает платёж владельца по ID.
func (s *PaymentService) Read(ctx context.Context, username string, id int) (*models.Payment, error) {
	return s.repo.ReadPayment(ctx, username, id)
}

// Update обновляет платёж владельца по ID.
// Возвращает ErrNotFound, если платёж отсутствует в видимом наборе.
func (s *PaymentService) Update(ctx context.Context, username string, id int, req models.DummyPayment) (int, error) {
	pay, err := buildPayment(req)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdatePayment(ctx, username, id, pay)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}

	s.invalidateIncome(username)
	return count, nil
}

// Remove удаляет платёж владельца по ID.
// Возвращает ErrNotFound, если платёж отсутствует в видимом наборе.
func (s *PaymentService) Remove(ctx context.Context, username string, id int) (int, error) {
	count, err := s.repo.RemovePayment(ctx, username, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}

	s.invalidateIncome(username)
	return count, nil
}

// Overdue возвращает ожидающие платежи владельца со сроком,
// истекшим строго до сегодняшнего дня.
func (s *PaymentService) Overdue(ctx context.Context, username string) ([]*models.Payment, error) {
	return s.repo.ListOverduePayments(ctx, username, clock.Today(s.clk))
}

// Upcoming возвращает ожидающие платежи владельца со сроком
// в ближайшие 30 дней, включая сегодняшний день и границу окна.
func (s *PaymentService) Upcoming(ctx context.Context, username string) ([]*models.Payment, error) {
	today := clock.Today(s.clk)
	return s.repo.ListUpcomingPayments(ctx, username, today, today.AddDate(0, 0, upcomingWindowDays))
}

// MonthlyIncome возвращает помесячный доход владельца за текущий год:
// всегда ровно 12 записей, месяцы без проведённых платежей — с нулевой суммой.
func (s *PaymentService) MonthlyIncome(ctx context.Context, username string) ([]models.MonthlyIncome, error) {
	year := clock.Today(s.clk).Year()
	cacheKey := incomeCacheKey(username, year)

	var cached []models.MonthlyIncome
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read income cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.SumMonthlyIncome(ctx, username, yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}

	income := make([]models.MonthlyIncome, 12)
	for i := range income {
		income[i].Month = i + 1
	}
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			income[row.Month-1].Total = row.Total
		}
	}

	if err := s.cache.Set(cacheKey, income, time.Minute); err != nil {
		s.log.Warn("failed to cache income", slog.String("key", cacheKey), sl.Err(err))
	}
	return income, nil
}
