// Package services содержит бизнес-логику для работы с договорами аренды,
// включая отчёт о договорах, истекающих в ближайшие 30 дней.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-manager/internal/lib/clock"
	"github.com/magabrotheeeer/rental-manager/internal/models"
	"github.com/magabrotheeeer/rental-manager/internal/storage/repository"
)

// expiringWindowDays — горизонт отчёта об истекающих договорах.
const expiringWindowDays = 30

const dateLayout = "2006-01-02"

// LeaseRepository определяет методы для работы с договорами аренды в хранилище.
type LeaseRepository interface {
	// CreateLease добавляет новый договор аренды и возвращает его ID.
	CreateLease(ctx context.Context, l models.Lease) (int, error)
	// ListLeases возвращает договоры по объектам владельца с пагинацией.
	ListLeases(ctx context.Context, username string, limit, offset int) ([]*models.Lease, error)
	// ReadLease возвращает договор владельца по ID.
	ReadLease(ctx context.Context, username string, id int) (*models.Lease, error)
	// UpdateLease обновляет договор владельца по ID.
	UpdateLease(ctx context.Context, username string, id int, l models.Lease) (int, error)
	// RemoveLease удаляет договор владельца по ID.
	RemoveLease(ctx context.Context, username string, id int) (int, error)
	// ListExpiringLeases возвращает активные договоры с датой окончания
	// в интервале [from, to] включительно.
	ListExpiringLeases(ctx context.Context, username string, from, to time.Time) ([]*models.Lease, error)
}

// LeaseService реализует бизнес-логику работы с договорами аренды.
type LeaseService struct {
	repo LeaseRepository
	clk  clock.Clock
	log  *slog.Logger
}

// NewLeaseService создает новый экземпляр LeaseService.
func NewLeaseService(repo LeaseRepository, clk clock.Clock, log *slog.Logger) *LeaseService {
	return &LeaseService{
		repo: repo,
		clk:  clk,
		log:  log,
	}
}

func buildLease(req models.DummyLease) (models.Lease, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return models.Lease{}, fmt.Errorf("parse start_date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return models.Lease{}, fmt.Errorf("parse end_date: %w", err)
	}

	l := models.Lease{
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		StartDate:       startDate,
		EndDate:         endDate,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		Status:          models.LeaseStatus(req.Status),
		Notes:           req.Notes,
	}
	if req.Status == "" {
		l.Status = models.LeaseStatusActive
	}
	return l, nil
}

// Create создает новый договор аренды и возвращает его ID.
func (s *LeaseService) Create(ctx context.Context, req models.DummyLease) (int, error) {
	lease, err := buildLease(req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateLease(ctx, lease)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new lease", slog.Int("id", id))
	return id, nil
}

// List возвращает договоры аренды владельца с пагинацией.
func (s *LeaseService) List(ctx context.Context, username string, limit, offset int) ([]*models.Lease, error) {
	return s.repo.ListLeases(ctx, username, limit, offset)
}

// Read возвращает договор аренды владельца по ID.
func (s *LeaseService) Read(ctx context.Context, username string, id int) (*models.Lease, error) {
	return s.repo.ReadLease(ctx, username, id)
}

// Update обновляет договор аренды владельца по ID.
// Возвращает ErrNotFound, если договор отсутствует в видимом наборе.
func (s *LeaseService) Update(ctx context.Context, username string, id int, req models.DummyLease) (int, error) {
	lease, err := buildLease(req)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateLease(ctx, username, id, lease)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	return count, nil
}

// Remove удаляет договор аренды владельца по ID.
// Возвращает ErrNotFound, если договор отсутствует в видимом наборе.
func (s *LeaseService) Remove(ctx context.Context, username string, id int) (int, error) {
	count, err := s.repo.RemoveLease(ctx, username, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	return count, nil
}

// ExpiringSoon возвращает активные договоры владельца, истекающие
// в ближайшие 30 дней, включая сегодняшний день и границу окна.
func (s *LeaseService) ExpiringSoon(ctx context.Context, username string) ([]*models.Lease, error) {
	today := clock.Today(s.clk)
	return s.repo.ListExpiringLeases(ctx, username, today, today.AddDate(0, 0, expiringWindowDays))
}
