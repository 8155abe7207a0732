// Package services содержит бизнес-логику для работы с заявками
// на обслуживание объектов недвижимости.
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

const dateLayout = "2006-01-02"

// MaintenanceRepository определяет методы для работы с заявками в хранилище.
type MaintenanceRepository interface {
	// CreateMaintenance добавляет новую заявку и возвращает её ID.
	CreateMaintenance(ctx context.Context, m models.Maintenance) (int, error)
	// ListMaintenance возвращает заявки по объектам владельца с пагинацией.
	ListMaintenance(ctx context.Context, username string, limit, offset int) ([]*models.Maintenance, error)
	// ReadMaintenance возвращает заявку владельца по ID.
	ReadMaintenance(ctx context.Context, username string, id int) (*models.Maintenance, error)
	// UpdateMaintenance обновляет заявку владельца по ID.
	UpdateMaintenance(ctx context.Context, username string, id int, m models.Maintenance) (int, error)
	// RemoveMaintenance удаляет заявку владельца по ID.
	RemoveMaintenance(ctx context.Context, username string, id int) (int, error)
}

// MaintenanceService реализует бизнес-логику работы с заявками на обслуживание.
type MaintenanceService struct {
	repo MaintenanceRepository
	clk  clock.Clock
	log  *slog.Logger
}

// NewMaintenanceService создает новый экземпляр MaintenanceService.
func NewMaintenanceService(repo MaintenanceRepository, clk clock.Clock, log *slog.Logger) *MaintenanceService {
	return &MaintenanceService{
		repo: repo,
		clk:  clk,
		log:  log,
	}
}

func buildMaintenance(req models.DummyMaintenance) (models.Maintenance, error) {
	m := models.Maintenance{
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.MaintenanceStatus(req.Status),
		Priority:    models.MaintenancePriority(req.Priority),
		Cost:        req.Cost,
		Notes:       req.Notes,
	}
	if req.Status == "" {
		m.Status = models.MaintenanceStatusPending
	}
	if req.Priority == "" {
		m.Priority = models.MaintenancePriorityMedium
	}
	if req.ScheduledDate != nil {
		scheduled, err := time.Parse(dateLayout, *req.ScheduledDate)
		if err != nil {
			return models.Maintenance{}, fmt.Errorf("parse scheduled_date: %w", err)
		}
		m.ScheduledDate = &scheduled
	}
	if req.CompletionDate != nil {
		completion, err := time.Parse(dateLayout, *req.CompletionDate)
		if err != nil {
			return models.Maintenance{}, fmt.Errorf("parse completion_date: %w", err)
		}
		m.CompletionDate = &completion
	}
	return m, nil
}

// Create создает новую заявку на обслуживание и возвращает её ID.
// Дата подачи заявки всегда выставляется сегодняшним днём.
func (s *MaintenanceService) Create(ctx context.Context, req models.DummyMaintenance) (int, error) {
	m, err := buildMaintenance(req)
	if err != nil {
		return 0, err
	}
	m.RequestDate = clock.Today(s.clk)

	id, err := s.repo.CreateMaintenance(ctx, m)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new maintenance request", slog.Int("id", id))
	return id, nil
}

// List возвращает заявки владельца с пагинацией.
func (s *MaintenanceService) List(ctx context.Context, username string, limit, offset int) ([]*models.Maintenance, error) {
	return s.repo.ListMaintenance(ctx, username, limit, offset)
}

// Read возвращает заявку владельца по ID.
func (s *MaintenanceService) Read(ctx context.Context, username string, id int) (*models.Maintenance, error) {
	return s.repo.ReadMaintenance(ctx, username, id)
}

// Update обновляет заявку владельца по ID. Дата подачи заявки
// при обновлении не меняется.
// Возвращает ErrNotFound, если заявка отсутствует в видимом наборе.
func (s *MaintenanceService) Update(ctx context.Context, username string, id int, req models.DummyMaintenance) (int, error) {
	m, err := buildMaintenance(req)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateMaintenance(ctx, username, id, m)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	return count, nil
}

// Remove удаляет заявку владельца по ID.
// Возвращает ErrNotFound, если заявка отсутствует в видимом наборе.
func (s *MaintenanceService) Remove(ctx context.Context, username string, id int) (int, error) {
	count, err := s.repo.RemoveMaintenance(ctx, username, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	return count, nil
}
