// Package services содержит бизнес-логику для работы с арендаторами.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/rental-manager/internal/models"
	"github.com/magabrotheeeer/rental-manager/internal/storage/repository"
)

// TenantRepository определяет методы для работы с арендаторами в хранилище.
type TenantRepository interface {
	// CreateTenant добавляет профиль арендатора для существующего пользователя.
	CreateTenant(ctx context.Context, tenantUsername string, t models.Tenant) (int, error)
	// ListTenants возвращает арендаторов, видимых владельцу через его договоры аренды.
	ListTenants(ctx context.Context, username string, limit, offset int) ([]*models.Tenant, error)
	// ReadTenant возвращает арендатора по ID из видимого набора владельца.
	ReadTenant(ctx context.Context, username string, id int) (*models.Tenant, error)
	// UpdateTenant обновляет профиль арендатора из видимого набора владельца.
	UpdateTenant(ctx context.Context, username string, id int, t models.Tenant) (int, error)
	// RemoveTenant удаляет профиль арендатора из видимого набора владельца.
	RemoveTenant(ctx context.Context, username string, id int) (int, error)
}

// TenantService реализует бизнес-логику работы с арендаторами.
type TenantService struct {
	repo TenantRepository
	log  *slog.Logger
}

// NewTenantService создает новый экземпляр TenantService.
func NewTenantService(repo TenantRepository, log *slog.Logger) *TenantService {
	return &TenantService{
		repo: repo,
		log:  log,
	}
}

func buildTenant(req models.DummyTenant) models.Tenant {
	return models.Tenant{
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
	}
}

// Create создает профиль арендатора для пользователя req.Username
// и возвращает его ID.
func (s *TenantService) Create(ctx context.Context, req models.DummyTenant) (int, error) {
	id, err := s.repo.CreateTenant(ctx, req.Username, buildTenant(req))
	if err != nil {
		return 0, err
	}

	s.log.Info("created new tenant", slog.Int("id", id))
	return id, nil
}

// List возвращает арендаторов, видимых владельцу, с пагинацией.
func (s *TenantService) List(ctx context.Context, username string, limit, offset int) ([]*models.Tenant, error) {
	return s.repo.ListTenants(ctx, username, limit, offset)
}

// Read возвращает арендатора владельца по ID.
func (s *TenantService) Read(ctx context.Context, username string, id int) (*models.Tenant, error) {
	return s.repo.ReadTenant(ctx, username, id)
}

// Update обновляет профиль арендатора по ID.
// Возвращает ErrNotFound, если арендатор отсутствует в видимом наборе.
func (s *TenantService) Update(ctx context.Context, username string, id int, req models.DummyTenant) (int, error) {
	count, err := s.repo.UpdateTenant(ctx, username, id, buildTenant(req))
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	return count, nil
}

// Remove удаляет профиль арендатора по ID.
// Возвращает ErrNotFound, если арендатор отсутствует в видимом наборе.
func (s *TenantService) Remove(ctx context.Context, username string, id int) (int, error) {
	count, err := s.repo.RemoveTenant(ctx, username, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	return count, nil
}
