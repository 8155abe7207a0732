// Package services содержит бизнес-логику для управления объектами
// недвижимости, включая агрегированную статистику занятости и её кеширование.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-manager/internal/lib/sl"
	"github.com/magabrotheeeer/rental-manager/internal/models"
	"github.com/magabrotheeeer/rental-manager/internal/storage/repository"
)

// PropertyRepository определяет методы для работы с объектами недвижимости в хранилище.
type PropertyRepository interface {
	// CreateProperty добавляет новый объект владельца и возвращает его ID.
	CreateProperty(ctx context.Context, username string, p models.Property) (int, error)
	// ListProperties возвращает список объектов владельца с пагинацией.
	ListProperties(ctx context.Context, username string, limit, offset int) ([]*models.Property, error)
	// ReadProperty возвращает объект владельца по ID.
	ReadProperty(ctx context.Context, username string, id int) (*models.Property, error)
	// UpdateProperty обновляет объект владельца по ID.
	UpdateProperty(ctx context.Context, username string, id int, p models.Property) (int, error)
	// RemoveProperty удаляет объект владельца по ID.
	RemoveProperty(ctx context.Context, username string, id int) (int, error)
	// CountPropertyStats возвращает количество объектов всего, занятых и свободных.
	CountPropertyStats(ctx context.Context, username string) (total, occupied, available int, err error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// PropertyService реализует бизнес-логику работы с объектами недвижимости.
type PropertyService struct {
	repo  PropertyRepository
	cache Cache
	log   *slog.Logger
}

// NewPropertyService создает новый экземпляр PropertyService.
func NewPropertyService(repo PropertyRepository, cache Cache, log *slog.Logger) *PropertyService {
	return &PropertyService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func statsCacheKey(username string) string {
	return fmt.Sprintf("property_stats:%s", username)
}

func (s *PropertyService) invalidateStats(username string) {
	if err := s.cache.Invalidate(statsCacheKey(username)); err != nil {
		s.log.Warn("failed to invalidate stats cache", slog.String("username", username), sl.Err(err))
	}
}

func buildProperty(req models.DummyProperty) models.Property {
	p := models.Property{
		Title:        req.Title,
		Address:      req.Address,
		PropertyType: models.PropertyType(req.PropertyType),
		Status:       models.PropertyStatus(req.Status),
		Price:        req.Price,
		Bedrooms:     1,
		Bathrooms:    1,
		Area:         req.Area,
		Description:  req.Description,
	}
	if req.Status == "" {
		p.Status = models.PropertyStatusAvailable
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	return p
}

// Create создает новый объект недвижимости владельца и возвращает его ID.
func (s *PropertyService) Create(ctx context.Context, username string, req models.DummyProperty) (int, error) {
	id, err := s.repo.CreateProperty(ctx, username, buildProperty(req))
	if err != nil {
		return 0, err
	}

	s.log.Info("created new property", slog.Int("id", id))
	s.invalidateStats(username)
	return id, nil
}

// List возвращает список объектов недвижимости владельца с пагинацией.
func (s *PropertyService) List(ctx context.Context, username string, limit, offset int) ([]*models.Property, error) {
	return s.repo.ListProperties(ctx, username, limit, offset)
}

// Read возвращает объект недвижимости владельца по ID.
func (s *PropertyService) Read(ctx context.Context, username string, id int) (*models.Property, error) {
	return s.repo.ReadProperty(ctx, username, id)
}

// Update обновляет объект недвижимости владельца по ID.
// Возвращает ErrNotFound, если объект отсутствует в видимом наборе.
func (s *PropertyService) Update(ctx context.Context, username string, id int, req models.DummyProperty) (int, error) {
	count, err := s.repo.UpdateProperty(ctx, username, id, buildProperty(req))
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}

	s.invalidateStats(username)
	return count, nil
}

// Remove удаляет объект недвижимости владельца по ID.
// Возвращает ErrNotFound, если объект отсутствует в видимом наборе.
func (s *PropertyService) Remove(ctx context.Context, username string, id int) (int, error) {
	count, err := s.repo.RemoveProperty(ctx, username, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}

	s.invalidateStats(username)
	return count, nil
}

// Stats возвращает статистику занятости объектов владельца.
// Доля занятости равна 0, если объектов нет.
func (s *PropertyService) Stats(ctx context.Context, username string) (*models.PropertyStats, error) {
	cacheKey := statsCacheKey(username)
	var cached models.PropertyStats
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read stats cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	total, occupied, available, err := s.repo.CountPropertyStats(ctx, username)
	if err != nil {
		return nil, err
	}

	stats := &models.PropertyStats{
		Total:     total,
		Occupied:  occupied,
		Available: available,
	}
	if total > 0 {
		stats.OccupancyRate = float64(occupied) / float64(total) * 100
	}

	if err := s.cache.Set(cacheKey, stats, time.Minute); err != nil {
		s.log.Warn("failed to cache stats", slog.String("key", cacheKey), sl.Err(err))
	}
	return stats, nil
}
