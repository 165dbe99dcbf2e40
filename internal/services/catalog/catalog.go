// Package catalog реализует поиск товара (воды) подписки по идентификатору.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/water-subscription/internal/models"
	"github.com/magabrotheeeer/water-subscription/internal/storage/repository"
)

// WaterRepository определяет доступ к справочнику товаров.
type WaterRepository interface {
	// GetWater возвращает товар по ID или repository.ErrNotFound.
	GetWater(ctx context.Context, id int64) (*models.Water, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// CatalogService ищет товары, кэшируя результат: справочник не меняется сервисом.
type CatalogService struct {
	repo  WaterRepository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo WaterRepository, cache Cache, ttl time.Duration, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func waterKey(id int64) string {
	return fmt.Sprintf("water:%d", id)
}

// WaterInfo возвращает название и цену товара. Отсутствующий товар: apperr.ErrNotFound.
func (s *CatalogService) WaterInfo(ctx context.Context, waterID int64) (*models.Water, error) {
	const op = "services.catalog.WaterInfo"

	key := waterKey(waterID)
	var cached models.Water
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	water, err := s.repo.GetWater(ctx, waterID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(op, "water does not exist")
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, water, s.ttl); err != nil {
		s.log.Warn("failed to cache water", slog.String("key", key), sl.Err(err))
	}
	return water, nil
}
