// internal/store/record/categories.go
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/souqhub/souq-backend/internal/models"
)

const (
	categoriesCacheKey = "categories:all"
	categoriesCacheTTL = 10 * time.Minute
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, categoriesCacheKey); err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("sort_order ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoriesCacheKey, string(data), categoriesCacheTTL); err != nil {
				logrus.WithError(err).Warn("Failed to cache categories")
			}
		}
	}

	return categories, nil
}

func (s *Store) SaveCategory(ctx context.Context, category *models.Category) error {
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, categoriesCacheKey); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate category cache")
		}
	}
	return nil
}
