// internal/store/record/record.go
package record

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqhub/souq-backend/internal/cache"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
)

// Store is the PostgreSQL-backed record store.
type Store struct {
	db    *gorm.DB
	cache cache.Cache
}

// New wraps a gorm connection. The cache is optional; pass nil to skip
// read-through caching of the category list.
func New(db *gorm.DB, c cache.Cache) *Store {
	return &Store{db: db, cache: c}
}

func (s *Store) ListListings(ctx context.Context, filter store.ListingFilter, page, pageSize int) (*store.ListingPage, error) {
	query := s.db.WithContext(ctx).Model(&models.Listing{}).
		Preload("Category").Preload("Images")

	query = applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []models.Listing
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return store.NewListingPage(listings, total, page, pageSize), nil
}

func applyFilter(query *gorm.DB, filter store.ListingFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	} else {
		query = query.Where("status = ?", models.ListingStatusActive)
	}

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}

	if filter.Region != nil {
		query = query.Where("region = ?", *filter.Region)
	}

	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	if filter.Currency != nil {
		query = query.Where("currency = ?", *filter.Currency)
	}

	if filter.Condition != nil {
		query = query.Where("condition = ?", *filter.Condition)
	}

	if filter.AdType != nil {
		query = query.Where("ad_type = ?", *filter.AdType)
	}

	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	if filter.UrgentOnly {
		query = query.Where("is_urgent = ?", true)
	}

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	return query
}

func (s *Store) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.WithContext(ctx).
		Preload("Owner").Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.sort_order ASC")
		}).
		First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &listing, nil
}

func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) error {
	if err := s.db.WithContext(ctx).Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	// Reload with relationships for the normalized result shape.
	s.db.WithContext(ctx).Preload("Owner").Preload("Category").Preload("Images").
		First(listing, "id = ?", listing.ID)
	return nil
}

func (s *Store) UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// The owner is immutable.
	delete(updates, "owner_id")

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&listing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update listing: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).Preload("Owner").Preload("Category").Preload("Images").
		First(&listing, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &listing, nil
}

func (s *Store) DeleteListing(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.Listing{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (s *Store) AddListingImage(ctx context.Context, image *models.ListingImage) error {
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		return fmt.Errorf("failed to save listing image: %w", err)
	}
	return nil
}
