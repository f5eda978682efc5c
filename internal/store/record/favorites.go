// internal/store/record/favorites.go
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
)

// ToggleFavorite flips membership and moves favorites_count in the same
// transaction, so the counter never diverges from actual membership.
func (s *Store) ToggleFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, int64, error) {
	var favorited bool
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, "id = ?", listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var favorite models.Favorite
		err := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).
			First(&favorite).Error

		switch {
		case err == nil:
			if err := tx.Delete(&favorite).Error; err != nil {
				return fmt.Errorf("failed to remove favorite: %w", err)
			}
			if err := tx.Model(&listing).
				UpdateColumn("favorites_count", gorm.Expr("GREATEST(favorites_count - 1, 0)")).Error; err != nil {
				return fmt.Errorf("failed to update favorites count: %w", err)
			}
			favorited = false

		case errors.Is(err, gorm.ErrRecordNotFound):
			favorite = models.Favorite{UserID: userID, ListingID: listingID}
			if err := tx.Create(&favorite).Error; err != nil {
				return fmt.Errorf("failed to add favorite: %w", err)
			}
			if err := tx.Model(&listing).
				UpdateColumn("favorites_count", gorm.Expr("favorites_count + 1")).Error; err != nil {
				return fmt.Errorf("failed to update favorites count: %w", err)
			}
			favorited = true

		default:
			return fmt.Errorf("database error: %w", err)
		}

		return tx.Model(&models.Listing{}).Select("favorites_count").
			Where("id = ?", listingID).Scan(&count).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, fmt.Errorf("%w: %s", store.ErrListingNotFound, listingID)
		}
		return false, 0, err
	}
	return favorited, count, nil
}

func (s *Store) IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *Store) ListFavorites(ctx context.Context, userID uuid.UUID, page, pageSize int) (*store.ListingPage, error) {
	base := s.db.WithContext(ctx).Model(&models.Listing{}).
		Joins("JOIN favorites ON favorites.listing_id = listings.id").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	var listings []models.Listing
	offset := (page - 1) * pageSize
	if err := base.Preload("Category").Preload("Images").
		Order("favorites.created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	return store.NewListingPage(listings, total, page, pageSize), nil
}
