// internal/store/record/promotions.go
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqhub/souq-backend/internal/models"
)

func (s *Store) SavePromotionOrder(ctx context.Context, order *models.PromotionOrder) error {
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to save promotion order: %w", err)
	}
	return nil
}

func (s *Store) GetPromotionOrder(ctx context.Context, id uuid.UUID) (*models.PromotionOrder, error) {
	var order models.PromotionOrder
	if err := s.db.WithContext(ctx).Preload("Listing").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *Store) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
