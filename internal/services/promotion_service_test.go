// internal/services/promotion_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store/fixture"
)

func newPromotionService() (*PromotionService, *fixture.Provider) {
	provider := fixture.New(0)
	cfg := config.PaymentConfig{FeaturedPriceUSD: 4.99, UrgentPriceUSD: 2.99, PromotionDays: 7}
	svc := NewPromotionService(provider, cfg, NewNotificationService(&config.Config{}), 5*time.Second)
	return svc, provider
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	svc, _ := newPromotionService()

	_, err := svc.CreateOrder(context.Background(), uuid.Nil, fixture.ListingIphoneID, models.PromotionTypeFeatured)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestCreateOrderRejectsUnknownType(t *testing.T) {
	svc, _ := newPromotionService()

	_, err := svc.CreateOrder(context.Background(), fixture.UserAhmadID, fixture.ListingIphoneID, models.PromotionType("spotlight"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderAbsentListing(t *testing.T) {
	svc, _ := newPromotionService()

	_, err := svc.CreateOrder(context.Background(), fixture.UserAhmadID, uuid.New(), models.PromotionTypeFeatured)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderOnlyOwner(t *testing.T) {
	svc, _ := newPromotionService()

	_, err := svc.CreateOrder(context.Background(), fixture.UserOmarID, fixture.ListingIphoneID, models.PromotionTypeFeatured)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateOrderRequiresActiveListing(t *testing.T) {
	svc, _ := newPromotionService()

	_, err := svc.CreateOrder(context.Background(), fixture.UserOmarID, fixture.ListingPendingPCID, models.PromotionTypeUrgent)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConfirmOrderRequiresAuth(t *testing.T) {
	svc, _ := newPromotionService()

	_, err := svc.ConfirmOrder(context.Background(), uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestConfirmOrderAbsent(t *testing.T) {
	svc, _ := newPromotionService()

	_, err := svc.ConfirmOrder(context.Background(), fixture.UserAhmadID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmOrderOnlyBuyer(t *testing.T) {
	svc, provider := newPromotionService()

	order := &models.PromotionOrder{
		Reference:     "SQ-testonly",
		ListingID:     fixture.ListingIphoneID,
		BuyerID:       fixture.UserAhmadID,
		PromotionType: models.PromotionTypeFeatured,
		Amount:        4.99,
		Currency:      models.CurrencyUSD,
		Status:        models.PromotionStatusPending,
	}
	require.NoError(t, provider.SavePromotionOrder(context.Background(), order))

	_, err := svc.ConfirmOrder(context.Background(), fixture.UserOmarID, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmOrderCompletedIsIdempotent(t *testing.T) {
	svc, provider := newPromotionService()

	now := time.Now()
	order := &models.PromotionOrder{
		Reference:     "SQ-complete",
		ListingID:     fixture.ListingIphoneID,
		BuyerID:       fixture.UserAhmadID,
		PromotionType: models.PromotionTypeFeatured,
		Amount:        4.99,
		Currency:      models.CurrencyUSD,
		Status:        models.PromotionStatusCompleted,
		ProcessedAt:   &now,
	}
	require.NoError(t, provider.SavePromotionOrder(context.Background(), order))

	got, err := svc.ConfirmOrder(context.Background(), fixture.UserAhmadID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusCompleted, got.Status)
	assert.Equal(t, order.ID, got.ID)
}
