// internal/services/promotion_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/utils"
)

// PromotionService sells featured/urgent upgrades for listings through
// Stripe. An order starts pending with a PaymentIntent; confirming a
// succeeded intent flips the listing flag and completes the order.
type PromotionService struct {
	store         store.Store
	cfg           config.PaymentConfig
	notifications *NotificationService
	timeout       time.Duration
}

type CreatePromotionResponse struct {
	Order        *models.PromotionOrder `json:"order"`
	ClientSecret string                 `json:"client_secret"`
}

func NewPromotionService(s store.Store, cfg config.PaymentConfig, notifications *NotificationService, timeout time.Duration) *PromotionService {
	stripe.Key = cfg.StripeSecretKey
	return &PromotionService{store: s, cfg: cfg, notifications: notifications, timeout: timeout}
}

func (s *PromotionService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PromotionService) priceFor(promotionType models.PromotionType) (float64, error) {
	switch promotionType {
	case models.PromotionTypeFeatured:
		return s.cfg.FeaturedPriceUSD, nil
	case models.PromotionTypeUrgent:
		return s.cfg.UrgentPriceUSD, nil
	default:
		return 0, fmt.Errorf("%w: unknown promotion type %q", ErrValidation, promotionType)
	}
}

// CreateOrder opens a pending order for the actor's own active listing and
// returns the Stripe client secret the buyer pays against.
func (s *PromotionService) CreateOrder(ctx context.Context, actorID uuid.UUID, listingID uuid.UUID, promotionType models.PromotionType) (*CreatePromotionResponse, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	amount, err := s.priceFor(promotionType)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	if listing.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if listing.Status != models.ListingStatusActive {
		return nil, fmt.Errorf("%w: only active listings can be promoted", ErrValidation)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.AddMetadata("listing_id", listingID.String())
	params.AddMetadata("buyer_id", actorID.String())
	params.AddMetadata("promotion_type", string(promotionType))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe: %v", ErrBackend, err)
	}

	ref, err := utils.GenerateOrderReference()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	order := &models.PromotionOrder{
		Reference:     ref,
		ListingID:     listingID,
		BuyerID:       actorID,
		PromotionType: promotionType,
		Amount:        amount,
		Currency:      models.CurrencyUSD,
		PaymentID:     pi.ID,
		Status:        models.PromotionStatusPending,
		DurationDays:  s.cfg.PromotionDays,
	}
	if err := s.store.SavePromotionOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"listing_id": listingID,
		"type":       promotionType,
	}).Info("Promotion order created")

	return &CreatePromotionResponse{
		Order:        order,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// ConfirmOrder checks the PaymentIntent with Stripe and, when it succeeded,
// marks the order completed and raises the listing flag. Confirming twice is
// harmless.
func (s *PromotionService) ConfirmOrder(ctx context.Context, actorID uuid.UUID, orderID uuid.UUID) (*models.PromotionOrder, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	order, err := s.store.GetPromotionOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.BuyerID != actorID {
		return nil, ErrForbidden
	}
	if order.Status == models.PromotionStatusCompleted {
		return order, nil
	}

	pi, err := paymentintent.Get(order.PaymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe: %v", ErrBackend, err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		// continue below
	case stripe.PaymentIntentStatusCanceled:
		order.Status = models.PromotionStatusFailed
		if err := s.store.SavePromotionOrder(ctx, order); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackend, err)
		}
		return nil, fmt.Errorf("%w: payment canceled", ErrValidation)
	default:
		return nil, fmt.Errorf("%w: payment not completed (%s)", ErrValidation, pi.Status)
	}

	updates := map[string]interface{}{}
	switch order.PromotionType {
	case models.PromotionTypeFeatured:
		updates["is_featured"] = true
	case models.PromotionTypeUrgent:
		updates["is_urgent"] = true
	}
	if _, err := s.store.UpdateListing(ctx, order.ListingID, updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	now := time.Now()
	order.Status = models.PromotionStatusCompleted
	order.ProcessedAt = &now
	if err := s.store.SavePromotionOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"listing_id": order.ListingID,
		"type":       order.PromotionType,
	}).Info("Promotion order completed")

	s.notifyBuyer(order)

	return order, nil
}

// notifyBuyer sends the confirmation mail best-effort; the order is already
// completed.
func (s *PromotionService) notifyBuyer(order *models.PromotionOrder) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		buyer, err := s.store.GetUserByID(ctx, order.BuyerID)
		if err != nil || buyer == nil {
			logrus.WithField("order_id", order.ID).Warn("Could not load buyer for confirmation email")
			return
		}
		if err := s.notifications.SendPromotionConfirmedEmail(buyer, order); err != nil {
			logrus.WithError(err).Warn("Failed to send promotion confirmation email")
		}
	}()
}
