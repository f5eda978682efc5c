// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
)

// AdminService covers moderation: the pending review queue, approving and
// rejecting listings, and category management. Every action leaves an audit
// trail entry.
type AdminService struct {
	store         store.Store
	categories    *CategoriesService
	notifications *NotificationService
	timeout       time.Duration
}

func NewAdminService(s store.Store, categories *CategoriesService, notifications *NotificationService, timeout time.Duration) *AdminService {
	return &AdminService{
		store:         s,
		categories:    categories,
		notifications: notifications,
		timeout:       timeout,
	}
}

func (s *AdminService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// PendingListings pages through listings awaiting review, oldest intent
// served by the shared newest-first ordering.
func (s *AdminService) PendingListings(ctx context.Context, page, pageSize int) (*store.ListingPage, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	status := models.ListingStatusPending
	result, err := s.store.ListListings(ctx, store.ListingFilter{Status: &status}, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return result, nil
}

// ApproveListing moves a pending listing to active and emails the owner.
func (s *AdminService) ApproveListing(ctx context.Context, adminID uuid.UUID, listingID uuid.UUID) (*models.Listing, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	existing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.Status != models.ListingStatusPending {
		return nil, fmt.Errorf("%w: listing is not pending review", ErrValidation)
	}

	listing, err := s.store.UpdateListing(ctx, listingID, map[string]interface{}{
		"status": models.ListingStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	s.audit(ctx, adminID, "listing.approve", listingID, nil)
	s.notifyOwner(ctx, listing, func(owner *models.User) error {
		return s.notifications.SendListingApprovedEmail(owner, listing)
	})
	return listing, nil
}

// RejectListing moves a pending listing to rejected with a reason the owner
// gets to read.
func (s *AdminService) RejectListing(ctx context.Context, adminID uuid.UUID, listingID uuid.UUID, reason string) (*models.Listing, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	existing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.Status != models.ListingStatusPending {
		return nil, fmt.Errorf("%w: listing is not pending review", ErrValidation)
	}

	listing, err := s.store.UpdateListing(ctx, listingID, map[string]interface{}{
		"status": models.ListingStatusRejected,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	s.audit(ctx, adminID, "listing.reject", listingID, models.JSONB{"reason": reason})
	s.notifyOwner(ctx, listing, func(owner *models.User) error {
		return s.notifications.SendListingRejectedEmail(owner, listing, reason)
	})
	return listing, nil
}

// SaveCategory creates or updates a category and invalidates the cached
// category tree.
func (s *AdminService) SaveCategory(ctx context.Context, adminID uuid.UUID, category *models.Category) error {
	if category.Slug == "" || category.NameAr == "" {
		return fmt.Errorf("%w: slug and Arabic name are required", ErrValidation)
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return err
	}

	s.audit(ctx, adminID, "category.save", category.ID, models.JSONB{"slug": category.Slug})
	return nil
}

// SetUserStatus suspends or reinstates an account.
func (s *AdminService) SetUserStatus(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.UserType == models.UserTypeAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot be moderated", ErrForbidden)
	}

	user.Status = status
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	s.audit(ctx, adminID, "user.set_status", userID, models.JSONB{"status": string(status)})
	return user, nil
}

func (s *AdminService) audit(ctx context.Context, adminID uuid.UUID, action string, resourceID uuid.UUID, values models.JSONB) {
	entry := &models.AuditLog{
		UserID:       &adminID,
		Action:       action,
		ResourceType: "admin",
		ResourceID:   &resourceID,
		NewValues:    values,
	}
	if err := s.store.RecordAudit(ctx, entry); err != nil {
		logrus.WithError(err).WithField("action", action).Warn("Failed to record audit entry")
	}
}

func (s *AdminService) notifyOwner(ctx context.Context, listing *models.Listing, send func(*models.User) error) {
	if listing == nil {
		return
	}
	owner, err := s.store.GetUserByID(ctx, listing.OwnerID)
	if err != nil || owner == nil {
		logrus.WithError(err).WithField("listing_id", listing.ID).Warn("Could not load listing owner for notification")
		return
	}
	if err := send(owner); err != nil {
		logrus.WithError(err).WithField("listing_id", listing.ID).Warn("Failed to send moderation email")
	}
}
