// internal/services/user_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/utils"
)

type UserService struct {
	store   store.Store
	timeout time.Duration
}

type UpdateProfileRequest struct {
	Phone       *string        `json:"phone,omitempty" validate:"omitempty,ps_phone"`
	City        *string        `json:"city,omitempty" validate:"omitempty,max=100"`
	Region      *models.Region `json:"region,omitempty"`
	ProfileData models.JSONB   `json:"profile_data,omitempty"`
}

func NewUserService(s store.Store, timeout time.Duration) *UserService {
	return &UserService{store: s, timeout: timeout}
}

func (s *UserService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// GetProfile returns the full account for its owner, or (nil, nil).
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return user, nil
}

// GetPublicProfile returns the seller-facing view of an account.
func (s *UserService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (map[string]interface{}, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != models.UserStatusActive {
		return nil, nil
	}
	return user.PublicProfile(), nil
}

// UpdateProfile applies a partial patch to the actor's own account.
func (s *UserService) UpdateProfile(ctx context.Context, actorID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Region != nil && *req.Region != "" && !req.Region.Valid() {
		return nil, fmt.Errorf("%w: invalid region %q", ErrValidation, *req.Region)
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Region != nil {
		user.Region = *req.Region
	}
	if req.ProfileData != nil {
		user.ProfileData = req.ProfileData
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return user, nil
}

// SetAvatar records the uploaded avatar URL on the account.
func (s *UserService) SetAvatar(ctx context.Context, actorID uuid.UUID, url string) (*models.User, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.AvatarURL = url
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return user, nil
}

// DeactivateAccount disables the account without destroying its listings;
// disabled sellers stop showing up in public profiles.
func (s *UserService) DeactivateAccount(ctx context.Context, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrAuthRequired
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if user == nil {
		return ErrNotFound
	}

	user.Status = models.UserStatusSuspended
	if err := s.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}
