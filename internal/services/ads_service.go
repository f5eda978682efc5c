// internal/services/ads_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/utils"
)

// Phase is the lifecycle of a fetch on one service instance.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// ListingState is the per-instance snapshot consumers render from. A failed
// refetch keeps the last good items visible; only ErrorKey changes.
type ListingState struct {
	Phase    Phase            `json:"phase"`
	Items    []models.Listing `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasMore  bool             `json:"has_more"`
	ErrorKey string           `json:"error_key,omitempty"`
}

// AdsService presents one asynchronous interface over whichever source was
// injected at construction. Callers never learn which source answered.
type AdsService struct {
	store      store.Store
	timeout    time.Duration
	expiryDays int

	mu         sync.Mutex
	generation uint64
	state      ListingState
}

type CreateListingRequest struct {
	Title       string           `json:"title" validate:"required,min=3,max=255"`
	Description string           `json:"description" validate:"required,min=10"`
	CategoryID  uuid.UUID        `json:"category_id" validate:"required"`
	AdType      models.AdType    `json:"ad_type" validate:"required"`
	Condition   models.Condition `json:"condition,omitempty"`
	Price       *float64         `json:"price,omitempty" validate:"omitempty,min=0"`
	Currency    models.Currency  `json:"currency,omitempty"`
	PriceType   models.PriceType `json:"price_type" validate:"required"`
	City        string           `json:"city" validate:"required,max=100"`
	Region      models.Region    `json:"region" validate:"required"`
	Tags        []string         `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=2,max=30"`
}

type UpdateListingRequest struct {
	Title       *string               `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description *string               `json:"description,omitempty" validate:"omitempty,min=10"`
	CategoryID  *uuid.UUID            `json:"category_id,omitempty"`
	AdType      *models.AdType        `json:"ad_type,omitempty"`
	Condition   *models.Condition     `json:"condition,omitempty"`
	Price       *float64              `json:"price,omitempty" validate:"omitempty,min=0"`
	Currency    *models.Currency      `json:"currency,omitempty"`
	PriceType   *models.PriceType     `json:"price_type,omitempty"`
	City        *string               `json:"city,omitempty" validate:"omitempty,max=100"`
	Region      *models.Region        `json:"region,omitempty"`
	Status      *models.ListingStatus `json:"status,omitempty"`
	Tags        []string              `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=2,max=30"`
}

func NewAdsService(s store.Store, timeout time.Duration, expiryDays int) *AdsService {
	if expiryDays <= 0 {
		expiryDays = 30
	}
	return &AdsService{
		store:      s,
		timeout:    timeout,
		expiryDays: expiryDays,
		state:      ListingState{Phase: PhaseIdle},
	}
}

// withDeadline guards every store call so a dead backend cannot hang the
// caller indefinitely.
func (s *AdsService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// State returns a snapshot of the instance's fetch state.
func (s *AdsService) State() ListingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	state.Items = make([]models.Listing, len(s.state.Items))
	copy(state.Items, s.state.Items)
	return state
}

// FetchListings loads the matching page, newest first. append extends the
// held items instead of replacing them. Responses to calls that were
// superseded by a newer fetch on this instance are discarded: a slow earlier
// response never overwrites a faster later one.
func (s *AdsService) FetchListings(ctx context.Context, filter store.ListingFilter, params utils.PaginationParams) (*store.ListingPage, error) {
	if params.Page < 1 || params.PageSize < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1 and page_size > 0", ErrValidation)
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state.Phase = PhaseLoading
	s.mu.Unlock()

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	page, err := s.store.ListListings(ctx, filter, params.Page, params.PageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// A newer fetch owns the state now.
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackend, err)
		}
		return page, nil
	}

	if err != nil {
		logrus.WithError(err).Warn("Listings fetch failed")
		// Keep the last good items visible.
		s.state.Phase = PhaseError
		s.state.ErrorKey = i18n.KeyListingFetchFailed
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	if params.Append && params.Page > 1 {
		s.state.Items = append(s.state.Items, page.Items...)
	} else {
		s.state.Items = page.Items
	}
	s.state.Total = page.Total
	s.state.Page = page.Page
	s.state.PageSize = page.PageSize
	s.state.HasMore = page.HasMore
	s.state.Phase = PhaseReady
	s.state.ErrorKey = ""

	return page, nil
}

// GetListingByID returns the listing joined with its images, category, and
// owner, or (nil, nil) when it does not exist. Absence is not a failure.
// Reads by anyone but the owner bump the view counter.
func (s *AdsService) GetListingByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID, viewerIsAdmin bool) (*models.Listing, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	listing, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if listing == nil {
		return nil, nil
	}

	isOwner := viewerID != nil && *viewerID == listing.OwnerID
	if listing.Status != models.ListingStatusActive && !isOwner && !viewerIsAdmin {
		// Drafts and moderated listings are invisible to everyone else.
		return nil, nil
	}

	if !isOwner {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.IncrementViews(ctx, id); err != nil {
				logrus.WithError(err).Debug("Failed to increment view count")
			}
		}()
	}

	return listing, nil
}

// CreateListing publishes a new listing for the authenticated actor. The
// owner comes from the session, status defaults to active, the listing
// expires after the configured number of days, and counters start at zero.
// Validation rejects bad input before any store call is attempted.
func (s *AdsService) CreateListing(ctx context.Context, actorID uuid.UUID, req *CreateListingRequest) (*models.Listing, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.AdType.Valid() {
		return nil, fmt.Errorf("%w: invalid ad_type %q", ErrValidation, req.AdType)
	}
	if !req.PriceType.Valid() {
		return nil, fmt.Errorf("%w: invalid price_type %q", ErrValidation, req.PriceType)
	}
	if !req.Region.Valid() {
		return nil, fmt.Errorf("%w: invalid region %q", ErrValidation, req.Region)
	}

	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyILS
	}
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: invalid currency %q", ErrValidation, currency)
	}

	// Exactly the fields the price type calls for: free and contact listings
	// silently drop any supplied price.
	price := req.Price
	if req.PriceType.RequiresPrice() {
		if price == nil {
			return nil, fmt.Errorf("%w: price is required for price_type %q", ErrValidation, req.PriceType)
		}
	} else {
		price = nil
	}

	expiresAt := time.Now().AddDate(0, 0, s.expiryDays)
	listing := &models.Listing{
		OwnerID:     actorID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		AdType:      req.AdType,
		Condition:   req.Condition,
		Price:       price,
		Currency:    currency,
		PriceType:   req.PriceType,
		City:        req.City,
		Region:      req.Region,
		Tags:        pq.StringArray(req.Tags),
		Status:      models.ListingStatusActive,
		ExpiresAt:   &expiresAt,
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	if err := s.store.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return listing, nil
}

// UpdateListing applies a partial patch and returns the merged entity. Only
// the owner (or an admin) may modify a listing, and ownership itself can
// never change.
func (s *AdsService) UpdateListing(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *UpdateListingRequest, actorIsAdmin bool) (*models.Listing, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	existing, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.OwnerID != actorID && !actorIsAdmin {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.AdType != nil {
		if !req.AdType.Valid() {
			return nil, fmt.Errorf("%w: invalid ad_type %q", ErrValidation, *req.AdType)
		}
		updates["ad_type"] = *req.AdType
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}
	if req.Currency != nil {
		if !req.Currency.Valid() {
			return nil, fmt.Errorf("%w: invalid currency %q", ErrValidation, *req.Currency)
		}
		updates["currency"] = *req.Currency
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Region != nil {
		if !req.Region.Valid() {
			return nil, fmt.Errorf("%w: invalid region %q", ErrValidation, *req.Region)
		}
		updates["region"] = *req.Region
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	priceType := existing.PriceType
	if req.PriceType != nil {
		if !req.PriceType.Valid() {
			return nil, fmt.Errorf("%w: invalid price_type %q", ErrValidation, *req.PriceType)
		}
		priceType = *req.PriceType
		updates["price_type"] = priceType
	}
	switch {
	case !priceType.RequiresPrice():
		updates["price"] = nil
	case req.Price != nil:
		updates["price"] = *req.Price
	}

	listing, err := s.store.UpdateListing(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}

// DeleteListing removes a listing from the active set. Deleting an already
// absent listing succeeds, so the operation is idempotent.
func (s *AdsService) DeleteListing(ctx context.Context, actorID uuid.UUID, id uuid.UUID, actorIsAdmin bool) (bool, error) {
	if actorID == uuid.Nil {
		return false, ErrAuthRequired
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	existing, err := s.store.GetListing(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if existing == nil {
		return true, nil
	}
	if existing.OwnerID != actorID && !actorIsAdmin {
		return false, ErrForbidden
	}

	if _, err := s.store.DeleteListing(ctx, id); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return true, nil
}

// ToggleFavorite flips favorite membership for the actor, moving the
// listing's favorites_count with it in the same direction.
func (s *AdsService) ToggleFavorite(ctx context.Context, actorID uuid.UUID, listingID uuid.UUID) (bool, int64, error) {
	if actorID == uuid.Nil {
		return false, 0, ErrAuthRequired
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	favorited, count, err := s.store.ToggleFavorite(ctx, actorID, listingID)
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return favorited, count, nil
}

// ListFavorites pages through the actor's favorited listings.
func (s *AdsService) ListFavorites(ctx context.Context, actorID uuid.UUID, params utils.PaginationParams) (*store.ListingPage, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	page, err := s.store.ListFavorites(ctx, actorID, params.Page, params.PageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return page, nil
}

// IsFavorite reports whether the actor has favorited the listing.
func (s *AdsService) IsFavorite(ctx context.Context, actorID uuid.UUID, listingID uuid.UUID) (bool, error) {
	if actorID == uuid.Nil {
		return false, nil
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	favorited, err := s.store.IsFavorite(ctx, actorID, listingID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return favorited, nil
}

// AttachImage stores an uploaded image record for a listing the actor owns.
func (s *AdsService) AttachImage(ctx context.Context, actorID uuid.UUID, listingID uuid.UUID, url, storageKey string, isPrimary bool, sortOrder int) (*models.ListingImage, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthRequired
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
	if existing.OwnerID != actorID {
		return nil, ErrForbidden
	}

	image := &models.ListingImage{
		ListingID:  listingID,
		URL:        url,
		StorageKey: storageKey,
		IsPrimary:  isPrimary,
		SortOrder:  sortOrder,
	}
	if err := s.store.AddListingImage(ctx, image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return image, nil
}
