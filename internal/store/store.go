// internal/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/models"
)

// ErrListingNotFound signals a mutation against an absent listing from
// methods that have no nil-result slot to report it.
var ErrListingNotFound = errors.New("listing not found")

// ListingFilter holds the optional predicates a listings query may carry.
// Nil/zero fields impose no constraint. Numeric ranges are inclusive and
// Search is a case-insensitive substring match over title and description.
type ListingFilter struct {
	CategoryID   *uuid.UUID
	City         string
	Region       *models.Region
	MinPrice     *float64
	MaxPrice     *float64
	Currency     *models.Currency
	Condition    *models.Condition
	AdType       *models.AdType
	FeaturedOnly bool
	UrgentOnly   bool
	OwnerID      *uuid.UUID
	Search       string
	Status       *models.ListingStatus
}

// ListingPage is the one result shape both backing sources produce.
type ListingPage struct {
	Items    []models.Listing `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasMore  bool             `json:"has_more"`
}

// NewListingPage computes page metadata identically for every source:
// HasMore is true iff page*pageSize < total.
func NewListingPage(items []models.Listing, total int64, page, pageSize int) *ListingPage {
	return &ListingPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  int64(page*pageSize) < total,
	}
}

// Store is the contract shared by the record store (PostgreSQL) and the
// fixture provider (in-memory sample data). Callers never branch on which
// implementation answered.
//
// Single-entity getters return (nil, nil) when the entity does not exist;
// a non-nil error always means the backing source itself failed.
type Store interface {
	// Listings
	ListListings(ctx context.Context, filter ListingFilter, page, pageSize int) (*ListingPage, error)
	GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	CreateListing(ctx context.Context, listing *models.Listing) error
	UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Listing, error)
	DeleteListing(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	AddListingImage(ctx context.Context, image *models.ListingImage) error

	// Favorites
	ToggleFavorite(ctx context.Context, userID, listingID uuid.UUID) (favorited bool, count int64, err error)
	IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID, page, pageSize int) (*ListingPage, error)

	// Categories
	ListCategories(ctx context.Context) ([]models.Category, error)
	SaveCategory(ctx context.Context, category *models.Category) error

	// Users
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error

	// Promotions
	SavePromotionOrder(ctx context.Context, order *models.PromotionOrder) error
	GetPromotionOrder(ctx context.Context, id uuid.UUID) (*models.PromotionOrder, error)

	// Audit
	RecordAudit(ctx context.Context, entry *models.AuditLog) error
}
