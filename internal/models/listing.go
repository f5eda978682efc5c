// internal/models/listing.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Listing struct {
	BaseModel
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	AdType      AdType         `json:"ad_type" gorm:"type:varchar(20);not null;index"`
	Condition   Condition      `json:"condition,omitempty" gorm:"type:varchar(20)"`
	Price       *float64       `json:"price,omitempty" gorm:"type:decimal(12,2)"`
	Currency    Currency       `json:"currency" gorm:"type:varchar(3);default:'ILS'"`
	PriceType   PriceType      `json:"price_type" gorm:"type:varchar(20);not null"`
	City        string         `json:"city" gorm:"size:100;index"`
	Region      Region         `json:"region" gorm:"type:varchar(30);index"`
	Status      ListingStatus  `json:"status" gorm:"type:varchar(20);default:'active';index"`
	IsFeatured  bool           `json:"is_featured" gorm:"default:false;index"`
	IsUrgent    bool           `json:"is_urgent" gorm:"default:false"`
	Tags        pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`

	ViewsCount     int64 `json:"views_count" gorm:"default:0"`
	FavoritesCount int64 `json:"favorites_count" gorm:"default:0"`
	MessagesCount  int64 `json:"messages_count" gorm:"default:0"`

	ExpiresAt *time.Time `json:"expires_at"`

	// Relationships
	Owner    *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Category *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ListingImage `json:"images,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

type ListingImage struct {
	BaseModel
	ListingID  uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	URL        string    `json:"url" gorm:"size:512;not null"`
	StorageKey string    `json:"-" gorm:"size:512"`
	IsPrimary  bool      `json:"is_primary" gorm:"default:false"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
}

// PrimaryImage returns the image flagged primary, falling back to the first by
// sort order. At most one image is expected to carry the flag.
func (l *Listing) PrimaryImage() *ListingImage {
	var fallback *ListingImage
	for i := range l.Images {
		img := &l.Images[i]
		if img.IsPrimary {
			return img
		}
		if fallback == nil || img.SortOrder < fallback.SortOrder {
			fallback = img
		}
	}
	return fallback
}

// Expired reports whether the listing's lifetime has passed.
func (l *Listing) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
