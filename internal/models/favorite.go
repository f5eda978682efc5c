// internal/models/favorite.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is the (user, listing) membership behind favorites_count.
type Favorite struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	ListingID uuid.UUID `json:"listing_id" gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
