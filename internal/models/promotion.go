// internal/models/promotion.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PromotionOrder records a paid featured/urgent upgrade for a listing.
type PromotionOrder struct {
	BaseModel
	Reference     string          `json:"reference" gorm:"size:20;uniqueIndex"`
	ListingID     uuid.UUID       `json:"listing_id" gorm:"type:uuid;not null;index"`
	BuyerID       uuid.UUID       `json:"buyer_id" gorm:"type:uuid;not null;index"`
	PromotionType PromotionType   `json:"promotion_type" gorm:"type:varchar(20);not null"`
	Amount        float64         `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency      Currency        `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	PaymentID     string          `json:"payment_id,omitempty" gorm:"size:255;index"`
	Status        PromotionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	DurationDays  int             `json:"duration_days" gorm:"default:7"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Buyer   *User    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
}
