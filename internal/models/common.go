// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserType string

const (
	UserTypeMember UserType = "member"
	UserTypeAdmin  UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type ListingStatus string

const (
	ListingStatusDraft    ListingStatus = "draft"
	ListingStatusActive   ListingStatus = "active"
	ListingStatusSold     ListingStatus = "sold"
	ListingStatusExpired  ListingStatus = "expired"
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusRejected ListingStatus = "rejected"
)

type AdType string

const (
	AdTypeSell    AdType = "sell"
	AdTypeBuy     AdType = "buy"
	AdTypeRent    AdType = "rent"
	AdTypeService AdType = "service"
	AdTypeJob     AdType = "job"
)

func (t AdType) Valid() bool {
	switch t {
	case AdTypeSell, AdTypeBuy, AdTypeRent, AdTypeService, AdTypeJob:
		return true
	}
	return false
}

type PriceType string

const (
	PriceTypeFixed      PriceType = "fixed"
	PriceTypeNegotiable PriceType = "negotiable"
	PriceTypeFree       PriceType = "free"
	PriceTypeContact    PriceType = "contact"
)

func (t PriceType) Valid() bool {
	switch t {
	case PriceTypeFixed, PriceTypeNegotiable, PriceTypeFree, PriceTypeContact:
		return true
	}
	return false
}

// RequiresPrice reports whether listings of this price type carry an amount.
// Free and contact listings never store a price, even if one was submitted.
func (t PriceType) RequiresPrice() bool {
	return t == PriceTypeFixed || t == PriceTypeNegotiable
}

type Currency string

const (
	CurrencyILS Currency = "ILS"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyJOD Currency = "JOD"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyILS, CurrencyUSD, CurrencyEUR, CurrencyJOD:
		return true
	}
	return false
}

type Condition string

const (
	ConditionNew        Condition = "new"
	ConditionLikeNew    Condition = "like_new"
	ConditionGood       Condition = "good"
	ConditionAcceptable Condition = "acceptable"
)

// Region is a Palestinian governorate code.
type Region string

const (
	RegionJerusalem  Region = "jerusalem"
	RegionRamallah   Region = "ramallah"
	RegionNablus     Region = "nablus"
	RegionHebron     Region = "hebron"
	RegionBethlehem  Region = "bethlehem"
	RegionJenin      Region = "jenin"
	RegionTulkarm    Region = "tulkarm"
	RegionQalqilya   Region = "qalqilya"
	RegionSalfit     Region = "salfit"
	RegionJericho    Region = "jericho"
	RegionTubas      Region = "tubas"
	RegionGaza       Region = "gaza"
	RegionNorthGaza  Region = "north_gaza"
	RegionKhanYounis Region = "khan_younis"
	RegionRafah      Region = "rafah"
	RegionDeirBalah  Region = "deir_al_balah"
)

var regions = map[Region]bool{
	RegionJerusalem: true, RegionRamallah: true, RegionNablus: true,
	RegionHebron: true, RegionBethlehem: true, RegionJenin: true,
	RegionTulkarm: true, RegionQalqilya: true, RegionSalfit: true,
	RegionJericho: true, RegionTubas: true, RegionGaza: true,
	RegionNorthGaza: true, RegionKhanYounis: true, RegionRafah: true,
	RegionDeirBalah: true,
}

func (r Region) Valid() bool {
	return regions[r]
}

type PromotionType string

const (
	PromotionTypeFeatured PromotionType = "featured"
	PromotionTypeUrgent   PromotionType = "urgent"
)

type PromotionStatus string

const (
	PromotionStatusPending   PromotionStatus = "pending"
	PromotionStatusCompleted PromotionStatus = "completed"
	PromotionStatusFailed    PromotionStatus = "failed"
)
