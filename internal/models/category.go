// internal/models/category.go
package models

type Category struct {
	BaseModel
	Slug      string `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	NameAr    string `json:"name_ar" gorm:"size:100;not null"`
	NameEn    string `json:"name_en" gorm:"size:100;not null"`
	Icon      string `json:"icon" gorm:"size:50"`
	Color     string `json:"color" gorm:"size:20"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
	IsActive  bool   `json:"is_active" gorm:"default:true;index"`

	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:CategoryID"`
}

// Name returns the display name for a language code, defaulting to Arabic.
func (c *Category) Name(lang string) string {
	if lang == "en" {
		return c.NameEn
	}
	return c.NameAr
}
