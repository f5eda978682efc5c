// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Phone        string     `json:"phone,omitempty" gorm:"size:20"`
	UserType     UserType   `json:"user_type" gorm:"type:varchar(20);default:'member'"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	City         string     `json:"city,omitempty" gorm:"size:100"`
	Region       Region     `json:"region,omitempty" gorm:"type:varchar(30)"`
	AvatarURL    string     `json:"avatar_url,omitempty" gorm:"size:512"`
	ProfileData  JSONB      `json:"profile_data,omitempty" gorm:"type:jsonb"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Listings  []Listing  `json:"listings,omitempty" gorm:"foreignKey:OwnerID"`
	Favorites []Favorite `json:"favorites,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// PublicProfile strips fields that only the account owner should see.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"city":       u.City,
		"region":     u.Region,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
	}
}
