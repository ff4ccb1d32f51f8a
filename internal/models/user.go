package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model    `json:"-"`
	ID            uint     `json:"id" gorm:"primaryKey"`
	DisplayName   string   `json:"displayName"`
	Handle        string   `json:"handle" gorm:"uniqueIndex"`
	Email         string   `json:"email" gorm:"uniqueIndex"`
	Password      string   `json:"-"` // bcrypt hash, never serialized
	AvatarURL     string   `json:"avatarUrl"`
	Bio           string   `json:"bio"`
	PreferredTags []string `json:"preferredTags" gorm:"serializer:json"`
}

// UserCompact is the author projection attached to feed items. It never
// carries credentials or preference data.
type UserCompact struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"displayName"`
	Handle      string `json:"handle"`
	AvatarURL   string `json:"avatarUrl"`
}

// ToCompact projects a user down to the fields feeds are allowed to expose.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Handle:      u.Handle,
		AvatarURL:   u.AvatarURL,
	}
}

type SignupRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=2,max=50"`
	Handle      string `json:"handle" validate:"required,min=2,max=30,alphanum"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,min=2,max=50"`
	AvatarURL   string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=300"`
}

// UpdatePreferredTagsRequest replaces the caller's preferred tag set. The
// submitted names count as tag association events.
type UpdatePreferredTagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1,dive,min=1,max=40"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
