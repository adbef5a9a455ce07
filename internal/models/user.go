package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a registered account. Password hash never leaves the store layer.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"size:30;not null;uniqueIndex"`
	Email         *string   `json:"email,omitempty" gorm:"size:255;uniqueIndex"`
	WalletAddress *string   `json:"wallet_address,omitempty" gorm:"size:42;uniqueIndex"`
	FirebaseUID   *string   `json:"-" gorm:"size:128;uniqueIndex"`
	PasswordHash  *string   `json:"-"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatar_url"`
	CoverURL      string    `json:"cover_url"`
	Location      string    `json:"location"`
	Website       string    `json:"website"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserCompact is the public profile subset attached to posts and comments.
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact returns the public profile subset of u.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// UserWithStats is a profile view with derived follow counts.
type UserWithStats struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
}

// ProfileFields lists the only user columns UpdateProfile may touch.
var ProfileFields = []string{"bio", "avatar_url", "cover_url", "location", "website"}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type WalletLoginRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required,eth_addr"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// AuthResponse is returned by every login flavour.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
