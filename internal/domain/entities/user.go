package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a club member
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	City         string    `json:"city"`
	BikeModel    string    `json:"bikeModel"`
	VIN          string    `json:"vin"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	IsVerified   bool      `json:"isVerified"`
	IsCaptain    bool      `json:"isCaptain"`
	SafetyRating null.Int  `json:"safetyRating"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the public projection embedded in ride payloads.
type UserSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	BikeModel    string    `json:"bikeModel,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	IsVerified   bool      `json:"isVerified"`
	IsCaptain    bool      `json:"isCaptain"`
	SafetyRating null.Int  `json:"safetyRating"`
}

// Summary projects the public fields of a user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		AvatarURL:    u.AvatarURL,
		BikeModel:    u.BikeModel,
		IsAdmin:      u.IsAdmin,
		IsVerified:   u.IsVerified,
		IsCaptain:    u.IsCaptain,
		SafetyRating: u.SafetyRating,
	}
}

// SignupInput represents input for member registration
type SignupInput struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	City      string `json:"city" binding:"required,min=1,max=100"`
	BikeModel string `json:"bikeModel" binding:"required,min=1,max=100"`
	VIN       string `json:"vin" binding:"required,len=17,alphanum"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// RefreshInput carries a refresh token.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Message      string `json:"message,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// UpdateProfileInput holds the self-service profile fields; nil means unchanged.
type UpdateProfileInput struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	City      *string `json:"city" binding:"omitempty,min=1,max=100"`
	BikeModel *string `json:"bikeModel" binding:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url,max=500"`
}

// IsEmpty reports whether no field was supplied.
func (in UpdateProfileInput) IsEmpty() bool {
	return in.Name == nil && in.City == nil && in.BikeModel == nil && in.AvatarURL == nil
}

// UserFilter narrows the admin member listing.
type UserFilter struct {
	Search   string
	Verified *bool
}

// SafetyRatingInput is the admin rating payload.
type SafetyRatingInput struct {
	SafetyRating int `json:"safetyRating" binding:"required,min=1,max=5"`
}
