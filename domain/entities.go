package domain

import (
	"io"
	"time"
)

// Roles accepted for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system. PasswordHash and RefreshToken
// never reach clients; handlers serialize users through PublicUser.
type User struct {
	ID                uint
	FullName          string
	Email             string
	PasswordHash      string
	Role              string
	IsEmailVerified   bool
	IsLoggedIn        bool
	RefreshToken      string
	PasswordChangedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PublicUser is the client-visible projection of a User.
type PublicUser struct {
	ID              uint      `json:"id"`
	FullName        string    `json:"fullname"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Public returns the projection of u safe to serialize.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}

// One-time code purposes. A code is only consumable for the workflow it
// was issued for.
const (
	PurposeVerifyEmail   = "verify-email"
	PurposeResetPassword = "reset-password"
)

// OneTimeCode is an ephemeral credential proof. Only the bcrypt hash of
// the code is stored; the newest unexpired record per (user, purpose)
// is the only consumable one.
type OneTimeCode struct {
	ID        uint
	UserID    uint
	CodeHash  string
	Purpose   string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// TokenPair holds one signed access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccessClaims carries enough identity to authorize a request without a
// user lookup.
type AccessClaims struct {
	UserID    uint
	Email     string
	Role      string
	IssuedAt  int64
	ExpiresAt int64
}

// RefreshClaims carries only the user id, minimizing blast radius if a
// refresh token leaks before rotation.
type RefreshClaims struct {
	UserID    uint
	IssuedAt  int64
	ExpiresAt int64
}

// AuthResult represents a successful login or refresh.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// Video categories (closed enum).
var VideoCategories = []string{"education", "entertainment", "sports", "music", "news"}

// ValidCategory reports whether s is one of the accepted video categories.
func ValidCategory(s string) bool {
	for _, c := range VideoCategories {
		if c == s {
			return true
		}
	}
	return false
}

// Video is the metadata record for an uploaded media object. Views
// increments at most once per distinct viewer for the lifetime of the
// record.
type Video struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublicID    string    `json:"publicId"`
	Duration    int64     `json:"duration,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Category    string    `json:"category"`
	UploadedBy  string    `json:"uploadedBy"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StoredObject is the result of pushing a media file to the upstream
// object store.
type StoredObject struct {
	URL      string
	PublicID string
	Size     int64
	Duration int64
}

// StreamResult is a negotiated upstream response ready to be relayed.
// Body is a live pass-through stream; the caller owns closing it.
type StreamResult struct {
	Status        int
	ContentRange  string
	ContentLength int64
	Body          io.ReadCloser
}
