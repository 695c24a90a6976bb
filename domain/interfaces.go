package domain

import (
	"context"
	"io"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uint, hash string, changedAt time.Time) error
	SetEmailVerified(ctx context.Context, userID uint) error
	// SetLogin stores the current refresh token and marks the user logged in.
	SetLogin(ctx context.Context, userID uint, refreshToken string) error
	// ClearLogin drops the stored refresh token and login flag.
	ClearLogin(ctx context.Context, userID uint) error
	// RotateRefreshToken swaps old for new only if old is still the stored
	// value. Returns ErrRefreshTokenInvalid when the stored value moved on.
	RotateRefreshToken(ctx context.Context, userID uint, old, new string) error
	Delete(ctx context.Context, id uint) error
}

// OTPRepository defines one-time code persistence. Expiry is enforced at
// read time: a fetched code past its expiry is treated as absent.
type OTPRepository interface {
	Create(ctx context.Context, code *OneTimeCode) error
	// FindLatest returns the most recently created unexpired code for the
	// user across the given purposes, or ErrOTPInvalidOrExpired.
	FindLatest(ctx context.Context, userID uint, purposes ...string) (*OneTimeCode, error)
	// LastIssuedAt returns the creation time of the newest code for the
	// (user, purpose) scope regardless of expiry; ok is false if none exist.
	LastIssuedAt(ctx context.Context, userID uint, purpose string) (time.Time, bool, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByPurpose(ctx context.Context, userID uint, purpose string) error
}

// VideoRepository defines video metadata persistence.
type VideoRepository interface {
	Create(ctx context.Context, video *Video) error
	FindByID(ctx context.Context, id uint) (*Video, error)
	Update(ctx context.Context, video *Video) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, limit int, category string) ([]Video, error)
	Trending(ctx context.Context, limit int) ([]Video, error)
	Search(ctx context.Context, query string) ([]Video, error)
	// RecordView counts the viewer once per video lifetime. It reports
	// whether this call was the viewer's first.
	RecordView(ctx context.Context, videoID uint, viewer string) (bool, error)
}

// TokenService defines pure token signing and verification. Side effects
// (persisting the refresh token) live in AuthService.
type TokenService interface {
	Issue(user *User) (*TokenPair, error)
	VerifyAccess(token string) (*AccessClaims, error)
	VerifyRefresh(token string) (*RefreshClaims, error)
}

// PasswordService defines constant-work hashing, used for both passwords
// and one-time codes.
type PasswordService interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// NotificationService defines outbound mail dispatch.
type NotificationService interface {
	SendOTPEmail(to, name, code string) error
	SendPasswordResetConfirmation(to, name string) error
}

// StorageService defines the upstream object store for video bytes.
type StorageService interface {
	UploadVideo(ctx context.Context, file io.Reader, filename string) (*StoredObject, error)
	DeleteVideo(ctx context.Context, publicID string) error
	// DeliveryURL applies format/quality normalization at the URL level.
	DeliveryURL(storedURL string) string
}

// AuthService orchestrates the signup → verify → login → refresh → logout
// lifecycle plus the password-reset overlay.
type AuthService interface {
	Signup(ctx context.Context, fullName, email, password, role string) (*User, error)
	// VerifyOTP consumes the newest unexpired code for the user across both
	// purposes and returns the purpose that matched.
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	// Logout is best-effort and never fails the caller.
	Logout(ctx context.Context, refreshToken string)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// VideoInput is the validated metadata for an upload.
type VideoInput struct {
	Title       string
	Description string
	Category    string
	Duration    int64
	UploadedBy  string
}

// VideoUpdate carries optional metadata changes; nil fields are untouched.
type VideoUpdate struct {
	Title       *string
	Description *string
	Category    *string
	UploadedBy  *string
}

// VideoService defines video CRUD against metadata plus the object store.
type VideoService interface {
	Upload(ctx context.Context, in VideoInput, file io.Reader, filename string) (*Video, error)
	Update(ctx context.Context, id uint, in VideoUpdate, file io.Reader, filename string) (*Video, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*Video, error)
	List(ctx context.Context, page, limit int, category string) ([]Video, error)
	Trending(ctx context.Context) ([]Video, error)
	Search(ctx context.Context, query string) ([]Video, error)
}

// StreamService negotiates a byte range with the upstream origin and
// hands back a pass-through stream.
type StreamService interface {
	Stream(ctx context.Context, videoID uint, rangeHeader, viewer string) (*StreamResult, error)
}
