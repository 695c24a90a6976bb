package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("please verify your email")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrSamePassword       = errors.New("new password cannot be same as old")
)

// OTP errors
var (
	ErrOTPInvalidOrExpired = errors.New("invalid or expired otp")
	ErrOTPInvalid          = errors.New("invalid otp code")
	ErrOTPResendCooldown   = errors.New("please wait before requesting another otp")
)

// Token errors
var (
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenMissing = errors.New("no refresh token")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
)

// Authorization errors
var (
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// Video errors
var (
	ErrVideoNotFound       = errors.New("video not found")
	ErrVideoTitleExists    = errors.New("video title already exists")
	ErrUpstreamUnavailable = errors.New("upstream media fetch failed")
)

// ValidationError carries a field-level message for malformed input.
// The boundary translator maps it to a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Message }

// NewValidationError wraps a field and a human-readable message as a
// validation failure.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
