package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// PasswordServiceImpl implements domain.PasswordService. The same
// constant-work comparison backs both password checks and one-time-code
// checks, so neither leaks timing information.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{cost: 12}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
