package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// OTPConfig bundles one-time-code issuing knobs.
type OTPConfig struct {
	Length         int
	VerifyTTL      time.Duration
	ResendTTL      time.Duration
	ResendCooldown time.Duration
}

// OTPServiceImpl issues and dispatches purpose-scoped one-time codes.
// Codes are stored bcrypt-hashed; issuing a new code supersedes (and
// deletes) every prior code in the same (user, purpose) scope.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	passwordSvc     domain.PasswordService
	notificationSvc domain.NotificationService
	config          OTPConfig
	now             func() time.Time
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, passwordSvc domain.PasswordService, notificationSvc domain.NotificationService, config OTPConfig) *OTPServiceImpl {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		passwordSvc:     passwordSvc,
		notificationSvc: notificationSvc,
		config:          config,
		now:             time.Now,
	}
}

// Issue replaces any prior codes for (user, purpose), persists a fresh
// hashed code with the given TTL and dispatches it by mail.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User, purpose string, ttl time.Duration) error {
	if err := s.otpRepo.DeleteByPurpose(ctx, user.ID, purpose); err != nil {
		return fmt.Errorf("failed to supersede prior codes: %w", err)
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp code: %w", err)
	}

	hash, err := s.passwordSvc.Hash(code)
	if err != nil {
		return fmt.Errorf("failed to hash otp code: %w", err)
	}

	record := &domain.OneTimeCode{
		UserID:    user.ID,
		CodeHash:  hash,
		Purpose:   purpose,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.otpRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to store otp code: %w", err)
	}

	if err := s.notificationSvc.SendOTPEmail(user.Email, user.FullName, code); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

// CheckCooldown returns ErrOTPResendCooldown while the most recently
// issued code for the scope is younger than the configured cooldown.
func (s *OTPServiceImpl) CheckCooldown(ctx context.Context, userID uint, purpose string) error {
	issuedAt, ok, err := s.otpRepo.LastIssuedAt(ctx, userID, purpose)
	if err != nil {
		return err
	}
	if ok && s.now().Sub(issuedAt) < s.config.ResendCooldown {
		return domain.ErrOTPResendCooldown
	}
	return nil
}

// Match checks code against the newest unexpired record for the user
// across the given purposes without consuming it. The comparison is
// constant-work (bcrypt), never plaintext.
func (s *OTPServiceImpl) Match(ctx context.Context, userID uint, code string, purposes ...string) (*domain.OneTimeCode, error) {
	record, err := s.otpRepo.FindLatest(ctx, userID, purposes...)
	if err != nil {
		return nil, err
	}

	if !s.passwordSvc.Verify(record.CodeHash, code) {
		return nil, domain.ErrOTPInvalid
	}
	return record, nil
}

// Delete removes a matched code; consumption is single-use.
func (s *OTPServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.otpRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to consume otp code: %w", err)
	}
	return nil
}

// Consume matches and immediately deletes, returning the matched purpose.
func (s *OTPServiceImpl) Consume(ctx context.Context, userID uint, code string, purposes ...string) (string, error) {
	record, err := s.Match(ctx, userID, code, purposes...)
	if err != nil {
		return "", err
	}
	if err := s.Delete(ctx, record.ID); err != nil {
		return "", err
	}
	return record.Purpose, nil
}

// generateCode produces a zero-padded numeric code of the configured length.
func (s *OTPServiceImpl) generateCode() (string, error) {
	length := s.config.Length
	if length <= 0 {
		length = 4
	}

	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
