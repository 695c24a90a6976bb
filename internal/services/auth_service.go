package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// AuthServiceImpl implements domain.AuthService: the
// signup → verify → login → refresh → logout state machine plus the
// password-reset overlay.
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	otpSvc          *OTPServiceImpl
	notificationSvc domain.NotificationService
	now             func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc *OTPServiceImpl,
	notificationSvc domain.NotificationService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		otpSvc:          otpSvc,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

// NormalizeEmail lowercases and trims an address; every email entering
// the service goes through this so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup implements domain.AuthService. The new account starts
// unverified; no tokens are issued until the emailed code is consumed.
func (s *AuthServiceImpl) Signup(ctx context.Context, fullName, email, password, role string) (*domain.User, error) {
	email = NormalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.otpSvc.Issue(ctx, user, domain.PurposeVerifyEmail, s.otpSvc.config.VerifyTTL); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyOTP implements domain.AuthService. The shared endpoint consumes
// the newest unexpired code across both purposes; only a verify-email
// match flips the verification flag.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}

	purpose, err := s.otpSvc.Consume(ctx, user.ID, code,
		domain.PurposeVerifyEmail, domain.PurposeResetPassword)
	if err != nil {
		return "", err
	}

	if purpose == domain.PurposeVerifyEmail {
		if err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
			return "", err
		}
	}
	return purpose, nil
}

// ResendOTP implements domain.AuthService (verify-email purpose).
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	if user.IsEmailVerified {
		return domain.ErrAlreadyVerified
	}

	if err := s.otpSvc.CheckCooldown(ctx, user.ID, domain.PurposeVerifyEmail); err != nil {
		return err
	}

	return s.otpSvc.Issue(ctx, user, domain.PurposeVerifyEmail, s.otpSvc.config.ResendTTL)
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	pair, err := s.tokenSvc.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	if err := s.userRepo.SetLogin(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh implements domain.AuthService. Rotation is a compare-and-swap
// on the stored token value, so a rotated-out token fails even though
// its signature still verifies.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	pair, err := s.tokenSvc.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if err := s.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, domain.ErrRefreshTokenInvalid) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout implements domain.AuthService. Best-effort by contract: a
// token that fails verification is silently ignored and the caller
// still succeeds.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	claims, err := s.tokenSvc.VerifyRefresh(refreshToken)
	if err != nil {
		return
	}
	_ = s.userRepo.ClearLogin(ctx, claims.UserID)
}

// RequestPasswordReset implements domain.AuthService
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	return s.otpSvc.Issue(ctx, user, domain.PurposeResetPassword, s.otpSvc.config.ResendTTL)
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	record, err := s.otpSvc.Match(ctx, user.ID, code, domain.PurposeResetPassword)
	if err != nil {
		return err
	}

	if s.passwordSvc.Verify(user.PasswordHash, newPassword) {
		return domain.ErrSamePassword
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, s.now()); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.otpSvc.Delete(ctx, record.ID); err != nil {
		return err
	}

	return s.notificationSvc.SendPasswordResetConfirmation(user.Email, user.FullName)
}
