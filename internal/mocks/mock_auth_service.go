package mocks

import (
	"context"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SignupFunc               func(ctx context.Context, fullName, email, password, role string) (*domain.User, error)
	VerifyOTPFunc            func(ctx context.Context, email, code string) (string, error)
	ResendOTPFunc            func(ctx context.Context, email string) error
	LoginFunc                func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc              func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc               func(ctx context.Context, refreshToken string)
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	ResetPasswordFunc        func(ctx context.Context, email, code, newPassword string) error

	LogoutCalls []string
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Signup registers a new account
func (m *MockAuthService) Signup(ctx context.Context, fullName, email, password, role string) (*domain.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, fullName, email, password, role)
	}
	return &domain.User{ID: 1, FullName: fullName, Email: email, Role: domain.RoleUser}, nil
}

// VerifyOTP consumes a code
func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code)
	}
	return domain.PurposeVerifyEmail, nil
}

// ResendOTP reissues a code
func (m *MockAuthService) ResendOTP(ctx context.Context, email string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Email: email, Role: domain.RoleUser},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil
}

// Refresh rotates a refresh token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Role: domain.RoleUser},
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}, nil
}

// Logout records the presented token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) {
	if m.LogoutFunc != nil {
		m.LogoutFunc(ctx, refreshToken)
		return
	}
	m.LogoutCalls = append(m.LogoutCalls, refreshToken)
}

// RequestPasswordReset starts the reset overlay
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return nil
}

// ResetPassword completes the reset overlay
func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}
