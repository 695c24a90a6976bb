package mocks

import (
	"context"
	"time"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc             func(ctx context.Context, user *domain.User) error
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.User, error)
	FindAllFunc            func(ctx context.Context) ([]domain.User, error)
	UpdateFunc             func(ctx context.Context, user *domain.User) error
	UpdatePasswordFunc     func(ctx context.Context, userID uint, hash string, changedAt time.Time) error
	SetEmailVerifiedFunc   func(ctx context.Context, userID uint) error
	SetLoginFunc           func(ctx context.Context, userID uint, refreshToken string) error
	ClearLoginFunc         func(ctx context.Context, userID uint) error
	RotateRefreshTokenFunc func(ctx context.Context, userID uint, old, new string) error
	DeleteFunc             func(ctx context.Context, id uint) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	if user.ID == 0 {
		user.ID = 1
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindAll lists every user
func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, hash string, changedAt time.Time) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, hash, changedAt)
	}
	return nil
}

// SetEmailVerified marks the account verified
func (m *MockUserRepository) SetEmailVerified(ctx context.Context, userID uint) error {
	if m.SetEmailVerifiedFunc != nil {
		return m.SetEmailVerifiedFunc(ctx, userID)
	}
	return nil
}

// SetLogin stores the refresh token and login flag
func (m *MockUserRepository) SetLogin(ctx context.Context, userID uint, refreshToken string) error {
	if m.SetLoginFunc != nil {
		return m.SetLoginFunc(ctx, userID, refreshToken)
	}
	return nil
}

// ClearLogin clears the refresh token and login flag
func (m *MockUserRepository) ClearLogin(ctx context.Context, userID uint) error {
	if m.ClearLoginFunc != nil {
		return m.ClearLoginFunc(ctx, userID)
	}
	return nil
}

// RotateRefreshToken swaps the stored refresh token if old still matches
func (m *MockUserRepository) RotateRefreshToken(ctx context.Context, userID uint, old, new string) error {
	if m.RotateRefreshTokenFunc != nil {
		return m.RotateRefreshTokenFunc(ctx, userID, old, new)
	}
	return nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
