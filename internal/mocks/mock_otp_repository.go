package mocks

import (
	"context"
	"time"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	CreateFunc          func(ctx context.Context, code *domain.OneTimeCode) error
	FindLatestFunc      func(ctx context.Context, userID uint, purposes ...string) (*domain.OneTimeCode, error)
	LastIssuedAtFunc    func(ctx context.Context, userID uint, purpose string) (time.Time, bool, error)
	DeleteByIDFunc      func(ctx context.Context, id uint) error
	DeleteByPurposeFunc func(ctx context.Context, userID uint, purpose string) error
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Create persists a new code record
func (m *MockOTPRepository) Create(ctx context.Context, code *domain.OneTimeCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

// FindLatest returns the newest unexpired code
func (m *MockOTPRepository) FindLatest(ctx context.Context, userID uint, purposes ...string) (*domain.OneTimeCode, error) {
	if m.FindLatestFunc != nil {
		return m.FindLatestFunc(ctx, userID, purposes...)
	}
	// Default behavior: nothing outstanding
	return nil, domain.ErrOTPInvalidOrExpired
}

// LastIssuedAt returns the newest code's creation time
func (m *MockOTPRepository) LastIssuedAt(ctx context.Context, userID uint, purpose string) (time.Time, bool, error) {
	if m.LastIssuedAtFunc != nil {
		return m.LastIssuedAtFunc(ctx, userID, purpose)
	}
	return time.Time{}, false, nil
}

// DeleteByID removes one code record
func (m *MockOTPRepository) DeleteByID(ctx context.Context, id uint) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

// DeleteByPurpose removes all codes in a (user, purpose) scope
func (m *MockOTPRepository) DeleteByPurpose(ctx context.Context, userID uint, purpose string) error {
	if m.DeleteByPurposeFunc != nil {
		return m.DeleteByPurposeFunc(ctx, userID, purpose)
	}
	return nil
}
