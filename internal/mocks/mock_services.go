package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc         func(user *domain.User) (*domain.TokenPair, error)
	VerifyAccessFunc  func(token string) (*domain.AccessClaims, error)
	VerifyRefreshFunc func(token string) (*domain.RefreshClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue signs a token pair
func (m *MockTokenService) Issue(user *domain.User) (*domain.TokenPair, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(user)
	}
	return &domain.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil
}

// VerifyAccess validates an access token
func (m *MockTokenService) VerifyAccess(token string) (*domain.AccessClaims, error) {
	if m.VerifyAccessFunc != nil {
		return m.VerifyAccessFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// VerifyRefresh validates a refresh token
func (m *MockTokenService) VerifyRefresh(token string) (*domain.RefreshClaims, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// MockPasswordService implements domain.PasswordService for testing with
// reversible plaintext hashes so assertions stay readable.
type MockPasswordService struct {
	HashFunc   func(plain string) (string, error)
	VerifyFunc func(hash, plain string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash produces a recognizable fake hash
func (m *MockPasswordService) Hash(plain string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(plain)
	}
	return "hashed:" + plain, nil
}

// Verify matches the fake hash format
func (m *MockPasswordService) Verify(hash, plain string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hash, plain)
	}
	return hash == "hashed:"+plain
}

// MockNotificationService implements domain.NotificationService and
// records every dispatch for assertions.
type MockNotificationService struct {
	SendOTPEmailFunc                  func(to, name, code string) error
	SendPasswordResetConfirmationFunc func(to, name string) error

	SentCodes     []string
	Confirmations []string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendOTPEmail records the dispatched code
func (m *MockNotificationService) SendOTPEmail(to, name, code string) error {
	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(to, name, code)
	}
	m.SentCodes = append(m.SentCodes, code)
	return nil
}

// SendPasswordResetConfirmation records the recipient
func (m *MockNotificationService) SendPasswordResetConfirmation(to, name string) error {
	if m.SendPasswordResetConfirmationFunc != nil {
		return m.SendPasswordResetConfirmationFunc(to, name)
	}
	m.Confirmations = append(m.Confirmations, to)
	return nil
}

// MockStorageService implements domain.StorageService for testing
type MockStorageService struct {
	UploadVideoFunc func(ctx context.Context, file io.Reader, filename string) (*domain.StoredObject, error)
	DeleteVideoFunc func(ctx context.Context, publicID string) error
	DeliveryURLFunc func(storedURL string) string

	Deleted []string
}

// NewMockStorageService creates a new MockStorageService with default behaviors
func NewMockStorageService() *MockStorageService {
	return &MockStorageService{}
}

// UploadVideo pretends to store the object
func (m *MockStorageService) UploadVideo(ctx context.Context, file io.Reader, filename string) (*domain.StoredObject, error) {
	if m.UploadVideoFunc != nil {
		return m.UploadVideoFunc(ctx, file, filename)
	}
	return &domain.StoredObject{
		URL:      "https://store.example/upload/" + filename,
		PublicID: "videos/" + strings.TrimSuffix(filename, ".mp4"),
		Size:     1024,
	}, nil
}

// DeleteVideo records the destroyed object id
func (m *MockStorageService) DeleteVideo(ctx context.Context, publicID string) error {
	if m.DeleteVideoFunc != nil {
		return m.DeleteVideoFunc(ctx, publicID)
	}
	m.Deleted = append(m.Deleted, publicID)
	return nil
}

// DeliveryURL applies the fake delivery transform
func (m *MockStorageService) DeliveryURL(storedURL string) string {
	if m.DeliveryURLFunc != nil {
		return m.DeliveryURLFunc(storedURL)
	}
	return strings.Replace(storedURL, "/upload/", "/upload/f_auto,q_auto/", 1)
}
