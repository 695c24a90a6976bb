package mocks

import (
	"context"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// MockVideoRepository implements domain.VideoRepository interface for testing
type MockVideoRepository struct {
	CreateFunc     func(ctx context.Context, video *domain.Video) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Video, error)
	UpdateFunc     func(ctx context.Context, video *domain.Video) error
	DeleteFunc     func(ctx context.Context, id uint) error
	ListFunc       func(ctx context.Context, page, limit int, category string) ([]domain.Video, error)
	TrendingFunc   func(ctx context.Context, limit int) ([]domain.Video, error)
	SearchFunc     func(ctx context.Context, query string) ([]domain.Video, error)
	RecordViewFunc func(ctx context.Context, videoID uint, viewer string) (bool, error)
}

// NewMockVideoRepository creates a new MockVideoRepository with default behaviors
func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{}
}

// Create persists new video metadata
func (m *MockVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, video)
	}
	if video.ID == 0 {
		video.ID = 1
	}
	return nil
}

// FindByID returns one video
func (m *MockVideoRepository) FindByID(ctx context.Context, id uint) (*domain.Video, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrVideoNotFound
}

// Update persists metadata changes
func (m *MockVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, video)
	}
	return nil
}

// Delete removes a video record
func (m *MockVideoRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// List returns a metadata page
func (m *MockVideoRepository) List(ctx context.Context, page, limit int, category string) ([]domain.Video, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit, category)
	}
	return nil, nil
}

// Trending returns the most-viewed videos
func (m *MockVideoRepository) Trending(ctx context.Context, limit int) ([]domain.Video, error) {
	if m.TrendingFunc != nil {
		return m.TrendingFunc(ctx, limit)
	}
	return nil, nil
}

// Search matches titles
func (m *MockVideoRepository) Search(ctx context.Context, query string) ([]domain.Video, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

// RecordView counts the viewer once per video
func (m *MockVideoRepository) RecordView(ctx context.Context, videoID uint, viewer string) (bool, error) {
	if m.RecordViewFunc != nil {
		return m.RecordViewFunc(ctx, videoID, viewer)
	}
	return true, nil
}
