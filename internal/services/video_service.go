package services

import (
	"context"
	"fmt"
	"io"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

const trendingLimit = 10

// VideoServiceImpl implements domain.VideoService. Metadata lives in the
// repository; the bytes live in the upstream object store, and the two
// are kept consistent on upload, replace and delete.
type VideoServiceImpl struct {
	videoRepo  domain.VideoRepository
	storageSvc domain.StorageService
}

// NewVideoService creates a new video service
func NewVideoService(videoRepo domain.VideoRepository, storageSvc domain.StorageService) domain.VideoService {
	return &VideoServiceImpl{
		videoRepo:  videoRepo,
		storageSvc: storageSvc,
	}
}

// Upload pushes the file to the object store, then records metadata.
// If the metadata write fails the stored object is removed so no
// orphaned bytes remain upstream.
func (s *VideoServiceImpl) Upload(ctx context.Context, in domain.VideoInput, file io.Reader, filename string) (*domain.Video, error) {
	if !domain.ValidCategory(in.Category) {
		return nil, domain.NewValidationError("category", "must be one of education, entertainment, sports, music, news")
	}

	stored, err := s.storageSvc.UploadVideo(ctx, file, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	video := &domain.Video{
		Title:       in.Title,
		Description: in.Description,
		URL:         stored.URL,
		PublicID:    stored.PublicID,
		Duration:    in.Duration,
		Size:        stored.Size,
		Category:    in.Category,
		UploadedBy:  in.UploadedBy,
	}
	if stored.Duration > 0 {
		video.Duration = stored.Duration
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		if delErr := s.storageSvc.DeleteVideo(ctx, stored.PublicID); delErr != nil {
			return nil, fmt.Errorf("failed to save video metadata: %w (orphan cleanup also failed: %v)", err, delErr)
		}
		return nil, err
	}
	return video, nil
}

// Update applies metadata changes and, when a replacement file is given,
// swaps the stored object. The old object is destroyed only after the
// new one uploads.
func (s *VideoServiceImpl) Update(ctx context.Context, id uint, in domain.VideoUpdate, file io.Reader, filename string) (*domain.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		video.Title = *in.Title
	}
	if in.Description != nil {
		video.Description = *in.Description
	}
	if in.Category != nil {
		if !domain.ValidCategory(*in.Category) {
			return nil, domain.NewValidationError("category", "must be one of education, entertainment, sports, music, news")
		}
		video.Category = *in.Category
	}
	if in.UploadedBy != nil {
		video.UploadedBy = *in.UploadedBy
	}

	if file != nil {
		stored, err := s.storageSvc.UploadVideo(ctx, file, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to upload video: %w", err)
		}
		oldPublicID := video.PublicID
		video.URL = stored.URL
		video.PublicID = stored.PublicID
		video.Size = stored.Size
		if stored.Duration > 0 {
			video.Duration = stored.Duration
		}
		if oldPublicID != "" {
			if err := s.storageSvc.DeleteVideo(ctx, oldPublicID); err != nil {
				return nil, fmt.Errorf("failed to remove replaced video: %w", err)
			}
		}
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Delete destroys the stored object first, then the metadata record.
func (s *VideoServiceImpl) Delete(ctx context.Context, id uint) error {
	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if video.PublicID != "" {
		if err := s.storageSvc.DeleteVideo(ctx, video.PublicID); err != nil {
			return fmt.Errorf("failed to remove stored video: %w", err)
		}
	}
	return s.videoRepo.Delete(ctx, id)
}

// Get implements domain.VideoService
func (s *VideoServiceImpl) Get(ctx context.Context, id uint) (*domain.Video, error) {
	return s.videoRepo.FindByID(ctx, id)
}

// List implements domain.VideoService
func (s *VideoServiceImpl) List(ctx context.Context, page, limit int, category string) ([]domain.Video, error) {
	if category != "" && !domain.ValidCategory(category) {
		return nil, domain.NewValidationError("category", "must be one of education, entertainment, sports, music, news")
	}
	return s.videoRepo.List(ctx, page, limit, category)
}

// Trending implements domain.VideoService
func (s *VideoServiceImpl) Trending(ctx context.Context) ([]domain.Video, error) {
	return s.videoRepo.Trending(ctx, trendingLimit)
}

// Search implements domain.VideoService
func (s *VideoServiceImpl) Search(ctx context.Context, query string) ([]domain.Video, error) {
	if query == "" {
		return nil, domain.NewValidationError("query", "is required")
	}
	return s.videoRepo.Search(ctx, query)
}
