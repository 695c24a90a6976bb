package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Okita-Damian/video-streaming-App/domain"
	"github.com/Okita-Damian/video-streaming-App/internal/mocks"
)

func sampleInput() domain.VideoInput {
	return domain.VideoInput{
		Title:       "Go Concurrency Patterns",
		Description: "Talk recording",
		Category:    "education",
		UploadedBy:  "admin@example.com",
	}
}

func TestVideoServiceImpl_Upload(t *testing.T) {
	t.Run("successful upload records stored object fields", func(t *testing.T) {
		videoRepo := mocks.NewMockVideoRepository()
		storageSvc := mocks.NewMockStorageService()
		svc := NewVideoService(videoRepo, storageSvc)

		video, err := svc.Upload(context.Background(), sampleInput(), strings.NewReader("bytes"), "talk.mp4")
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
		if video.URL == "" || video.PublicID == "" {
			t.Error("expected stored object url and id on the record")
		}
		if video.Size == 0 {
			t.Error("expected stored size on the record")
		}
	})

	t.Run("invalid category refused before any upload", func(t *testing.T) {
		videoRepo := mocks.NewMockVideoRepository()
		storageSvc := mocks.NewMockStorageService()
		var uploaded bool
		storageSvc.UploadVideoFunc = func(ctx context.Context, file io.Reader, filename string) (*domain.StoredObject, error) {
			uploaded = true
			return &domain.StoredObject{}, nil
		}
		svc := NewVideoService(videoRepo, storageSvc)

		in := sampleInput()
		in.Category = "gardening"
		if _, err := svc.Upload(context.Background(), in, strings.NewReader("bytes"), "talk.mp4"); !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if uploaded {
			t.Error("nothing should reach the object store on invalid metadata")
		}
	})

	t.Run("metadata failure removes the orphaned object", func(t *testing.T) {
		videoRepo := mocks.NewMockVideoRepository()
		videoRepo.CreateFunc = func(ctx context.Context, video *domain.Video) error {
			return domain.ErrVideoTitleExists
		}
		storageSvc := mocks.NewMockStorageService()
		svc := NewVideoService(videoRepo, storageSvc)

		_, err := svc.Upload(context.Background(), sampleInput(), strings.NewReader("bytes"), "talk.mp4")
		if !errors.Is(err, domain.ErrVideoTitleExists) {
			t.Fatalf("expected %v, got %v", domain.ErrVideoTitleExists, err)
		}
		if len(storageSvc.Deleted) != 1 {
			t.Fatalf("expected the stored object to be cleaned up, deletes: %v", storageSvc.Deleted)
		}
	})
}

func TestVideoServiceImpl_Update(t *testing.T) {
	existing := func() *domain.Video {
		return &domain.Video{
			ID:       1,
			Title:    "Old Title",
			URL:      "https://store.example/upload/old.mp4",
			PublicID: "videos/old",
			Category: "education",
		}
	}

	t.Run("metadata only", func(t *testing.T) {
		videoRepo := mocks.NewMockVideoRepository()
		videoRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Video, error) {
			return existing(), nil
		}
		storageSvc := mocks.NewMockStorageService()
		svc := NewVideoService(videoRepo, storageSvc)

		title := "New Title"
		video, err := svc.Update(context.Background(), 1, domain.VideoUpdate{Title: &title}, nil, "")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if video.Title != "New Title" {
			t.Errorf("expected title updated, got %q", video.Title)
		}
		if video.PublicID != "videos/old" {
			t.Error("stored object must be untouched without a replacement file")
		}
	})

	t.Run("file replacement destroys the old object", func(t *testing.T) {
		videoRepo := mocks.NewMockVideoRepository()
		videoRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Video, error) {
			return existing(), nil
		}
		storageSvc := mocks.NewMockStorageService()
		svc := NewVideoService(videoRepo, storageSvc)

		video, err := svc.Update(context.Background(), 1, domain.VideoUpdate{}, strings.NewReader("new bytes"), "new.mp4")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if video.PublicID == "videos/old" {
			t.Error("expected a new stored object id")
		}
		if len(storageSvc.Deleted) != 1 || storageSvc.Deleted[0] != "videos/old" {
			t.Errorf("expected old object destroyed, deletes: %v", storageSvc.Deleted)
		}
	})
}

func TestVideoServiceImpl_Delete(t *testing.T) {
	videoRepo := mocks.NewMockVideoRepository()
	videoRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Video, error) {
		return &domain.Video{ID: 1, PublicID: "videos/gone"}, nil
	}
	var recordDeleted bool
	videoRepo.DeleteFunc = func(ctx context.Context, id uint) error {
		recordDeleted = true
		return nil
	}
	storageSvc := mocks.NewMockStorageService()
	svc := NewVideoService(videoRepo, storageSvc)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(storageSvc.Deleted) != 1 || storageSvc.Deleted[0] != "videos/gone" {
		t.Errorf("expected backing object destroyed, deletes: %v", storageSvc.Deleted)
	}
	if !recordDeleted {
		t.Error("expected metadata record removed")
	}
}

func TestVideoServiceImpl_Search(t *testing.T) {
	svc := NewVideoService(mocks.NewMockVideoRepository(), mocks.NewMockStorageService())
	if _, err := svc.Search(context.Background(), ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}
}
