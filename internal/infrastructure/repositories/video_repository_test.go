package repositories

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

func newVideoRepo(t *testing.T) domain.VideoRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&DBVideo{}, &DBVideoView{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewVideoRepository(db)
}

func TestVideoRepositoryImpl_RecordViewOncePerViewer(t *testing.T) {
	ctx := context.Background()
	repo := newVideoRepo(t)

	video := &domain.Video{
		Title:    "clip",
		URL:      "https://store.example/upload/clip.mp4",
		PublicID: "videos/clip",
		Category: "Music",
	}
	if err := repo.Create(ctx, video); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := repo.RecordView(ctx, video.ID, "user:1")
	if err != nil {
		t.Fatalf("first view: %v", err)
	}
	if !first {
		t.Error("first view by user:1 must count")
	}

	repeat, err := repo.RecordView(ctx, video.ID, "user:1")
	if err != nil {
		t.Fatalf("repeat view: %v", err)
	}
	if repeat {
		t.Error("repeat view by user:1 must not count")
	}

	other, err := repo.RecordView(ctx, video.ID, "203.0.113.9")
	if err != nil {
		t.Fatalf("second viewer: %v", err)
	}
	if !other {
		t.Error("a distinct viewer must count independently")
	}

	got, err := repo.FindByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("expected 2 views after three requests by two viewers, got %d", got.Views)
	}
}

func TestVideoRepositoryImpl_DeleteRemovesViewRows(t *testing.T) {
	ctx := context.Background()
	repo := newVideoRepo(t)

	video := &domain.Video{Title: "gone", URL: "u", PublicID: "p", Category: "Music"}
	if err := repo.Create(ctx, video); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.RecordView(ctx, video.ID, "user:1"); err != nil {
		t.Fatalf("view: %v", err)
	}

	if err := repo.Delete(ctx, video.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Re-created under the same id, the viewer must count as new.
	again := &domain.Video{ID: video.ID, Title: "back", URL: "u", PublicID: "p", Category: "Music"}
	if err := repo.Create(ctx, again); err != nil {
		t.Fatalf("recreate: %v", err)
	}
	counted, err := repo.RecordView(ctx, again.ID, "user:1")
	if err != nil {
		t.Fatalf("view after recreate: %v", err)
	}
	if !counted {
		t.Error("view rows must not survive the video they belong to")
	}
}
