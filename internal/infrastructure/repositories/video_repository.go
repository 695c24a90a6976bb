package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// VideoRepositoryImpl implements domain.VideoRepository using GORM
type VideoRepositoryImpl struct {
	db *gorm.DB
}

// DBVideo represents the database model for Video
type DBVideo struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"uniqueIndex;size:255;not null"`
	Description string `gorm:"size:1024"`
	URL         string `gorm:"size:1024;not null"`
	PublicID    string `gorm:"size:255;not null"`
	Duration    int64
	Size        int64
	Category    string `gorm:"index;size:32;not null"`
	UploadedBy  string `gorm:"size:255;default:admin"`
	Views       int64  `gorm:"index;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBVideo) TableName() string {
	return "videos"
}

// DBVideoView is one counted (video, viewer) pair. The composite primary
// key realizes the once-per-viewer invariant atomically in the database.
type DBVideoView struct {
	VideoID uint   `gorm:"primaryKey;autoIncrement:false"`
	Viewer  string `gorm:"primaryKey;size:128"`
}

// TableName returns the table name for GORM
func (DBVideoView) TableName() string {
	return "video_views"
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) domain.VideoRepository {
	return &VideoRepositoryImpl{db: db}
}

// Create implements domain.VideoRepository
func (r *VideoRepositoryImpl) Create(ctx context.Context, video *domain.Video) error {
	dbVideo := r.domainToDB(video)
	if err := r.db.WithContext(ctx).Create(dbVideo).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrVideoTitleExists
		}
		return err
	}
	video.ID = dbVideo.ID
	video.CreatedAt = dbVideo.CreatedAt
	return nil
}

// FindByID implements domain.VideoRepository
func (r *VideoRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Video, error) {
	var dbVideo DBVideo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbVideo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbVideo), nil
}

// Update implements domain.VideoRepository
func (r *VideoRepositoryImpl) Update(ctx context.Context, video *domain.Video) error {
	err := r.db.WithContext(ctx).Save(r.domainToDB(video)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrVideoTitleExists
	}
	return err
}

// Delete implements domain.VideoRepository. View rows share the record's
// lifetime, so they go with it.
func (r *VideoRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&DBVideoView{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&DBVideo{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrVideoNotFound
		}
		return nil
	})
}

// List implements domain.VideoRepository
func (r *VideoRepositoryImpl) List(ctx context.Context, page, limit int, category string) ([]domain.Video, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := r.db.WithContext(ctx).Model(&DBVideo{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var dbVideos []DBVideo
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&dbVideos).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbVideos), nil
}

// Trending implements domain.VideoRepository
func (r *VideoRepositoryImpl) Trending(ctx context.Context, limit int) ([]domain.Video, error) {
	var dbVideos []DBVideo
	err := r.db.WithContext(ctx).Order("views DESC").Limit(limit).Find(&dbVideos).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbVideos), nil
}

// Search implements domain.VideoRepository
func (r *VideoRepositoryImpl) Search(ctx context.Context, query string) ([]domain.Video, error) {
	var dbVideos []DBVideo
	err := r.db.WithContext(ctx).
		Where("title ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Find(&dbVideos).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbVideos), nil
}

// RecordView implements domain.VideoRepository. The insert lands at most
// once per (video, viewer); the counter only moves when it did.
func (r *VideoRepositoryImpl) RecordView(ctx context.Context, videoID uint, viewer string) (bool, error) {
	first := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&DBVideoView{VideoID: videoID, Viewer: viewer})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		first = true
		return tx.Model(&DBVideo{}).Where("id = ?", videoID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	})
	return first, err
}

// domainToDB converts domain video to database video
func (r *VideoRepositoryImpl) domainToDB(video *domain.Video) *DBVideo {
	return &DBVideo{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		URL:         video.URL,
		PublicID:    video.PublicID,
		Duration:    video.Duration,
		Size:        video.Size,
		Category:    video.Category,
		UploadedBy:  video.UploadedBy,
		Views:       video.Views,
		CreatedAt:   video.CreatedAt,
	}
}

// dbToDomain converts database video to domain video
func (r *VideoRepositoryImpl) dbToDomain(dbVideo *DBVideo) *domain.Video {
	return &domain.Video{
		ID:          dbVideo.ID,
		Title:       dbVideo.Title,
		Description: dbVideo.Description,
		URL:         dbVideo.URL,
		PublicID:    dbVideo.PublicID,
		Duration:    dbVideo.Duration,
		Size:        dbVideo.Size,
		Category:    dbVideo.Category,
		UploadedBy:  dbVideo.UploadedBy,
		Views:       dbVideo.Views,
		CreatedAt:   dbVideo.CreatedAt,
		UpdatedAt:   dbVideo.UpdatedAt,
	}
}

func (r *VideoRepositoryImpl) dbToDomainSlice(dbVideos []DBVideo) []domain.Video {
	videos := make([]domain.Video, 0, len(dbVideos))
	for i := range dbVideos {
		videos = append(videos, *r.dbToDomain(&dbVideos[i]))
	}
	return videos
}
