package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// CloudinaryServiceImpl implements domain.StorageService against the
// Cloudinary upload API. Video bytes live upstream; only URL and public
// ID come back into the metadata record.
type CloudinaryServiceImpl struct {
	cld    *cld.Cloudinary
	folder string
}

// NewCloudinaryService builds a client from a cloudinary:// URL.
func NewCloudinaryService(url, folder string) (domain.StorageService, error) {
	c, err := cld.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryServiceImpl{cld: c, folder: folder}, nil
}

// storageKey produces a date-bucketed random public ID so re-uploads of
// the same filename never collide.
func storageKey(filename string) string {
	d := time.Now()
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	return fmt.Sprintf("%d/%d/%s-%s", d.Year(), d.Month(), base, uuid.NewString())
}

// UploadVideo implements domain.StorageService
func (s *CloudinaryServiceImpl) UploadVideo(ctx context.Context, file io.Reader, filename string) (*domain.StoredObject, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     storageKey(filename),
		ResourceType: "video",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}

	return &domain.StoredObject{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Size:     int64(res.Bytes),
	}, nil
}

// DeleteVideo implements domain.StorageService
func (s *CloudinaryServiceImpl) DeleteVideo(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "video",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}

// DeliveryURL implements domain.StorageService. Format and quality
// normalization happen at the URL level, never by local transcoding.
func (s *CloudinaryServiceImpl) DeliveryURL(storedURL string) string {
	return strings.Replace(storedURL, "/upload/", "/upload/f_auto,q_auto/", 1)
}
