package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM. Expiry
// is an invariant enforced at read time, not a storage-engine feature:
// any fetched code past its expiry is reported as absent.
type OTPRepositoryImpl struct {
	db  *gorm.DB
	now func() time.Time
}

// DBOneTimeCode represents the database model for OneTimeCode
type DBOneTimeCode struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_otp_scope;not null"`
	CodeHash  string    `gorm:"not null"`
	Purpose   string    `gorm:"index:idx_otp_scope;size:32;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOneTimeCode) TableName() string {
	return "one_time_codes"
}

// NewOTPRepository creates a new one-time-code repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db, now: time.Now}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, code *domain.OneTimeCode) error {
	dbCode := &DBOneTimeCode{
		UserID:    code.UserID,
		CodeHash:  code.CodeHash,
		Purpose:   code.Purpose,
		ExpiresAt: code.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbCode).Error; err != nil {
		return err
	}
	code.ID = dbCode.ID
	code.CreatedAt = dbCode.CreatedAt
	return nil
}

// FindLatest implements domain.OTPRepository. Older undeleted codes are
// implicitly superseded: only the newest record in scope is considered,
// and an expired newest record means no valid code exists.
func (r *OTPRepositoryImpl) FindLatest(ctx context.Context, userID uint, purposes ...string) (*domain.OneTimeCode, error) {
	var dbCode DBOneTimeCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose IN ?", userID, purposes).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalidOrExpired
		}
		return nil, err
	}

	code := &domain.OneTimeCode{
		ID:        dbCode.ID,
		UserID:    dbCode.UserID,
		CodeHash:  dbCode.CodeHash,
		Purpose:   dbCode.Purpose,
		ExpiresAt: dbCode.ExpiresAt,
		CreatedAt: dbCode.CreatedAt,
	}
	if code.Expired(r.now()) {
		return nil, domain.ErrOTPInvalidOrExpired
	}
	return code, nil
}

// LastIssuedAt implements domain.OTPRepository
func (r *OTPRepositoryImpl) LastIssuedAt(ctx context.Context, userID uint, purpose string) (time.Time, bool, error) {
	var dbCode DBOneTimeCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return dbCode.CreatedAt, true, nil
}

// DeleteByID implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBOneTimeCode{}, id).Error
}

// DeleteByPurpose implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByPurpose(ctx context.Context, userID uint, purpose string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Delete(&DBOneTimeCode{}).Error
}
