package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                uint   `gorm:"primaryKey"`
	FullName          string `gorm:"size:255;not null"`
	Email             string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string `gorm:"column:password;not null"`
	Role              string `gorm:"index;size:16;default:user"`
	IsEmailVerified   bool   `gorm:"default:false"`
	IsLoggedIn        bool   `gorm:"default:false"`
	RefreshToken      string `gorm:"size:512"`
	PasswordChangedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindAll implements domain.UserRepository
func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Save(r.domainToDB(user)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailExists
	}
	return err
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, hash string, changedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]any{
		"password":            hash,
		"password_changed_at": changedAt,
	}).Error
}

// SetEmailVerified implements domain.UserRepository
func (r *UserRepositoryImpl) SetEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("is_email_verified", true).Error
}

// SetLogin implements domain.UserRepository
func (r *UserRepositoryImpl) SetLogin(ctx context.Context, userID uint, refreshToken string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]any{
		"refresh_token": refreshToken,
		"is_logged_in":  true,
	}).Error
}

// ClearLogin implements domain.UserRepository
func (r *UserRepositoryImpl) ClearLogin(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]any{
		"refresh_token": "",
		"is_logged_in":  false,
	}).Error
}

// RotateRefreshToken implements domain.UserRepository. The conditional
// update is the compare-and-swap that makes rotation detect reuse of a
// rotated-out token: only one concurrent refresh can win.
func (r *UserRepositoryImpl) RotateRefreshToken(ctx context.Context, userID uint, old, new string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND refresh_token = ?", userID, old).
		Update("refresh_token", new)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRefreshTokenInvalid
	}
	return nil
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                user.ID,
		FullName:          user.FullName,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Role:              user.Role,
		IsEmailVerified:   user.IsEmailVerified,
		IsLoggedIn:        user.IsLoggedIn,
		RefreshToken:      user.RefreshToken,
		PasswordChangedAt: user.PasswordChangedAt,
		CreatedAt:         user.CreatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                dbUser.ID,
		FullName:          dbUser.FullName,
		Email:             dbUser.Email,
		PasswordHash:      dbUser.PasswordHash,
		Role:              dbUser.Role,
		IsEmailVerified:   dbUser.IsEmailVerified,
		IsLoggedIn:        dbUser.IsLoggedIn,
		RefreshToken:      dbUser.RefreshToken,
		PasswordChangedAt: dbUser.PasswordChangedAt,
		CreatedAt:         dbUser.CreatedAt,
		UpdatedAt:         dbUser.UpdatedAt,
	}
}
