package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Okita-Damian/video-streaming-App/domain"
	"github.com/Okita-Damian/video-streaming-App/internal/config"
	"github.com/Okita-Damian/video-streaming-App/internal/infrastructure/auth"
	"github.com/Okita-Damian/video-streaming-App/internal/infrastructure/database"
	"github.com/Okita-Damian/video-streaming-App/internal/infrastructure/notifications"
	"github.com/Okita-Damian/video-streaming-App/internal/infrastructure/repositories"
	"github.com/Okita-Damian/video-streaming-App/internal/infrastructure/storage"
	"github.com/Okita-Damian/video-streaming-App/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo  domain.UserRepository
	OTPRepo   domain.OTPRepository
	VideoRepo domain.VideoRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	StorageSvc      domain.StorageService
	OTPSvc          *services.OTPServiceImpl
	AuthSvc         domain.AuthService
	VideoSvc        domain.VideoService
	StreamSvc       domain.StreamService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	c.DB = gdb

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}
	c.Casbin = cas

	if rdb := initRedis(cfg); rdb != nil {
		c.RedisClient = rdb.Client
	}

	// Repositories
	c.UserRepo = repositories.NewUserRepository(gdb)
	c.OTPRepo = repositories.NewOTPRepository(gdb)
	c.VideoRepo = repositories.NewVideoRepository(gdb)

	// Infrastructure services
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.AccessSecret, cfg.RefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	c.NotificationSvc = notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.MailFromName)

	storageSvc, err := storage.NewCloudinaryService(cfg.StorageURL, cfg.StorageFolder)
	if err != nil {
		return nil, err
	}
	c.StorageSvc = storageSvc

	// Domain services
	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.PasswordSvc, c.NotificationSvc, services.OTPConfig{
		Length:         cfg.OTPLength,
		VerifyTTL:      cfg.OTPVerifyTTL,
		ResendTTL:      cfg.OTPResendTTL,
		ResendCooldown: cfg.OTPResendCooldown,
	})
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, c.NotificationSvc)
	c.VideoSvc = services.NewVideoService(c.VideoRepo, c.StorageSvc)
	c.StreamSvc = services.NewStreamService(c.VideoRepo, c.StorageSvc, cfg.StreamTimeout, cfg.StreamMaxConcurrent)

	return c, nil
}
