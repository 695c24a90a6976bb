package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port       int    `yaml:"port"`
	GinMode    string `yaml:"gin_mode"`
	Env        string `yaml:"env"`
	CORSOrigin string `yaml:"cors_origin"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	TrendingTTL string `yaml:"trending_ttl"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	Length         int    `yaml:"length"`
	VerifyTTL      string `yaml:"verify_ttl"`
	ResendTTL      string `yaml:"resend_ttl"`
	ResendCooldown string `yaml:"resend_cooldown"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

type StorageConfig struct {
	URL    string `yaml:"url"`
	Folder string `yaml:"folder"`
}

type StreamConfig struct {
	Timeout       string `yaml:"timeout"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Storage  StorageConfig  `yaml:"storage"`
	Stream   StreamConfig   `yaml:"stream"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

// Config is the explicit process-wide configuration value. It is built
// once at startup and passed into constructors; nothing reads ambient
// environment state mid-request.
type Config struct {
	Port       string
	GinMode    string
	Env        string
	CORSOrigin string

	DSN string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	TrendingCacheTTL time.Duration

	AccessSecret  string
	RefreshSecret string
	JWTIssuer     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	OTPLength         int
	OTPVerifyTTL      time.Duration
	OTPResendTTL      time.Duration
	OTPResendCooldown time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	StorageURL    string
	StorageFolder string

	StreamTimeout       time.Duration
	StreamMaxConcurrent int

	CasbinModelPath string
}

// Production reports whether the process runs with production hardening
// (secure cookies).
func (c *Config) Production() bool { return c.Env == "production" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and resolves secret fields from the
// environment when present.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFrom reads and parses the config file at path.
func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	verifyTTL, err := time.ParseDuration(configFile.OTP.VerifyTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP verify TTL: %w", err)
	}
	resendTTL, err := time.ParseDuration(configFile.OTP.ResendTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend TTL: %w", err)
	}
	cooldown, err := time.ParseDuration(configFile.OTP.ResendCooldown)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend cooldown: %w", err)
	}
	streamTimeout, err := time.ParseDuration(configFile.Stream.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid stream timeout: %w", err)
	}
	trendingTTL, err := time.ParseDuration(configFile.Redis.TrendingTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid trending cache TTL: %w", err)
	}

	return &Config{
		Port:       fmt.Sprintf("%d", configFile.App.Port),
		GinMode:    configFile.App.GinMode,
		Env:        env("APP_ENV", configFile.App.Env),
		CORSOrigin: configFile.App.CORSOrigin,

		DSN: env("DATABASE_DSN", configFile.Database.DSN),

		RedisAddr:        configFile.Redis.Addr,
		RedisPassword:    configFile.Redis.Password,
		RedisDB:          configFile.Redis.DB,
		TrendingCacheTTL: trendingTTL,

		AccessSecret:  env("JWT_KEY", configFile.JWT.AccessSecret),
		RefreshSecret: env("JWT_REFRESH_KEY", configFile.JWT.RefreshSecret),
		JWTIssuer:     configFile.JWT.Issuer,
		AccessTTL:     accTTL,
		RefreshTTL:    refTTL,

		OTPLength:         configFile.OTP.Length,
		OTPVerifyTTL:      verifyTTL,
		OTPResendTTL:      resendTTL,
		OTPResendCooldown: cooldown,

		SMTPHost:     configFile.SMTP.Host,
		SMTPPort:     configFile.SMTP.Port,
		SMTPUsername: env("EMAIL_USERNAME", configFile.SMTP.Username),
		SMTPPassword: env("EMAIL_PASSWORD", configFile.SMTP.Password),
		MailFrom:     configFile.SMTP.From,
		MailFromName: configFile.SMTP.FromName,

		StorageURL:    env("CLOUDINARY_URL", configFile.Storage.URL),
		StorageFolder: configFile.Storage.Folder,

		StreamTimeout:       streamTimeout,
		StreamMaxConcurrent: configFile.Stream.MaxConcurrent,

		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
