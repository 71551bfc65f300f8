package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full service configuration
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	PayTech    PayTechConfig    `toml:"paytech"`
	Cloudinary CloudinaryConfig `toml:"cloudinary"`
	Telegram   TelegramConfig   `toml:"telegram"`
	App        AppConfig        `toml:"app"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLHours     int    `toml:"token_ttl_hours"`
	OTPTTLMinutes     int    `toml:"otp_ttl_minutes"`
	OTPMaxAttempts    int    `toml:"otp_max_attempts"`
	OTPResendSeconds  int    `toml:"otp_resend_seconds"`
	RateLimitPerMin   int    `toml:"rate_limit_per_minute"`
	RateLimitBurst    int    `toml:"rate_limit_burst"`
	ExposeOTPInDevLog bool   `toml:"expose_otp_in_dev_log"`
}

// TokenTTL returns the bearer token lifetime
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// OTPTTL returns the one-time code lifetime
func (a AuthConfig) OTPTTL() time.Duration {
	return time.Duration(a.OTPTTLMinutes) * time.Minute
}

type PayTechConfig struct {
	// Mode is one of live, test, simulated
	Mode       string `toml:"mode"`
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	APISecret  string `toml:"api_secret"`
	IPNURL     string `toml:"ipn_url"`
	SuccessURL string `toml:"success_url"`
	CancelURL  string `toml:"cancel_url"`
	Timeout    int    `toml:"timeout"`
}

type CloudinaryConfig struct {
	CloudName string `toml:"cloud_name"`
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
	Folder    string `toml:"folder"`
	// LocalDir is used when no cloud credentials are configured
	LocalDir     string `toml:"local_dir"`
	LocalBaseURL string `toml:"local_base_url"`
}

// Enabled reports whether Cloudinary credentials are present
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
}

type AppConfig struct {
	Timezone string `toml:"timezone"`
	Currency string `toml:"currency"`
}

// Location resolves the platform timezone, falling back to UTC
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads path, applies .env and environment overrides, fills defaults and validates
func Load(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	switch c.PayTech.Mode {
	case "live", "test":
		if c.PayTech.APIKey == "" || c.PayTech.APISecret == "" {
			return fmt.Errorf("%w: paytech credentials are required in %s mode", ErrInvalidConfig, c.PayTech.Mode)
		}
	case "simulated":
	default:
		return fmt.Errorf("%w: unknown paytech.mode %q", ErrInvalidConfig, c.PayTech.Mode)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("%w: app.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "AGRO_DB_HOST")
	setInt(&cfg.Database.Port, "AGRO_DB_PORT")
	setString(&cfg.Database.User, "AGRO_DB_USER")
	setString(&cfg.Database.Password, "AGRO_DB_PASSWORD")
	setString(&cfg.Database.DBName, "AGRO_DB_NAME")
	setString(&cfg.Redis.Addr, "AGRO_REDIS_ADDR")
	setString(&cfg.Redis.Password, "AGRO_REDIS_PASSWORD")
	setString(&cfg.Auth.JWTSecret, "AGRO_JWT_SECRET")
	setString(&cfg.PayTech.Mode, "AGRO_PAYTECH_MODE")
	setString(&cfg.PayTech.APIKey, "AGRO_PAYTECH_API_KEY")
	setString(&cfg.PayTech.APISecret, "AGRO_PAYTECH_API_SECRET")
	setString(&cfg.Cloudinary.CloudName, "AGRO_CLOUDINARY_CLOUD_NAME")
	setString(&cfg.Cloudinary.APIKey, "AGRO_CLOUDINARY_API_KEY")
	setString(&cfg.Cloudinary.APISecret, "AGRO_CLOUDINARY_API_SECRET")
	setString(&cfg.Telegram.BotToken, "AGRO_TELEGRAM_TOKEN")
	setString(&cfg.Logs.Level, "AGRO_LOG_LEVEL")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "agroboost-rental"
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if cfg.Auth.OTPTTLMinutes == 0 {
		cfg.Auth.OTPTTLMinutes = 10
	}
	if cfg.Auth.OTPMaxAttempts == 0 {
		cfg.Auth.OTPMaxAttempts = 5
	}
	if cfg.Auth.OTPResendSeconds == 0 {
		cfg.Auth.OTPResendSeconds = 60
	}
	if cfg.Auth.RateLimitPerMin == 0 {
		cfg.Auth.RateLimitPerMin = 10
	}
	if cfg.Auth.RateLimitBurst == 0 {
		cfg.Auth.RateLimitBurst = 5
	}
	if cfg.PayTech.Mode == "" {
		cfg.PayTech.Mode = "simulated"
	}
	if cfg.PayTech.BaseURL == "" {
		cfg.PayTech.BaseURL = "https://paytech.sn"
	}
	if cfg.PayTech.Timeout == 0 {
		cfg.PayTech.Timeout = 10
	}
	if cfg.Cloudinary.Folder == "" {
		cfg.Cloudinary.Folder = "agroboost/services"
	}
	if cfg.Cloudinary.LocalDir == "" {
		cfg.Cloudinary.LocalDir = "uploads"
	}
	if cfg.Cloudinary.LocalBaseURL == "" {
		cfg.Cloudinary.LocalBaseURL = "/uploads"
	}
	if cfg.App.Timezone == "" {
		cfg.App.Timezone = "Africa/Dakar"
	}
	if cfg.App.Currency == "" {
		cfg.App.Currency = "XOF"
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
