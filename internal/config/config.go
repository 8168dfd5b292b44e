package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Mail     MailConfig
	Media    MediaConfig
	Cache    CacheConfig
	Pricing  PricingConfig
	Orders   OrdersConfig
	Ledger   LedgerConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	URL             string // overrides the discrete fields when set
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	AutoMigrate     bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level   string
	Format  string // "json" or "console"
	Service string
}

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// MailConfig holds outbound mail configuration.
type MailConfig struct {
	Enabled        bool
	SendGridAPIKey string
	FromAddress    string
	FromName       string
	ProductName    string
	ClientURL      string // base URL used for action links in emails
}

// MediaConfig selects and configures the media store.
type MediaConfig struct {
	Backend          string // "local" or "s3"
	Bucket           string
	Region           string
	Prefix           string
	LocalDir         string
	BaseURL          string
	DefaultAvatarKey string
}

// CacheConfig holds Redis cache configuration.
type CacheConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// PricingConfig holds the pricing policy.
type PricingConfig struct {
	DefaultShippingFee decimal.Decimal
	AllowNegativeTotal bool
}

// OrdersConfig holds the order lifecycle policy.
type OrdersConfig struct {
	GuardTransitions bool
}

// LedgerConfig holds the customer ledger policy.
type LedgerConfig struct {
	Scope string // "merchant" or "global"
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "teem"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Logger: LoggerConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
			Service: getEnv("SERVICE_NAME", "teem-server"),
		},
		Auth: AuthConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
			AccessTTL:     getEnvAsDuration("JWT_ACCESS_TTL", time.Hour),
			RefreshTTL:    getEnvAsDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
			Issuer:        getEnv("JWT_ISSUER", "teem"),
		},
		Mail: MailConfig{
			Enabled:        getEnvAsBool("MAIL_ENABLED", false),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromAddress:    getEnv("MAIL_FROM_ADDRESS", "no-reply@teem.store"),
			FromName:       getEnv("MAIL_FROM_NAME", "Teem"),
			ProductName:    getEnv("MAIL_PRODUCT_NAME", "Teem"),
			ClientURL:      getEnv("CLIENT_URL", "http://localhost:3000"),
		},
		Media: MediaConfig{
			Backend:          getEnv("MEDIA_BACKEND", "local"),
			Bucket:           getEnv("MEDIA_S3_BUCKET", ""),
			Region:           getEnv("MEDIA_S3_REGION", "us-east-1"),
			Prefix:           getEnv("MEDIA_S3_PREFIX", "media/"),
			LocalDir:         getEnv("MEDIA_LOCAL_DIR", "./data/media"),
			BaseURL:          getEnv("MEDIA_BASE_URL", "http://localhost:8080/media"),
			DefaultAvatarKey: getEnv("MEDIA_DEFAULT_AVATAR", "avatars/default.png"),
		},
		Cache: CacheConfig{
			Enabled:  getEnvAsBool("CACHE_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		Pricing: PricingConfig{
			DefaultShippingFee: getEnvAsDecimal("PRICING_DEFAULT_SHIPPING_FEE", decimal.NewFromInt(2000)),
			AllowNegativeTotal: getEnvAsBool("PRICING_ALLOW_NEGATIVE_TOTAL", true),
		},
		Orders: OrdersConfig{
			GuardTransitions: getEnvAsBool("ORDERS_GUARD_TRANSITIONS", false),
		},
		Ledger: LedgerConfig{
			Scope: getEnv("LEDGER_SCOPE", "merchant"),
		},
	}

	if cfg.Auth.RefreshSecret == "" {
		cfg.Auth.RefreshSecret = cfg.Auth.AccessSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}

		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}

		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}

		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}

	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Mail.Enabled && c.Mail.SendGridAPIKey == "" {
		return fmt.Errorf("SendGrid API key is required when mail is enabled")
	}

	switch c.Media.Backend {
	case "local":
		if c.Media.LocalDir == "" {
			return fmt.Errorf("media directory is required for the local media backend")
		}
	case "s3":
		if c.Media.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 media backend")
		}
		if c.Media.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 media backend")
		}
	default:
		return fmt.Errorf("invalid media backend: %s (must be local or s3)", c.Media.Backend)
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("redis address is required when the cache is enabled")
	}

	if c.Pricing.DefaultShippingFee.IsNegative() {
		return fmt.Errorf("default shipping fee cannot be negative")
	}

	if c.Ledger.Scope != "merchant" && c.Ledger.Scope != "global" {
		return fmt.Errorf("invalid ledger scope: %s (must be merchant or global)", c.Ledger.Scope)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration syntax ("90s", "2h").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
