// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Identity    IdentityConfig
	Ledger      LedgerConfig
	AWS         AWSConfig
	Payment     PaymentConfig
	Snapshot    SnapshotConfig
	Logging     LoggingConfig
	I18n        I18nConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	PublicURL    string
	UploadDir    string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

// IdentityConfig describes how tokens minted by the identity provider are verified.
type IdentityConfig struct {
	SecretKey string
	Issuer    string
}

type LedgerConfig struct {
	BaseURL       string
	Timeout       int // in seconds
	NumericPolicy string
	CacheTTL      int // in seconds
	ServiceToken  string
	Debug         bool
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type PaymentConfig struct {
	StripeSecretKey string
	Currency        string
	ArtistPercent   float64
	HubPercent      float64
	PlatformPercent float64
}

type SnapshotConfig struct {
	Enabled  bool
	CronSpec string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			PublicURL:    getEnv("APP_PUBLIC_URL", "http://localhost:3000"),
			UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "resona"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Identity: IdentityConfig{
			SecretKey: getEnv("IDENTITY_SECRET", "your-secret-key-change-in-production"),
			Issuer:    getEnv("IDENTITY_ISSUER", "resona-identity"),
		},
		Ledger: LedgerConfig{
			BaseURL:       getEnv("LEDGER_URL", "http://localhost:4943"),
			Timeout:       getEnvAsInt("LEDGER_TIMEOUT", 30),
			NumericPolicy: getEnv("LEDGER_NUMERIC_POLICY", "reject"),
			CacheTTL:      getEnvAsInt("LEDGER_CACHE_TTL", 30),
			ServiceToken:  getEnv("LEDGER_SERVICE_TOKEN", ""),
			Debug:         getEnvAsBool("LEDGER_DEBUG", false),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "resona-media"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Payment: PaymentConfig{
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:        getEnv("PAYMENT_CURRENCY", "usd"),
			ArtistPercent:   getEnvAsFloat("SPLIT_ARTIST_PERCENT", 70),
			HubPercent:      getEnvAsFloat("SPLIT_HUB_PERCENT", 20),
			PlatformPercent: getEnvAsFloat("SPLIT_PLATFORM_PERCENT", 10),
		},
		Snapshot: SnapshotConfig{
			Enabled:  getEnvAsBool("SNAPSHOT_ENABLED", true),
			CronSpec: getEnv("SNAPSHOT_CRON", "0 0 * * * *"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Identity.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("identity secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Ledger.BaseURL == "" {
		return fmt.Errorf("ledger URL is required")
	}

	switch c.Ledger.NumericPolicy {
	case "reject", "saturate":
	default:
		return fmt.Errorf("unknown ledger numeric policy %q", c.Ledger.NumericPolicy)
	}

	total := c.Payment.ArtistPercent + c.Payment.HubPercent + c.Payment.PlatformPercent
	if total != 100 {
		return fmt.Errorf("payment split percentages must add up to 100, got %.2f", total)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
