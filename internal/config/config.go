package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables

	S3BucketName string
	S3PublicURL  string // base URL for uploaded objects; defaults to the regional S3 URL

	JWTSecret string
	JWTExpiry time.Duration

	OtpTTL time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	AllowedOrigins []string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users      string
	Otps       string
	Products   string
	Categories string
	Orders     string
	Settings   string
	Uploads    string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:      getEnv("DYNAMO_TABLE_USERS", "users"),
			Otps:       getEnv("DYNAMO_TABLE_OTPS", "otps"),
			Products:   getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Categories: getEnv("DYNAMO_TABLE_CATEGORIES", "categories"),
			Orders:     getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Settings:   getEnv("DYNAMO_TABLE_SETTINGS", "settings"),
			Uploads:    getEnv("DYNAMO_TABLE_UPLOADS", "uploads"),
		},

		S3BucketName: getEnv("S3_BUCKET_NAME", "storefront-images"),
		S3PublicURL:  getEnv("S3_PUBLIC_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		OtpTTL: time.Duration(getEnvInt("OTP_TTL_SECONDS", 300)) * time.Second,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Admin"),
	}
}

// Validate checks configuration the process cannot run without. Called once at
// startup so a misconfigured deployment fails immediately instead of on the
// first request that needs the missing credential.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.OtpTTL <= 0 {
		return fmt.Errorf("OTP_TTL_SECONDS must be positive")
	}
	if !c.IsDev() && c.SMTPUsername == "" {
		return fmt.Errorf("SMTP_USERNAME is required outside development")
	}
	return nil
}

// IsDev reports whether the process runs in the development environment.
func (c *Config) IsDev() bool { return c.AppEnv == "development" }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
