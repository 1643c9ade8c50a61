package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Mail     MailConfig
	Security SecurityConfig
	Storage  StorageConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
	WebAPIKey       string
}

type MailConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	ToEmail    string
}

type SecurityConfig struct {
	ContactRateLimit   int           // accepted contact submissions per IP per window
	ContactRateWindow  time.Duration // rolling window for the contact ceiling
	LoginFailureLimit  int           // failed logins per IP before a block
	LoginFailureWindow time.Duration
	IPBlockDuration    time.Duration
	SessionTTL         time.Duration
	SessionSweep       time.Duration // cleanup interval for sessions and blocks
	TwoFactorEnabled   bool
	TwoFactorTTL       time.Duration
	TwoFactorDevCode   string // development override, never set in production
}

type StorageConfig struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	MaxUploadBytes  int64
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "portfolio"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
		},
		Mail: MailConfig{
			BaseURL:    getEnv("MAIL_BASE_URL", "https://api.emailjs.com"),
			ServiceID:  getEnv("MAIL_SERVICE_ID", ""),
			TemplateID: getEnv("MAIL_TEMPLATE_ID", ""),
			PublicKey:  getEnv("MAIL_PUBLIC_KEY", ""),
			ToEmail:    getEnv("MAIL_TO_EMAIL", ""),
		},
		Security: SecurityConfig{
			ContactRateLimit:   getEnvAsInt("CONTACT_RATE_LIMIT", 5),
			ContactRateWindow:  getEnvAsDuration("CONTACT_RATE_WINDOW", time.Hour),
			LoginFailureLimit:  getEnvAsInt("LOGIN_FAILURE_LIMIT", 3),
			LoginFailureWindow: getEnvAsDuration("LOGIN_FAILURE_WINDOW", time.Hour),
			IPBlockDuration:    getEnvAsDuration("IP_BLOCK_DURATION", 24*time.Hour),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", 8*time.Hour),
			SessionSweep:       getEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
			TwoFactorEnabled:   getEnvAsBool("TWO_FACTOR_ENABLED", true),
			TwoFactorTTL:       getEnvAsDuration("TWO_FACTOR_TTL", 10*time.Minute),
			TwoFactorDevCode:   getEnv("TWO_FACTOR_DEV_CODE", ""),
		},
		Storage: StorageConfig{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Security.ContactRateLimit < 1 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be at least 1")
	}

	if c.Security.LoginFailureLimit < 1 {
		return fmt.Errorf("LOGIN_FAILURE_LIMIT must be at least 1")
	}

	if c.App.Environment == "production" && c.Security.TwoFactorDevCode != "" {
		return fmt.Errorf("TWO_FACTOR_DEV_CODE must not be set in production")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
