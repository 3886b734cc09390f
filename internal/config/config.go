// Package config loads application settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every setting that is not part of the database connection.
type Config struct {
	Port           int
	SecretKey      string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	// AutoUnblockOnExpiry makes the login gate clear a lapsed block from storage
	// instead of only ignoring it.
	AutoUnblockOnExpiry bool

	RequestTimeout time.Duration
	UploadTimeout  time.Duration
	MaxUploadBytes int64
	RateLimitRPS   int

	GCSBucket            string
	GCSCredentialsFile   string
	StoragePublicBaseURL string

	RedisAddr       string
	RedisPassword   string
	LoginRateLimit  int
	LoginRateWindow time.Duration

	AllowOrigins []string
}

// Load reads the configuration and exits when a required value is missing.
func Load() *Config {
	cfg := &Config{
		Port:                 getInt("PORT", 8080),
		SecretKey:            getEnv("SECRET_KEY", ""),
		JWTIssuer:            getEnv("JWT_ISSUER", "actualize"),
		AccessTokenTTL:       getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		AutoUnblockOnExpiry:  getBool("AUTO_UNBLOCK_ON_EXPIRY", true),
		RequestTimeout:       getDuration("REQUEST_TIMEOUT", 10*time.Second),
		UploadTimeout:        getDuration("UPLOAD_TIMEOUT", 30*time.Second),
		MaxUploadBytes:       int64(getInt("MAX_UPLOAD_BYTES", 25<<20)),
		RateLimitRPS:         getInt("RATE_LIMIT_REQUESTS_PER_SECOND", 5),
		GCSBucket:            getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile:   getEnv("GCS_CREDENTIALS_FILE", ""),
		StoragePublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", "https://storage.googleapis.com"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		LoginRateLimit:       getInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:      getDuration("LOGIN_RATE_WINDOW", time.Minute),
		AllowOrigins:         splitList(getEnv("ALLOW_ORIGIN", "http://localhost:3000")),
	}

	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY is required")
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 5
	}

	return cfg
}

// SubmitTimeout bounds a round submission, which reads and stores attachments on top of
// its database work.
func (c *Config) SubmitTimeout() time.Duration {
	return c.RequestTimeout + c.UploadTimeout
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
