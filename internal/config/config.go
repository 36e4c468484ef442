package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Provider is the read-only view of configuration that the rest of the
// application depends on.
type Provider interface {
	GetAddr() string
	GetAppBaseURL() string
	GetSiteName() string
	GetContentMode() string
	GetContentDir() string
	GetContentHotReload() bool
	GetSessionSecret() string
	GetRateLimitPerMinute() int
}

// Config holds all configuration for the application.
type Config struct {
	Addr               string
	AppBaseURL         string
	SiteName           string
	ContentMode        string
	ContentDir         string
	ContentHotReload   bool
	SessionSecret      string
	RateLimitPerMinute int
}

// devSessionSecret is only used when SESSION_SECRET is unset.
const devSessionSecret = "dev-only-session-secret-change-me"

// New loads configuration from environment variables. A .env file in the
// working directory is read first if present.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the current environment only.
func FromEnv() *Config {
	cfg := &Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		AppBaseURL:         strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		SiteName:           getEnv("APP_SITE_NAME", "Trade Skills"),
		ContentMode:        getEnv("APP_CONTENT", "embed"),
		ContentDir:         getEnv("CONTENT_DIR", "web/content"),
		ContentHotReload:   getBool("CONTENT_HOT_RELOAD", false),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.SessionSecret == "" {
		log.Println("SESSION_SECRET is not set, using an insecure development secret")
		cfg.SessionSecret = devSessionSecret
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func (c *Config) GetAddr() string { return c.Addr }
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }
func (c *Config) GetSiteName() string { return c.SiteName }
func (c *Config) GetContentMode() string { return c.ContentMode }
func (c *Config) GetContentDir() string { return c.ContentDir }
func (c *Config) GetContentHotReload() bool { return c.ContentHotReload }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetRateLimitPerMinute() int { return c.RateLimitPerMinute }
