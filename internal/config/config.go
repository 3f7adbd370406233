package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string // "text" or "json"
	ServiceName string
	Version     string
	Environment string // "dev", "staging", "prod"
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	LogDir      string
	APIKey      string // API key for authentication

	// BrickLink API credentials. When incomplete, the catalog runs
	// cache-only and the refresh endpoint is disabled.
	BrickLinkConsumerKey    string
	BrickLinkConsumerSecret string
	BrickLinkToken          string
	BrickLinkTokenSecret    string

	// Catalog memory cache tuning
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "figfinder"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "figfinder"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		APIKey:      getEnv("API_KEY", ""),

		BrickLinkConsumerKey:    getEnv("BRICKLINK_CONSUMER_KEY", ""),
		BrickLinkConsumerSecret: getEnv("BRICKLINK_CONSUMER_SECRET", ""),
		BrickLinkToken:          getEnv("BRICKLINK_TOKEN", ""),
		BrickLinkTokenSecret:    getEnv("BRICKLINK_TOKEN_SECRET", ""),

		CatalogCacheSize: getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to
// the default when unset or unparseable
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration retrieves a duration environment variable, falling back
// to the default when unset or unparseable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// HasBrickLinkCredentials reports whether all four OAuth1 values are set.
func (c *Config) HasBrickLinkCredentials() bool {
	return c.BrickLinkConsumerKey != "" &&
		c.BrickLinkConsumerSecret != "" &&
		c.BrickLinkToken != "" &&
		c.BrickLinkTokenSecret != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
