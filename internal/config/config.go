package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Identity IdentityConfig
	Storage  StorageConfig
	Refresh  RefreshConfig
	Database DatabaseConfig
	Office   OfficeConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	Version  string
	LogLevel string
	Timezone string
	CORS     []string
}

// BackendConfig points at the upstream REST API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// IdentityConfig verifies bearer tokens issued by the identity provider.
type IdentityConfig struct {
	Secret      string
	SSETokenTTL time.Duration
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type RefreshConfig struct {
	Interval    time.Duration
	Concurrency int
	SessionTTL  time.Duration
}

type DatabaseConfig struct {
	Enabled       bool
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	RetentionDays int
}

// OfficeConfig is the optional check-in geofence. A zero radius disables it.
type OfficeConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Africa/Johannesburg"),
		CORS:     getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}
	config.Backend = BackendConfig{
		BaseURL: strings.TrimRight(getEnv("BACKEND_BASE_URL", "https://necs-engineers-bizflow.vercel.app/api"), "/"),
		Timeout: backendTimeout,
	}

	sseTTL, err := time.ParseDuration(getEnv("SSE_TOKEN_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SSE_TOKEN_TTL: %w", err)
	}
	config.Identity = IdentityConfig{
		Secret:      getEnv("IDENTITY_JWT_SECRET", ""),
		SSETokenTTL: sseTTL,
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/uploads", appPort)),
	}

	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "3m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	refreshConcurrency, err := strconv.Atoi(getEnv("REFRESH_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_CONCURRENCY: %w", err)
	}
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	config.Refresh = RefreshConfig{
		Interval:    refreshInterval,
		Concurrency: refreshConcurrency,
		SessionTTL:  sessionTTL,
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	retention, err := strconv.Atoi(getEnv("HISTORY_RETENTION_DAYS", "365"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_RETENTION_DAYS: %w", err)
	}
	dbEnabled, err := strconv.ParseBool(getEnv("HISTORY_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_ENABLED: %w", err)
	}
	config.Database = DatabaseConfig{
		Enabled:       dbEnabled,
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          dbPort,
		User:          getEnv("DB_USER", "postgres"),
		Password:      getEnv("DB_PASSWORD", ""),
		Name:          getEnv("DB_NAME", "hris-mobile-gateway"),
		SSLMode:       getEnv("DB_SSL_MODE", "disable"),
		RetentionDays: retention,
	}

	office, err := loadOffice()
	if err != nil {
		return nil, err
	}
	config.Office = office

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadOffice() (OfficeConfig, error) {
	var office OfficeConfig
	var err error

	if office.Latitude, err = strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "0"), 64); err != nil {
		return office, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	if office.Longitude, err = strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "0"), 64); err != nil {
		return office, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	if office.RadiusMeters, err = strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "0"), 64); err != nil {
		return office, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}
	return office, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Identity.Secret == "" {
		return errors.New("IDENTITY_JWT_SECRET is required")
	}
	if c.Backend.BaseURL == "" {
		return errors.New("BACKEND_BASE_URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be positive")
	}
	if c.Refresh.Interval < time.Second {
		return errors.New("REFRESH_INTERVAL must be at least 1s")
	}
	if c.Refresh.Concurrency < 1 {
		return errors.New("REFRESH_CONCURRENCY must be at least 1")
	}
	if c.Database.Enabled && c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required when HISTORY_ENABLED is true")
	}
	if c.Office.RadiusMeters < 0 {
		return errors.New("OFFICE_RADIUS_METERS must not be negative")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the default timezone for users without one.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
