package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds punch-path tuning knobs.
type AttendanceConfig struct {
	LockWaitTimeout   time.Duration
	ReplayTolerance   time.Duration
	CorrelationWindow time.Duration
	SweepInterval     time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in containerized deploys where the
	// environment is injected directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "geoattend"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance configuration
	lockWait, err := time.ParseDuration(getEnv("LOCK_WAIT_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCK_WAIT_TIMEOUT: %w", err)
	}

	replayTolerance, err := time.ParseDuration(getEnv("HARDWARE_REPLAY_TOLERANCE", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HARDWARE_REPLAY_TOLERANCE: %w", err)
	}

	correlationWindow, err := time.ParseDuration(getEnv("DOOR_CORRELATION_WINDOW", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOOR_CORRELATION_WINDOW: %w", err)
	}

	sweepInterval, err := time.ParseDuration(getEnv("DOOR_SWEEP_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOOR_SWEEP_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LockWaitTimeout:   lockWait,
		ReplayTolerance:   replayTolerance,
		CorrelationWindow: correlationWindow,
		SweepInterval:     sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
