package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	CORS     CORSConfig
	SSE      SSEConfig
	Leave    LeaveConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32

	// SeedFile is a JSON employee list loaded into the memory driver.
	SeedFile string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SSEConfig struct {
	BufferSize  int
	WorkerCount int
	QueueSize   int
}

// LeaveConfig holds per-type allotment overrides. A value of leave.Unlimited
// removes the cap.
type LeaveConfig struct {
	PolicyOverrides map[leave.LeaveType]int
}

func Load() (*Config, error) {
	// .env is optional; the process environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris-leave"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
		SeedFile: getEnv("DB_MEMORY_SEED_FILE", ""),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_SHUTDOWN_TIMEOUT: %w", err)
	}

	config.App = AppConfig{
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: shutdownTimeout,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	sseBuffer, err := strconv.Atoi(getEnv("SSE_BUFFER_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SSE_BUFFER_SIZE: %w", err)
	}
	sseWorkers, err := strconv.Atoi(getEnv("NOTIFICATION_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_WORKERS: %w", err)
	}
	sseQueue, err := strconv.Atoi(getEnv("NOTIFICATION_QUEUE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_QUEUE_SIZE: %w", err)
	}
	config.SSE = SSEConfig{BufferSize: sseBuffer, WorkerCount: sseWorkers, QueueSize: sseQueue}

	overrides, err := loadPolicyOverrides()
	if err != nil {
		return nil, err
	}
	config.Leave = LeaveConfig{PolicyOverrides: overrides}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("DB_MAX_CONNS must be at least 1")
		}
		if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %s or %s", DriverPostgres, DriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if c.SSE.BufferSize < 1 {
		return fmt.Errorf("SSE_BUFFER_SIZE must be at least 1")
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

// Policies returns the default allotments with the configured overrides applied.
func (c *Config) Policies() []leave.LeavePolicy {
	return leave.MergePolicies(leave.DefaultPolicies(), c.Leave.PolicyOverrides)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// loadPolicyOverrides reads LEAVE_POLICY_<TYPE>, e.g. LEAVE_POLICY_PAID=20 or
// LEAVE_POLICY_SICK=unlimited.
func loadPolicyOverrides() (map[leave.LeaveType]int, error) {
	overrides := make(map[leave.LeaveType]int)
	for _, t := range leave.LeaveTypes {
		key := "LEAVE_POLICY_" + strings.ToUpper(string(t))
		value := strings.TrimSpace(os.Getenv(key))
		if value == "" {
			continue
		}
		if strings.EqualFold(value, "unlimited") {
			overrides[t] = leave.Unlimited
			continue
		}
		days, err := strconv.Atoi(value)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("invalid %s: must be a non-negative integer or \"unlimited\"", key)
		}
		overrides[t] = days
	}
	return overrides, nil
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
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
