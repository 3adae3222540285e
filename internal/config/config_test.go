package config

import (
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Empty(t, cfg.Database.SeedFile)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, 10, cfg.SSE.BufferSize)
	assert.Equal(t, 2, cfg.SSE.WorkerCount)
	assert.Equal(t, 1000, cfg.SSE.QueueSize)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, leave.DefaultPolicies(), cfg.Policies())
}

func TestLoad_PolicyOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LEAVE_POLICY_PAID", "20")
	t.Setenv("LEAVE_POLICY_OTHER", "unlimited")

	cfg, err := Load()
	require.NoError(t, err)

	byType := make(map[leave.LeaveType]int)
	for _, p := range cfg.Policies() {
		byType[p.Type] = p.AllottedDays
	}
	assert.Equal(t, 20, byType[leave.LeaveTypePaid])
	assert.Equal(t, leave.Unlimited, byType[leave.LeaveTypeOther])
	assert.Equal(t, 112, byType[leave.LeaveTypeMaternity])
}

func TestLoad_InvalidPolicyOverride(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LEAVE_POLICY_SICK", "-3")

	_, err := Load()
	assert.ErrorContains(t, err, "LEAVE_POLICY_SICK")
}

func TestLoad_CORSOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid memory config", mutate: func(c *Config) {}},
		{
			name:    "postgres requires password",
			mutate:  func(c *Config) { c.Database.Driver = DriverPostgres },
			wantErr: "DB_PASSWORD",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "sqlite" },
			wantErr: "DB_DRIVER",
		},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.JWT.Secret = "" },
			wantErr: "JWT_SECRET_KEY",
		},
		{
			name:    "bad expiration",
			mutate:  func(c *Config) { c.JWT.AccessExpiration = "soon" },
			wantErr: "JWT_ACCESS_EXPIRATION_TIME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{Driver: DriverMemory, MaxConns: 10},
				JWT:      JWTConfig{Secret: "s", AccessExpiration: "1h"},
				App:      AppConfig{Port: 8080},
				SSE:      SSEConfig{BufferSize: 10},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := &Config{App: AppConfig{LogLevel: "DEBUG"}}
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg.App.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", cfg.DatabaseURL())
}
