package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	domainsync "gitfolio-core/internal/domain/sync"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Clerk     ClerkConfig
	GitHub    GitHubConfig
	Sync      SyncConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	CORS      CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Name                string
	Version             string
	Env                 string
	Port                string
	Host                string
	ReadTimeout         int
	WriteTimeout        int
	IdleTimeout         int
	ShutdownTimeout     int
	ReadinessDrainDelay int
}

// DatabaseConfig holds database configuration.
// DSN is the elevated credential: it connects as a role that bypasses row-level security
// and must never leave the server process.
type DatabaseConfig struct {
	Driver   string
	DSN      string
	MaxConns int
	MinConns int
	// ReadRole is the role assumed by caller-scoped reads so row-level policies apply.
	ReadRole string
}

// ClerkConfig holds Clerk configuration
type ClerkConfig struct {
	APIURL        string
	SecretKey     string
	JWKSURL       string
	Issuer        string
	OAuthProvider string
}

// GitHubConfig holds GitHub REST API configuration
type GitHubConfig struct {
	APIURL  string
	PerPage int
	Timeout int
}

// SyncConfig controls how a sync writes its snapshot
type SyncConfig struct {
	PrunePolicy  domainsync.PrunePolicy
	AtomicWrites bool
}

// LoggingConfig holds zap logger configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// TracingConfig holds OpenTelemetry configuration
type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

// ProfilingConfig holds Pyroscope configuration
type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Name:                getEnv("SERVICE_NAME", "gitfolio-core"),
			Version:             getEnv("VERSION", "dev"),
			Env:                 getEnv("ENV", "development"),
			Port:                getEnv("SERVER_PORT", "8080"),
			Host:                getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:         getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout:        getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:         getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
			ShutdownTimeout:     getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			ReadinessDrainDelay: getEnvAsInt("READINESS_DRAIN_DELAY", 0),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
			ReadRole: getEnv("DB_READ_ROLE", "authenticated"),
		},
		Clerk: ClerkConfig{
			APIURL:        getEnv("CLERK_API_URL", "https://api.clerk.com/v1"),
			SecretKey:     getEnv("CLERK_SECRET_KEY", ""),
			JWKSURL:       getEnv("CLERK_JWKS_URL", ""),
			Issuer:        getEnv("CLERK_ISSUER", ""),
			OAuthProvider: getEnv("CLERK_OAUTH_PROVIDER", "oauth_github"),
		},
		GitHub: GitHubConfig{
			APIURL:  getEnv("GITHUB_API_URL", "https://api.github.com"),
			PerPage: getEnvAsInt("GITHUB_REPOS_PER_PAGE", 100),
			Timeout: getEnvAsInt("GITHUB_TIMEOUT", 30),
		},
		Sync: SyncConfig{
			PrunePolicy:  domainsync.PrunePolicy(getEnv("SYNC_PRUNE_POLICY", string(domainsync.PruneKeep))),
			AtomicWrites: getEnvAsBool("SYNC_ATOMIC_WRITES", true),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvAsBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("OTEL_COLLECTOR_ENDPOINT", "localhost:4318"),
			SampleRate: getEnvAsFloat("OTEL_SAMPLE_RATE", 0.1),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvAsBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PYROSCOPE_ENDPOINT", "http://localhost:4040"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", ",", []string{"http://localhost:3000"}),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration and reports every problem at once
func (c *Config) Validate() error {
	var problems []string

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("SERVER_PORT must be a valid number, got: %s", c.Server.Port))
	}

	switch c.Database.Driver {
	case "postgres", "pgx", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be one of postgres, pgx, sqlite, got: %s", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "DB_DSN is required (elevated store credential)")
	}
	if c.Database.ReadRole == "" {
		problems = append(problems, "DB_READ_ROLE cannot be empty")
	}

	if c.Clerk.SecretKey == "" {
		problems = append(problems, "CLERK_SECRET_KEY is required")
	}
	if c.Clerk.JWKSURL == "" {
		problems = append(problems, "CLERK_JWKS_URL is required")
	}
	if c.Clerk.Issuer == "" {
		problems = append(problems, "CLERK_ISSUER is required")
	}
	if c.Clerk.OAuthProvider == "" {
		problems = append(problems, "CLERK_OAUTH_PROVIDER cannot be empty")
	}

	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		problems = append(problems, fmt.Sprintf("GITHUB_REPOS_PER_PAGE must be between 1 and 100, got: %d", c.GitHub.PerPage))
	}

	// normalizes the policy in place
	if policy, err := domainsync.ParsePrunePolicy(string(c.Sync.PrunePolicy)); err != nil {
		problems = append(problems, fmt.Sprintf("SYNC_PRUNE_POLICY must be %q or %q, got: %s", domainsync.PruneKeep, domainsync.PruneStale, c.Sync.PrunePolicy))
	} else {
		c.Sync.PrunePolicy = policy
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got: %s", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or console, got: %s", c.Logging.Format))
	}

	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			problems = append(problems, "OTEL_COLLECTOR_ENDPOINT is required when tracing is enabled")
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
			problems = append(problems, fmt.Sprintf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got: %.2f", c.Tracing.SampleRate))
		}
	}
	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		problems = append(problems, "PYROSCOPE_ENDPOINT is required when profiling is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Env)
	return env == "development" || env == "dev"
}

// GetShutdownTimeout returns the graceful shutdown timeout
func (c *Config) GetShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

// GetReadinessDrainDelay returns how long /ready reports 503 before the server stops
func (c *Config) GetReadinessDrainDelay() time.Duration {
	return time.Duration(c.Server.ReadinessDrainDelay) * time.Second
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getEnvAsFloat gets an environment variable as float64 with a fallback value
func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getEnvAsBool gets an environment variable as boolean with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getEnvAsSlice gets an environment variable as slice with a fallback value
func getEnvAsSlice(key, separator string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, separator)
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
