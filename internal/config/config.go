package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Supabase connection. The database URL is the Postgres DSN of the
	// hosted project; the service key authenticates as the service role.
	SupabaseDBURL      string
	SupabaseServiceKey string

	CacheTTL           time.Duration
	RedisAddr          string
	RedisPassword      string
	RedisTLS           bool
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SupabaseDBURL:      getEnv("SUPABASE_DB_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		CacheTTL:           getEnvAsDuration("CACHE_TTL", 10*time.Minute),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// Validate checks the hard startup preconditions. A missing Supabase URL or
// service key must abort the process before any data access is attempted.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.SupabaseDBURL) == "" {
		missing = append(missing, "SUPABASE_DB_URL")
	}
	if strings.TrimSpace(c.SupabaseServiceKey) == "" {
		missing = append(missing, "SUPABASE_SERVICE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s (check your .env file)", strings.Join(missing, ", "))
	}
	return nil
}

// DatabaseDSN returns the Postgres DSN with the service key applied as the
// password when the URL does not already carry one. The key is never logged.
func (c *Config) DatabaseDSN() string {
	u, err := url.Parse(c.SupabaseDBURL)
	if err != nil || u.User == nil {
		return c.SupabaseDBURL
	}
	if _, ok := u.User.Password(); ok {
		return c.SupabaseDBURL
	}
	u.User = url.UserPassword(u.User.Username(), c.SupabaseServiceKey)
	return u.String()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
