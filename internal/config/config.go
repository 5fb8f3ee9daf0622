package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	App      *AppConfig
	Backend  *BackendConfig
	Redis    *RedisConfig
	Session  *SessionConfig
	Security *SecurityConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Port        int
	Host        string
	Debug       bool
	LogLevel    string
	LogFormat   string
}

// BackendConfig points at the external rental API that owns all business logic.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	// ServiceToken authenticates background jobs that run without a user
	// session, such as the dashboard stats refresher.
	ServiceToken     string
	StatsCacheTTL    time.Duration
	StatsRefreshSpec string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	// InMemory skips Redis entirely; used in tests and redis-less dev.
	InMemory bool
}

type SecurityConfig struct {
	JWTSecret          string
	CORSAllowedOrigins []string
	TrustedProxies     []string
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	config := &Config{
		App:      loadAppConfig(),
		Backend:  loadBackendConfig(),
		Redis:    loadRedisConfig(),
		Session:  loadSessionConfig(),
		Security: loadSecurityConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "gorent"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 8080),
		Host:        getEnv("APP_HOST", "localhost"),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}
}

func loadBackendConfig() *BackendConfig {
	return &BackendConfig{
		BaseURL:          getEnv("BACKEND_BASE_URL", "http://localhost:9000/api"),
		Timeout:          getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		ServiceToken:     getEnv("BACKEND_SERVICE_TOKEN", ""),
		StatsCacheTTL:    getEnvAsDuration("STATS_CACHE_TTL", 5*time.Minute),
		StatsRefreshSpec: getEnv("STATS_REFRESH_SPEC", "@every 1m"),
	}
}

func loadRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvAsInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("REDIS_DB", 0),
		PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		CookieName: getEnv("SESSION_COOKIE_NAME", "gorent_session"),
		TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		Secure:     getEnvAsBool("SESSION_SECURE", false),
		InMemory:   getEnvAsBool("SESSION_IN_MEMORY", false),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		return cast.ToInt(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return cast.ToBool(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func IsProduction() bool {
	return getEnv("APP_ENV", "development") == "production"
}

func IsDevelopment() bool {
	return getEnv("APP_ENV", "development") == "development"
}
