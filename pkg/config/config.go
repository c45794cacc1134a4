package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Platform PlatformConfig
	Planner  PlannerConfig
	Exports  ExportsConfig
	CORS     CORSConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig configures session token issuing.
type AuthConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
	Issuer            string
}

// PlatformConfig points at the external learning platform API.
type PlatformConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	PageSize     int
}

// PlannerConfig tunes the plan aggregation pipeline.
type PlannerConfig struct {
	CacheEnabled  bool
	PlanCacheTTL  time.Duration
	ScopeCacheTTL time.Duration
	WarmupWorkers int
}

// ExportsConfig toggles plan export formats.
type ExportsConfig struct {
	Enabled bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Secret:            v.GetString("SESSION_SECRET"),
		Expiration:        parseDuration(v.GetString("SESSION_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 30*24*time.Hour),
		Issuer:            v.GetString("SESSION_ISSUER"),
	}

	cfg.Platform = PlatformConfig{
		BaseURL:      v.GetString("PLATFORM_BASE_URL"),
		Timeout:      parseDuration(v.GetString("PLATFORM_TIMEOUT"), 15*time.Second),
		MaxRetries:   v.GetInt("PLATFORM_MAX_RETRIES"),
		RetryBackoff: parseDuration(v.GetString("PLATFORM_RETRY_BACKOFF"), 500*time.Millisecond),
		PageSize:     v.GetInt("PLATFORM_PAGE_SIZE"),
	}

	cfg.Planner = PlannerConfig{
		CacheEnabled:  v.GetBool("PLANNER_CACHE_ENABLED"),
		PlanCacheTTL:  parseDuration(v.GetString("PLAN_CACHE_TTL"), 2*time.Minute),
		ScopeCacheTTL: parseDuration(v.GetString("SCOPE_CACHE_TTL"), 15*time.Minute),
		WarmupWorkers: v.GetInt("PLANNER_WARMUP_WORKERS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "study_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "720h")
	v.SetDefault("SESSION_ISSUER", "study-planner-api")

	v.SetDefault("PLATFORM_BASE_URL", "http://localhost:3001")
	v.SetDefault("PLATFORM_TIMEOUT", "15s")
	v.SetDefault("PLATFORM_MAX_RETRIES", 4)
	v.SetDefault("PLATFORM_RETRY_BACKOFF", "500ms")
	v.SetDefault("PLATFORM_PAGE_SIZE", 100)

	v.SetDefault("PLANNER_CACHE_ENABLED", true)
	v.SetDefault("PLAN_CACHE_TTL", "2m")
	v.SetDefault("SCOPE_CACHE_TTL", "15m")
	v.SetDefault("PLANNER_WARMUP_WORKERS", 1)

	v.SetDefault("ENABLE_EXPORTS", true)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
