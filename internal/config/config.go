package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName       string
	AppEnv        string
	AppPort       string
	DatabaseURL   string
	RedisURL      string
	JWTSecret     string
	StatsCacheTTL time.Duration
	AdminEmail    string
	AdminPassword string
	DefaultTerm   string
	DefaultYear   int
	CORSOrigins   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SRMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SRMS API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("stats.cache_ttl", "5m")
	v.SetDefault("admin.email", "admin@gmail.com")
	v.SetDefault("admin.password", "123456")
	v.SetDefault("marks.default_term", "Term 1")
	v.SetDefault("marks.default_year", 0)
	v.SetDefault("cors.origins", "*")

	ttlString := v.GetString("stats.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	cfg := Config{
		AppName:       v.GetString("app.name"),
		AppEnv:        v.GetString("app.env"),
		AppPort:       v.GetString("app.port"),
		DatabaseURL:   v.GetString("database.url"),
		RedisURL:      v.GetString("redis.url"),
		JWTSecret:     v.GetString("jwt.secret"),
		StatsCacheTTL: ttl,
		AdminEmail:    v.GetString("admin.email"),
		AdminPassword: v.GetString("admin.password"),
		DefaultTerm:   v.GetString("marks.default_term"),
		DefaultYear:   v.GetInt("marks.default_year"),
		CORSOrigins:   v.GetString("cors.origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	// Default year 0 means "use the current year"; resolved by the marks service.
	if cfg.DefaultTerm == "" {
		cfg.DefaultTerm = "Term 1"
	}

	return cfg, nil
}
