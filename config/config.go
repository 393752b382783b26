package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CorsOrigins       string `mapstructure:"CORS_ORIGINS"`

	// REST backend.
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Redis configuration for the long-lived session tier.
	RedisEnabled   bool   `mapstructure:"REDIS_ENABLED"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	SessionKey      string `mapstructure:"SESSION_ENCRYPTION_KEY"`
	StrictRoleMatch bool   `mapstructure:"STRICT_ROLE_MATCH"`
	RefreshSchedule string `mapstructure:"REFRESH_SCHEDULE"`

	// Clients idle longer than this lose their session-scoped tier.
	ClientIdleMinutes int `mapstructure:"CLIENT_IDLE_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("API_BASE_URL", "http://localhost:8081")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	viper.SetDefault("REDIS_ENABLED", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("SESSION_TTL_HOURS", 168)
	viper.SetDefault("SESSION_ENCRYPTION_KEY", "")
	viper.SetDefault("STRICT_ROLE_MATCH", false)
	viper.SetDefault("REFRESH_SCHEDULE", "")
	viper.SetDefault("CLIENT_IDLE_MINUTES", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// HTTPTimeout returns the REST client timeout.
func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// SessionTTL returns the lifetime of keys in the long-lived session tier.
func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// ClientIdle returns how long an unused client is kept in memory.
func (c Config) ClientIdle() time.Duration {
	if c.ClientIdleMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(c.ClientIdleMinutes) * time.Minute
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
