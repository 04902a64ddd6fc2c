// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Режимы получения обновлений от Telegram
const (
	TransportPolling = "polling"
	TransportWebhook = "webhook"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Database
	DatabaseURL string

	// Telegram
	BotToken       string
	TransportMode  string
	WebhookURL     string
	WebhookListen  string

	// Spotify
	SpotifyClientID     string
	SpotifyClientSecret string

	// Monitoring
	PollInterval   time.Duration
	CatalogTimeout time.Duration

	// Health
	HealthPort         string
	HealthCheckEnabled bool

	// Logging
	LogLevel string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку если файл не найден
	}

	config := &Config{
		DatabaseURL:         getEnv("DB_DSN", ""),
		BotToken:            getEnv("BOT_TOKEN", ""),
		TransportMode:       getEnv("TRANSPORT_MODE", TransportPolling),
		WebhookURL:          getEnv("WEBHOOK_URL", ""),
		WebhookListen:       getEnv("WEBHOOK_LISTEN", ":8443"),
		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		PollInterval:        getEnvDuration("POLL_INTERVAL", 5*time.Minute),
		CatalogTimeout:      getEnvDuration("CATALOG_TIMEOUT", 30*time.Second),
		HealthPort:          getEnv("HEALTH_PORT", "8080"),
		HealthCheckEnabled:  getEnvBool("HEALTH_CHECK_ENABLED", true),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	// Валидация обязательных полей
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	if c.SpotifyClientID == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_ID is required")
	}

	if c.SpotifyClientSecret == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_SECRET is required")
	}

	if c.TransportMode != TransportPolling && c.TransportMode != TransportWebhook {
		return fmt.Errorf("TRANSPORT_MODE must be %q or %q", TransportPolling, TransportWebhook)
	}

	if c.TransportMode == TransportWebhook && c.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL is required in webhook mode")
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}

	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
