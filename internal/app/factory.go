// Package app содержит фабрику компонентов приложения.
package app

import (
	"context"
	"fmt"

	"playlisttracker/internal/config"
	"playlisttracker/internal/external/telegram"
	"playlisttracker/internal/gateway/spotify"
	"playlisttracker/internal/health"
	"playlisttracker/internal/middleware"
	"playlisttracker/internal/service"
	"playlisttracker/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory создает компоненты приложения
type ComponentFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewComponentFactory создает новую фабрику компонентов
func NewComponentFactory(config *config.Config, logger *zap.Logger) *ComponentFactory {
	if config == nil {
		logger.Fatal("Config cannot be nil")
	}
	if logger == nil {
		panic("Logger cannot be nil")
	}

	return &ComponentFactory{
		config: config,
		logger: logger,
	}
}

// CreateDatabase создает подключение к базе данных
func (f *ComponentFactory) CreateDatabase() (*storage.Postgres, error) {
	if f.config.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := storage.NewPostgres(f.config.DatabaseURL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	f.logger.Info("Database connection created successfully")
	return db, nil
}

// CreateTelegramClient создает клиент Telegram
func (f *ComponentFactory) CreateTelegramClient() (*telegram.Client, error) {
	if f.config.BotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	client, err := telegram.NewClient(f.config.BotToken, f.config, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}

	f.logger.Info("Telegram client created successfully")
	return client, nil
}

// CreateSpotifyClient создает клиент каталога Spotify
func (f *ComponentFactory) CreateSpotifyClient(ctx context.Context) (*spotify.Client, error) {
	if f.config.SpotifyClientID == "" || f.config.SpotifyClientSecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret are required")
	}

	client, err := spotify.NewClient(ctx, f.config.SpotifyClientID, f.config.SpotifyClientSecret, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create spotify client: %w", err)
	}

	f.logger.Info("Spotify client created successfully")
	return client, nil
}

// CreateServices создает все сервисы
func (f *ComponentFactory) CreateServices(db *storage.Postgres, catalog spotify.Interface, botAPI telegram.BotAPI) (*service.Services, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("spotify catalog is required")
	}

	services := service.NewServices(db, catalog, botAPI, f.config, f.logger)
	f.logger.Info("Services created successfully")
	return services, nil
}

// CreateMiddleware создает middleware
func (f *ComponentFactory) CreateMiddleware() *middleware.Middleware {
	middlewareManager := middleware.New(f.logger)
	f.logger.Info("Middleware created successfully")
	return middlewareManager
}

// CreateHealthServer создает сервер health check
func (f *ComponentFactory) CreateHealthServer(db *storage.Postgres) (*health.Server, error) {
	if !f.config.HealthCheckEnabled {
		f.logger.Info("Health check server is disabled")
		return nil, nil
	}

	if f.config.HealthPort == "" {
		return nil, fmt.Errorf("health port is required when health check is enabled")
	}

	server := health.NewServer(f.config.HealthPort, f.logger, db)
	f.logger.Info("Health check server created", zap.String("port", f.config.HealthPort))
	return server, nil
}

// CreateBot создает полный экземпляр бота со всеми зависимостями
func (f *ComponentFactory) CreateBot(ctx context.Context) (*Bot, error) {
	db, err := f.CreateDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	tgClient, err := f.CreateTelegramClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}

	catalog, err := f.CreateSpotifyClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create spotify client: %w", err)
	}

	services, err := f.CreateServices(db, catalog, tgClient.GetBotAPI())
	if err != nil {
		return nil, fmt.Errorf("failed to create services: %w", err)
	}

	healthServer, err := f.CreateHealthServer(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create health server: %w", err)
	}

	middlewareManager := f.CreateMiddleware()

	bot, err := NewBot(f.config, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot.db = db
	bot.telegram = tgClient
	bot.catalog = catalog
	bot.health = healthServer
	bot.services = services
	bot.middleware = middlewareManager

	f.logger.Info("Bot created successfully with all dependencies")
	return bot, nil
}
