// Package service содержит бизнес-логику приложения.
package service

import (
	"playlisttracker/internal/config"
	"playlisttracker/internal/external/telegram"
	"playlisttracker/internal/gateway/spotify"
	"playlisttracker/internal/storage"

	"go.uber.org/zap"
)

// Services агрегирует все сервисы приложения
type Services struct {
	Registration *RegistrationService
	Monitor      *Monitor
	Notifier     *Notifier
	Scheduler    *Scheduler
}

// NewServices создает все сервисы приложения
func NewServices(
	db *storage.Postgres,
	catalog spotify.Interface,
	botAPI telegram.BotAPI,
	cfg *config.Config,
	logger *zap.Logger,
) *Services {
	users := db.GetUserRepository()
	playlists := db.GetPlaylistRepository()
	subscriptions := db.GetSubscriptionRepository()

	notifier := NewNotifier(botAPI, logger)
	monitor := NewMonitor(playlists, subscriptions, catalog, notifier, cfg.CatalogTimeout, logger)
	registration := NewRegistrationService(users, playlists, subscriptions, catalog, logger)
	scheduler := NewScheduler(monitor, cfg.PollInterval, logger)

	return &Services{
		Registration: registration,
		Monitor:      monitor,
		Notifier:     notifier,
		Scheduler:    scheduler,
	}
}
