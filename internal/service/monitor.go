// Package service содержит бизнес-логику приложения.
package service

import (
	"context"
	"errors"
	"time"

	"playlisttracker/internal/gateway/spotify"
	"playlisttracker/internal/model"

	"go.uber.org/zap"
)

// Outcome представляет результат проверки одного плейлиста за цикл
type Outcome string

// Возможные результаты проверки плейлиста
const (
	OutcomeUnchanged Outcome = "unchanged" // новых треков нет
	OutcomeNotified  Outcome = "notified"  // найдены новые треки, подписчики уведомлены
	OutcomeDeleted   Outcome = "deleted"   // плейлист удален или стал приватным
	OutcomeSkipped   Outcome = "skipped"   // временная ошибка, проверка отложена до следующего цикла
)

// Monitor выполняет периодическую проверку всех плейлистов
type Monitor struct {
	playlists     model.PlaylistRepository
	subscriptions model.SubscriptionRepository
	catalog       spotify.Interface
	notifier      *Notifier
	fetchTimeout  time.Duration
	logger        *zap.Logger
}

// NewMonitor создает новый монитор плейлистов
func NewMonitor(
	playlists model.PlaylistRepository,
	subscriptions model.SubscriptionRepository,
	catalog spotify.Interface,
	notifier *Notifier,
	fetchTimeout time.Duration,
	logger *zap.Logger,
) *Monitor {
	return &Monitor{
		playlists:     playlists,
		subscriptions: subscriptions,
		catalog:       catalog,
		notifier:      notifier,
		fetchTimeout:  fetchTimeout,
		logger:        logger,
	}
}

// RunCycle проверяет все известные плейлисты по очереди.
// Ошибка при проверке одного плейлиста не прерывает проверку остальных.
func (m *Monitor) RunCycle(ctx context.Context) map[int64]Outcome {
	report := make(map[int64]Outcome)

	playlists, err := m.playlists.GetAll(ctx)
	if err != nil {
		m.logger.Error("Failed to load playlists for check cycle", zap.Error(err))
		return report
	}

	m.logger.Info("Starting check cycle", zap.Int("playlists", len(playlists)))

	for i := range playlists {
		playlist := playlists[i]
		report[playlist.ID] = m.checkPlaylist(ctx, &playlist)
	}

	m.logger.Info("Check cycle finished", zap.Int("playlists", len(playlists)))
	return report
}

// checkPlaylist проверяет один плейлист на новые треки
func (m *Monitor) checkPlaylist(ctx context.Context, playlist *model.Playlist) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Panic while checking playlist",
				zap.Int64("playlist_id", playlist.ID),
				zap.Any("panic", r))
			outcome = OutcomeSkipped
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, m.fetchTimeout)
	tracks, err := m.catalog.GetPlaylistTracks(fetchCtx, playlist.SpotifyID)
	cancel()

	if errors.Is(err, spotify.ErrPlaylistNotFound) {
		// Плейлист удален или стал приватным: убираем его вместе с подписками
		m.logger.Info("Playlist no longer exists upstream, removing",
			zap.Int64("playlist_id", playlist.ID),
			zap.String("spotify_id", playlist.SpotifyID))

		if err := m.playlists.Delete(ctx, playlist.ID); err != nil {
			m.logger.Error("Failed to delete stale playlist",
				zap.Int64("playlist_id", playlist.ID),
				zap.Error(err))
			return OutcomeSkipped
		}
		return OutcomeDeleted
	}

	if err != nil {
		// Временная ошибка: отметка не трогается, повторим в следующем цикле
		m.logger.Warn("Failed to fetch playlist tracks, skipping until next cycle",
			zap.Int64("playlist_id", playlist.ID),
			zap.String("spotify_id", playlist.SpotifyID),
			zap.Error(err))
		return OutcomeSkipped
	}

	verdict := Detect(tracks, playlist.LastAddedAt)
	if !verdict.HasNew {
		m.logger.Debug("No new tracks",
			zap.Int64("playlist_id", playlist.ID),
			zap.String("title", playlist.DisplayTitle()))
		return OutcomeUnchanged
	}

	m.logger.Info("New tracks found",
		zap.Int64("playlist_id", playlist.ID),
		zap.String("title", playlist.DisplayTitle()),
		zap.Timep("watermark", verdict.Watermark))

	// Сначала сохраняем отметку, потом рассылаем: сбой посреди рассылки
	// не приводит к повторным уведомлениям в следующем цикле.
	if err := m.playlists.UpdateWatermark(ctx, playlist.ID, *verdict.Watermark); err != nil {
		m.logger.Error("Failed to persist watermark",
			zap.Int64("playlist_id", playlist.ID),
			zap.Error(err))
		return OutcomeSkipped
	}

	subscribers, err := m.subscriptions.GetSubscribers(ctx, playlist.ID)
	if err != nil {
		m.logger.Error("Failed to load subscribers",
			zap.Int64("playlist_id", playlist.ID),
			zap.Error(err))
		return OutcomeNotified
	}

	m.notifier.Notify(playlist, subscribers)
	return OutcomeNotified
}
