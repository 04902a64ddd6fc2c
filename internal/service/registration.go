// Package service содержит бизнес-логику приложения.
package service

import (
	"context"
	"fmt"

	"playlisttracker/internal/gateway/spotify"
	"playlisttracker/internal/model"

	"go.uber.org/zap"
)

// RegistrationService управляет регистрацией плейлистов и подписками
type RegistrationService struct {
	users         model.UserRepository
	playlists     model.PlaylistRepository
	subscriptions model.SubscriptionRepository
	catalog       spotify.Interface
	logger        *zap.Logger
}

// NewRegistrationService создает новый сервис регистрации
func NewRegistrationService(
	users model.UserRepository,
	playlists model.PlaylistRepository,
	subscriptions model.SubscriptionRepository,
	catalog spotify.Interface,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:         users,
		playlists:     playlists,
		subscriptions: subscriptions,
		catalog:       catalog,
		logger:        logger,
	}
}

// Register регистрирует плейлист по пользовательской ссылке и подписывает
// на него пользователя. Повторная регистрация не имеет эффекта.
//
// Ошибки: spotify.ErrInvalidLink — ссылка не распознана,
// spotify.ErrPlaylistNotFound — плейлист не существует или приватный,
// остальные ошибки временные.
func (s *RegistrationService) Register(ctx context.Context, telegramID int64, name, link string) (*model.Playlist, error) {
	spotifyID, err := spotify.ParsePlaylistLink(link)
	if err != nil {
		return nil, err
	}

	info, err := s.catalog.GetPlaylistInfo(ctx, spotifyID)
	if err != nil {
		return nil, err
	}

	// Полный список треков нужен для инициализации отметки времени:
	// уже существующие треки не должны объявляться новыми при первой проверке.
	tracks, err := s.catalog.GetPlaylistTracks(ctx, spotifyID)
	if err != nil {
		return nil, err
	}

	user, _, err := s.users.GetOrCreate(ctx, telegramID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	playlist, created, err := s.playlists.GetOrCreate(ctx, &model.Playlist{
		SpotifyID:   info.ID,
		Title:       info.Name,
		LastAddedAt: MaxAddedAt(tracks),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert playlist: %w", err)
	}

	if created {
		s.logger.Info("Playlist registered for monitoring",
			zap.String("spotify_id", playlist.SpotifyID),
			zap.String("title", playlist.Title),
			zap.Timep("watermark", playlist.LastAddedAt),
			zap.Int64("telegram_id", telegramID))
	}

	if _, err := s.subscriptions.Create(ctx, user.ID, playlist.ID); err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return playlist, nil
}

// ListUserPlaylists возвращает плейлисты, отслеживаемые пользователем
func (s *RegistrationService) ListUserPlaylists(ctx context.Context, telegramID int64) ([]model.Playlist, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return s.subscriptions.GetUserPlaylists(ctx, user.ID)
}

// Unsubscribe отписывает пользователя от плейлиста. Плейлист без
// подписчиков удаляется: его больше некому уведомлять.
func (s *RegistrationService) Unsubscribe(ctx context.Context, telegramID, playlistID int64) (*model.Playlist, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d is not registered", telegramID)
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("playlist %d not found", playlistID)
	}

	if err := s.subscriptions.Delete(ctx, user.ID, playlist.ID); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription removed",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("playlist_id", playlist.ID))

	count, err := s.subscriptions.CountByPlaylist(ctx, playlist.ID)
	if err != nil {
		return playlist, nil
	}
	if count == 0 {
		if err := s.playlists.Delete(ctx, playlist.ID); err != nil {
			s.logger.Warn("Failed to prune orphaned playlist",
				zap.Int64("playlist_id", playlist.ID),
				zap.Error(err))
		}
	}

	return playlist, nil
}
