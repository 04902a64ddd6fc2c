// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"fmt"

	"playlisttracker/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// SubscriptionRepository реализует интерфейс для работы с подписками
type SubscriptionRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSubscriptionRepository создает новый репозиторий подписок
func NewSubscriptionRepository(db *bun.DB, logger *zap.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

var _ model.SubscriptionRepository = (*SubscriptionRepository)(nil)

// Create создает подписку, повторный вызов не имеет эффекта
func (r *SubscriptionRepository) Create(ctx context.Context, userID, playlistID int64) (bool, error) {
	subscription := &model.Subscription{
		UserID:     userID,
		PlaylistID: playlistID,
	}

	res, err := r.db.NewInsert().
		Model(subscription).
		On("CONFLICT (user_id, playlist_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create subscription: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows > 0 {
		r.logger.Info("Subscription created",
			zap.Int64("user_id", userID),
			zap.Int64("playlist_id", playlistID))
	}

	return rows > 0, nil
}

// Delete удаляет подписку
func (r *SubscriptionRepository) Delete(ctx context.Context, userID, playlistID int64) error {
	_, err := r.db.NewDelete().
		Model((*model.Subscription)(nil)).
		Where("user_id = ?", userID).
		Where("playlist_id = ?", playlistID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}

// GetSubscribers возвращает всех подписчиков плейлиста
func (r *SubscriptionRepository) GetSubscribers(ctx context.Context, playlistID int64) ([]model.User, error) {
	var users []model.User

	err := r.db.NewSelect().
		Model(&users).
		Join("JOIN subscriptions AS s ON s.user_id = \"user\".id").
		Where("s.playlist_id = ?", playlistID).
		Order("\"user\".id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}

	return users, nil
}

// GetUserPlaylists возвращает плейлисты, отслеживаемые пользователем
func (r *SubscriptionRepository) GetUserPlaylists(ctx context.Context, userID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist

	err := r.db.NewSelect().
		Model(&playlists).
		Join("JOIN subscriptions AS s ON s.playlist_id = playlist.id").
		Where("s.user_id = ?", userID).
		Order("playlist.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user playlists: %w", err)
	}

	return playlists, nil
}

// CountByPlaylist возвращает число подписчиков плейлиста
func (r *SubscriptionRepository) CountByPlaylist(ctx context.Context, playlistID int64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*model.Subscription)(nil)).
		Where("playlist_id = ?", playlistID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	return count, nil
}
