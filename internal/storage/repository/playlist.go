// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"playlisttracker/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// PlaylistRepository реализует интерфейс для работы с плейлистами
type PlaylistRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPlaylistRepository создает новый репозиторий плейлистов
func NewPlaylistRepository(db *bun.DB, logger *zap.Logger) *PlaylistRepository {
	return &PlaylistRepository{
		db:     db,
		logger: logger,
	}
}

var _ model.PlaylistRepository = (*PlaylistRepository)(nil)

// GetAll возвращает все известные плейлисты
func (r *PlaylistRepository) GetAll(ctx context.Context) ([]model.Playlist, error) {
	var playlists []model.Playlist

	err := r.db.NewSelect().
		Model(&playlists).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlists: %w", err)
	}

	return playlists, nil
}

// GetByID возвращает плейлист по внутреннему ID
func (r *PlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	playlist := new(model.Playlist)

	err := r.db.NewSelect().
		Model(playlist).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	return playlist, nil
}

// GetOrCreate возвращает плейлист по Spotify ID, создавая его при первой регистрации
func (r *PlaylistRepository) GetOrCreate(ctx context.Context, playlist *model.Playlist) (*model.Playlist, bool, error) {
	res, err := r.db.NewInsert().
		Model(playlist).
		On("CONFLICT (spotify_id) DO NOTHING").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create playlist: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows > 0 {
		r.logger.Info("New playlist registered",
			zap.String("spotify_id", playlist.SpotifyID),
			zap.String("title", playlist.Title))
		return playlist, true, nil
	}

	existing := new(model.Playlist)
	err = r.db.NewSelect().
		Model(existing).
		Where("spotify_id = ?", playlist.SpotifyID).
		Scan(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get playlist: %w", err)
	}

	return existing, false, nil
}

// UpdateWatermark сохраняет новое время последнего добавления
func (r *PlaylistRepository) UpdateWatermark(ctx context.Context, id int64, lastAddedAt time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*model.Playlist)(nil)).
		Set("last_added_at = ?", lastAddedAt).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update playlist watermark: %w", err)
	}

	return nil
}

// Delete удаляет плейлист вместе с подписками (каскадно)
func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*model.Playlist)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	r.logger.Info("Playlist deleted", zap.Int64("playlist_id", id))
	return nil
}
