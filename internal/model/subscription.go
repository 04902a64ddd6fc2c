// Package model содержит модели данных.
package model

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Subscription представляет связь пользователя и плейлиста
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions"`

	UserID     int64     `bun:"user_id,pk" json:"user_id"`
	PlaylistID int64     `bun:"playlist_id,pk" json:"playlist_id"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	User     *User     `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Playlist *Playlist `bun:"rel:belongs-to,join:playlist_id=id" json:"-"`
}

// SubscriptionRepository определяет интерфейс для работы с подписками
type SubscriptionRepository interface {
	// Create создает подписку, повторный вызов не имеет эффекта
	Create(ctx context.Context, userID, playlistID int64) (bool, error)

	// Delete удаляет подписку
	Delete(ctx context.Context, userID, playlistID int64) error

	// GetSubscribers возвращает всех подписчиков плейлиста
	GetSubscribers(ctx context.Context, playlistID int64) ([]User, error)

	// GetUserPlaylists возвращает плейлисты, отслеживаемые пользователем
	GetUserPlaylists(ctx context.Context, userID int64) ([]Playlist, error)

	// CountByPlaylist возвращает число подписчиков плейлиста
	CountByPlaylist(ctx context.Context, playlistID int64) (int, error)
}
