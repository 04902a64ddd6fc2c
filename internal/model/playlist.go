// Package model содержит модели данных.
package model

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Playlist представляет отслеживаемый плейлист Spotify
type Playlist struct {
	bun.BaseModel `bun:"table:playlists"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	SpotifyID string `bun:"spotify_id,notnull,unique" json:"spotify_id"`
	Title     string `bun:"title,nullzero" json:"title,omitempty"`

	// LastAddedAt — время самого свежего уже учтённого добавления трека.
	// NULL только для плейлиста, который был пуст при регистрации.
	LastAddedAt *time.Time `bun:"last_added_at,nullzero" json:"last_added_at,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// URL возвращает каноническую ссылку на плейлист
func (p *Playlist) URL() string {
	return "https://open.spotify.com/playlist/" + p.SpotifyID
}

// DisplayTitle возвращает название плейлиста или заглушку, если оно неизвестно
func (p *Playlist) DisplayTitle() string {
	if p.Title == "" {
		return "Безымянный плейлист"
	}
	return p.Title
}

// PlaylistRepository определяет интерфейс для работы с плейлистами
type PlaylistRepository interface {
	// GetAll возвращает все известные плейлисты
	GetAll(ctx context.Context) ([]Playlist, error)

	// GetByID возвращает плейлист по внутреннему ID
	GetByID(ctx context.Context, id int64) (*Playlist, error)

	// GetOrCreate возвращает плейлист по Spotify ID, создавая его при первой регистрации
	GetOrCreate(ctx context.Context, playlist *Playlist) (*Playlist, bool, error)

	// UpdateWatermark сохраняет новое время последнего добавления
	UpdateWatermark(ctx context.Context, id int64, lastAddedAt time.Time) error

	// Delete удаляет плейлист вместе с подписками (каскадно)
	Delete(ctx context.Context, id int64) error
}
