// Package spotify реализует интерфейсы для работы с Spotify Web API.
package spotify

import "context"

// Interface определяет интерфейс для работы с Spotify API
type Interface interface {
	// GetPlaylistInfo получает информацию о плейлисте
	GetPlaylistInfo(ctx context.Context, playlistID string) (*PlaylistInfo, error)

	// GetPlaylistTracks получает все треки плейлиста с пагинацией
	GetPlaylistTracks(ctx context.Context, playlistID string) ([]Track, error)
}
