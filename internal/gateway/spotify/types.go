// Package spotify содержит типы для работы с Spotify API.
package spotify

import "time"

// Track представляет трек из плейлиста Spotify
type Track struct {
	ID      string    // Spotify Track ID
	Title   string    // Название трека
	Artist  string    // Исполнитель
	AddedAt time.Time // Время добавления в плейлист, UTC с точностью до секунды
}

// PlaylistInfo содержит информацию о плейлисте Spotify
type PlaylistInfo struct {
	ID          string
	Name        string
	Owner       string
	TotalTracks int
}
