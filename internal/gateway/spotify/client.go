// Package spotify реализует клиент для работы с Spotify Web API.
package spotify

import (
	"context"
	"fmt"
	"strings"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// Client представляет клиент для работы с Spotify API
type Client struct {
	api    *spotifyapi.Client
	logger *zap.Logger
}

var _ Interface = (*Client)(nil)

// NewClient создает новый Spotify клиент с использованием Client Credentials Flow.
// Токен обновляется автоматически средствами oauth2.
func NewClient(ctx context.Context, clientID, clientSecret string, logger *zap.Logger) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret are required")
	}

	credentials := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	httpClient := credentials.Client(ctx)

	logger.Info("Spotify client created successfully with client credentials flow")

	return &Client{
		api:    spotifyapi.New(httpClient),
		logger: logger,
	}, nil
}

// ParsePlaylistLink извлекает ID плейлиста из пользовательской ссылки.
// Поддерживаемые форматы:
//
//	https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=...
//	spotify:playlist:37i9dQZF1DXcBWIGoYBM5M
//	37i9dQZF1DXcBWIGoYBM5M
func ParsePlaylistLink(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", ErrInvalidLink
	}

	if strings.HasPrefix(link, "spotify:playlist:") {
		id := strings.TrimPrefix(link, "spotify:playlist:")
		if id == "" {
			return "", ErrInvalidLink
		}
		return id, nil
	}

	if strings.Contains(link, "open.spotify.com/playlist/") {
		parts := strings.Split(link, "/playlist/")
		if len(parts) != 2 {
			return "", ErrInvalidLink
		}
		// Убираем возможные параметры после ID
		id := strings.Split(parts[1], "?")[0]
		id = strings.TrimSuffix(id, "/")
		if id == "" {
			return "", ErrInvalidLink
		}
		return id, nil
	}

	// Голый ID без ссылки
	if strings.ContainsAny(link, "/:?&= ") {
		return "", ErrInvalidLink
	}

	return link, nil
}

// GetPlaylistInfo получает информацию о плейлисте
func (c *Client) GetPlaylistInfo(ctx context.Context, playlistID string) (*PlaylistInfo, error) {
	playlist, err := c.api.GetPlaylist(ctx, spotifyapi.ID(playlistID))
	if err != nil {
		c.logger.Debug("Failed to get playlist info",
			zap.String("playlist_id", playlistID),
			zap.Error(err))
		return nil, classifyError(err)
	}

	return &PlaylistInfo{
		ID:          string(playlist.ID),
		Name:        playlist.Name,
		Owner:       playlist.Owner.DisplayName,
		TotalTracks: int(playlist.Tracks.Total),
	}, nil
}

// GetPlaylistTracks получает все треки плейлиста, следуя пагинации до конца
func (c *Client) GetPlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	var allTracks []Track
	offset := 0
	limit := 100 // Максимальный размер страницы для Spotify API

	c.logger.Debug("Starting pagination to get all playlist tracks",
		zap.String("playlist_id", playlistID))

	for {
		page, err := c.api.GetPlaylistItems(ctx, spotifyapi.ID(playlistID),
			spotifyapi.Limit(limit), spotifyapi.Offset(offset))
		if err != nil {
			c.logger.Debug("Spotify API request failed",
				zap.String("playlist_id", playlistID),
				zap.Int("offset", offset),
				zap.Error(err))
			return nil, classifyError(err)
		}

		for _, item := range page.Items {
			// Пропускаем эпизоды подкастов и удаленные треки
			if item.Track.Track == nil {
				continue
			}

			addedAt, err := parseAddedAt(item.AddedAt)
			if err != nil {
				c.logger.Warn("Failed to parse track added_at",
					zap.String("playlist_id", playlistID),
					zap.String("track_id", string(item.Track.Track.ID)),
					zap.String("added_at", item.AddedAt),
					zap.Error(err))
				continue
			}

			artistName := "Unknown Artist"
			if len(item.Track.Track.Artists) > 0 {
				artistName = item.Track.Track.Artists[0].Name
			}

			allTracks = append(allTracks, Track{
				ID:      string(item.Track.Track.ID),
				Title:   item.Track.Track.Name,
				Artist:  artistName,
				AddedAt: addedAt,
			})
		}

		if offset+len(page.Items) >= int(page.Total) || len(page.Items) == 0 {
			break
		}

		offset += len(page.Items)
	}

	c.logger.Debug("Retrieved all tracks from playlist",
		zap.String("playlist_id", playlistID),
		zap.Int("total_tracks", len(allTracks)))

	return allTracks, nil
}

// parseAddedAt разбирает временную метку Spotify в UTC с точностью до секунды
func parseAddedAt(value string) (time.Time, error) {
	t, err := time.Parse(spotifyapi.TimestampLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t.UTC().Truncate(time.Second), nil
}
