// Package spotify содержит классификацию ошибок Spotify API.
package spotify

import (
	"errors"
	"fmt"
	"net/http"

	spotifyapi "github.com/zmb3/spotify/v2"
)

// Ошибки клиента Spotify
var (
	// ErrPlaylistNotFound — плейлист не существует или стал приватным.
	// Повторные запросы не помогут.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrInvalidLink — строка не похожа на ссылку на плейлист
	ErrInvalidLink = errors.New("invalid playlist link")
)

// classifyError приводит ошибку Spotify API к ошибкам клиента.
// 404 означает удаленный или приватный плейлист, остальное считается временной ошибкой.
func classifyError(err error) error {
	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrPlaylistNotFound, apiErr.Message)
	}
	return err
}
