package service

import (
	"testing"

	"playlisttracker/internal/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNotifier_DeliversToAllSubscribers(t *testing.T) {
	botAPI := newFakeBotAPI()
	notifier := NewNotifier(botAPI, zap.NewNop())

	playlist := &model.Playlist{ID: 1, SpotifyID: "pl1", Title: "Road Trip"}
	subscribers := []model.User{
		{ID: 1, TelegramID: 100},
		{ID: 2, TelegramID: 101},
		{ID: 3, TelegramID: 102},
	}

	delivered := notifier.Notify(playlist, subscribers)

	assert.Equal(t, 3, delivered)
	assert.Equal(t, 3, botAPI.totalSent())
}

func TestNotifier_BlockedRecipientDoesNotStopOthers(t *testing.T) {
	botAPI := newFakeBotAPI()
	botAPI.blocked[100] = true
	notifier := NewNotifier(botAPI, zap.NewNop())

	playlist := &model.Playlist{ID: 1, SpotifyID: "pl1", Title: "Road Trip"}
	subscribers := []model.User{
		{ID: 1, TelegramID: 100},
		{ID: 2, TelegramID: 101},
	}

	delivered := notifier.Notify(playlist, subscribers)

	assert.Equal(t, 1, delivered)
	assert.Empty(t, botAPI.sent[100])
	assert.Len(t, botAPI.sent[101], 1)
}

func TestNotifier_NoSubscribers(t *testing.T) {
	botAPI := newFakeBotAPI()
	notifier := NewNotifier(botAPI, zap.NewNop())

	delivered := notifier.Notify(&model.Playlist{ID: 1, SpotifyID: "pl1"}, nil)

	assert.Equal(t, 0, delivered)
	assert.Equal(t, 0, botAPI.totalSent())
}

func TestBuildNotification_TitleFallback(t *testing.T) {
	withTitle := buildNotification(&model.Playlist{SpotifyID: "pl1", Title: "Jazz"})
	assert.Contains(t, withTitle, "Jazz")
	assert.Contains(t, withTitle, "https://open.spotify.com/playlist/pl1")

	withoutTitle := buildNotification(&model.Playlist{SpotifyID: "pl2"})
	assert.Contains(t, withoutTitle, "Безымянный плейлист")
	assert.Contains(t, withoutTitle, "https://open.spotify.com/playlist/pl2")
}
