package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"playlisttracker/internal/gateway/spotify"
	"playlisttracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMonitor(playlists *fakePlaylistRepo, subs *fakeSubscriptionRepo, catalog *fakeCatalog, botAPI *fakeBotAPI) *Monitor {
	logger := zap.NewNop()
	notifier := NewNotifier(botAPI, logger)
	return NewMonitor(playlists, subs, catalog, notifier, 30*time.Second, logger)
}

func TestMonitor_NotifiesOnNewTracks(t *testing.T) {
	playlists := &fakePlaylistRepo{
		playlists: []model.Playlist{
			{ID: 1, SpotifyID: "pl1", Title: "Daily Mix", LastAddedAt: tsPtr("2024-01-01T00:00:00Z")},
		},
	}
	subs := &fakeSubscriptionRepo{
		subscribers: map[int64][]model.User{
			1: {{ID: 10, TelegramID: 100}, {ID: 11, TelegramID: 101}},
		},
	}
	catalog := &fakeCatalog{
		tracks: map[string][]spotify.Track{
			"pl1": {
				{ID: "a", AddedAt: ts("2024-01-01T00:00:00Z")},
				{ID: "b", AddedAt: ts("2024-01-02T00:00:00Z")},
			},
		},
	}
	botAPI := newFakeBotAPI()

	report := newMonitor(playlists, subs, catalog, botAPI).RunCycle(context.Background())

	assert.Equal(t, OutcomeNotified, report[1])
	assert.Equal(t, 1, playlists.watermarkUpdates)
	require.NotNil(t, playlists.playlists[0].LastAddedAt)
	assert.Equal(t, ts("2024-01-02T00:00:00Z"), *playlists.playlists[0].LastAddedAt)
	assert.Len(t, botAPI.sent[100], 1)
	assert.Len(t, botAPI.sent[101], 1)
	assert.Contains(t, botAPI.sent[100][0], "Daily Mix")
	assert.Contains(t, botAPI.sent[100][0], "https://open.spotify.com/playlist/pl1")
}

func TestMonitor_SecondCycleIsIdempotent(t *testing.T) {
	playlists := &fakePlaylistRepo{
		playlists: []model.Playlist{
			{ID: 1, SpotifyID: "pl1", LastAddedAt: tsPtr("2024-01-01T00:00:00Z")},
		},
	}
	subs := &fakeSubscriptionRepo{
		subscribers: map[int64][]model.User{1: {{ID: 10, TelegramID: 100}}},
	}
	catalog := &fakeCatalog{
		tracks: map[string][]spotify.Track{
			"pl1": {{ID: "b", AddedAt: ts("2024-01-02T00:00:00Z")}},
		},
	}
	botAPI := newFakeBotAPI()
	monitor := newMonitor(playlists, subs, catalog, botAPI)

	first := monitor.RunCycle(context.Background())
	assert.Equal(t, OutcomeNotified, first[1])
	assert.Equal(t, 1, playlists.watermarkUpdates)
	assert.Equal(t, 1, botAPI.totalSent())

	// Повторный цикл без изменений наверху: ни записей, ни уведомлений
	second := monitor.RunCycle(context.Background())
	assert.Equal(t, OutcomeUnchanged, second[1])
	assert.Equal(t, 1, playlists.watermarkUpdates)
	assert.Equal(t, 1, botAPI.totalSent())
}

func TestMonitor_DeletesPlaylistGoneUpstream(t *testing.T) {
	playlists := &fakePlaylistRepo{
		playlists: []model.Playlist{
			{ID: 1, SpotifyID: "gone", LastAddedAt: tsPtr("2024-01-01T00:00:00Z")},
		},
	}
	subs := &fakeSubscriptionRepo{
		subscribers: map[int64][]model.User{1: {{ID: 10, TelegramID: 100}}},
	}
	catalog := &fakeCatalog{
		errs: map[string]error{"gone": spotify.ErrPlaylistNotFound},
	}
	botAPI := newFakeBotAPI()

	report := newMonitor(playlists, subs, catalog, botAPI).RunCycle(context.Background())

	assert.Equal(t, OutcomeDeleted, report[1])
	assert.Equal(t, []int64{1}, playlists.deletes)
	assert.Empty(t, playlists.playlists)
	// Уведомления при удалении не рассылаются
	assert.Equal(t, 0, botAPI.totalSent())
}

func TestMonitor_TransientErrorLeavesWatermarkAlone(t *testing.T) {
	watermark := tsPtr("2024-01-01T00:00:00Z")
	playlists := &fakePlaylistRepo{
		playlists: []model.Playlist{
			{ID: 1, SpotifyID: "flaky", LastAddedAt: watermark},
		},
	}
	subs := &fakeSubscriptionRepo{subscribers: map[int64][]model.User{}}
	catalog := &fakeCatalog{
		errs: map[string]error{"flaky": errors.New("rate limited")},
	}
	botAPI := newFakeBotAPI()

	report := newMonitor(playlists, subs, catalog, botAPI).RunCycle(context.Background())

	assert.Equal(t, OutcomeSkipped, report[1])
	assert.Equal(t, 0, playlists.watermarkUpdates)
	assert.Empty(t, playlists.deletes)
	assert.Equal(t, watermark, playlists.playlists[0].LastAddedAt)
}

func TestMonitor_FailureIsolatedPerPlaylist(t *testing.T) {
	playlists := &fakePlaylistRepo{
		playlists: []model.Playlist{
			{ID: 1, SpotifyID: "broken", LastAddedAt: tsPtr("2024-01-01T00:00:00Z")},
			{ID: 2, SpotifyID: "healthy", LastAddedAt: tsPtr("2024-01-01T00:00:00Z")},
		},
	}
	subs := &fakeSubscriptionRepo{
		subscribers: map[int64][]model.User{2: {{ID: 10, TelegramID: 100}}},
	}
	catalog := &fakeCatalog{
		tracks: map[string][]spotify.Track{
			"healthy": {{ID: "b", AddedAt: ts("2024-01-02T00:00:00Z")}},
		},
		errs: map[string]error{"broken": errors.New("malformed response")},
	}
	botAPI := newFakeBotAPI()

	report := newMonitor(playlists, subs, catalog, botAPI).RunCycle(context.Background())

	// Сбой первого плейлиста не мешает проверке второго
	assert.Equal(t, OutcomeSkipped, report[1])
	assert.Equal(t, OutcomeNotified, report[2])
	assert.Len(t, botAPI.sent[100], 1)
}

func TestMonitor_EmptyPlaylistIsNoop(t *testing.T) {
	playlists := &fakePlaylistRepo{
		playlists: []model.Playlist{
			{ID: 1, SpotifyID: "empty"},
		},
	}
	subs := &fakeSubscriptionRepo{subscribers: map[int64][]model.User{}}
	catalog := &fakeCatalog{tracks: map[string][]spotify.Track{"empty": nil}}
	botAPI := newFakeBotAPI()

	report := newMonitor(playlists, subs, catalog, botAPI).RunCycle(context.Background())

	assert.Equal(t, OutcomeUnchanged, report[1])
	assert.Equal(t, 0, playlists.watermarkUpdates)
	assert.Equal(t, 0, botAPI.totalSent())
}
