package service

import (
	"context"
	"fmt"
	"time"

	"playlisttracker/internal/gateway/spotify"
	"playlisttracker/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fakeCatalog отдает заранее заданные треки либо ошибку для каждого плейлиста
type fakeCatalog struct {
	tracks map[string][]spotify.Track
	infos  map[string]*spotify.PlaylistInfo
	errs   map[string]error
	calls  int
}

func (f *fakeCatalog) GetPlaylistInfo(ctx context.Context, playlistID string) (*spotify.PlaylistInfo, error) {
	if err := f.errs[playlistID]; err != nil {
		return nil, err
	}
	if info, ok := f.infos[playlistID]; ok {
		return info, nil
	}
	return &spotify.PlaylistInfo{ID: playlistID}, nil
}

func (f *fakeCatalog) GetPlaylistTracks(ctx context.Context, playlistID string) ([]spotify.Track, error) {
	f.calls++
	if err := f.errs[playlistID]; err != nil {
		return nil, err
	}
	return f.tracks[playlistID], nil
}

// fakePlaylistRepo хранит плейлисты в памяти и считает мутации
type fakePlaylistRepo struct {
	playlists        []model.Playlist
	watermarkUpdates int
	deletes          []int64
}

func (f *fakePlaylistRepo) GetAll(ctx context.Context) ([]model.Playlist, error) {
	out := make([]model.Playlist, len(f.playlists))
	copy(out, f.playlists)
	return out, nil
}

func (f *fakePlaylistRepo) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	for i := range f.playlists {
		if f.playlists[i].ID == id {
			p := f.playlists[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePlaylistRepo) GetOrCreate(ctx context.Context, playlist *model.Playlist) (*model.Playlist, bool, error) {
	for i := range f.playlists {
		if f.playlists[i].SpotifyID == playlist.SpotifyID {
			p := f.playlists[i]
			return &p, false, nil
		}
	}
	playlist.ID = int64(len(f.playlists) + 1)
	f.playlists = append(f.playlists, *playlist)
	return playlist, true, nil
}

func (f *fakePlaylistRepo) UpdateWatermark(ctx context.Context, id int64, lastAddedAt time.Time) error {
	f.watermarkUpdates++
	for i := range f.playlists {
		if f.playlists[i].ID == id {
			t := lastAddedAt
			f.playlists[i].LastAddedAt = &t
			return nil
		}
	}
	return fmt.Errorf("playlist %d not found", id)
}

func (f *fakePlaylistRepo) Delete(ctx context.Context, id int64) error {
	f.deletes = append(f.deletes, id)
	for i := range f.playlists {
		if f.playlists[i].ID == id {
			f.playlists = append(f.playlists[:i], f.playlists[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeSubscriptionRepo хранит подписки в памяти
type fakeSubscriptionRepo struct {
	subscribers map[int64][]model.User // playlist_id -> подписчики
	created     []model.Subscription
	deleted     []model.Subscription
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, userID, playlistID int64) (bool, error) {
	for _, s := range f.created {
		if s.UserID == userID && s.PlaylistID == playlistID {
			return false, nil
		}
	}
	f.created = append(f.created, model.Subscription{UserID: userID, PlaylistID: playlistID})
	return true, nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, userID, playlistID int64) error {
	f.deleted = append(f.deleted, model.Subscription{UserID: userID, PlaylistID: playlistID})
	users := f.subscribers[playlistID]
	for i := range users {
		if users[i].ID == userID {
			f.subscribers[playlistID] = append(users[:i], users[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeSubscriptionRepo) GetSubscribers(ctx context.Context, playlistID int64) ([]model.User, error) {
	return f.subscribers[playlistID], nil
}

func (f *fakeSubscriptionRepo) GetUserPlaylists(ctx context.Context, userID int64) ([]model.Playlist, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) CountByPlaylist(ctx context.Context, playlistID int64) (int, error) {
	return len(f.subscribers[playlistID]), nil
}

// fakeUserRepo хранит пользователей в памяти
type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func (f *fakeUserRepo) GetOrCreate(ctx context.Context, telegramID int64, name string) (*model.User, bool, error) {
	if f.users == nil {
		f.users = make(map[int64]*model.User)
	}
	if user, ok := f.users[telegramID]; ok {
		return user, false, nil
	}
	f.nextID++
	user := &model.User{ID: f.nextID, TelegramID: telegramID, Name: name}
	f.users[telegramID] = user
	return user, true, nil
}

func (f *fakeUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return f.users[telegramID], nil
}

// fakeBotAPI записывает отправленные сообщения, для избранных чатов возвращает ошибку
type fakeBotAPI struct {
	sent    map[int64][]string
	blocked map[int64]bool
}

func newFakeBotAPI() *fakeBotAPI {
	return &fakeBotAPI{
		sent:    make(map[int64][]string),
		blocked: make(map[int64]bool),
	}
}

func (f *fakeBotAPI) SendMessage(chatID int64, text string) error {
	if f.blocked[chatID] {
		return fmt.Errorf("forbidden: bot was blocked by the user")
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func (f *fakeBotAPI) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	return f.SendMessage(chatID, text)
}

func (f *fakeBotAPI) AnswerCallbackQuery(callbackID string, text string) error {
	return nil
}

func (f *fakeBotAPI) EditMessage(chatID int64, messageID int, text string) error {
	return nil
}

func (f *fakeBotAPI) totalSent() int {
	total := 0
	for _, messages := range f.sent {
		total += len(messages)
	}
	return total
}
