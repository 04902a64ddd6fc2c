// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"

	"playlisttracker/internal/external/telegram"
	"playlisttracker/internal/model"

	"go.uber.org/zap"
)

// Notifier рассылает уведомления подписчикам плейлиста
type Notifier struct {
	botAPI telegram.BotAPI
	logger *zap.Logger
}

// NewNotifier создает новый рассыльщик уведомлений
func NewNotifier(botAPI telegram.BotAPI, logger *zap.Logger) *Notifier {
	return &Notifier{
		botAPI: botAPI,
		logger: logger,
	}
}

// Notify отправляет по одному сообщению каждому подписчику плейлиста.
// Ошибка доставки одному получателю не мешает остальным.
// Возвращает число успешных доставок.
func (n *Notifier) Notify(playlist *model.Playlist, subscribers []model.User) int {
	if len(subscribers) == 0 {
		n.logger.Info("No subscribers to notify",
			zap.Int64("playlist_id", playlist.ID),
			zap.String("spotify_id", playlist.SpotifyID))
		return 0
	}

	message := buildNotification(playlist)
	delivered := 0

	for _, subscriber := range subscribers {
		if err := n.botAPI.SendMessage(subscriber.TelegramID, message); err != nil {
			// Например, пользователь заблокировал бота
			n.logger.Warn("Failed to deliver notification",
				zap.Int64("telegram_id", subscriber.TelegramID),
				zap.Int64("playlist_id", playlist.ID),
				zap.Error(err))
			continue
		}
		delivered++
	}

	n.logger.Info("Notifications sent",
		zap.Int64("playlist_id", playlist.ID),
		zap.String("title", playlist.DisplayTitle()),
		zap.Int("delivered", delivered),
		zap.Int("subscribers", len(subscribers)))

	return delivered
}

// buildNotification формирует текст уведомления
func buildNotification(playlist *model.Playlist) string {
	return fmt.Sprintf("Что-то новое в плейлисте «%s»!\n%s",
		playlist.DisplayTitle(), playlist.URL())
}
