// Package handlers содержит обработчики пользовательских команд.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"playlisttracker/internal/gateway/spotify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Start обрабатывает команду /start
func (h *Handlers) Start(message *tgbotapi.Message) {
	h.sessions.Reset(message.Chat.ID)

	text := "Привет! Этот бот следит за плейлистами Spotify и сообщает, " +
		"когда в них появляется что-то новое.\n\n" +
		"Используйте /add, чтобы добавить плейлист."
	h.sendMessage(message.Chat.ID, text)
}

// Help обрабатывает команду /help
func (h *Handlers) Help(message *tgbotapi.Message) {
	text := "Доступные команды:\n" +
		"\n/add - добавить плейлист для отслеживания\n" +
		"/delete - перестать отслеживать плейлист\n" +
		"/stop - прервать текущий диалог\n" +
		"/help - показать это сообщение\n" +
		"\nУведомления приходят в течение нескольких минут после появления нового трека."
	h.sendMessage(message.Chat.ID, text)
}

// Add обрабатывает команду /add: открывает диалог регистрации плейлиста
func (h *Handlers) Add(message *tgbotapi.Message) {
	h.sessions.Set(message.Chat.ID, StateAwaitingPlaylistLink)
	h.sendMessage(message.Chat.ID, "Пришлите ссылку на плейлист Spotify")
}

// Delete обрабатывает команду /delete: показывает список отслеживаемых плейлистов
func (h *Handlers) Delete(message *tgbotapi.Message) {
	ctx := context.Background()

	playlists, err := h.services.Registration.ListUserPlaylists(ctx, message.From.ID)
	if err != nil {
		h.logger.Error("Failed to list user playlists",
			zap.Int64("telegram_id", message.From.ID),
			zap.Error(err))
		h.sendMessage(message.Chat.ID, "Не получилось загрузить ваши плейлисты, попробуйте позже")
		return
	}

	if len(playlists) == 0 {
		h.sessions.Reset(message.Chat.ID)
		h.sendMessage(message.Chat.ID, "Вы пока не отслеживаете ни одного плейлиста. Добавьте первый через /add")
		return
	}

	h.sessions.Set(message.Chat.ID, StateAwaitingDeletionChoice)

	markup := h.keyboard.BuildDeletionKeyboard(playlists)
	if err := h.botAPI.SendMessageWithKeyboard(message.Chat.ID, "Какой плейлист перестать отслеживать?", markup); err != nil {
		h.logger.Error("Failed to send deletion keyboard",
			zap.Int64("chat_id", message.Chat.ID),
			zap.Error(err))
	}
}

// Stop обрабатывает команду /stop: закрывает любой открытый диалог
func (h *Handlers) Stop(message *tgbotapi.Message) {
	h.logger.Info("User stopped the conversation", zap.Int64("telegram_id", message.From.ID))
	h.sessions.Reset(message.Chat.ID)
	h.sendMessage(message.Chat.ID, "Останавливаю текущий диалог.")
}

// Unknown обрабатывает неизвестные команды
func (h *Handlers) Unknown(message *tgbotapi.Message) {
	h.sendMessage(message.Chat.ID, "Неизвестная команда. Список команд: /help")
}

// Text обрабатывает свободный текст: маршрутизирует его по состоянию диалога
func (h *Handlers) Text(message *tgbotapi.Message) {
	switch h.sessions.Get(message.Chat.ID) {
	case StateAwaitingPlaylistLink:
		h.handlePlaylistLink(message)
	case StateAwaitingDeletionChoice:
		h.sendMessage(message.Chat.ID, "Выберите плейлист кнопкой ниже или прервите диалог через /stop")
	default:
		// Вне диалога свободный текст игнорируется
	}
}

// handlePlaylistLink проверяет присланную ссылку и регистрирует плейлист.
// При ошибке валидации диалог остается открытым для повторной попытки.
func (h *Handlers) handlePlaylistLink(message *tgbotapi.Message) {
	ctx := context.Background()

	playlist, err := h.services.Registration.Register(ctx, message.From.ID, userName(message.From), message.Text)
	if err != nil {
		switch {
		case errors.Is(err, spotify.ErrInvalidLink):
			h.sendMessage(message.Chat.ID, "Это не похоже на ссылку на плейлист. Попробуйте еще раз или прервите диалог через /stop")
		case errors.Is(err, spotify.ErrPlaylistNotFound):
			h.sendMessage(message.Chat.ID, "Плейлист не найден (возможно, он приватный?). Пришлите другую ссылку")
		default:
			h.logger.Error("Failed to register playlist",
				zap.Int64("telegram_id", message.From.ID),
				zap.Error(err))
			h.sendMessage(message.Chat.ID, "Spotify сейчас не отвечает, попробуйте еще раз чуть позже")
		}
		return
	}

	h.sessions.Reset(message.Chat.ID)
	h.sendMessage(message.Chat.ID, fmt.Sprintf(
		"Плейлист «%s» добавлен! Я напишу, когда в нем появятся новые треки", playlist.DisplayTitle()))
}

// CallbackQuery обрабатывает нажатия инлайн-кнопок
func (h *Handlers) CallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID

	if playlistID, ok := parseUnsubCallback(query.Data); ok {
		h.handleUnsubscribe(query, chatID, playlistID)
		return
	}

	h.logger.Warn("Unknown callback data", zap.String("data", query.Data))
	if err := h.botAPI.AnswerCallbackQuery(query.ID, ""); err != nil {
		h.logger.Debug("Failed to answer callback", zap.Error(err))
	}
}

// handleUnsubscribe отписывает пользователя от выбранного плейлиста
func (h *Handlers) handleUnsubscribe(query *tgbotapi.CallbackQuery, chatID, playlistID int64) {
	ctx := context.Background()

	playlist, err := h.services.Registration.Unsubscribe(ctx, query.From.ID, playlistID)
	if err != nil {
		h.logger.Error("Failed to unsubscribe",
			zap.Int64("telegram_id", query.From.ID),
			zap.Int64("playlist_id", playlistID),
			zap.Error(err))
		if err := h.botAPI.AnswerCallbackQuery(query.ID, "Не получилось, попробуйте позже"); err != nil {
			h.logger.Debug("Failed to answer callback", zap.Error(err))
		}
		return
	}

	h.sessions.Reset(chatID)

	if err := h.botAPI.AnswerCallbackQuery(query.ID, ""); err != nil {
		h.logger.Debug("Failed to answer callback", zap.Error(err))
	}

	text := fmt.Sprintf("Плейлист «%s» больше не отслеживается", playlist.DisplayTitle())
	if err := h.botAPI.EditMessage(chatID, query.Message.MessageID, text); err != nil {
		h.sendMessage(chatID, text)
	}
}

// parseUnsubCallback разбирает callback data вида "unsub_<id>"
func parseUnsubCallback(data string) (int64, bool) {
	const prefix = "unsub_"
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

// userName возвращает отображаемое имя пользователя Telegram
func userName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}

	if user.UserName != "" {
		return "@" + user.UserName
	}

	if user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}

	return user.FirstName
}
