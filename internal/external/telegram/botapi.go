// Package telegram содержит интеграцию с Telegram Bot API.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// BotAPI определяет интерфейс для отправки сообщений в Telegram
type BotAPI interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	AnswerCallbackQuery(callbackID string, text string) error
	EditMessage(chatID int64, messageID int, text string) error
}

// TelegramBotAPI оборачивает tgbotapi.BotAPI и реализует интерфейс BotAPI
type TelegramBotAPI struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

var _ BotAPI = (*TelegramBotAPI)(nil)

// NewTelegramBotAPI создает новый экземпляр TelegramBotAPI
func NewTelegramBotAPI(api *tgbotapi.BotAPI, logger *zap.Logger) *TelegramBotAPI {
	return &TelegramBotAPI{
		api:    api,
		logger: logger,
	}
}

// SendMessage отправляет текстовое сообщение
func (t *TelegramBotAPI) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		t.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}

	return nil
}

// SendMessageWithKeyboard отправляет сообщение с инлайн-клавиатурой
func (t *TelegramBotAPI) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		t.logger.Error("Failed to send message with keyboard", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}

	return nil
}

// AnswerCallbackQuery отвечает на callback query
func (t *TelegramBotAPI) AnswerCallbackQuery(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)

	if _, err := t.api.Request(callback); err != nil {
		t.logger.Error("Failed to answer callback query", zap.Error(err))
		return err
	}

	return nil
}

// EditMessage редактирует текст сообщения
func (t *TelegramBotAPI) EditMessage(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)

	if _, err := t.api.Send(edit); err != nil {
		t.logger.Error("Failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}

	return nil
}
