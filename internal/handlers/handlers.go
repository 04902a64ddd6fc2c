// Package handlers содержит обработчики команд.
package handlers

import (
	"playlisttracker/internal/external/telegram"
	"playlisttracker/internal/keyboard"
	"playlisttracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handlers содержит все обработчики команд
type Handlers struct {
	services *service.Services
	sessions *SessionManager
	keyboard keyboard.ManagerInterface
	botAPI   telegram.BotAPI
	logger   *zap.Logger
}

// New создает новый экземпляр обработчиков
func New(services *service.Services, keyboard keyboard.ManagerInterface, botAPI telegram.BotAPI, logger *zap.Logger) *Handlers {
	return &Handlers{
		services: services,
		sessions: NewSessionManager(),
		keyboard: keyboard,
		botAPI:   botAPI,
		logger:   logger,
	}
}

// Sessions возвращает менеджер сессий
func (h *Handlers) Sessions() *SessionManager {
	return h.sessions
}

// RegisterBotCommands возвращает список команд для меню бота
func (h *Handlers) RegisterBotCommands() []tgbotapi.BotCommand {
	// /start не включается в меню
	return []tgbotapi.BotCommand{
		{Command: "add", Description: "добавить плейлист"},
		{Command: "delete", Description: "перестать отслеживать плейлист"},
		{Command: "stop", Description: "прервать текущий диалог"},
		{Command: "help", Description: "справка"},
	}
}

// sendMessage отправляет текстовое сообщение в чат
func (h *Handlers) sendMessage(chatID int64, text string) {
	if err := h.botAPI.SendMessage(chatID, text); err != nil {
		h.logger.Error("Failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
