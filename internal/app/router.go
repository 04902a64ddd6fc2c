// Package app содержит маршрутизацию команд.
package app

import (
	"strings"

	"playlisttracker/internal/external/telegram"
	"playlisttracker/internal/handlers"
	"playlisttracker/internal/keyboard"
	"playlisttracker/internal/middleware"
	"playlisttracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Router обрабатывает маршрутизацию обновлений
type Router struct {
	handlers   *handlers.Handlers
	middleware *middleware.Middleware
	logger     *zap.Logger
}

var _ telegram.RouterInterface = (*Router)(nil)

// NewRouter создает новый роутер
func NewRouter(services *service.Services, botAPI telegram.BotAPI, mw *middleware.Middleware, logger *zap.Logger) *Router {
	keyboardManager := keyboard.NewManager(logger)

	return &Router{
		handlers:   handlers.New(services, keyboardManager, botAPI, logger),
		middleware: mw,
		logger:     logger,
	}
}

// HandleUpdate обрабатывает обновление от Telegram
func (r *Router) HandleUpdate(update tgbotapi.Update) {
	r.middleware.ProcessWithMiddleware(update, func(update tgbotapi.Update) {
		if update.Message != nil {
			r.handleMessage(update.Message)
		}

		if update.CallbackQuery != nil {
			r.handlers.CallbackQuery(update.CallbackQuery)
		}
	})
}

// handleMessage обрабатывает текстовые сообщения
func (r *Router) handleMessage(message *tgbotapi.Message) {
	if !message.IsCommand() {
		// Свободный текст обрабатывается по состоянию диалога
		r.handlers.Text(message)
		return
	}

	switch strings.ToLower(message.Command()) {
	case "start":
		r.handlers.Start(message)
	case "help":
		r.handlers.Help(message)
	case "add":
		r.handlers.Add(message)
	case "delete":
		r.handlers.Delete(message)
	case "stop":
		r.handlers.Stop(message)
	default:
		r.handlers.Unknown(message)
	}
}

// RegisterBotCommands регистрирует команды бота
func (r *Router) RegisterBotCommands() []tgbotapi.BotCommand {
	return r.handlers.RegisterBotCommands()
}
