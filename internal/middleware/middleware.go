// Package middleware содержит middleware компоненты.
package middleware

import (
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Middleware представляет цепочку middleware для обновлений Telegram
type Middleware struct {
	rateLimiter RateLimiterInterface
	logger      *zap.Logger
}

// New создает новый middleware
func New(logger *zap.Logger) *Middleware {
	// 10 запросов в минуту на пользователя
	rateLimiter := NewRateLimiter(10, 60*time.Second, logger)

	return &Middleware{
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// ProcessWithMiddleware применяет recovery, логирование и rate limiting к обновлению
func (m *Middleware) ProcessWithMiddleware(update tgbotapi.Update, handler func(tgbotapi.Update)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Panic recovered in update handler",
				zap.Int("update_id", update.UpdateID),
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
		}
	}()

	m.logUpdate(update)

	if userID := updateUserID(update); userID != 0 {
		if !m.rateLimiter.Allow(userID) {
			return
		}
	}

	handler(update)
}

// Cleanup очищает устаревшие записи в middleware
func (m *Middleware) Cleanup() {
	m.rateLimiter.Cleanup()
}

// logUpdate логирует входящее обновление
func (m *Middleware) logUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		m.logger.Debug("Received message",
			zap.Int("update_id", update.UpdateID),
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.Int64("user_id", updateUserID(update)),
			zap.Bool("is_command", update.Message.IsCommand()))
		return
	}

	if update.CallbackQuery != nil {
		m.logger.Debug("Received callback",
			zap.Int("update_id", update.UpdateID),
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data))
	}
}

// updateUserID извлекает ID пользователя из обновления
func updateUserID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}
