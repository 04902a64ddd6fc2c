// Package telegram содержит интеграцию с Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"playlisttracker/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// RouterInterface определяет интерфейс для роутера
type RouterInterface interface {
	HandleUpdate(update tgbotapi.Update)
	RegisterBotCommands() []tgbotapi.BotCommand
}

// Client представляет клиент Telegram Bot API
type Client struct {
	bot    *tgbotapi.BotAPI
	botAPI BotAPI
	config *config.Config
	logger *zap.Logger
}

// NewClient создает новый клиент Telegram
func NewClient(botToken string, cfg *config.Config, logger *zap.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false
	logger.Info("Telegram bot created", zap.String("username", bot.Self.UserName))

	return &Client{
		bot:    bot,
		botAPI: NewTelegramBotAPI(bot, logger),
		config: cfg,
		logger: logger,
	}, nil
}

// GetBotAPI возвращает BotAPI интерфейс
func (c *Client) GetBotAPI() BotAPI {
	return c.botAPI
}

// Start запускает обработку обновлений в выбранном режиме транспорта
func (c *Client) Start(ctx context.Context, router RouterInterface) error {
	// Настраиваем команды бота
	commands := router.RegisterBotCommands()
	if _, err := c.bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	if c.config.TransportMode == config.TransportWebhook {
		return c.startWebhook(ctx, router)
	}

	return c.startPolling(ctx, router)
}

// startPolling запускает long polling цикл
func (c *Client) startPolling(ctx context.Context, router RouterInterface) error {
	// Удаляем webhook если есть
	if _, err := c.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		c.logger.Error("Failed to delete webhook", zap.Error(err))
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query"}

	c.logger.Info("Starting to fetch updates via long polling")
	updates := c.bot.GetUpdatesChan(u)

	return c.runUpdateLoop(ctx, updates, router)
}

// startWebhook запускает прием обновлений через webhook
func (c *Client) startWebhook(ctx context.Context, router RouterInterface) error {
	wh, err := tgbotapi.NewWebhook(c.config.WebhookURL + "/" + c.bot.Token)
	if err != nil {
		return fmt.Errorf("failed to build webhook config: %w", err)
	}

	if _, err := c.bot.Request(wh); err != nil {
		c.logger.Error("Failed to set webhook", zap.Error(err))
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	updates := c.bot.ListenForWebhook("/" + c.bot.Token)

	server := &http.Server{Addr: c.config.WebhookListen}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			c.logger.Warn("Failed to shutdown webhook server", zap.Error(err))
		}
	}()

	go func() {
		c.logger.Info("Starting webhook server", zap.String("addr", c.config.WebhookListen))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("Webhook server failed", zap.Error(err))
		}
	}()

	return c.runUpdateLoop(ctx, updates, router)
}

// runUpdateLoop обрабатывает обновления из канала до отмены контекста
func (c *Client) runUpdateLoop(ctx context.Context, updates tgbotapi.UpdatesChannel, router RouterInterface) error {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Update loop cancelled by context")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.logger.Warn("Update channel closed")
				return fmt.Errorf("update channel closed")
			}

			c.processUpdate(update, router)
		}
	}
}

// processUpdate обрабатывает одно обновление
func (c *Client) processUpdate(update tgbotapi.Update, router RouterInterface) {
	if update.Message == nil && update.CallbackQuery == nil {
		return
	}

	c.logger.Debug("Processing update",
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", getUserID(update)),
		zap.String("update_type", getUpdateType(update)))

	router.HandleUpdate(update)
}

// getUserID извлекает ID пользователя из обновления
func getUserID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}

// getUpdateType определяет тип обновления
func getUpdateType(update tgbotapi.Update) string {
	if update.Message != nil {
		if update.Message.IsCommand() {
			return "command"
		}
		return "message"
	}
	if update.CallbackQuery != nil {
		return "callback"
	}
	return "unknown"
}
