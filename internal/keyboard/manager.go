// Package keyboard реализует построение клавиатур для Telegram-бота.
package keyboard

import (
	"fmt"

	"playlisttracker/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Максимальная длина подписи кнопки
const maxButtonLabelLen = 40

// ManagerInterface определяет интерфейс менеджера клавиатур
type ManagerInterface interface {
	// BuildDeletionKeyboard строит клавиатуру выбора плейлиста для отписки
	BuildDeletionKeyboard(playlists []model.Playlist) tgbotapi.InlineKeyboardMarkup
}

// Manager реализует менеджер клавиатур
type Manager struct {
	titleCaser cases.Caser
	logger     *zap.Logger
}

var _ ManagerInterface = (*Manager)(nil)

// NewManager создает новый менеджер клавиатур
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		titleCaser: cases.Title(language.Und, cases.NoLower),
		logger:     logger,
	}
}

// BuildDeletionKeyboard строит клавиатуру выбора плейлиста для отписки.
// Каждый плейлист — отдельная кнопка, callback data несет внутренний ID.
func (m *Manager) BuildDeletionKeyboard(playlists []model.Playlist) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(playlists))

	for i := range playlists {
		playlist := &playlists[i]
		label := m.buttonLabel(playlist)
		data := fmt.Sprintf("unsub_%d", playlist.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buttonLabel формирует подпись кнопки для плейлиста
func (m *Manager) buttonLabel(playlist *model.Playlist) string {
	label := m.titleCaser.String(playlist.DisplayTitle())

	if len([]rune(label)) > maxButtonLabelLen {
		runes := []rune(label)
		label = string(runes[:maxButtonLabelLen-1]) + "…"
	}

	return label
}
