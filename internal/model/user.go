// Package model содержит модели данных.
package model

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// User представляет пользователя Telegram
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	TelegramID int64     `bun:"telegram_id,notnull,unique" json:"telegram_id"`
	Name       string    `bun:"name,nullzero" json:"name,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// UserRepository определяет интерфейс для работы с пользователями
type UserRepository interface {
	// GetOrCreate возвращает пользователя по Telegram ID, создавая его при первом обращении
	GetOrCreate(ctx context.Context, telegramID int64, name string) (*User, bool, error)

	// GetByTelegramID возвращает пользователя по Telegram ID
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}
