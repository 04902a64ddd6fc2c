// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"playlisttracker/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserRepository реализует интерфейс для работы с пользователями
type UserRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *bun.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

var _ model.UserRepository = (*UserRepository)(nil)

// GetOrCreate возвращает пользователя по Telegram ID, создавая его при первом обращении
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, name string) (*model.User, bool, error) {
	user := &model.User{
		TelegramID: telegramID,
		Name:       name,
	}

	res, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (telegram_id) DO NOTHING").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows > 0 {
		r.logger.Info("New user registered",
			zap.Int64("telegram_id", telegramID),
			zap.String("name", name))
		return user, true, nil
	}

	existing, err := r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

// GetByTelegramID возвращает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user := new(model.User)

	err := r.db.NewSelect().
		Model(user).
		Where("telegram_id = ?", telegramID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
