package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/repositories"
	"technotes/pkg/logger"
)

// UserRepository реализует интерфейс repositories.UserRepository.
// Жизненный цикл пользователей целиком внешний: здесь только чтение.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID находит пользователя по ID. Возвращает (nil, nil), если его нет.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.GetByID"))

	var user entities.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Username)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("userID", userID))
			return nil, nil
		}
		log.Error(ctx, "failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
