package repositories

import (
	"context"

	"technotes/internal/notes/domain/entities"
)

// UserRepository определяет доступ к хранилищу пользователей.
// GetByID возвращает (nil, nil), если пользователь отсутствует — вызывающая
// сторона обязана явно обработать отсутствующего владельца.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*entities.User, error)
}
