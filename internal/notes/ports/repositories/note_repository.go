// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"technotes/internal/notes/domain/entities"
)

// Ошибки уровня хранилища.
var (
	// ErrDuplicateTitle is returned by writes that violate the unique title
	// constraint. The constraint lives in the store so concurrent writers
	// conflict atomically instead of both passing a prior read check.
	ErrDuplicateTitle = errors.New("duplicate note title")

	// ErrNoteNotFound is returned by Update and Delete when no row matched.
	ErrNoteNotFound = errors.New("note not found")
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
// GetByID и GetByTitle возвращают (nil, nil), если заметка отсутствует.
type NoteRepository interface {
	List(ctx context.Context) ([]*entities.Note, error)
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
	GetByTitle(ctx context.Context, title string) (*entities.Note, error)
	Create(ctx context.Context, note *entities.Note) (string, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID string) error
}
