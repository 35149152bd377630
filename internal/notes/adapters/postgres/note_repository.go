// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/repositories"
	"technotes/pkg/logger"
)

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Close()
}

// Код SQLSTATE нарушения уникального ограничения.
const uniqueViolationCode = "23505"

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// isUniqueViolation распознает конфликт уникального индекса заголовка.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// List возвращает все заметки в естественном порядке хранилища
// (порядок вставки); сервис поверх не пересортировывает.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes")

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, body, completed, created_at, updated_at
         FROM notes
         ORDER BY created_at`)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Text,
			&note.Completed, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// GetByID получает заметку по ID. Возвращает (nil, nil), если её нет.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, body, completed, created_at, updated_at
         FROM notes
         WHERE id = $1`,
		noteID,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Text,
		&note.Completed, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// GetByTitle получает заметку по точному заголовку (сравнение
// чувствительно к регистру, без обрезки пробелов).
func (r *NoteRepository) GetByTitle(ctx context.Context, title string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByTitle"))
	log.Debug(ctx, "getting note by title")

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, body, completed, created_at, updated_at
         FROM notes
         WHERE title = $1`,
		title,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Text,
		&note.Completed, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, "failed to get note by title", zap.Error(err))
		return nil, fmt.Errorf("failed to get note by title: %w", err)
	}

	return &note, nil
}

// Create сохраняет новую заметку и возвращает присвоенный хранилищем ID.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	var noteID string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, body, completed) VALUES ($1, $2, $3, $4) RETURNING id`,
		note.UserID, note.Title, note.Text, note.Completed,
	).Scan(&noteID)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "duplicate title on insert")
			return "", repositories.ErrDuplicateTitle
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return "", fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", noteID))
	return noteID, nil
}

// Update обновляет существующую заметку.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET user_id = $1, title = $2, body = $3, completed = $4, updated_at = $5 WHERE id = $6`,
		note.UserID, note.Title, note.Text, note.Completed, note.UpdatedAt, note.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "duplicate title on update")
			return repositories.ErrDuplicateTitle
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
		return repositories.ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", noteID))
		return repositories.ErrNoteNotFound
	}

	return nil
}
