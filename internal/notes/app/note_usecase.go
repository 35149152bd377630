// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/cache"
	"technotes/internal/notes/ports/repositories"
	"technotes/pkg/logger"
)

// Ошибки уровня бизнес-логики. Транспортный слой сопоставляет их со
// статус-кодами; сюда никогда не протекает сырая ошибка хранилища.
var (
	ErrInvalidInput     = errors.New("all fields are required")
	ErrNoNotes          = errors.New("no notes found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrDuplicateTitle   = errors.New("duplicate note title")
	ErrOwnerMissing     = errors.New("note references a missing user")
	ErrStoreUnavailable = errors.New("note store unavailable")
)

// notesCacheKey - ключ кэша обогащённого списка заметок.
const notesCacheKey = "notes:enriched"

// EnrichedNote - заметка, дополненная именем владельца.
type EnrichedNote struct {
	entities.Note
	Username string `json:"username"`
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo     repositories.NoteRepository
	userRepo     repositories.UserRepository
	notesCache   cache.Cache
	storeTimeout time.Duration
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	userRepo repositories.UserRepository,
	notesCache cache.Cache,
	storeTimeout time.Duration,
) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:     noteRepo,
		userRepo:     userRepo,
		notesCache:   notesCache,
		storeTimeout: storeTimeout,
	}
}

// storeContext ограничивает обращения к хранилищу настроенным таймаутом.
func (uc *NoteUseCase) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, uc.storeTimeout)
}

// classify переводит ошибку хранилища в ошибку бизнес-уровня.
func classify(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// ListNotes возвращает все заметки, дополненные именем владельца.
// Пустое хранилище считается ошибкой ErrNoNotes, а не пустым списком.
// Порядок заметок повторяет естественный порядок хранилища.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]*EnrichedNote, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "NoteUseCase.ListNotes"))

	if cached, err := uc.notesCache.Get(ctx, notesCacheKey); err != nil {
		log.Warn(ctx, "cache read failed, falling back to store", zap.Error(err))
	} else if cached != "" {
		var enriched []*EnrichedNote
		if err := json.Unmarshal([]byte(cached), &enriched); err == nil {
			log.Debug(ctx, "serving notes from cache", zap.Int("count", len(enriched)))
			return enriched, nil
		}
		log.Warn(ctx, "dropping malformed cache entry")
	}

	storeCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	notes, err := uc.noteRepo.List(storeCtx)
	if err != nil {
		return nil, classify(err, "failed to list notes")
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}

	// Одна выборка пользователя на заметку; выборки независимы и выполняются
	// параллельно, ответ собирается только после завершения всех.
	enriched := make([]*EnrichedNote, len(notes))
	group, groupCtx := errgroup.WithContext(storeCtx)
	for i, note := range notes {
		group.Go(func() error {
			user, err := uc.userRepo.GetByID(groupCtx, note.UserID)
			if err != nil {
				return classify(err, fmt.Sprintf("failed to resolve owner of note %s", note.ID))
			}
			if user == nil {
				return fmt.Errorf("note %s references user %s: %w", note.ID, note.UserID, ErrOwnerMissing)
			}
			enriched[i] = &EnrichedNote{Note: *note, Username: user.Username}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(enriched); err == nil {
		if err := uc.notesCache.Set(ctx, notesCacheKey, string(payload), 0); err != nil {
			log.Warn(ctx, "cache write failed", zap.Error(err))
		}
	}

	return enriched, nil
}

// CreateNote создает новую заметку и возвращает её идентификатор.
// Существование пользователя-владельца намеренно не проверяется.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title, text, userID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "NoteUseCase.CreateNote"))

	if title == "" || text == "" || userID == "" {
		return "", ErrInvalidInput
	}

	storeCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	duplicate, err := uc.noteRepo.GetByTitle(storeCtx, title)
	if err != nil {
		return "", classify(err, "failed to check for duplicate title")
	}
	if duplicate != nil {
		return "", ErrDuplicateTitle
	}

	// Проверка выше не атомарна относительно конкурентных создателей;
	// уникальный индекс хранилища закрывает гонку на самой записи.
	note := entities.NewNote(userID, title, text)
	noteID, err := uc.noteRepo.Create(storeCtx, note)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return "", ErrDuplicateTitle
		}
		return "", classify(err, "failed to create note")
	}

	uc.invalidateCache(ctx, log)

	log.Debug(ctx, "note created", zap.String("noteID", noteID))
	return noteID, nil
}

// UpdateNote перезаписывает title, text, user и completed заметки и
// возвращает обновлённую заметку.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, noteID, title, text, userID string, completed bool) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "NoteUseCase.UpdateNote"))

	if noteID == "" || title == "" || text == "" || userID == "" {
		return nil, ErrInvalidInput
	}

	storeCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	note, err := uc.noteRepo.GetByID(storeCtx, noteID)
	if err != nil {
		return nil, classify(err, "failed to get note")
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	// Заметка может сохранить собственный заголовок; конфликт только с чужим.
	duplicate, err := uc.noteRepo.GetByTitle(storeCtx, title)
	if err != nil {
		return nil, classify(err, "failed to check for duplicate title")
	}
	if duplicate != nil && duplicate.ID != noteID {
		return nil, ErrDuplicateTitle
	}

	note.Title = title
	note.Text = text
	note.UserID = userID
	note.Completed = completed
	note.UpdatedAt = time.Now()

	if err := uc.noteRepo.Update(storeCtx, note); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateTitle):
			return nil, ErrDuplicateTitle
		case errors.Is(err, repositories.ErrNoteNotFound):
			return nil, ErrNoteNotFound
		default:
			return nil, classify(err, "failed to update note")
		}
	}

	uc.invalidateCache(ctx, log)

	log.Debug(ctx, "note updated", zap.String("noteID", noteID))
	return note, nil
}

// DeleteNote удаляет заметку и возвращает снимок её полей, сделанный до
// удаления: после удаления запись уже недоступна.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "NoteUseCase.DeleteNote"))

	if noteID == "" {
		return nil, ErrInvalidInput
	}

	storeCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	note, err := uc.noteRepo.GetByID(storeCtx, noteID)
	if err != nil {
		return nil, classify(err, "failed to get note")
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	if err := uc.noteRepo.Delete(storeCtx, noteID); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, classify(err, "failed to delete note")
	}

	uc.invalidateCache(ctx, log)

	log.Debug(ctx, "note deleted", zap.String("noteID", noteID), zap.String("title", note.Title))
	return note, nil
}

// invalidateCache сбрасывает кэш списка после успешной записи. Ошибка кэша
// не отменяет уже применённую операцию.
func (uc *NoteUseCase) invalidateCache(ctx context.Context, log *logger.Logger) {
	if err := uc.notesCache.Delete(ctx, notesCacheKey); err != nil {
		log.Warn(ctx, "cache invalidation failed", zap.Error(err))
	}
}
