// Package http содержит HTTP-обработчики для управления заметками.
package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"technotes/internal/notes/adapters/http/middleware"
	"technotes/internal/notes/app"
	"technotes/internal/notes/app/dto"
	"technotes/internal/notes/domain/entities"
	"technotes/pkg/logger"
)

// Константы сообщений для логирования и ответов.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidRequestBody = "invalid request body"
	MsgNoteCreated           = "New note created"
)

// NoteUseCase описывает операции бизнес-логики, нужные обработчикам.
type NoteUseCase interface {
	ListNotes(ctx context.Context) ([]*app.EnrichedNote, error)
	CreateNote(ctx context.Context, title, text, userID string) (string, error)
	UpdateNote(ctx context.Context, noteID, title, text, userID string, completed bool) (*entities.Note, error)
	DeleteNote(ctx context.Context, noteID string) (*entities.Note, error)
}

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase NoteUseCase
	validate    *validator.Validate
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase NoteUseCase) *Handler {
	return &Handler{
		noteUseCase: noteUseCase,
		validate:    validator.New(),
	}
}

// requestContext возвращает контекст запроса с идентификатором,
// подготовленный промежуточным ПО логирования.
func requestContext(ctx fiber.Ctx) context.Context {
	reqCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		reqCtx = ctx.Context() // Запасной вариант
	}
	return reqCtx
}

// ListNotes обрабатывает запрос на получение всех заметок с именем владельца.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(reqCtx, LogHandlerListNotes)

	notes, err := h.noteUseCase.ListNotes(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(notes); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(reqCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := h.bind(ctx, &req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, app.ErrInvalidInput.Error())
	}

	if _, err := h.noteUseCase.CreateNote(reqCtx, req.Title, req.Text, req.User); err != nil {
		log.Error(reqCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: MsgNoteCreated}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(reqCtx, LogHandlerUpdateNote)

	var req dto.UpdateNoteRequest
	if err := h.bind(ctx, &req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, app.ErrInvalidInput.Error())
	}

	note, err := h.noteUseCase.UpdateNote(reqCtx, req.ID, req.Title, req.Text, req.User, *req.Completed)
	if err != nil {
		log.Error(reqCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	msg := fmt.Sprintf("%s updated", note.Title)
	if err := ctx.JSON(dto.MessageResponse{Message: msg}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(reqCtx, LogHandlerDeleteNote)

	var req dto.DeleteNoteRequest
	if err := h.bind(ctx, &req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, app.ErrInvalidInput.Error())
	}

	note, err := h.noteUseCase.DeleteNote(reqCtx, req.ID)
	if err != nil {
		log.Error(reqCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	msg := fmt.Sprintf("Note %s with ID %s deleted", note.Title, note.ID)
	if err := ctx.JSON(dto.MessageResponse{Message: msg}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// bind разбирает тело запроса и проверяет обязательные поля.
// Нестрогий тип (строка "true" вместо булева) падает ещё на разборе JSON.
func (h *Handler) bind(ctx fiber.Ctx, req interface{}) error {
	if err := ctx.Bind().Body(req); err != nil {
		return fmt.Errorf("body binding: %w", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	return nil
}

// handleError сопоставляет ошибку бизнес-уровня с HTTP-статусом.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return sendError(ctx, fiber.StatusBadRequest, app.ErrInvalidInput.Error())
	case errors.Is(err, app.ErrNoNotes):
		return sendError(ctx, fiber.StatusNotFound, app.ErrNoNotes.Error())
	case errors.Is(err, app.ErrNoteNotFound):
		return sendError(ctx, fiber.StatusNotFound, app.ErrNoteNotFound.Error())
	case errors.Is(err, app.ErrDuplicateTitle):
		return sendError(ctx, fiber.StatusConflict, app.ErrDuplicateTitle.Error())
	case errors.Is(err, app.ErrStoreUnavailable):
		return sendError(ctx, fiber.StatusServiceUnavailable, app.ErrStoreUnavailable.Error())
	case errors.Is(err, app.ErrOwnerMissing):
		return sendError(ctx, fiber.StatusInternalServerError, app.ErrOwnerMissing.Error())
	default:
		return sendError(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: message}); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}
