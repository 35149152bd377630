// Package dto содержит структуры запросов и ответов сервиса заметок.
package dto

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
	User  string `json:"user" validate:"required"`
}

// UpdateNoteRequest содержит данные для обновления заметки.
// Completed объявлен указателем: отсутствующее или небулево значение
// (например строка "true") отклоняется на границе транспорта.
type UpdateNoteRequest struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	User      string `json:"user" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

// DeleteNoteRequest содержит идентификатор удаляемой заметки.
type DeleteNoteRequest struct {
	ID string `json:"id" validate:"required"`
}

// MessageResponse содержит человекочитаемое подтверждение операции.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse содержит описание ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}
