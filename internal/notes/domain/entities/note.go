// Package entities defines the domain entities for the notes service.
package entities

import "time"

// Note представляет собой заметку, принадлежащую пользователю.
// Title уникален среди всех заметок; уникальность обеспечивается хранилищем.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a new note with the given owner, title, and text.
// A fresh note is never completed.
func NewNote(userID, title, text string) *Note {
	now := time.Now()
	return &Note{
		UserID:    userID,
		Title:     title,
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
