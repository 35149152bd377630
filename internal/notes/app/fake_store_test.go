package app_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/repositories"
)

// fakeNoteStore - потокобезопасное хранилище в памяти с атомарным
// уникальным индексом заголовков, как у настоящего хранилища.
type fakeNoteStore struct {
	mu      sync.Mutex
	notes   map[string]*entities.Note
	byTitle map[string]string
	seq     int
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{
		notes:   make(map[string]*entities.Note),
		byTitle: make(map[string]string),
	}
}

func (s *fakeNoteStore) List(_ context.Context) ([]*entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]*entities.Note, 0, len(s.notes))
	for _, note := range s.notes {
		clone := *note
		notes = append(notes, &clone)
	}
	return notes, nil
}

func (s *fakeNoteStore) GetByID(_ context.Context, noteID string) (*entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[noteID]
	if !ok {
		return nil, nil
	}
	clone := *note
	return &clone, nil
}

func (s *fakeNoteStore) GetByTitle(_ context.Context, title string) (*entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	noteID, ok := s.byTitle[title]
	if !ok {
		return nil, nil
	}
	clone := *s.notes[noteID]
	return &clone, nil
}

func (s *fakeNoteStore) Create(_ context.Context, note *entities.Note) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byTitle[note.Title]; taken {
		return "", repositories.ErrDuplicateTitle
	}

	s.seq++
	noteID := "note-" + strconv.Itoa(s.seq)

	clone := *note
	clone.ID = noteID
	s.notes[noteID] = &clone
	s.byTitle[clone.Title] = noteID

	return noteID, nil
}

func (s *fakeNoteStore) Update(_ context.Context, note *entities.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.notes[note.ID]
	if !ok {
		return repositories.ErrNoteNotFound
	}

	if otherID, taken := s.byTitle[note.Title]; taken && otherID != note.ID {
		return repositories.ErrDuplicateTitle
	}

	delete(s.byTitle, current.Title)
	clone := *note
	s.notes[note.ID] = &clone
	s.byTitle[clone.Title] = note.ID

	return nil
}

func (s *fakeNoteStore) Delete(_ context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[noteID]
	if !ok {
		return repositories.ErrNoteNotFound
	}

	delete(s.byTitle, note.Title)
	delete(s.notes, noteID)
	return nil
}

func (s *fakeNoteStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// noopCache всегда промахивается и игнорирует записи.
type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string) (string, error)                  { return "", nil }
func (noopCache) Set(_ context.Context, _ string, _ string, _ time.Duration) error { return nil }
func (noopCache) Delete(_ context.Context, _ string) error                         { return nil }
func (noopCache) Close() error                                                     { return nil }
