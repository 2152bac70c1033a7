package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/repository"
)

var ErrNoteFieldsRequired = errors.New("title and content are required")

type NotesService struct {
	noteRepo repository.NoteRepository
}

func NewNotesService(noteRepo repository.NoteRepository) *NotesService {
	return &NotesService{noteRepo: noteRepo}
}

type CreateNoteInput struct {
	Title   string
	Content string
	Theme   string
}

type UpdateNoteInput struct {
	Title   *string
	Content *string
	Theme   *string
}

func (s *NotesService) List(ctx context.Context, masterID uuid.UUID) ([]*domain.Note, error) {
	return s.noteRepo.ListByMaster(ctx, masterID)
}

func (s *NotesService) Create(ctx context.Context, masterID uuid.UUID, input CreateNoteInput) (*domain.Note, error) {
	if input.Title == "" || input.Content == "" {
		return nil, ErrNoteFieldsRequired
	}

	note := &domain.Note{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		Theme:     input.Theme,
		MasterID:  masterID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Get scopes by (id, owner): a note belonging to someone else reads exactly
// like a missing one.
func (s *NotesService) Get(ctx context.Context, masterID, id uuid.UUID) (*domain.Note, error) {
	note, err := s.noteRepo.GetByIDAndMaster(ctx, id, masterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *NotesService) Update(ctx context.Context, masterID, id uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	note, err := s.Get(ctx, masterID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.Theme != nil {
		note.Theme = *input.Theme
	}
	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NotesService) Delete(ctx context.Context, masterID, id uuid.UUID) error {
	note, err := s.Get(ctx, masterID, id)
	if err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, note)
}
