package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/timecraft-app/timecraft-api/internal/models"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

type noteRepository interface {
	ListSubjects(ctx context.Context) ([]string, error)
	ListBySubject(ctx context.Context, subject string) ([]models.Note, error)
	Find(ctx context.Context, subject, title string) (*models.Note, error)
	Upsert(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}

// SaveNoteRequest creates or replaces a note under its (subject, title) pair.
type SaveNoteRequest struct {
	Subject string `json:"subject" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// NoteService handles subject note CRUD with upsert write semantics.
type NoteService struct {
	repo      noteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService instantiates NoteService.
func NewNoteService(repo noteRepository, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, validator: validate, logger: logger}
}

// Subjects returns every subject that has at least one note.
func (s *NoteService) Subjects(ctx context.Context) ([]string, error) {
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list note subjects")
	}
	if subjects == nil {
		subjects = []string{}
	}
	return subjects, nil
}

// BySubject returns all notes under a subject.
func (s *NoteService) BySubject(ctx context.Context, subject string) ([]models.Note, error) {
	notes, err := s.repo.ListBySubject(ctx, subject)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	return notes, nil
}

// Get loads one note by its (subject, title) pair.
func (s *NoteService) Get(ctx context.Context, subject, title string) (*models.Note, error) {
	note, err := s.repo.Find(ctx, subject, title)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load note")
	}
	return note, nil
}

// Save upserts a note.
func (s *NoteService) Save(ctx context.Context, req SaveNoteRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "subject and title are required")
	}

	note := &models.Note{
		Subject: req.Subject,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.repo.Upsert(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save note")
	}
	return note, nil
}

// Delete removes a note by its (subject, title) pair.
func (s *NoteService) Delete(ctx context.Context, subject, title string) error {
	note, err := s.repo.Find(ctx, subject, title)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load note")
	}
	if err := s.repo.Delete(ctx, note.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete note")
	}
	return nil
}
