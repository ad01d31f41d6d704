package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/timecraft-app/timecraft-api/internal/models"
)

// NoteRepository provides persistence for subject notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = "id, subject, title, content, created_at, updated_at"

// ListSubjects returns the distinct subjects that have notes.
func (r *NoteRepository) ListSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := r.db.SelectContext(ctx, &subjects, "SELECT DISTINCT subject FROM notes ORDER BY subject ASC"); err != nil {
		return nil, fmt.Errorf("list note subjects: %w", err)
	}
	return subjects, nil
}

// ListBySubject returns all notes under a subject.
func (r *NoteRepository) ListBySubject(ctx context.Context, subject string) ([]models.Note, error) {
	query := fmt.Sprintf("SELECT %s FROM notes WHERE subject = $1 ORDER BY title ASC", noteColumns)
	var notes []models.Note
	if err := r.db.SelectContext(ctx, &notes, query, subject); err != nil {
		return nil, fmt.Errorf("list notes by subject: %w", err)
	}
	return notes, nil
}

// Find loads one note by its (subject, title) pair.
func (r *NoteRepository) Find(ctx context.Context, subject, title string) (*models.Note, error) {
	query := fmt.Sprintf("SELECT %s FROM notes WHERE subject = $1 AND title = $2", noteColumns)
	var note models.Note
	if err := r.db.GetContext(ctx, &note, query, subject, title); err != nil {
		return nil, err
	}
	return &note, nil
}

// Upsert inserts the note or replaces the content of an existing
// (subject, title) pair.
func (r *NoteRepository) Upsert(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	const query = `INSERT INTO notes (id, subject, title, content, created_at, updated_at) VALUES (:id, :subject, :title, :content, :created_at, :updated_at) ON CONFLICT (subject, title) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}
	return nil
}

// Delete removes a note record.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
