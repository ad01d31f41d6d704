package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/timecraft-app/timecraft-api/internal/models"
)

// ClassRepository provides persistence for scheduled classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = "id, subject, instructor, kind, room_prefix, room_number, day, start_time, end_time, time_slots, color, created_at, updated_at"

// List returns classes in insertion order, optionally filtered. Insertion
// order keeps conflict reporting deterministic.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassEntry, error) {
	base := fmt.Sprintf("SELECT %s FROM classes WHERE 1=1", classColumns)
	var conditions []string
	var args []interface{}

	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("day = $%d", len(args)+1))
		args = append(args, filter.Day)
	}
	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("subject = $%d", len(args)+1))
		args = append(args, strings.ToUpper(filter.Subject))
	}
	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)+1))
		args = append(args, filter.Kind)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC"

	var classes []models.ClassEntry
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID loads a class by id.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.ClassEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM classes WHERE id = $1", classColumns)
	var entry models.ClassEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create stores a new class record.
func (r *ClassRepository) Create(ctx context.Context, entry *models.ClassEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	const query = `INSERT INTO classes (id, subject, instructor, kind, room_prefix, room_number, day, start_time, end_time, time_slots, color, created_at, updated_at) VALUES (:id, :subject, :instructor, :kind, :room_prefix, :room_number, :day, :start_time, :end_time, :time_slots, :color, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update rewrites an existing class record.
func (r *ClassRepository) Update(ctx context.Context, entry *models.ClassEntry) error {
	entry.UpdatedAt = time.Now().UTC()

	const query = `UPDATE classes SET subject = :subject, instructor = :instructor, kind = :kind, room_prefix = :room_prefix, room_number = :room_number, day = :day, start_time = :start_time, end_time = :end_time, time_slots = :time_slots, color = :color, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes a class record.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM classes WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}
