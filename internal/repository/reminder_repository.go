package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/timecraft-app/timecraft-api/internal/models"
)

// ReminderRepository provides persistence for reminders.
type ReminderRepository struct {
	db *sqlx.DB
}

// NewReminderRepository creates a new reminder repository.
func NewReminderRepository(db *sqlx.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = "id, title, subject, deadline_date, deadline_time, reminder_days, reminder_time, notification_ids, created_at"

// List returns reminders newest first.
func (r *ReminderRepository) List(ctx context.Context) ([]models.Reminder, error) {
	query := fmt.Sprintf("SELECT %s FROM reminders ORDER BY created_at DESC", reminderColumns)
	var reminders []models.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query); err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// ListUpcoming returns up to limit reminders ordered by nearest deadline.
func (r *ReminderRepository) ListUpcoming(ctx context.Context, limit int) ([]models.Reminder, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf("SELECT %s FROM reminders ORDER BY deadline_date ASC LIMIT %d", reminderColumns, limit)
	var reminders []models.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query); err != nil {
		return nil, fmt.Errorf("list upcoming reminders: %w", err)
	}
	return reminders, nil
}

// FindByID loads a reminder by id.
func (r *ReminderRepository) FindByID(ctx context.Context, id string) (*models.Reminder, error) {
	query := fmt.Sprintf("SELECT %s FROM reminders WHERE id = $1", reminderColumns)
	var reminder models.Reminder
	if err := r.db.GetContext(ctx, &reminder, query, id); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// Create stores a new reminder record.
func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO reminders (id, title, subject, deadline_date, deadline_time, reminder_days, reminder_time, notification_ids, created_at) VALUES (:id, :title, :subject, :deadline_date, :deadline_time, :reminder_days, :reminder_time, :notification_ids, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reminder); err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// Delete removes a reminder record.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}
