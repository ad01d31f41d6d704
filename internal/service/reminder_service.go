package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timecraft-app/timecraft-api/internal/models"
	"github.com/timecraft-app/timecraft-api/internal/timegrid"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
	"github.com/timecraft-app/timecraft-api/pkg/notify"
)

type reminderRepository interface {
	List(ctx context.Context) ([]models.Reminder, error)
	FindByID(ctx context.Context, id string) (*models.Reminder, error)
	Create(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id string) error
}

// CreateReminderRequest describes payload for creating a reminder.
type CreateReminderRequest struct {
	Title        string   `json:"title" validate:"required"`
	Subject      string   `json:"subject"`
	DeadlineDate string   `json:"deadline_date" validate:"required"`
	DeadlineTime string   `json:"deadline_time" validate:"required"`
	ReminderDays []string `json:"reminder_days"`
	ReminderTime string   `json:"reminder_time" validate:"required"`
}

// PreviewOccurrencesRequest asks for the notification instants a reminder
// would produce, without creating anything.
type PreviewOccurrencesRequest struct {
	DeadlineDate string   `json:"deadline_date" validate:"required"`
	DeadlineTime string   `json:"deadline_time" validate:"required"`
	ReminderDays []string `json:"reminder_days"`
	ReminderTime string   `json:"reminder_time" validate:"required"`
}

// PreviewOccurrencesResult lists the instants in ascending order.
type PreviewOccurrencesResult struct {
	Occurrences []time.Time `json:"occurrences"`
}

// ReminderService creates reminders, expands their notification occurrences
// and keeps every scheduling handle so a reminder can be fully cancelled.
type ReminderService struct {
	repo      reminderRepository
	scheduler notify.Scheduler
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReminderService instantiates ReminderService.
func NewReminderService(repo reminderRepository, scheduler notify.Scheduler, validate *validator.Validate, logger *zap.Logger) *ReminderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{repo: repo, scheduler: scheduler, validator: validate, logger: logger, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *ReminderService) WithNow(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

// List returns all reminders newest first.
func (s *ReminderService) List(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reminders")
	}
	return reminders, nil
}

// Create validates the reminder, expands its occurrences, schedules one
// notification per occurrence and persists the record with all handles.
func (s *ReminderService) Create(ctx context.Context, req CreateReminderRequest) (*models.Reminder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reminder payload")
	}
	now := s.now()
	parsed, err := s.parseRecurrence(recurrenceInput{
		DeadlineDate: req.DeadlineDate,
		DeadlineTime: req.DeadlineTime,
		ReminderDays: req.ReminderDays,
		ReminderTime: req.ReminderTime,
	}, now)
	if err != nil {
		return nil, err
	}

	occurrences := timegrid.GenerateOccurrences(parsed.deadline, parsed.days, parsed.timeOfDay, now)

	// The id is assigned up front so every scheduled notification carries it.
	reminder := &models.Reminder{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Subject:         req.Subject,
		DeadlineDate:    parsed.deadlineDate,
		DeadlineTime:    req.DeadlineTime,
		ReminderDays:    req.ReminderDays,
		ReminderTime:    req.ReminderTime,
		NotificationIDs: []string{},
	}

	body := fmt.Sprintf("Reminder: %s - Due %s at %s", req.Title, parsed.deadlineDate.Format("Jan 2, 2006"), req.DeadlineTime)
	handles := make([]string, 0, len(occurrences))
	for _, at := range occurrences {
		handle, err := s.scheduler.ScheduleAt(ctx, notify.Notification{
			ReminderID: reminder.ID,
			Title:      req.Title,
			Body:       body,
			At:         at,
		})
		if err != nil {
			s.cancelHandles(ctx, handles)
			return nil, appErrors.Wrap(err, appErrors.ErrSchedulingFailed.Code, appErrors.ErrSchedulingFailed.Status, "failed to schedule notification")
		}
		handles = append(handles, handle)
	}
	reminder.NotificationIDs = handles

	if err := s.repo.Create(ctx, reminder); err != nil {
		s.cancelHandles(ctx, handles)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reminder")
	}

	s.logger.Sugar().Infow("reminder created",
		"reminder_id", reminder.ID, "occurrences", len(occurrences))
	return reminder, nil
}

// Preview expands occurrences without persisting or scheduling anything.
func (s *ReminderService) Preview(ctx context.Context, req PreviewOccurrencesRequest) (*PreviewOccurrencesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload")
	}
	now := s.now()
	parsed, err := s.parseRecurrence(recurrenceInput(req), now)
	if err != nil {
		return nil, err
	}
	occurrences := timegrid.GenerateOccurrences(parsed.deadline, parsed.days, parsed.timeOfDay, now)
	return &PreviewOccurrencesResult{Occurrences: occurrences}, nil
}

// Delete cancels every pending notification handle, then removes the record.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	reminder, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "reminder not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminder")
	}

	s.cancelHandles(ctx, reminder.NotificationIDs)

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete reminder")
	}
	return nil
}

type recurrenceInput struct {
	DeadlineDate string
	DeadlineTime string
	ReminderDays []string
	ReminderTime string
}

type parsedRecurrence struct {
	deadlineDate time.Time
	deadline     time.Time
	days         []timegrid.ReminderDay
	timeOfDay    timegrid.Clock12
}

// parseRecurrence resolves the textual reminder fields into engine inputs and
// enforces the caller-boundary rules: at least one day, deadline in the
// future.
func (s *ReminderService) parseRecurrence(in recurrenceInput, now time.Time) (*parsedRecurrence, error) {
	if len(in.ReminderDays) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoReminderDays, "")
	}

	days := make([]timegrid.ReminderDay, 0, len(in.ReminderDays))
	for _, label := range in.ReminderDays {
		day, err := timegrid.ParseReminderDay(label)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	timeOfDay, err := timegrid.ParseClock(in.ReminderTime)
	if err != nil {
		return nil, err
	}
	deadlineClock, err := timegrid.ParseClock(in.DeadlineTime)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", in.DeadlineDate, now.Location())
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid deadline date %q, expected YYYY-MM-DD", in.DeadlineDate))
	}

	mins := deadlineClock.Minutes()
	deadline := time.Date(date.Year(), date.Month(), date.Day(), mins/60, mins%60, 0, 0, now.Location())
	if !deadline.After(now) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "deadline must be in the future")
	}

	return &parsedRecurrence{
		deadlineDate: date,
		deadline:     deadline,
		days:         days,
		timeOfDay:    timeOfDay,
	}, nil
}

func (s *ReminderService) cancelHandles(ctx context.Context, handles []string) {
	if len(handles) == 0 {
		return
	}
	if err := s.scheduler.CancelAll(ctx, handles); err != nil {
		s.logger.Warn("failed to cancel notifications", zap.Strings("handles", handles), zap.Error(err))
	}
}
