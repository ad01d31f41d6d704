package service

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/timecraft-app/timecraft-api/internal/models"
	"github.com/timecraft-app/timecraft-api/internal/timegrid"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.ClassEntry, error)
	FindByID(ctx context.Context, id string) (*models.ClassEntry, error)
	Create(ctx context.Context, entry *models.ClassEntry) error
	Update(ctx context.Context, entry *models.ClassEntry) error
	Delete(ctx context.Context, id string) error
}

// CreateClassRequest describes payload for adding a class to the grid.
type CreateClassRequest struct {
	Subject    string `json:"subject" validate:"required"`
	Instructor string `json:"instructor" validate:"required"`
	IsLecture  bool   `json:"is_lecture"`
	IsLab      bool   `json:"is_lab"`
	RoomNumber string `json:"room_number" validate:"required"`
	Day        string `json:"day" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
}

// CheckClassRequest is a dry-run conflict check for a candidate class.
type CheckClassRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	ExcludeID string `json:"exclude_id"`
}

// CheckClassResult reports the outcome of a dry-run conflict check.
type CheckClassResult struct {
	Conflict *models.ClassConflict `json:"conflict"`
}

// Display colors cycled per subject so a subject keeps its color across
// lecture and lab cells.
var subjectPalette = []string{
	"#4A90D9", "#50B87C", "#E2725B", "#9B59B6", "#E6A23C",
	"#3BAFDA", "#D96AA7", "#8A9B0F", "#C0605E", "#5C6BC0",
}

// ScheduleService maintains the weekly class grid with conflict checking
// before every commit.
type ScheduleService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger}
}

// List returns the full grid in insertion order.
func (s *ScheduleService) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassEntry, error) {
	classes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Create adds a class after duplicate-subject and slot-conflict checks.
func (s *ScheduleService) Create(ctx context.Context, req CreateClassRequest) (*models.ClassEntry, error) {
	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoConflict(ctx, entry, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return entry, nil
}

// Update replaces an existing class, re-running both checks with the edited
// entry excluded.
func (s *ScheduleService) Update(ctx context.Context, id string, req CreateClassRequest) (*models.ClassEntry, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	if err := s.ensureNoConflict(ctx, entry, existing.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}
	return entry, nil
}

// Delete removes a class from the grid.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	return nil
}

// Check runs the slot-conflict scan without committing anything.
func (s *ScheduleService) Check(ctx context.Context, req CheckClassRequest) (*CheckClassResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid check payload")
	}
	day, err := timegrid.ParseClassDay(req.Day)
	if err != nil {
		return nil, err
	}
	slots, err := timegrid.SlotRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	classes, err := s.repo.List(ctx, models.ClassFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	entries, err := gridEntries(classes)
	if err != nil {
		return nil, err
	}

	conflict, err := timegrid.FindConflict(day, slots, entries, req.ExcludeID)
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return &CheckClassResult{}, nil
	}
	return &CheckClassResult{Conflict: &models.ClassConflict{
		ClassID: conflict.Entry.ID,
		Subject: conflict.Entry.Subject,
		Day:     conflict.Entry.Day.String(),
		Slot:    conflict.Slot,
	}}, nil
}

// buildEntry validates the request and normalises it into a full record,
// deriving the occupied slot run, room prefix and display color.
func (s *ScheduleService) buildEntry(req CreateClassRequest) (*models.ClassEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if req.IsLecture == req.IsLab {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class must be exactly one of lecture or lab")
	}

	if _, err := timegrid.ParseClassDay(req.Day); err != nil {
		return nil, err
	}
	slots, err := timegrid.SlotRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	kind := models.KindLecture
	prefix := models.RoomPrefixLecture
	if req.IsLab {
		kind = models.KindLab
		prefix = models.RoomPrefixLab
	}

	subject := strings.ToUpper(strings.TrimSpace(req.Subject))
	return &models.ClassEntry{
		Subject:    subject,
		Instructor: strings.ToUpper(strings.TrimSpace(req.Instructor)),
		Kind:       kind,
		RoomPrefix: prefix,
		RoomNumber: req.RoomNumber,
		Day:        req.Day,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TimeSlots:  slots,
		Color:      subjectColor(subject),
	}, nil
}

// ensureNoConflict applies the duplicate-subject rule first, then the
// slot-overlap scan.
func (s *ScheduleService) ensureNoConflict(ctx context.Context, entry *models.ClassEntry, ignoreID string) error {
	classes, err := s.repo.List(ctx, models.ClassFilter{})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class conflicts")
	}

	for _, existing := range classes {
		if existing.ID == ignoreID {
			continue
		}
		if existing.Subject == entry.Subject && existing.Kind == entry.Kind {
			kindLabel := "Lecture"
			if entry.Kind == models.KindLab {
				kindLabel = "Laboratory"
			}
			return s.wrapConflict("DUPLICATE_SUBJECT",
				fmt.Sprintf("%s class for %s already exists", kindLabel, entry.Subject),
				models.ClassConflict{ClassID: existing.ID, Subject: existing.Subject, Day: existing.Day})
		}
	}

	day, err := timegrid.ParseClassDay(entry.Day)
	if err != nil {
		return err
	}
	entries, err := gridEntries(classes)
	if err != nil {
		return err
	}
	conflict, err := timegrid.FindConflict(day, entry.TimeSlots, entries, ignoreID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return s.wrapConflict("SLOT_OVERLAP",
			fmt.Sprintf("time conflict with %s at %s", conflict.Entry.Subject, conflict.Slot),
			models.ClassConflict{
				ClassID: conflict.Entry.ID,
				Subject: conflict.Entry.Subject,
				Day:     conflict.Entry.Day.String(),
				Slot:    conflict.Slot,
			})
	}
	return nil
}

func (s *ScheduleService) wrapConflict(conflictType, message string, conflict models.ClassConflict) error {
	domainErr := &models.ClassConflictError{Type: conflictType, Message: message, Conflict: conflict}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, message)
}

// gridEntries projects stored records into the engine's snapshot view.
func gridEntries(classes []models.ClassEntry) ([]timegrid.Entry, error) {
	entries := make([]timegrid.Entry, 0, len(classes))
	for _, c := range classes {
		day, err := timegrid.ParseClassDay(c.Day)
		if err != nil {
			return nil, err
		}
		entries = append(entries, timegrid.Entry{
			ID:      c.ID,
			Subject: c.Subject,
			Day:     day,
			Slots:   c.TimeSlots,
		})
	}
	return entries, nil
}

// subjectColor assigns a stable palette color per subject name.
func subjectColor(subject string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return subjectPalette[int(h.Sum32())%len(subjectPalette)]
}
