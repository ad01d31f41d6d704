package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/timecraft-app/timecraft-api/internal/dto"
	"github.com/timecraft-app/timecraft-api/internal/models"
	"github.com/timecraft-app/timecraft-api/internal/timegrid"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

type classLister interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.ClassEntry, error)
}

type upcomingReminderLister interface {
	ListUpcoming(ctx context.Context, limit int) ([]models.Reminder, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL       time.Duration
	RemindersLimit int
}

// DashboardService composes the home-screen payload: the class in session,
// the next upcoming class and the nearest deadlines.
type DashboardService struct {
	classes   classLister
	reminders upcomingReminderLister
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
	cfg       DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Classes   classLister
	Reminders upcomingReminderLister
	Cache     *CacheService
	Logger    *zap.Logger
	Now       func() time.Time
	Config    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.RemindersLimit <= 0 {
		cfg.RemindersLimit = 5
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		classes:   params.Classes,
		reminders: params.Reminders,
		cache:     params.Cache,
		logger:    logger,
		now:       now,
		cfg:       cfg,
	}
}

// Home returns the dashboard payload and indicates cache utilisation. The
// cache key carries minute resolution since the current/next answer cannot
// change more often than that.
func (s *DashboardService) Home(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	now := s.now()
	cacheKey := fmt.Sprintf("dash:home:%s", now.Format("2006-01-02T15:04"))
	if s.cache.Enabled() {
		var cached dto.DashboardResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	payload, err := s.compose(ctx, now)
	if err != nil {
		return nil, false, err
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, payload, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache store failed", zap.Error(err))
		}
	}
	return payload, false, nil
}

func (s *DashboardService) compose(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	classes, err := s.classes.List(ctx, models.ClassFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}

	payload := &dto.DashboardResponse{Reminders: []models.ReminderSummary{}}

	byID := make(map[string]models.ClassEntry, len(classes))
	entries := make([]timegrid.Entry, 0, len(classes))
	for _, c := range classes {
		day, err := timegrid.ParseClassDay(c.Day)
		if err != nil {
			return nil, err
		}
		byID[c.ID] = c
		entries = append(entries, timegrid.Entry{ID: c.ID, Subject: c.Subject, Day: day, Slots: c.TimeSlots})
	}

	resolution, err := timegrid.Resolve(now, entries)
	if err != nil {
		return nil, err
	}
	if resolution.Current != nil {
		entry := byID[resolution.Current.ID]
		payload.CurrentClass = displayClass(entry, entry.Day)
	}
	if resolution.Next != nil {
		entry := byID[resolution.Next.Entry.ID]
		payload.NextClass = displayClass(entry, resolution.Next.Day.String())
	}

	reminders, err := s.reminders.ListUpcoming(ctx, s.cfg.RemindersLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminders")
	}
	for _, r := range reminders {
		subject := r.Subject
		if subject == "" {
			subject = "General"
		}
		payload.Reminders = append(payload.Reminders, models.ReminderSummary{
			Title:    r.Title,
			Subject:  subject,
			Deadline: r.DeadlineDate.Format("Jan 2, 2006"),
			Time:     r.DeadlineTime,
		})
	}
	return payload, nil
}

// displayClass projects a stored entry into its dashboard card. The shown
// end time is the label after the last occupied slot.
func displayClass(entry models.ClassEntry, day string) *dto.DashboardClass {
	return &dto.DashboardClass{
		Name: entry.Subject,
		Time: fmt.Sprintf("%s - %s", entry.StartTime, entry.EndTime),
		Room: fmt.Sprintf("%s %s", entry.RoomPrefix, entry.RoomNumber),
		Day:  day,
	}
}
