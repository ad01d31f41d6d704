package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is a scheduled delivery request.
type Notification struct {
	ReminderID string
	Title      string
	Body       string
	At         time.Time
}

// Scheduler is the delivery capability consumed by the reminder service:
// schedule a notification at an absolute instant and cancel it later by
// handle. Scheduling the same (reminderID, instant) pair twice must return
// the existing handle, so retries are safe.
type Scheduler interface {
	ScheduleAt(ctx context.Context, n Notification) (string, error)
	Cancel(ctx context.Context, handle string) error
	CancelAll(ctx context.Context, handles []string) error
}

// DeliverFunc receives a notification when its timer fires.
type DeliverFunc func(context.Context, Notification)

// TimerScheduler is an in-process Scheduler backed by timers. The actual
// push transport is out of scope; the default delivery writes a log record.
type TimerScheduler struct {
	logger  *zap.Logger
	deliver DeliverFunc

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool

	pending map[string]*pendingNotification // by handle
	dedupe  map[string]string               // (reminderID, instant) -> handle
}

type pendingNotification struct {
	notification Notification
	timer        *time.Timer
}

// NewTimerScheduler builds a scheduler delivering through the provided func,
// or a log-only delivery when nil.
func NewTimerScheduler(logger *zap.Logger, deliver DeliverFunc) *TimerScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &TimerScheduler{
		logger:  logger,
		pending: make(map[string]*pendingNotification),
		dedupe:  make(map[string]string),
	}
	if deliver == nil {
		deliver = s.logDelivery
	}
	s.deliver = deliver
	return s
}

// Start makes the scheduler accept work. Safe to call once.
func (s *TimerScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	s.logger.Sugar().Infow("notification scheduler started")
}

// Stop cancels all pending timers and waits for in-flight deliveries.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	for handle, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, handle)
	}
	s.dedupe = make(map[string]string)
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Sugar().Infow("notification scheduler stopped")
}

// ScheduleAt registers a notification to fire at the given instant and
// returns its handle. Idempotent per (reminderID, instant).
func (s *TimerScheduler) ScheduleAt(ctx context.Context, n Notification) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return "", fmt.Errorf("notification scheduler not started")
	}

	key := dedupeKey(n.ReminderID, n.At)
	if handle, ok := s.dedupe[key]; ok {
		return handle, nil
	}

	handle := uuid.NewString()
	delay := time.Until(n.At)
	if delay < 0 {
		delay = 0
	}
	p := &pendingNotification{notification: n}
	p.timer = time.AfterFunc(delay, func() { s.fire(handle) })
	s.pending[handle] = p
	s.dedupe[key] = handle

	s.logger.Sugar().Debugw("notification scheduled",
		"handle", handle, "reminder_id", n.ReminderID, "at", n.At)
	return handle, nil
}

// Cancel stops a pending notification. Cancelling an unknown or already
// fired handle is a no-op.
func (s *TimerScheduler) Cancel(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[handle]
	if !ok {
		return nil
	}
	p.timer.Stop()
	delete(s.pending, handle)
	delete(s.dedupe, dedupeKey(p.notification.ReminderID, p.notification.At))
	return nil
}

// CancelAll cancels every handle in the batch. Unknown handles are skipped.
func (s *TimerScheduler) CancelAll(ctx context.Context, handles []string) error {
	for _, handle := range handles {
		if err := s.Cancel(ctx, handle); err != nil {
			return err
		}
	}
	return nil
}

// Pending reports the number of notifications waiting to fire.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *TimerScheduler) fire(handle string) {
	s.mu.Lock()
	p, ok := s.pending[handle]
	if !ok || s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	delete(s.pending, handle)
	delete(s.dedupe, dedupeKey(p.notification.ReminderID, p.notification.At))
	ctx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	s.deliver(ctx, p.notification)
}

func (s *TimerScheduler) logDelivery(_ context.Context, n Notification) {
	s.logger.Sugar().Infow("notification fired",
		"reminder_id", n.ReminderID, "title", n.Title, "body", n.Body, "at", n.At)
}

func dedupeKey(reminderID string, at time.Time) string {
	return fmt.Sprintf("%s@%d", reminderID, at.Unix())
}
