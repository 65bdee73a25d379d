// Package reminder notifies help-desk staff about equipment returns that are
// due and employee exits that are still open, for as long as the local store
// is in use.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/legacy"
	"github.com/osse101/inventory-migrator/internal/logger"
	"github.com/osse101/inventory-migrator/internal/metrics"
	"github.com/osse101/inventory-migrator/internal/scheduler"
	"github.com/osse101/inventory-migrator/internal/worker"
)

// Source lists the records that may need a reminder
type Source interface {
	DueReturns(ctx context.Context, cutoff string) ([]domain.Request, error)
	PendingExits(ctx context.Context, cutoff string) ([]domain.EmployeeExit, error)
	Close() error
}

// Opener opens the local store for one check
type Opener func(ctx context.Context, path string) (Source, error)

// MarkerChecker reports whether the migration has been performed
type MarkerChecker interface {
	Exists() (bool, error)
}

// Config controls what is checked and how often
type Config struct {
	DBPath   string
	Interval time.Duration
	LeadDays int
}

// Option customises a Scheduler
type Option func(*Scheduler)

// WithClock injects the time source
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithOpener replaces the local store opener
func WithOpener(open Opener) Option {
	return func(s *Scheduler) { s.open = open }
}

// Scheduler owns all reminder state. Each instance is independent.
type Scheduler struct {
	cfg      Config
	marker   MarkerChecker
	notifier Notifier
	open     Opener
	now      func() time.Time

	// checkMu serialises checks so a manual trigger and a tick never overlap
	checkMu  sync.Mutex
	notified *expirable.LRU[string, struct{}]

	mu      sync.Mutex
	running bool
	lastRun time.Time
	pool    *worker.Pool
	sched   *scheduler.Scheduler
}

// NewScheduler creates a stopped scheduler
func NewScheduler(cfg Config, mk MarkerChecker, notifier Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		marker:   mk,
		notifier: notifier,
		open:     openLegacy,
		now:      time.Now,
		notified: expirable.NewLRU[string, struct{}](dedupCapacity, nil, dedupTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func openLegacy(ctx context.Context, path string) (Source, error) {
	store, err := legacy.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Start begins periodic checks, the first one immediately. Calling Start on a
// running scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if s.cfg.Interval <= 0 {
		logger.FromContext(context.Background()).Info(LogMsgSchedulerDisabled)
		return
	}

	s.pool = worker.NewPool(1, 1)
	s.pool.Start()
	s.sched = scheduler.New(s.pool)
	s.sched.ScheduleNow(s.cfg.Interval, worker.JobFunc(func(ctx context.Context) error {
		_, err := s.Trigger(ctx)
		return err
	}))
	s.running = true

	logger.FromContext(context.Background()).Info(LogMsgSchedulerStarted,
		"interval", s.cfg.Interval, "lead_days", s.cfg.LeadDays)
}

// Stop halts periodic checks and waits for an in-flight check to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	sched, pool := s.sched, s.pool
	s.sched, s.pool = nil, nil
	s.running = false
	s.mu.Unlock()

	// the in-flight check takes s.mu in markRun, so wait outside it
	sched.Stop()
	pool.Stop()

	logger.FromContext(context.Background()).Info(LogMsgSchedulerStopped)
}

// Running reports whether periodic checks are active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastRun returns the time of the last completed check, zero if none
func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// Trigger runs one check now. Reminders already sent today are suppressed.
func (s *Scheduler) Trigger(ctx context.Context) (domain.ReminderCheck, error) {
	s.checkMu.Lock()
	defer s.checkMu.Unlock()

	log := logger.FromContext(ctx)
	now := s.now()
	result := domain.ReminderCheck{Sent: []domain.Reminder{}, CheckedAt: now}

	idle, err := s.idle(ctx)
	if err != nil {
		metrics.ReminderChecksFailed.Inc()
		log.Error(LogMsgCheckFailed, "error", err)
		return result, err
	}
	if idle {
		result.Idle = true
		s.markRun(now)
		return result, nil
	}

	due, err := s.collect(ctx, now)
	if err != nil {
		metrics.ReminderChecksFailed.Inc()
		log.Error(LogMsgCheckFailed, "error", err)
		return result, err
	}

	today := now.Format(domain.LegacyDateLayout)
	fresh := make([]domain.Reminder, 0, len(due))
	for _, r := range due {
		if s.notified.Contains(dedupKey(r, today)) {
			result.Suppressed++
			continue
		}
		fresh = append(fresh, r)
	}

	if len(fresh) > 0 {
		// Nothing is marked as sent unless delivery succeeded, so the next
		// pass retries.
		if err := s.notifier.Notify(ctx, fresh); err != nil {
			return result, err
		}
		for _, r := range fresh {
			s.notified.Add(dedupKey(r, today), struct{}{})
			metrics.RemindersSent.WithLabelValues(r.Kind).Inc()
		}
	}

	result.Sent = fresh
	s.markRun(now)
	log.Info(LogMsgCheckCompleted, "sent", len(fresh), "suppressed", result.Suppressed)
	return result, nil
}

func (s *Scheduler) idle(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	done, err := s.marker.Exists()
	if err != nil {
		return false, err
	}
	if done {
		log.Debug(LogMsgIdleMigrated)
		return true, nil
	}

	exists, err := legacy.Exists(s.cfg.DBPath)
	if err != nil {
		return false, err
	}
	if !exists {
		log.Debug(LogMsgIdleNoStore, "path", s.cfg.DBPath)
		return true, nil
	}
	return false, nil
}

func (s *Scheduler) collect(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	store, err := s.open(ctx, s.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.FromContext(ctx).Warn(LogMsgCloseFailed, "error", err)
		}
	}()

	today := now.Format(domain.LegacyDateLayout)
	cutoff := now.AddDate(0, 0, s.cfg.LeadDays).Format(domain.LegacyDateLayout)

	returns, err := store.DueReturns(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list due returns: %w", err)
	}
	exits, err := store.PendingExits(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending exits: %w", err)
	}

	reminders := make([]domain.Reminder, 0, len(returns)+len(exits))
	for _, r := range returns {
		due := datePart(r.ReturnDueDate.String)
		reminders = append(reminders, domain.Reminder{
			Kind:         domain.ReminderKindReturnDue,
			RecordID:     r.ID,
			EmployeeName: r.EmployeeName,
			Login:        r.Login,
			DueDate:      due,
			Overdue:      due < today,
			Detail:       r.ReturnEquipment.String,
			GeneratedAt:  now,
		})
	}
	for _, e := range exits {
		due := datePart(e.ExitDate)
		reminders = append(reminders, domain.Reminder{
			Kind:         domain.ReminderKindExitPending,
			RecordID:     e.ID,
			EmployeeName: e.EmployeeName,
			Login:        e.Login,
			DueDate:      due,
			Overdue:      due < today,
			Detail:       e.EquipmentList.String,
			GeneratedAt:  now,
		})
	}
	return reminders, nil
}

func (s *Scheduler) markRun(now time.Time) {
	s.mu.Lock()
	s.lastRun = now
	s.mu.Unlock()
}

func dedupKey(r domain.Reminder, day string) string {
	return fmt.Sprintf("%s:%d:%s", r.Kind, r.RecordID, day)
}

// datePart trims a stored timestamp to its YYYY-MM-DD prefix
func datePart(v string) string {
	if len(v) > len(domain.LegacyDateLayout) {
		return v[:len(domain.LegacyDateLayout)]
	}
	return v
}
