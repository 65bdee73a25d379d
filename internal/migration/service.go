// Package migration orchestrates the one-time move of the local desktop
// database to the remote inventory API.
package migration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/inventory-migrator/internal/concurrency"
	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/importer"
	"github.com/osse101/inventory-migrator/internal/legacy"
	"github.com/osse101/inventory-migrator/internal/logger"
	"github.com/osse101/inventory-migrator/internal/metrics"
	"github.com/osse101/inventory-migrator/internal/validation"
)

// Service defines the migration operations offered to the UI and CLI
type Service interface {
	Status(ctx context.Context) domain.MigrationStatus
	Run(ctx context.Context, req domain.RunRequest) domain.RunResult
	Skip(ctx context.Context) domain.SkipResult
	State() domain.MigrationState
}

// Importer submits a snapshot to the remote API
type Importer interface {
	Import(ctx context.Context, baseURL, accessToken string, snapshot *domain.Snapshot) (*domain.ImportSummary, error)
}

// Marker is the completion sentinel
type Marker interface {
	Exists() (bool, error)
	Write() error
}

// PayloadValidator checks a snapshot before it is sent
type PayloadValidator interface {
	ValidateSnapshot(snapshot *domain.Snapshot) error
}

// LocalStore is the part of the legacy store a migration needs
type LocalStore interface {
	Counts(ctx context.Context) (domain.TableCounts, error)
	ReadSnapshot(ctx context.Context, encoder legacy.FileEncoder) (*domain.Snapshot, error)
	Close() error
}

// Opener opens the local store at path
type Opener func(ctx context.Context, path string) (LocalStore, error)

// Option customises a service
type Option func(*service)

// WithOpener replaces the local store opener
func WithOpener(open Opener) Option {
	return func(s *service) { s.open = open }
}

// WithPayloadValidator replaces the payload validator
func WithPayloadValidator(v PayloadValidator) Option {
	return func(s *service) { s.payload = v }
}

type service struct {
	dbPath   string
	marker   Marker
	encoder  legacy.FileEncoder
	importer Importer
	locks    *concurrency.LockManager
	payload  PayloadValidator
	validate *validator.Validate
	open     Opener

	mu    sync.RWMutex
	state domain.MigrationState
}

// NewService creates a migration service for the database at dbPath
func NewService(dbPath string, mk Marker, encoder legacy.FileEncoder, imp Importer, locks *concurrency.LockManager, opts ...Option) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	s := &service{
		dbPath:   dbPath,
		marker:   mk,
		encoder:  encoder,
		importer: imp,
		locks:    locks,
		payload:  validation.NewSchemaValidator(),
		validate: validator.New(),
		open:     openLegacy,
		state:    domain.MigrationStateNotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func openLegacy(ctx context.Context, path string) (LocalStore, error) {
	store, err := legacy.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// State returns the lifecycle position observed by this service
func (s *service) State() domain.MigrationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *service) setState(state domain.MigrationState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Status reports whether a migration is needed. It never fails; read errors
// are logged and reported as nothing to do.
func (s *service) Status(ctx context.Context) domain.MigrationStatus {
	log := logger.FromContext(ctx)

	done, err := s.marker.Exists()
	if err != nil {
		log.Warn(LogMsgStatusCheckFailed, "error", err)
	}
	dbExists, err := legacy.Exists(s.dbPath)
	if err != nil {
		log.Warn(LogMsgStatusCheckFailed, "path", s.dbPath, "error", err)
	}

	status := domain.MigrationStatus{Done: done, DBExists: dbExists}
	if !dbExists || done {
		return status
	}

	counts, err := s.countRows(ctx)
	if err != nil {
		log.Warn(LogMsgStatusCountFailed, "path", s.dbPath, "error", err)
		return domain.MigrationStatus{Needed: false, Done: false, DBExists: true}
	}

	status.Needed = true
	status.Counts = &counts
	s.mu.Lock()
	if s.state == domain.MigrationStateNotStarted {
		s.state = domain.MigrationStateReady
	}
	s.mu.Unlock()
	return status
}

func (s *service) countRows(ctx context.Context) (domain.TableCounts, error) {
	store, err := s.open(ctx, s.dbPath)
	if err != nil {
		return domain.TableCounts{}, err
	}
	defer s.closeStore(ctx, store)
	return store.Counts(ctx)
}

// Run performs the migration once. The marker is written only after the
// remote side confirmed the import.
func (s *service) Run(ctx context.Context, req domain.RunRequest) (result domain.RunResult) {
	log := logger.FromContext(ctx)

	release, err := s.acquire(ctx)
	if err != nil {
		metrics.MigrationRuns.WithLabelValues(metrics.OutcomeRejected).Inc()
		return domain.RunResult{Success: false, Error: errorText(err)}
	}
	defer release()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgRunPanicked, "panic", r)
			s.setState(domain.MigrationStateFailed)
			metrics.MigrationRuns.WithLabelValues(metrics.OutcomeFailed).Inc()
			result = domain.RunResult{Success: false, Error: fmt.Sprintf("%s: %v", MsgInternalError, r)}
		}
	}()

	done, err := s.marker.Exists()
	if err != nil {
		return s.fail(ctx, start, err)
	}
	if done {
		log.Info(LogMsgRunAlreadyDone)
		metrics.MigrationRuns.WithLabelValues(metrics.OutcomeAlreadyDone).Inc()
		return domain.RunResult{Success: true, Message: domain.ErrAlreadyMigrated.Error()}
	}

	// a completed migration stays a success whatever the request carries
	if err := s.validateRequest(req); err != nil {
		return domain.RunResult{Success: false, Error: errorText(err)}
	}

	dbExists, err := legacy.Exists(s.dbPath)
	if err != nil {
		return s.fail(ctx, start, err)
	}
	if !dbExists {
		log.Info(LogMsgRunNothingToMigrate, "path", s.dbPath)
		metrics.MigrationRuns.WithLabelValues(metrics.OutcomeNothingToImport).Inc()
		return domain.RunResult{Success: true, Message: domain.ErrMsgNothingToMigrate}
	}

	s.setState(domain.MigrationStateRunning)
	log.Info(LogMsgRunStarted, "path", s.dbPath, "api_base_url", req.APIBaseURL)

	snapshot, err := s.readSnapshot(ctx)
	if err != nil {
		log.Error(LogMsgSnapshotReadFailed, "error", err)
		return s.fail(ctx, start, err)
	}
	if err := s.payload.ValidateSnapshot(snapshot); err != nil {
		log.Error(LogMsgSnapshotInvalid, "error", err)
		return s.fail(ctx, start, err)
	}

	summary, err := s.importer.Import(ctx, req.APIBaseURL, req.AccessToken, snapshot)
	if err != nil {
		log.Error(LogMsgImportFailed, "error", err)
		return s.fail(ctx, start, err)
	}
	if summary == nil {
		summary = &domain.ImportSummary{}
	}

	s.setState(domain.MigrationStateSucceeded)
	metrics.MigrationRuns.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.MigrationRunDuration.Observe(time.Since(start).Seconds())

	result = domain.RunResult{Success: true, Imported: summary}
	if err := s.marker.Write(); err != nil {
		log.Error(LogMsgMarkerWriteFailed, "error", err)
		result.Message = fmt.Sprintf("%s: %v", MsgMarkerWriteFailed, err)
		return result
	}

	log.Info(LogMsgRunSucceeded, "imported", summary, "duration", time.Since(start))
	return result
}

// acquire takes the single-flight guard shared by Run and Skip
func (s *service) acquire(ctx context.Context) (func(), error) {
	release, ok := s.locks.TryAcquire(runLockKey)
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgRunRejected)
		return nil, domain.ErrMigrationInProgress
	}
	return release, nil
}

func (s *service) validateRequest(req domain.RunRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *service) readSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	store, err := s.open(ctx, s.dbPath)
	if err != nil {
		return nil, err
	}
	defer s.closeStore(ctx, store)
	return store.ReadSnapshot(ctx, s.encoder)
}

func (s *service) fail(ctx context.Context, start time.Time, err error) domain.RunResult {
	s.setState(domain.MigrationStateFailed)
	metrics.MigrationRuns.WithLabelValues(metrics.OutcomeFailed).Inc()
	metrics.MigrationRunDuration.Observe(time.Since(start).Seconds())
	return domain.RunResult{Success: false, Error: errorText(err)}
}

// errorText reduces an error to the message shown to the user. Remote
// rejections carry only the server's message.
func errorText(err error) string {
	var apiErr *importer.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Skip records that the user opted out. No data is sent.
func (s *service) Skip(ctx context.Context) domain.SkipResult {
	log := logger.FromContext(ctx)

	release, err := s.acquire(ctx)
	if err != nil {
		return domain.SkipResult{Success: false, Error: errorText(err)}
	}
	defer release()

	done, err := s.marker.Exists()
	if err == nil && !done {
		err = s.marker.Write()
	}
	if err != nil {
		log.Error(LogMsgSkipFailed, "error", err)
		return domain.SkipResult{Success: false, Error: err.Error()}
	}

	s.setState(domain.MigrationStateSkipped)
	metrics.MigrationRuns.WithLabelValues(metrics.OutcomeSkipped).Inc()
	log.Info(LogMsgSkipWritten)
	return domain.SkipResult{Success: true}
}

func (s *service) closeStore(ctx context.Context, store LocalStore) {
	if err := store.Close(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCloseFailed, "error", err)
	}
}
