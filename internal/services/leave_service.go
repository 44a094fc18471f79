package services

import (
	"context"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-holiday-bot/internal/command"
	"github.com/tbourn/go-holiday-bot/internal/dates"
	"github.com/tbourn/go-holiday-bot/internal/domain"
	"github.com/tbourn/go-holiday-bot/internal/repo"
)

// LeaveRepo defines the repository contract required by LeaveService.
// Implementations are responsible for persistence of leave records.
type LeaveRepo interface {
	// InsertLeave appends one leave row and returns it with ID assigned.
	InsertLeave(ctx context.Context, db *gorm.DB, userID int64, userName string, start, end time.Time, reason string) (*domain.Leave, error)

	// ListLeavesOverlapping returns leaves intersecting the inclusive window,
	// ordered by start date then user name.
	ListLeavesOverlapping(ctx context.Context, db *gorm.DB, windowStart, windowEnd time.Time) ([]domain.Leave, error)

	// EnsureSchema idempotently creates the backing table and index.
	EnsureSchema(db *gorm.DB) error
}

// gormLeaveRepo adapts the repo package's free functions to the LeaveRepo
// interface, keeping the service decoupled from the concrete package.
type gormLeaveRepo struct{}

func (gormLeaveRepo) InsertLeave(ctx context.Context, db *gorm.DB, userID int64, userName string, start, end time.Time, reason string) (*domain.Leave, error) {
	return repo.InsertLeave(ctx, db, userID, userName, start, end, reason)
}

func (gormLeaveRepo) ListLeavesOverlapping(ctx context.Context, db *gorm.DB, windowStart, windowEnd time.Time) ([]domain.Leave, error) {
	return repo.ListLeavesOverlapping(ctx, db, windowStart, windowEnd)
}

func (gormLeaveRepo) EnsureSchema(db *gorm.DB) error {
	return repo.EnsureSchema(db)
}

// LeaveService owns the leave workflow: parsing date tokens, validating the
// period, persisting records, and resolving week windows for queries. It is
// stateless across requests apart from the schema-ensured flag, which is a
// pure optimization.
type LeaveService struct {
	// DB is the GORM handle used for persistence. A nil DB means the store
	// was never configured; operations fail with ErrStoreNotConfigured.
	DB *gorm.DB
	// Repo is the leave repository used by this service.
	Repo LeaveRepo

	// Loc is the display time zone used to anchor "this"/"next" week.
	Loc *time.Location
	// Now is the clock seam; defaults to time.Now.
	Now func() time.Time

	schemaReady atomic.Bool
}

// NewLeaveService constructs a LeaveService bound to db, resolving relative
// weeks in loc. Pass a nil db to run in degraded, store-less mode.
func NewLeaveService(db *gorm.DB, loc *time.Location) *LeaveService {
	return &LeaveService{
		DB:   db,
		Repo: gormLeaveRepo{},
		Loc:  loc,
		Now:  time.Now,
	}
}

// Add parses the raw from/to tokens, validates the period, cleans the reason
// capture, and persists a new leave for the sender. It returns the stored
// record with its assigned ID.
//
// Expected failures: *dates.ParseError for bad tokens, ErrEndBeforeStart for
// an inverted period (checked before any store access).
func (s *LeaveService) Add(ctx context.Context, senderID int64, senderName, fromTok, toTok, rawReason string) (*domain.Leave, error) {
	start, err := dates.ParseDate(fromTok)
	if err != nil {
		return nil, err
	}
	end, err := dates.ParseDate(toTok)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	reason := command.CleanReason(rawReason)

	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s.Repo.InsertLeave(ctx, s.DB, senderID, senderName, start, end, reason)
}

// Week resolves the selector into a Monday-to-Sunday window and returns the
// leaves overlapping it, in display order.
//
// Expected failure: *dates.WeekSelectorError for an unresolvable selector.
func (s *LeaveService) Week(ctx context.Context, selector string) (dates.Window, []domain.Leave, error) {
	w, err := dates.ResolveWeek(selector, s.today())
	if err != nil {
		return dates.Window{}, nil, err
	}
	if err := s.ensureSchema(); err != nil {
		return dates.Window{}, nil, err
	}
	rows, err := s.Repo.ListLeavesOverlapping(ctx, s.DB, w.Start, w.End)
	if err != nil {
		return dates.Window{}, nil, err
	}
	return w, rows, nil
}

// ensureSchema lazily creates the schema once per process. Failure is not
// cached, so a store that comes back later heals on the next request.
func (s *LeaveService) ensureSchema() error {
	if s.DB == nil {
		return ErrStoreNotConfigured
	}
	if s.schemaReady.Load() {
		return nil
	}
	if err := s.Repo.EnsureSchema(s.DB); err != nil {
		return err
	}
	s.schemaReady.Store(true)
	return nil
}

// today is the current calendar date in the configured zone, normalized to
// UTC midnight like every parsed date.
func (s *LeaveService) today() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	loc := s.Loc
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
