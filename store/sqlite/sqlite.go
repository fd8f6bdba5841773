/*
Package sqlite provides SQLite-backed persistence for credit plans.

PURPOSE:
  Stores named credit plans (their parameters), the early-repayment
  events attached to each plan, and a serialized snapshot of the last
  computed effective schedule. The engine itself stays pure; this
  package is the persistence collaborator around it.

KEY TABLES:
  plans:      Credit parameters, one row per plan
  events:     Early-repayment events, ordered per plan
  schedules:  One serialized schedule snapshot per plan

EVENT ORDERING:
  Events are returned ordered by effective date with insertion order
  breaking ties (a per-plan position counter). The engine never
  re-sorts, so this ordering IS the re-amortization order.

SIZE CAP:
  A serialized schedule snapshot above 5 MiB is rejected with
  ErrScheduleTooLarge rather than written.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL for
  better read concurrency and crash recovery.

USAGE:
  store, err := sqlite.New("./data/credit.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/credit-engine/credit"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrScheduleTooLarge is returned when a serialized schedule
	// snapshot exceeds MaxScheduleBytes.
	ErrScheduleTooLarge = errors.New("serialized schedule exceeds size cap")
)

// MaxScheduleBytes caps a serialized schedule snapshot at 5 MiB.
const MaxScheduleBytes = 5 << 20

// =============================================================================
// RECORDS
// =============================================================================

// Plan is a stored set of credit parameters under a user-facing name.
type Plan struct {
	ID        string
	Name      string
	Params    credit.Params
	CreatedAt time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store implements plan persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		principal TEXT NOT NULL,
		annual_rate_pct REAL NOT NULL,
		term_years REAL NOT NULL,
		periods_per_year INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		skip_weekends INTEGER NOT NULL,
		mode TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		effective_date TEXT NOT NULL,
		amount TEXT NOT NULL,
		strategy TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Re-amortization order: date ascending, insertion order on ties
	CREATE INDEX IF NOT EXISTS idx_events_plan_order
		ON events(plan_id, effective_date, position);

	CREATE TABLE IF NOT EXISTS schedules (
		plan_id TEXT PRIMARY KEY REFERENCES plans(id) ON DELETE CASCADE,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PLANS
// =============================================================================

// SavePlan inserts or replaces a plan.
func (s *Store) SavePlan(ctx context.Context, plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	skip := 0
	if plan.Params.SkipWeekends {
		skip = 1
	}
	createdAt := plan.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO plans
			(id, name, principal, annual_rate_pct, term_years, periods_per_year,
			 start_date, skip_weekends, mode, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.Name,
		plan.Params.Principal.String(), plan.Params.AnnualRatePct, plan.Params.TermYears,
		plan.Params.PeriodsPerYear, plan.Params.StartDate.Format("2006-01-02"),
		skip, string(plan.Params.Mode), createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetPlan loads a plan by ID.
func (s *Store) GetPlan(ctx context.Context, id string) (Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, principal, annual_rate_pct, term_years, periods_per_year,
		       start_date, skip_weekends, mode, created_at
		FROM plans WHERE id = ?`, id)

	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	}
	return plan, err
}

// ListPlans returns all plans, newest first.
func (s *Store) ListPlans(ctx context.Context) ([]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, principal, annual_rate_pct, term_years, periods_per_year,
		       start_date, skip_weekends, mode, created_at
		FROM plans ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan with its events and schedule snapshot.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var plan Plan
	var principal, startDate, mode, createdAt string
	var skip int

	err := row.Scan(&plan.ID, &plan.Name, &principal, &plan.Params.AnnualRatePct,
		&plan.Params.TermYears, &plan.Params.PeriodsPerYear, &startDate, &skip, &mode, &createdAt)
	if err != nil {
		return Plan{}, err
	}

	plan.Params.Principal, err = decimal.NewFromString(principal)
	if err != nil {
		return Plan{}, fmt.Errorf("corrupt principal %q: %w", principal, err)
	}
	plan.Params.StartDate, err = credit.ParseDate(startDate)
	if err != nil {
		return Plan{}, fmt.Errorf("corrupt start date %q: %w", startDate, err)
	}
	plan.Params.SkipWeekends = skip != 0
	plan.Params.Mode = credit.Mode(mode)
	plan.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return plan, nil
}

// =============================================================================
// EVENTS
// =============================================================================

// AddEvent appends an early-repayment event to a plan. The position
// counter preserves insertion order between events on the same date.
func (s *Store) AddEvent(ctx context.Context, planID string, event credit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM plans WHERE id = ?`, planID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check plan: %w", err)
	}
	if exists == 0 {
		return ErrPlanNotFound
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, plan_id, effective_date, amount, strategy, position, created_at)
		VALUES (?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM events WHERE plan_id = ?), ?)`,
		event.ID, planID, event.Date.Format("2006-01-02"), event.Amount.String(),
		string(event.Strategy), planID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

// ListEvents returns a plan's events in re-amortization order.
func (s *Store) ListEvents(ctx context.Context, planID string) ([]credit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, effective_date, amount, strategy
		FROM events WHERE plan_id = ?
		ORDER BY effective_date, position`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []credit.Event
	for rows.Next() {
		var ev credit.Event
		var date, amount, strategy string
		if err := rows.Scan(&ev.ID, &date, &amount, &strategy); err != nil {
			return nil, err
		}
		if ev.Date, err = credit.ParseDate(date); err != nil {
			return nil, fmt.Errorf("corrupt event date %q: %w", date, err)
		}
		if ev.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt event amount %q: %w", amount, err)
		}
		ev.Strategy = credit.Strategy(strategy)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteEvent removes a single event from a plan.
func (s *Store) DeleteEvent(ctx context.Context, planID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE plan_id = ? AND id = ?`, planID, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// =============================================================================
// SCHEDULE SNAPSHOTS
// =============================================================================

// SaveSchedule stores the serialized effective schedule for a plan,
// rejecting payloads over MaxScheduleBytes.
func (s *Store) SaveSchedule(ctx context.Context, planID string, schedule credit.Schedule) error {
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("failed to serialize schedule: %w", err)
	}
	if len(payload) > MaxScheduleBytes {
		return fmt.Errorf("%w: %d bytes", ErrScheduleTooLarge, len(payload))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO schedules (plan_id, payload, updated_at)
		VALUES (?, ?, ?)`,
		planID, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

// LoadSchedule returns the stored effective schedule for a plan.
func (s *Store) LoadSchedule(ctx context.Context, planID string) (credit.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM schedules WHERE plan_id = ?`, planID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	var schedule credit.Schedule
	if err := json.Unmarshal([]byte(payload), &schedule); err != nil {
		return nil, fmt.Errorf("corrupt schedule payload: %w", err)
	}
	return schedule, nil
}
