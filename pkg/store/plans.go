package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/airnet/netplan/pkg/types"
)

// Fixed width so that created_at sorts as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// PlanRecord is a solved plan as persisted.
type PlanRecord struct {
	RunID     uuid.UUID
	CreatedAt time.Time
	Program   string
	Solver    string
	Status    string
	Objective float64
	Horizon   int
	Legs      []LegRecord
	Fleet     []FleetRecord
}

// LegRecord is one flight arc with traffic on one day.
type LegRecord struct {
	Day         int
	Arc         string
	Kind        string
	Origin      types.AirportCode
	Destination types.AirportCode
	Passengers  float64
	Flights     int
}

type FleetRecord struct {
	Day      int
	Airport  types.AirportCode
	Aircraft int
}

// SavePlan writes rec in one transaction. A zero RunID or CreatedAt is
// filled in and written back to rec.
func (s *Store) SavePlan(ctx context.Context, rec *PlanRecord) error {
	if rec.RunID == uuid.Nil {
		rec.RunID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plans (run_id, created_at, program, solver, status, objective, horizon) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID.String(), rec.CreatedAt.UTC().Format(timeFormat), rec.Program, rec.Solver, rec.Status, rec.Objective, rec.Horizon)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	legStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO plan_legs (run_id, day, arc, kind, origin, destination, passengers, flights) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare leg insert: %w", err)
	}
	defer legStmt.Close()
	for _, l := range rec.Legs {
		if _, err := legStmt.ExecContext(ctx, rec.RunID.String(), l.Day, l.Arc, l.Kind, string(l.Origin), string(l.Destination), l.Passengers, l.Flights); err != nil {
			return fmt.Errorf("failed to insert leg %s day %d: %w", l.Arc, l.Day, err)
		}
	}

	fleetStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fleet_positions (run_id, day, airport, aircraft) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare fleet insert: %w", err)
	}
	defer fleetStmt.Close()
	for _, f := range rec.Fleet {
		if _, err := fleetStmt.ExecContext(ctx, rec.RunID.String(), f.Day, string(f.Airport), f.Aircraft); err != nil {
			return fmt.Errorf("failed to insert fleet position %s day %d: %w", f.Airport, f.Day, err)
		}
	}

	return tx.Commit()
}

// LatestPlan returns the most recently created plan without legs or fleet.
func (s *Store) LatestPlan(ctx context.Context) (*PlanRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, created_at, program, solver, status, objective, horizon FROM plans ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	rec, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPlans
	}
	return rec, err
}

func scanPlan(row *sql.Row) (*PlanRecord, error) {
	var (
		rec     PlanRecord
		id      string
		created string
	)
	if err := row.Scan(&id, &created, &rec.Program, &rec.Solver, &rec.Status, &rec.Objective, &rec.Horizon); err != nil {
		return nil, err
	}
	var err error
	if rec.RunID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("bad run id %q: %w", id, err)
	}
	if rec.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	return &rec, nil
}

// Legs returns the legs of a plan ordered by day and arc.
func (s *Store) Legs(ctx context.Context, runID uuid.UUID) ([]LegRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, arc, kind, origin, destination, passengers, flights FROM plan_legs WHERE run_id = ? ORDER BY day, arc`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query legs: %w", err)
	}
	defer rows.Close()

	var res []LegRecord
	for rows.Next() {
		var (
			l    LegRecord
			o, d string
		)
		if err := rows.Scan(&l.Day, &l.Arc, &l.Kind, &o, &d, &l.Passengers, &l.Flights); err != nil {
			return nil, err
		}
		l.Origin, l.Destination = types.AirportCode(o), types.AirportCode(d)
		res = append(res, l)
	}
	return res, rows.Err()
}

// FleetAt returns the positions a plan recorded for the start of day.
func (s *Store) FleetAt(ctx context.Context, runID uuid.UUID, day int) (map[types.AirportCode]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT airport, aircraft FROM fleet_positions WHERE run_id = ? AND day = ?`, runID.String(), day)
	if err != nil {
		return nil, fmt.Errorf("failed to query fleet positions: %w", err)
	}
	defer rows.Close()

	res := make(map[types.AirportCode]int)
	for rows.Next() {
		var (
			a string
			n int
		)
		if err := rows.Scan(&a, &n); err != nil {
			return nil, err
		}
		res[types.AirportCode(a)] = n
	}
	return res, rows.Err()
}

// LatestTerminalFleet returns the closing positions of the most recent
// plan, the initial positions of the next horizon.
func (s *Store) LatestTerminalFleet(ctx context.Context) (map[types.AirportCode]int, uuid.UUID, error) {
	rec, err := s.LatestPlan(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	fleet, err := s.FleetAt(ctx, rec.RunID, rec.Horizon)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return fleet, rec.RunID, nil
}
