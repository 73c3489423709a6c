package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			flight_number TEXT NOT NULL,
			departure_at DATETIME,
			from_airport TEXT NOT NULL,
			to_airport TEXT NOT NULL,
			departure_risk TEXT NOT NULL,
			arrival_risk TEXT NOT NULL,
			cruise_risk TEXT NOT NULL,
			total_risk INTEGER NOT NULL,
			feasibility_label TEXT NOT NULL,
			feasibility_tier TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Add(ctx context.Context, ev *models.FlightEvaluation) error {
	departure, err := json.Marshal(ev.Departure)
	if err != nil {
		return fmt.Errorf("error encoding departure risk: %w", err)
	}
	arrival, err := json.Marshal(ev.Arrival)
	if err != nil {
		return fmt.Errorf("error encoding arrival risk: %w", err)
	}
	cruise, err := json.Marshal(ev.Cruise)
	if err != nil {
		return fmt.Errorf("error encoding cruise risk: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (
			id, flight_number, departure_at, from_airport, to_airport,
			departure_risk, arrival_risk, cruise_risk,
			total_risk, feasibility_label, feasibility_tier, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.FlightNumber, ev.DepartureAt, ev.FromAirportID, ev.ToAirportID,
		string(departure), string(arrival), string(cruise),
		ev.TotalScore, ev.Feasibility.Label, ev.Feasibility.Tier, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting evaluation: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.FlightEvaluation, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM evaluations WHERE id = ?`, id)

	ev, err := scanEvaluation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning evaluation: %w", err)
	}
	return ev, nil
}

func (s *SQLiteDB) List(ctx context.Context, limit int) ([]models.FlightEvaluation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+`
		FROM evaluations
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := make([]models.FlightEvaluation, 0, limit)
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			// A damaged row must never take the whole history down.
			slog.Warn("skipping corrupt evaluation row", "error", err)
			continue
		}
		evaluations = append(evaluations, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluations: %w", err)
	}

	return evaluations, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT id, flight_number, departure_at, from_airport, to_airport,
	       departure_risk, arrival_risk, cruise_risk,
	       total_risk, feasibility_label, feasibility_tier, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row scanner) (*models.FlightEvaluation, error) {
	var (
		ev                         models.FlightEvaluation
		departureAt                sql.NullTime
		departure, arrival, cruise string
	)

	err := row.Scan(
		&ev.ID, &ev.FlightNumber, &departureAt, &ev.FromAirportID, &ev.ToAirportID,
		&departure, &arrival, &cruise,
		&ev.TotalScore, &ev.Feasibility.Label, &ev.Feasibility.Tier, &ev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if departureAt.Valid {
		ev.DepartureAt = departureAt.Time
	}

	if err := json.Unmarshal([]byte(departure), &ev.Departure); err != nil {
		return nil, fmt.Errorf("corrupt departure risk for %s: %w", ev.ID, err)
	}
	if err := json.Unmarshal([]byte(arrival), &ev.Arrival); err != nil {
		return nil, fmt.Errorf("corrupt arrival risk for %s: %w", ev.ID, err)
	}
	if err := json.Unmarshal([]byte(cruise), &ev.Cruise); err != nil {
		return nil, fmt.Errorf("corrupt cruise risk for %s: %w", ev.ID, err)
	}

	return &ev, nil
}

var _ FlightRepository = (*SQLiteDB)(nil)
