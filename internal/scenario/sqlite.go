package scenario

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/fleetshift/fleetshift/internal/tco"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore is the Store implementation backed by a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens (or creates) the scenario database at dbPath, sets the
// recommended pragmas and runs pending migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open scenario database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run scenario migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all scenarios, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, inputs, results FROM scenarios ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	return scenarios, nil
}

// Get returns one scenario by id, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, inputs, results FROM scenarios WHERE id = ?`, id)

	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sc, err
}

// Save stores a new scenario under a fresh ULID.
func (s *SQLiteStore) Save(
	ctx context.Context,
	name string,
	inputs tco.Inputs,
	results tco.Results,
) (Scenario, error) {
	sc := Scenario{
		ID:        ulid.Make().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Inputs:    inputs,
		Results:   results,
	}

	inputsJSON, resultsJSON, err := encodeSnapshots(sc)
	if err != nil {
		return Scenario{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, created_at, inputs, results) VALUES (?, ?, ?, ?, ?)`,
		sc.ID, sc.Name, sc.CreatedAt.Format(time.RFC3339), inputsJSON, resultsJSON)
	if err != nil {
		return Scenario{}, fmt.Errorf("save scenario: %w", err)
	}
	return sc, nil
}

// Update replaces the stored snapshot for an existing scenario.
func (s *SQLiteStore) Update(ctx context.Context, sc Scenario) error {
	inputsJSON, resultsJSON, err := encodeSnapshots(sc)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE scenarios SET name = ?, inputs = ?, results = ? WHERE id = ?`,
		sc.Name, inputsJSON, resultsJSON, sc.ID)
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, sc.ID)
	}
	return nil
}

// Delete removes a scenario by id, or returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Recompute refreshes the result snapshot from the stored inputs and
// persists the updated scenario. Reference data may have changed since the
// scenario was saved, so the stored results can be stale.
func (s *SQLiteStore) Recompute(ctx context.Context, id string) (Scenario, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return Scenario{}, err
	}

	results, err := tco.Calculate(sc.Inputs)
	if err != nil {
		return Scenario{}, fmt.Errorf("recompute scenario %s: %w", id, err)
	}

	sc.Results = results
	if err := s.Update(ctx, sc); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// encodeSnapshots serializes the input and result snapshots for storage.
func encodeSnapshots(sc Scenario) (string, string, error) {
	inputsJSON, err := json.Marshal(sc.Inputs)
	if err != nil {
		return "", "", fmt.Errorf("encode scenario inputs: %w", err)
	}
	resultsJSON, err := json.Marshal(sc.Results)
	if err != nil {
		return "", "", fmt.Errorf("encode scenario results: %w", err)
	}
	return string(inputsJSON), string(resultsJSON), nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (Scenario, error) {
	var (
		sc          Scenario
		createdAt   string
		inputsJSON  string
		resultsJSON string
	)
	if err := row.Scan(&sc.ID, &sc.Name, &createdAt, &inputsJSON, &resultsJSON); err != nil {
		return Scenario{}, err
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Scenario{}, fmt.Errorf("parse scenario timestamp: %w", err)
	}
	sc.CreatedAt = ts

	if err := json.Unmarshal([]byte(inputsJSON), &sc.Inputs); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsJSON), &sc.Results); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario results: %w", err)
	}
	return sc, nil
}
