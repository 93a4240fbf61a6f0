// Package storage persists completed simulation runs to SQLite, so parameter
// sweeps can be compared across processes without parsing CSV output.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tomingtoming/geneuron/telemetry"
)

// RunSummary describes one completed simulation run.
type RunSummary struct {
	StartedAt       time.Time
	Seed            int64
	Ticks           int64
	SimTimeSec      float64
	Generations     int
	FinalPopulation int
	Births          int
	Deaths          int
	FoodEaten       int
	BestFitness     float64
}

// Run is a stored run row.
type Run struct {
	ID int64
	RunSummary
}

// RunStore records runs and their champion genomes in a SQLite database.
type RunStore struct {
	db *sql.DB
}

// Open opens the run database at path, creating the schema if needed.
func Open(ctx context.Context, path string) (*RunStore, error) {
	if path == "" {
		return nil, errors.New("storage: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening run database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging run database: %w", err)
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &RunStore{db: db}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			sim_time_sec REAL NOT NULL,
			generations INTEGER NOT NULL,
			final_population INTEGER NOT NULL,
			births INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			food_eaten INTEGER NOT NULL,
			best_fitness REAL NOT NULL
		);
		CREATE TABLE IF NOT EXISTS champions (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			rank INTEGER NOT NULL,
			fitness REAL NOT NULL,
			age_sec REAL NOT NULL,
			gender TEXT NOT NULL,
			tag TEXT NOT NULL,
			genome BLOB NOT NULL,
			PRIMARY KEY (run_id, rank)
		);
	`)
	return err
}

// RecordRun inserts the run summary and its champions, best first, in one
// transaction. Returns the new run's ID.
func (s *RunStore) RecordRun(ctx context.Context, sum RunSummary, champions []telemetry.Champion) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (started_at, seed, ticks, sim_time_sec, generations,
			final_population, births, deaths, food_eaten, best_fitness)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sum.StartedAt.UTC().Format(time.RFC3339Nano), sum.Seed, sum.Ticks,
		sum.SimTimeSec, sum.Generations, sum.FinalPopulation,
		sum.Births, sum.Deaths, sum.FoodEaten, sum.BestFitness)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for rank, champ := range champions {
		genome, err := json.Marshal(champ.Genome)
		if err != nil {
			return 0, fmt.Errorf("encoding genome: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO champions (run_id, rank, fitness, age_sec, gender, tag, genome)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, runID, rank, champ.Fitness, champ.Age, champ.Gender, champ.Tag, genome); err != nil {
			return 0, fmt.Errorf("inserting champion %d: %w", rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns all stored runs, oldest first.
func (s *RunStore) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, seed, ticks, sim_time_sec, generations,
			final_population, births, deaths, food_eaten, best_fitness
		FROM runs ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Seed, &r.Ticks, &r.SimTimeSec,
			&r.Generations, &r.FinalPopulation, &r.Births, &r.Deaths,
			&r.FoodEaten, &r.BestFitness); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parsing run %d start time: %w", r.ID, err)
		}
		r.StartedAt = t
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Champions returns the stored champions of a run, best first. A run with no
// champions yields an empty slice, not an error.
func (s *RunStore) Champions(ctx context.Context, runID int64) ([]telemetry.Champion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fitness, age_sec, gender, tag, genome
		FROM champions WHERE run_id = ? ORDER BY rank
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying champions: %w", err)
	}
	defer rows.Close()

	var champs []telemetry.Champion
	for rows.Next() {
		var c telemetry.Champion
		var genome []byte
		if err := rows.Scan(&c.Fitness, &c.Age, &c.Gender, &c.Tag, &genome); err != nil {
			return nil, fmt.Errorf("scanning champion: %w", err)
		}
		if err := json.Unmarshal(genome, &c.Genome); err != nil {
			return nil, fmt.Errorf("decoding genome: %w", err)
		}
		champs = append(champs, c)
	}
	return champs, rows.Err()
}

// Close closes the database.
func (s *RunStore) Close() error {
	return s.db.Close()
}
