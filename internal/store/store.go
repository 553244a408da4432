// Package store keeps analyzed runs in a SQLite database so curves from
// different sessions can be compared later.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/franckhertz/internal/analysis"
	"github.com/banshee-data/franckhertz/internal/monitoring"
	"github.com/banshee-data/franckhertz/internal/timeutil"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

type Store struct {
	*sql.DB

	// Clock stamps recorded runs. Open sets it to the system clock.
	Clock timeutil.Clock
}

// RunRecord is one stored run.
type RunRecord struct {
	ID          string
	Name        string
	Folder      string
	SampleCount int
	CreatedAt   time.Time
}

// PointRecord is one stored curve point.
type PointRecord struct {
	Voltage float64
	Mean    float64
	StdDev  float64
	Role    string
}

// ExtremumRecord is one stored peak/trough pair. Next and Gap are nil for
// the tail row.
type ExtremumRecord struct {
	MaxVoltage float64
	MaxOutput  float64
	MinVoltage float64
	MinOutput  float64
	Drop       float64
	Next       *float64
	Gap        *float64
	Tail       bool
}

// Open opens (or creates) the database at path. Call MigrateUp before use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Store{DB: db, Clock: timeutil.RealClock{}}, nil
}

// MigrateUp applies every pending embedded migration.
func (s *Store) MigrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Not closed: closing m closes the underlying connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// RecordRun stores a run with its curve and extrema and returns the new
// run id.
func (s *Store) RecordRun(res *analysis.RunResult) (string, error) {
	id := uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, name, folder, sample_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, res.Name, res.Folder, res.Samples, s.Clock.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	roles := res.Roles()
	for i, p := range res.Curve {
		_, err := tx.Exec(
			`INSERT INTO points (run_id, ordinal, voltage, mean, std_dev, role) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, p.Voltage, p.Mean, p.StdDev, roles[i].String(),
		)
		if err != nil {
			return "", fmt.Errorf("insert point %d: %w", i, err)
		}
	}

	const insertExtremum = `INSERT INTO extrema (
			run_id, ordinal, max_voltage, max_output, min_voltage, min_output,
			drop_size, next_voltage, gap, is_tail
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ext := res.Extrema
	for i, rec := range ext.Records {
		_, err := tx.Exec(insertExtremum,
			id, i, rec.Max.X, rec.Max.Y, rec.Min.X, rec.Min.Y,
			rec.Drop, rec.NextMax.X, rec.Gap, 0,
		)
		if err != nil {
			return "", fmt.Errorf("insert extremum %d: %w", i, err)
		}
	}
	if ext.Tail != nil {
		last := ext.Maxima[len(ext.Maxima)-1]
		_, err := tx.Exec(insertExtremum,
			id, len(ext.Records), last.X, last.Y, ext.Tail.Min.X, ext.Tail.Min.Y,
			ext.Tail.Drop, nil, nil, 1,
		)
		if err != nil {
			return "", fmt.Errorf("insert tail: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	monitoring.Debugf("stored run %s as %s (%d points)", res.Name, id, len(res.Curve))
	return id, nil
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs() ([]RunRecord, error) {
	rows, err := s.Query(`SELECT run_id, name, folder, sample_count, created_at FROM runs ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r       RunRecord
			created string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Folder, &r.SampleCount, &created); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s created_at: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Points returns the curve of a stored run in ascending voltage order.
func (s *Store) Points(runID string) ([]PointRecord, error) {
	if err := s.checkRun(runID); err != nil {
		return nil, err
	}

	rows, err := s.Query(`SELECT voltage, mean, std_dev, role FROM points WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []PointRecord
	for rows.Next() {
		var p PointRecord
		if err := rows.Scan(&p.Voltage, &p.Mean, &p.StdDev, &p.Role); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Extrema returns the stored peak/trough rows of a run, tail last.
func (s *Store) Extrema(runID string) ([]ExtremumRecord, error) {
	if err := s.checkRun(runID); err != nil {
		return nil, err
	}

	rows, err := s.Query(`SELECT max_voltage, max_output, min_voltage, min_output,
			drop_size, next_voltage, gap, is_tail
		FROM extrema WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExtremumRecord
	for rows.Next() {
		var (
			e         ExtremumRecord
			next, gap sql.NullFloat64
		)
		if err := rows.Scan(&e.MaxVoltage, &e.MaxOutput, &e.MinVoltage, &e.MinOutput,
			&e.Drop, &next, &gap, &e.Tail); err != nil {
			return nil, err
		}
		if next.Valid {
			e.Next = &next.Float64
		}
		if gap.Valid {
			e.Gap = &gap.Float64
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) checkRun(runID string) error {
	var n int
	if err := s.QueryRow(`SELECT COUNT(*) FROM runs WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
