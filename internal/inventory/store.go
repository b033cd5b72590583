package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/config"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/validation"
)

// ErrNotFound indicates the named pipeline is not in the catalog.
var ErrNotFound = errors.New("pipeline not found")

// ErrLocked indicates another process holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another process")

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open connects to the catalog database, taking the directory lock and
// applying the schema. Callers must Close the store to release the lock.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DatabaseDir, "catalog.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.DatabaseDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the catalog lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
		s.lock = nil
	}
	return err
}

// SavePipeline inserts or replaces a named pipeline definition. The blob
// must parse and pass structural validation before it is accepted; findings
// are returned without writing anything.
func (s *Store) SavePipeline(ctx context.Context, name string, definition []byte) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("save pipeline: name must not be empty")
	}
	if _, findings, err := pipeline.Load(definition); err != nil {
		return nil, fmt.Errorf("save pipeline %s: %w", name, err)
	} else if len(findings) > 0 {
		return findings, nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pipelines (name, definition, created_at, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET definition = excluded.definition, updated_at = excluded.updated_at`,
		name, string(definition), now, now)
	if err != nil {
		return nil, fmt.Errorf("save pipeline %s: %w", name, err)
	}
	return nil, nil
}

// GetPipeline fetches a stored pipeline by name.
func (s *Store) GetPipeline(ctx context.Context, name string) (*Pipeline, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, definition, created_at, updated_at FROM pipelines WHERE name = ?", name)
	var (
		p          Pipeline
		definition string
		created    string
		updated    string
	)
	if err := row.Scan(&p.ID, &p.Name, &definition, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("get pipeline %s: %w", name, err)
	}
	p.Definition = []byte(definition)
	p.CreatedAt = parseTimestamp(created)
	p.UpdatedAt = parseTimestamp(updated)
	return &p, nil
}

// ListPipelines returns the catalog ordered by name.
func (s *Store) ListPipelines(ctx context.Context) ([]Pipeline, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, definition, created_at, updated_at FROM pipelines ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()

	var result []Pipeline
	for rows.Next() {
		var (
			p          Pipeline
			definition string
			created    string
			updated    string
		)
		if err := rows.Scan(&p.ID, &p.Name, &definition, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}
		p.Definition = []byte(definition)
		p.CreatedAt = parseTimestamp(created)
		p.UpdatedAt = parseTimestamp(updated)
		result = append(result, p)
	}
	return result, rows.Err()
}

// DeletePipeline removes a pipeline from the catalog.
func (s *Store) DeletePipeline(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pipelines WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete pipeline %s: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pipeline %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// RecordRun stores the collection-level outcome of a validation run.
func (s *Store) RecordRun(ctx context.Context, pipelineName, collectionRoot string, summary *validation.Summary) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO validation_runs (
            run_id, pipeline_name, collection_root,
            total_images, total_groups,
            consistent, consistent_with_warning, partial, inconsistent,
            invalid_files, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, pipelineName, collectionRoot,
		summary.TotalImages, summary.TotalGroups,
		summary.StatusCounts.Consistent, summary.StatusCounts.ConsistentWithWarning,
		summary.StatusCounts.Partial, summary.StatusCounts.Inconsistent,
		summary.InvalidFilesCount, now)
	if err != nil {
		return fmt.Errorf("record run %s: %w", summary.RunID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero means
// no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, run_id, pipeline_name, collection_root,
        total_images, total_groups,
        consistent, consistent_with_warning, partial, inconsistent,
        invalid_files, created_at
        FROM validation_runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.PipelineName, &r.CollectionRoot,
			&r.TotalImages, &r.TotalGroups,
			&r.Consistent, &r.ConsistentWithWarning, &r.Partial, &r.Inconsistent,
			&r.InvalidFiles, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = parseTimestamp(created)
		result = append(result, r)
	}
	return result, rows.Err()
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
