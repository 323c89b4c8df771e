package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/noticegen/internal/model"
)

// dbFileName is the SQLite database file name inside the data directory.
const dbFileName = "noticegen.db"

// ErrRunNotFound is returned when a requested run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// AuditDB provides SQLite-based storage for audit run history.
// It manages connection pooling and provides methods for saving and
// retrieving runs.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite DSN: mode=rw prevents creating new files,
	// mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; keep the pool to a single
	// connection to avoid lock contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Runs store one row per successful noticegen run.
	-- Entries are stored as a JSON blob because the compare command
	-- always loads a run in full; there is no per-dependency querying.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_dir TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		entry_count INTEGER NOT NULL,
		entries_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project_dir);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// Run is one stored audit run.
type Run struct {
	// ID is the run's database identifier.
	ID int64 `json:"id"`

	// ProjectDir is the project directory the run audited.
	ProjectDir string `json:"project_dir"`

	// CreatedAt is when the run was stored.
	CreatedAt time.Time `json:"created_at"`

	// Entries holds the run's validated dependency records.
	Entries []model.DependencyRecord `json:"entries"`
}

// RunSummary is a Run without its entries, for history listings.
type RunSummary struct {
	// ID is the run's database identifier.
	ID int64 `json:"id"`

	// ProjectDir is the project directory the run audited.
	ProjectDir string `json:"project_dir"`

	// CreatedAt is when the run was stored.
	CreatedAt time.Time `json:"created_at"`

	// EntryCount is the number of validated dependencies in the run.
	EntryCount int `json:"entry_count"`
}

// SaveRun stores a validated run and returns its ID.
func (adb *AuditDB) SaveRun(ctx context.Context, projectDir string, rpt *model.NoticeReport) (int64, error) {
	entries, err := json.Marshal(rpt.Entries)
	if err != nil {
		return 0, fmt.Errorf("failed to encode run entries: %w", err)
	}

	result, err := adb.db.ExecContext(ctx,
		`INSERT INTO runs (project_dir, created_at, entry_count, entries_json) VALUES (?, ?, ?, ?)`,
		projectDir, rpt.GeneratedAt.UTC(), len(rpt.Entries), string(entries),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// GetRun retrieves one run by ID, including its entries.
func (adb *AuditDB) GetRun(ctx context.Context, id int64) (*Run, error) {
	row := adb.db.QueryRowContext(ctx,
		`SELECT id, project_dir, created_at, entries_json FROM runs WHERE id = ?`, id)

	var run Run
	var entriesJSON string
	if err := row.Scan(&run.ID, &run.ProjectDir, &run.CreatedAt, &entriesJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}

	if err := json.Unmarshal([]byte(entriesJSON), &run.Entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries for run %d: %w", id, err)
	}
	return &run, nil
}

// LatestRuns returns up to limit runs for the project, newest first,
// including entries.
func (adb *AuditDB) LatestRuns(ctx context.Context, projectDir string, limit int) ([]Run, error) {
	rows, err := adb.db.QueryContext(ctx,
		`SELECT id, project_dir, created_at, entries_json FROM runs
		 WHERE project_dir = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		projectDir, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var entriesJSON string
		if err := rows.Scan(&run.ID, &run.ProjectDir, &run.CreatedAt, &entriesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(entriesJSON), &run.Entries); err != nil {
			return nil, fmt.Errorf("failed to decode entries for run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListRuns returns run summaries for the project, newest first.
func (adb *AuditDB) ListRuns(ctx context.Context, projectDir string) ([]RunSummary, error) {
	rows, err := adb.db.QueryContext(ctx,
		`SELECT id, project_dir, created_at, entry_count FROM runs
		 WHERE project_dir = ? ORDER BY created_at DESC, id DESC`,
		projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ID, &s.ProjectDir, &s.CreatedAt, &s.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
