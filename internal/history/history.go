// Package history keeps a local SQLite log of extraction runs so a subject's
// latest metrics can be looked up without the original export.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/output"
	"github.com/KaramelBytes/bodycomp-cli/internal/store"
)

// ErrNotFound is returned when no run matches.
var ErrNotFound = errors.New("no matching run")

// Run is one saved extraction.
type Run struct {
	ID        string
	Source    string
	Subject   string
	Name      string
	TestTime  string
	CreatedAt time.Time
	// Metrics is the nested summary: category → key → value.
	Metrics map[string]map[string]any
}

// NewRun captures a record for saving. The subject is the record's id,
// falling back to its name.
func NewRun(s *metrics.Schema, rec *metrics.Record, source string) Run {
	subject := rec.Get(metrics.ID).String()
	name := rec.Get(metrics.Name).String()
	if subject == "" {
		subject = name
	}
	return Run{
		ID:        uuid.NewString(),
		Source:    source,
		Subject:   subject,
		Name:      name,
		TestTime:  rec.Get(metrics.TestTime).String(),
		CreatedAt: time.Now(),
		Metrics:   output.Nest(s, rec),
	}
}

// Store rebuilds a lookup store from the saved metrics.
func (r Run) Store(s *metrics.Schema) *store.Store {
	m := make(map[string]any, len(r.Metrics))
	for cat, group := range r.Metrics {
		m[cat] = group
	}
	return store.FromMap(s, m)
}

// DB is a SQLite-backed run log.
type DB struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the run log at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	h := &DB{db: db}
	if err := h.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return h, nil
}

func (h *DB) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		subject TEXT NOT NULL,
		name TEXT NOT NULL,
		test_time TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		metrics BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_subject ON runs(subject);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Save appends a run.
func (h *DB) Save(ctx context.Context, r Run) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	payload, err := json.Marshal(r.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err = h.db.ExecContext(ctx,
		"INSERT INTO runs (id, source, subject, name, test_time, created_at, metrics) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.Source, r.Subject, r.Name, r.TestTime, r.CreatedAt.UnixNano(), payload,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

const selectRuns = "SELECT id, source, subject, name, test_time, created_at, metrics FROM runs"

// Latest returns the most recently saved run for subject, matched against
// the subject id or the name.
func (h *DB) Latest(ctx context.Context, subject string) (Run, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows, err := h.db.QueryContext(ctx,
		selectRuns+" WHERE subject = ? OR name = ? ORDER BY seq DESC LIMIT 1",
		subject, subject,
	)
	if err != nil {
		return Run{}, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("subject %q: %w", subject, ErrNotFound)
	}
	return runs[0], nil
}

// List returns up to limit runs, newest first. A limit of zero or less lists
// every run.
func (h *DB) List(ctx context.Context, limit int) ([]Run, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.QueryContext(ctx, selectRuns+" ORDER BY seq DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var created int64
		var payload []byte
		if err := rows.Scan(&r.ID, &r.Source, &r.Subject, &r.Name, &r.TestTime, &created, &payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, created)
		if err := json.Unmarshal(payload, &r.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Close closes the database connection.
func (h *DB) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.Close()
}
