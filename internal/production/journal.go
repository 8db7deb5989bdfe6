package production

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/comalice/navsyncx/internal/core"
)

// SQLiteJournal is an EventPublisher writing an append-only navigation
// journal to SQLite. Rows are keyed by monotonic ULID so the journal sorts
// in event order without a separate sequence column.
type SQLiteJournal struct {
	db      *sql.DB
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// JournalEntry is one persisted navigation record.
type JournalEntry struct {
	ID        string
	ProgramID string
	Kind      string
	URL       string
	Entry     string
	Key       string
	Timestamp time.Time
}

// NewSQLiteJournal opens or creates the journal database at the given path.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	j := &SQLiteJournal{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS navigations (
			id         TEXT PRIMARY KEY,
			program_id TEXT NOT NULL,
			kind       TEXT NOT NULL,
			url        TEXT NOT NULL,
			entry      TEXT NOT NULL DEFAULT '',
			nav_key    TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_navigations_program ON navigations(program_id, id);
	`)
	return err
}

func (j *SQLiteJournal) newID(t time.Time) string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), j.entropy).String()
}

// Publish appends one navigation record.
func (j *SQLiteJournal) Publish(ctx context.Context, md core.NavMetadata) error {
	ts := md.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO navigations (id, program_id, kind, url, entry, nav_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.newID(ts), md.ProgramID, string(md.Kind), md.URL, md.Entry, md.Key,
		ts.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert navigation: %w", err)
	}
	return nil
}

// Entries returns a program's journal in event order.
func (j *SQLiteJournal) Entries(ctx context.Context, programID string) ([]JournalEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, program_id, kind, url, entry, nav_key, created_at
		FROM navigations WHERE program_id = ? ORDER BY id`, programID)
	if err != nil {
		return nil, fmt.Errorf("query navigations: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var created string
		if err := rows.Scan(&e.ID, &e.ProgramID, &e.Kind, &e.URL, &e.Entry, &e.Key, &created); err != nil {
			return nil, fmt.Errorf("scan navigation: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, created); perr == nil {
			e.Timestamp = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
