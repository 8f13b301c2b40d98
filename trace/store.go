package trace

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for mutation traces.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Entry is one recorded mutation. Payload and the snapshots are canonical
// JSON text.
type Entry struct {
	ID      string
	Seq     int64
	Action  string
	Payload string
	Old     string
	New     string
	At      time.Time
}

// Open creates or opens a trace database at the given path (":memory:" for
// tests). Applies required pragmas and the schema; idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to trace database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY and, for :memory: databases, keeps every query on the
	// same in-memory instance.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Write inserts one mutation entry. ON CONFLICT DO NOTHING makes the write
// idempotent: a duplicate id or a duplicate seq is silently ignored, so
// retrying a write is always safe.
func (s *Store) Write(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mutations
		(id, seq, action, payload, old_snapshot, new_snapshot, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		e.ID,
		e.Seq,
		e.Action,
		e.Payload,
		e.Old,
		e.New,
		e.At.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("write mutation: %w", err)
	}
	return nil
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Action string
	Limit  int
}

// List returns entries ordered by seq ascending.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := `
		SELECT id, seq, action, payload, old_snapshot, new_snapshot, at
		FROM mutations
	`
	args := []any{}
	if f.Action != "" {
		query += " WHERE action = ?"
		args = append(args, f.Action)
	}
	query += " ORDER BY seq ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mutations: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var atNano int64
		if err := rows.Scan(&e.ID, &e.Seq, &e.Action, &e.Payload, &e.Old, &e.New, &atNano); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		e.At = time.Unix(0, atNano)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list mutations: %w", err)
	}
	return out, nil
}

// MaxSeq returns the highest recorded sequence number, or 0 for an empty
// trace. Use with NewClockAt to resume recording into an existing trace.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM mutations`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

// LastSnapshot returns the new-state snapshot of the latest mutation as
// canonical JSON text, or "" for an empty trace. Replaying a trace is
// exactly this: the final snapshot is the state.
func (s *Store) LastSnapshot(ctx context.Context) (string, error) {
	var snap string
	err := s.db.QueryRowContext(ctx, `
		SELECT new_snapshot FROM mutations ORDER BY seq DESC LIMIT 1
	`).Scan(&snap)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last snapshot: %w", err)
	}
	return snap, nil
}
