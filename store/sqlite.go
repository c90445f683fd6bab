package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/finsight-ai/finsight/core"
)

// SQLite is an append-only ContextStore backed by a SQLite database. Args and
// results are stored as JSON; entries are indexed by correlation id so a
// whole batch can be loaded for later analysis.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and if needed creates) the database at dbPath and ensures
// the schema exists.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection: SQLite serializes writers anyway and this avoids
	// SQLITE_BUSY under concurrent Save calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS context_entries (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		correlation_id TEXT NOT NULL,
		capability     TEXT NOT NULL,
		args           TEXT,
		result         TEXT,
		error          TEXT,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_context_entries_corr ON context_entries(correlation_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save appends an entry.
func (s *SQLite) Save(ctx context.Context, entry core.Entry) error {
	args, err := json.Marshal(entry.Args)
	if err != nil {
		return fmt.Errorf("encoding args: %w", err)
	}
	result, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO context_entries (correlation_id, capability, args, result, error) VALUES (?, ?, ?, ?, ?)`,
		entry.CorrelationID, entry.Capability, string(args), string(result), entry.Err,
	)
	if err != nil {
		return fmt.Errorf("inserting context entry: %w", err)
	}
	return nil
}

// ByCorrelation loads the entries saved under the given correlation id in
// insertion order.
func (s *SQLite) ByCorrelation(ctx context.Context, correlationID string) ([]core.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT capability, args, result, error, created_at FROM context_entries WHERE correlation_id = ? ORDER BY id`,
		correlationID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying context entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var (
			entry        core.Entry
			args, result string
		)
		if err := rows.Scan(&entry.Capability, &args, &result, &entry.Err, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning context entry: %w", err)
		}
		entry.CorrelationID = correlationID
		if args != "" {
			_ = json.Unmarshal([]byte(args), &entry.Args)
		}
		if result != "" && result != "null" {
			var decoded any
			if err := json.Unmarshal([]byte(result), &decoded); err == nil {
				entry.Result = decoded
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }
