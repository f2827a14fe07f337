// Package rulestore persists user-defined correction rules in SQLite so the
// same rule set survives across sessions and hosts.
package rulestore

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rdeprey/slate-grammar-demo/internal/rules"
)

// Rule is a stored user rule with its persistence identity.
type Rule struct {
	ID        string
	CreatedAt time.Time
	rules.Definition
}

// Store keeps user rules in a SQLite database.
type Store struct {
	db      *sql.DB
	entropy *rand.Rand
}

// Open opens or creates the rule database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("rulestore: create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("rulestore: open db: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("rulestore: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_rules (
		id          TEXT PRIMARY KEY,
		pattern     TEXT NOT NULL,
		message     TEXT NOT NULL,
		replacement TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_user_rules_created ON user_rules(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Add stores a rule definition and returns it with its assigned id. The
// pattern is stored as written; compilation problems surface later as skipped
// rules, never as persistence failures.
func (s *Store) Add(ctx context.Context, def rules.Definition) (*Rule, error) {
	r := &Rule{
		ID:         s.newID(),
		CreatedAt:  time.Now().UTC(),
		Definition: def,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_rules (id, pattern, message, replacement, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, def.Pattern, def.Message, def.Replacement, r.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("rulestore: add rule: %w", err)
	}
	return r, nil
}

// List returns all stored rules in insertion order.
func (s *Store) List(ctx context.Context) ([]Rule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pattern, message, replacement, created_at
		 FROM user_rules ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("rulestore: list rules: %w", err)
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var r Rule
		var created string
		if err := rows.Scan(&r.ID, &r.Pattern, &r.Message, &r.Replacement, &created); err != nil {
			return nil, fmt.Errorf("rulestore: scan rule: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, created); perr == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Definitions returns the stored rules as bare definitions, ready for the
// engine's rule compiler.
func (s *Store) Definitions(ctx context.Context) ([]rules.Definition, error) {
	stored, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	defs := make([]rules.Definition, len(stored))
	for i, r := range stored {
		defs[i] = r.Definition
	}
	return defs, nil
}

// Remove deletes a rule by id. Removing an unknown id is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("rulestore: remove rule %s: %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
