// Package store implements the relational persistence engine for Keeper:
// the SQLite-backed task and note tables, their additive schema
// migrations, and the audit trail that records every query before it
// runs.
package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Config holds store construction parameters. One database file and one
// audit log correspond to one logical bot instance.
type Config struct {
	DBPath       string
	AuditLogPath string
}

// Store owns the database handle and its audit sink. It is the single
// point of mutation for tasks and notes; construct it once and pass it
// by reference.
type Store struct {
	db          *sqlx.DB
	audit       *logrus.Logger
	auditCloser io.Closer
}

// Open opens (or creates) the database, applies pragmas, runs schema
// migrations, and opens the audit log. A malformed database stops
// startup here rather than limping along.
func Open(cfg Config) (*Store, error) {
	audit, closer, err := newAuditLogger(cfg.AuditLogPath)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", cfg.DBPath)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			closer.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		closer.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}

	return &Store{db: db, audit: audit, auditCloser: closer}, nil
}

// Close closes the database and the audit log.
func (s *Store) Close() error {
	err := s.db.Close()
	if cerr := s.auditCloser.Close(); err == nil {
		err = cerr
	}
	return err
}

// Execute runs one auto-committed statement and returns the result rows
// as strings. The query and its parameters are written to the audit
// trail BEFORE execution, so even a failing query leaves a record.
//
// Callers hold the policy, not the store: completing a recurring task,
// for example, is two Execute calls (set time_complete, then insert the
// follow-up row with a fresh due date).
func (s *Store) Execute(query string, args ...any) ([][]string, error) {
	s.logQuery(query, args)

	rows, err := s.db.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		line := make([]string, len(vals))
		for i, v := range vals {
			line[i] = formatValue(v)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// exec is the audited write path for the typed helpers.
func (s *Store) exec(query string, args ...any) (int64, int64, error) {
	s.logQuery(query, args)

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, 0, err
	}
	id, _ := res.LastInsertId()
	n, _ := res.RowsAffected()
	return id, n, nil
}

// query is the audited read path for the typed helpers.
func (s *Store) query(dest any, query string, args ...any) error {
	s.logQuery(query, args)
	return s.db.Select(dest, query, args...)
}

func (s *Store) logQuery(query string, args []any) {
	s.audit.Infof("executed query: %s | params: %v", strings.Join(strings.Fields(query), " "), args)
}

// FormatRows renders a result set for inclusion in conversational
// context: one line of delimited column values per row, newline-joined.
// An empty result set formats as an empty string; callers distinguish
// "no rows" from "error" by the error return of Execute.
func FormatRows(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " | ")
	}
	return strings.Join(lines, "\n")
}

// formatValue renders a driver value as text. NULL renders empty.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
