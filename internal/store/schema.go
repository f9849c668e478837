package store

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// The full current schema, used for fresh databases.
const createTables = `
CREATE TABLE IF NOT EXISTS tasks (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	description   TEXT NOT NULL,
	time_added    TEXT NOT NULL,
	time_complete TEXT,
	due           TEXT DEFAULT '',
	tags          TEXT DEFAULT '',
	recurrence    TEXT DEFAULT '',
	points        INT DEFAULT 1
);

CREATE TABLE IF NOT EXISTS notes (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	content   TEXT NOT NULL,
	category  TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
`

// taskMigrations adds the columns that postdate the original two-table
// schema, each with its documented default. Migrations are additive-only:
// columns are never removed or retyped, so old databases stay loadable.
var taskMigrations = []struct {
	column string
	ddl    string
}{
	{"due", `ALTER TABLE tasks ADD COLUMN due TEXT DEFAULT ''`},
	{"tags", `ALTER TABLE tasks ADD COLUMN tags TEXT DEFAULT ''`},
	{"recurrence", `ALTER TABLE tasks ADD COLUMN recurrence TEXT DEFAULT ''`},
	{"points", `ALTER TABLE tasks ADD COLUMN points INT DEFAULT 1`},
}

// expectedTaskTypes is the declared type each known tasks column must
// have. A pre-existing column with a conflicting type means the file is
// not one of ours: a fatal startup error, not something to migrate over.
var expectedTaskTypes = map[string]string{
	"description":   "TEXT",
	"time_added":    "TEXT",
	"time_complete": "TEXT",
	"due":           "TEXT",
	"tags":          "TEXT",
	"recurrence":    "TEXT",
	"points":        "INT",
}

// tableColumn mirrors one row of PRAGMA table_info output.
type tableColumn struct {
	CID       int     `db:"cid"`
	Name      string  `db:"name"`
	Type      string  `db:"type"`
	NotNull   int     `db:"notnull"`
	DfltValue *string `db:"dflt_value"`
	PK        int     `db:"pk"`
}

// ensureSchema creates the tasks and notes tables if absent and brings a
// pre-existing tasks table up to the current column set. Each missing
// column is added with its own auto-committed ALTER, so a crash mid-way
// leaves a valid partially migrated schema. Idempotent.
func ensureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(createTables); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	cols, err := taskColumns(db)
	if err != nil {
		return err
	}

	for name, declared := range cols {
		want, known := expectedTaskTypes[name]
		if known && !strings.EqualFold(declared, want) {
			return fmt.Errorf("tasks column %q has type %s, want %s", name, declared, want)
		}
	}

	for _, m := range taskMigrations {
		if _, ok := cols[m.column]; ok {
			continue
		}
		if _, err := db.Exec(m.ddl); err != nil {
			return fmt.Errorf("adding tasks column %q: %w", m.column, err)
		}
	}

	return nil
}

// taskColumns introspects the tasks table and returns column name →
// declared type.
func taskColumns(db *sqlx.DB) (map[string]string, error) {
	var info []tableColumn
	if err := db.Select(&info, `PRAGMA table_info(tasks)`); err != nil {
		return nil, fmt.Errorf("introspecting tasks table: %w", err)
	}

	cols := make(map[string]string, len(info))
	for _, c := range info {
		cols[c.Name] = c.Type
	}
	return cols, nil
}
