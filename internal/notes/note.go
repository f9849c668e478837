// Package notes implements the note engine for Keeper.
//
// It covers classification of raw note text into categories, Jaccard
// similarity between notes, the deduplication/merge decision policy, and
// the pluggable storage backends (SQLite table or markdown notebook file)
// behind the Store interface.
package notes

import "time"

// Note is a single categorized note. Timestamps are ISO-8601 strings so
// they round-trip unchanged through both backends.
type Note struct {
	ID        int64  `json:"-"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// New creates a Note, stamping the current time when timestamp is empty.
func New(category, content, timestamp string) Note {
	if timestamp == "" {
		timestamp = Now()
	}
	return Note{Category: category, Content: content, Timestamp: timestamp}
}

// Store is the capability interface a note backend must provide.
// List returns notes in insertion order: the merge engine's decisions
// depend on a deterministic iteration order.
type Store interface {
	List() ([]Note, error)
	Insert(Note) (int64, error)
	UpdateContent(id int64, content string) error
}

// Now returns the current time as an ISO-8601 timestamp.
func Now() string {
	return time.Now().Format(time.RFC3339)
}
