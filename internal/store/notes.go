package store

import (
	"fmt"

	"github.com/keeperhq/keeper/internal/notes"
)

// noteRow is one row of the notes table.
type noteRow struct {
	ID        int64  `db:"id"`
	Content   string `db:"content"`
	Category  string `db:"category"`
	Timestamp string `db:"timestamp"`
}

// Notebook returns the notes.Store view backed by the notes table. It is
// the relational counterpart of the markdown notebook; the two are
// alternative backends behind the same interface, never used together.
func (s *Store) Notebook() notes.Store {
	return sqlNotebook{s: s}
}

type sqlNotebook struct {
	s *Store
}

// List returns all notes in insertion order.
func (n sqlNotebook) List() ([]notes.Note, error) {
	var rows []noteRow
	err := n.s.query(&rows,
		`SELECT id, content, category, timestamp FROM notes ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	list := make([]notes.Note, len(rows))
	for i, r := range rows {
		list[i] = notes.Note{ID: r.ID, Content: r.Content, Category: r.Category, Timestamp: r.Timestamp}
	}
	return list, nil
}

func (n sqlNotebook) Insert(note notes.Note) (int64, error) {
	id, _, err := n.s.exec(
		`INSERT INTO notes (content, category, timestamp) VALUES (?, ?, ?)`,
		note.Content, note.Category, note.Timestamp,
	)
	return id, err
}

// UpdateContent rewrites a note's content (the merge path). Category and
// timestamp are untouched: a merged note keeps its original timestamp.
func (n sqlNotebook) UpdateContent(id int64, content string) error {
	_, affected, err := n.s.exec(
		`UPDATE notes SET content = ? WHERE id = ?`,
		content, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("note %d not found", id)
	}
	return nil
}
