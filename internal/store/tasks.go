package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/keeperhq/keeper/internal/notes"
)

// Task is one row of the tasks table. Tasks are never physically deleted
// by these helpers; completion sets time_complete.
type Task struct {
	ID           int64   `db:"id"`
	Description  string  `db:"description"`
	TimeAdded    string  `db:"time_added"`
	TimeComplete *string `db:"time_complete"`
	Due          string  `db:"due"`
	Tags         string  `db:"tags"`
	Recurrence   string  `db:"recurrence"`
	Points       int     `db:"points"`
}

// InsertTask creates a task. time_added is stamped now and is immutable
// thereafter; points below 1 are coerced to the default.
func (s *Store) InsertTask(description, due, tags, recurrence string, points int) (int64, error) {
	if strings.TrimSpace(description) == "" {
		return 0, fmt.Errorf("task description cannot be empty")
	}
	if points < 1 {
		points = 1
	}
	id, _, err := s.exec(
		`INSERT INTO tasks (description, time_added, due, tags, recurrence, points)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		description, notes.Now(), due, strings.ToLower(tags), recurrence, points,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting task: %w", err)
	}
	return id, nil
}

// CompleteTask stamps time_complete on a pending task. Completing a
// recurring task is a caller contract: call this, then InsertTask with
// the same description and tags and a freshly computed due date.
func (s *Store) CompleteTask(id int64) error {
	_, n, err := s.exec(
		`UPDATE tasks SET time_complete = ? WHERE id = ? AND time_complete IS NULL`,
		notes.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("completing task %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("task %d not found or already complete", id)
	}
	return nil
}

// PendingTasks returns all incomplete tasks, newest-first.
func (s *Store) PendingTasks() ([]Task, error) {
	var tasks []Task
	err := s.query(&tasks,
		`SELECT id, description, time_added, time_complete, due, tags, recurrence, points
		 FROM tasks
		 WHERE time_complete IS NULL
		 ORDER BY time_added DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending tasks: %w", err)
	}
	return tasks, nil
}

// TaskDigest formats all incomplete tasks for verbatim injection into
// the agent's context: one delimited line per task, newest-first. No
// pending tasks formats as an empty string.
func (s *Store) TaskDigest() (string, error) {
	tasks, err := s.PendingTasks()
	if err != nil {
		return "", err
	}

	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = strings.Join([]string{
			fmt.Sprintf("%d", t.ID),
			t.Description,
			shortDate(t.TimeAdded),
			t.Due,
			t.Tags,
			t.Recurrence,
		}, " | ")
	}
	return strings.Join(lines, "\n"), nil
}

func shortDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02")
	}
	return ts
}
