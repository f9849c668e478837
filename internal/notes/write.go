package notes

import "fmt"

// Status classifies the outcome of a write attempt. Declined writes are
// results, not errors; only backend failures surface as Go errors.
type Status int

const (
	// StatusInserted means the note was stored as a new entry.
	StatusInserted Status = iota
	// StatusMerged means the note was folded into a similar existing note.
	StatusMerged
	// StatusRejectedDuplicate means a near-duplicate already exists and
	// nothing was written.
	StatusRejectedDuplicate
	// StatusRejectedTaskContent means the text belongs in the task
	// database, not the notebook, and nothing was written.
	StatusRejectedTaskContent
)

// Outcome describes what a write attempt did, with a message suitable for
// returning verbatim to the conversational layer.
type Outcome struct {
	Status  Status
	Message string
	Note    Note
}

// Written reports whether the attempt changed the store.
func (o Outcome) Written() bool {
	return o.Status == StatusInserted || o.Status == StatusMerged
}

// Add runs the full write pipeline against a backend: task-routing guard,
// classification, similarity proposal, then the applied decision.
//
// An explicit non-empty category overrides classification (the cleaned
// content is then the trimmed raw text); an explicit timestamp backdates
// the note. The caller has already checked that raw is non-empty.
func Add(st Store, raw, category, timestamp string, pol Policy) (Outcome, error) {
	if IsTaskRelated(raw) {
		return Outcome{
			Status:  StatusRejectedTaskContent,
			Message: "Note appears to be task-related and should be stored in the task database instead.",
		}, nil
	}

	derived, content := Classify(raw)
	if category == "" {
		category = derived
	}
	candidate := New(category, content, timestamp)

	existing, err := st.List()
	if err != nil {
		return Outcome{}, fmt.Errorf("listing notes: %w", err)
	}

	switch p := Propose(existing, candidate, pol); p.Action {
	case ActionReject:
		return Outcome{
			Status:  StatusRejectedDuplicate,
			Message: "Note is nearly identical to an existing note and was not added.",
			Note:    existing[p.Target],
		}, nil

	case ActionMerge:
		target := existing[p.Target]
		merged := MergeContent(target.Content, candidate.Content)
		if err := st.UpdateContent(target.ID, merged); err != nil {
			return Outcome{}, fmt.Errorf("merging note %d: %w", target.ID, err)
		}
		target.Content = merged
		return Outcome{
			Status:  StatusMerged,
			Message: "Note was merged with a similar existing note.",
			Note:    target,
		}, nil

	default:
		id, err := st.Insert(candidate)
		if err != nil {
			return Outcome{}, fmt.Errorf("inserting note: %w", err)
		}
		candidate.ID = id
		return Outcome{
			Status:  StatusInserted,
			Message: fmt.Sprintf("Note added to category: %s", candidate.Category),
			Note:    candidate,
		}, nil
	}
}
