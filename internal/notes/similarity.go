package notes

import (
	"regexp"
	"strings"
)

// wordRe extracts word tokens for similarity comparison.
var wordRe = regexp.MustCompile(`\b\w+\b`)

// Policy holds the similarity thresholds for the merge engine. Both have
// drifted historically, so they are configuration rather than constants.
type Policy struct {
	// RejectThreshold is the similarity above which a candidate is a
	// near-duplicate and nothing is written.
	RejectThreshold float64
	// MergeThreshold is the similarity above which a same-category
	// candidate is merged into the existing note.
	MergeThreshold float64
}

// DefaultPolicy returns the thresholds the system has always shipped with.
func DefaultPolicy() Policy {
	return Policy{RejectThreshold: 0.8, MergeThreshold: 0.5}
}

// Action is the merge engine's decision for a candidate note.
type Action int

const (
	// ActionInsert stores the candidate as a new note.
	ActionInsert Action = iota
	// ActionReject declines the write: the candidate is a near-duplicate.
	ActionReject
	// ActionMerge folds the candidate into an existing note.
	ActionMerge
)

// Proposal is the outcome of evaluating a candidate against the existing
// notes. Target indexes into the existing slice when Action is ActionMerge.
type Proposal struct {
	Action     Action
	Target     int
	Similarity float64
}

// Similarity computes the Jaccard similarity of the lowercase word-token
// sets of two content strings. An empty union yields 0.
func Similarity(a, b string) float64 {
	ta := tokens(a)
	tb := tokens(b)

	intersection := 0
	for w := range ta {
		if _, ok := tb[w]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Propose evaluates the candidate against every existing note in order;
// the first note to trip a threshold decides. Callers must pass notes in
// store iteration order so repeated evaluations reach the same decision.
func Propose(existing []Note, candidate Note, pol Policy) Proposal {
	for i, note := range existing {
		sim := Similarity(note.Content, candidate.Content)

		if sim > pol.RejectThreshold {
			return Proposal{Action: ActionReject, Target: i, Similarity: sim}
		}
		if sim > pol.MergeThreshold && note.Category == candidate.Category {
			return Proposal{Action: ActionMerge, Target: i, Similarity: sim}
		}
	}
	return Proposal{Action: ActionInsert}
}

// MergeContent appends the new content to the old with the standard
// separator. The merged note keeps the original timestamp.
func MergeContent(old, new string) string {
	return old + "\n\nAdditionally: " + new
}

func tokens(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		set[w] = struct{}{}
	}
	return set
}
