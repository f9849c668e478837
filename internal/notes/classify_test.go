package notes_test

import (
	"testing"

	"github.com/keeperhq/keeper/internal/notes"
)

// ─── Classify ────────────────────────────────────────────────────────────────

func TestClassify_ExplicitLabel(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantCategory string
		wantContent  string
	}{
		{"simple label", "[Diet] avoids dairy", "Diet", "avoids dairy"},
		{"label is title-cased", "[grocery list] buy oat milk", "Grocery List", "buy oat milk"},
		{"upper label normalized", "[DIET] no gluten", "Diet", "no gluten"},
		{"surrounding whitespace", "  [Music] listens to jazz while working  ", "Music", "listens to jazz while working"},
		{"multiline content", "[Travel] window seat\nno red-eyes", "Travel", "window seat\nno red-eyes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, content := notes.Classify(tt.raw)
			if cat != tt.wantCategory {
				t.Errorf("category = %q, want %q", cat, tt.wantCategory)
			}
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func TestClassify_KeywordHeuristics(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"likes", "User likes strong coffee", "Preference"},
		{"prefers", "prefers aisle seats on long flights", "Preference"},
		{"dislikes", "dislikes early meetings", "Preference"},
		{"wants", "wants to learn Spanish", "Preference"},
		{"needs", "needs quiet to focus", "Preference"},
		{"every", "Team standup every Monday at 9", "Schedule"},
		{"weekly", "weekly grocery run on Saturdays", "Schedule"},
		{"daily", "runs daily before breakfast", "Schedule"},
		{"no keyword", "Mentioned the garden is doing well", "Observation"},
		{"preference wins over schedule", "likes to run every morning", "Preference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, content := notes.Classify(tt.raw)
			if cat != tt.want {
				t.Errorf("Classify(%q) category = %q, want %q", tt.raw, cat, tt.want)
			}
			// Heuristic classification must not alter the text.
			if content != tt.raw {
				t.Errorf("content = %q, want raw text back", content)
			}
		})
	}
}

func TestClassify_MalformedLabelFallsThrough(t *testing.T) {
	// Digits are outside the label grammar, so the bracket text stays in
	// the content and the heuristics decide.
	cat, content := notes.Classify("[2025 goals] wants to read more")
	if cat != "Preference" {
		t.Errorf("category = %q, want %q", cat, "Preference")
	}
	if content != "[2025 goals] wants to read more" {
		t.Errorf("content = %q, want the raw text preserved", content)
	}
}

// ─── IsTaskRelated ───────────────────────────────────────────────────────────

func TestIsTaskRelated(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Completed task: buy milk", true},
		{"Task completed: finish report", true},
		{"task 7 was completed yesterday", true},
		{"complete task 12", true},
		{"Finished task for the week", true},
		{"the big task is done", true},
		{"added a new task for groceries", true},
		{"created task: call dentist", true},
		{"marked the report complete", true},
		{"the due date is Friday", true},
		{"deadline moved to March", true},
		{"add to my todo list", true},
		{"my to-do for tomorrow", true},
		{"things to do this weekend", true},
		{"User likes strong coffee", false},
		{"Team standup every Monday", false},
		{"Mentioned the garden is doing well", false},
	}

	for _, tt := range tests {
		if got := notes.IsTaskRelated(tt.text); got != tt.want {
			t.Errorf("IsTaskRelated(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
