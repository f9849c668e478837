package notes_test

import (
	"strings"
	"testing"
	"time"

	"github.com/keeperhq/keeper/internal/notes"
)

func sampleNotes() []notes.Note {
	return []notes.Note{
		{ID: 1, Category: "Preference", Content: "likes strong coffee", Timestamp: "2025-01-01T09:00:00Z"},
		{ID: 2, Category: "Schedule", Content: "gym every Tuesday", Timestamp: "2025-01-02T09:00:00Z"},
		{ID: 3, Category: "Preference", Content: "prefers window seats", Timestamp: "2025-01-03T09:00:00Z"},
	}
}

// ─── Filter ──────────────────────────────────────────────────────────────────

func TestFilter_Empty_ReturnsAllNewestFirst(t *testing.T) {
	got := notes.Filter{}.Apply(sampleNotes())
	if len(got) != 3 {
		t.Fatalf("got %d notes, want 3", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Errorf("order = %d,%d,%d, want newest first (3,2,1)", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestFilter_Category(t *testing.T) {
	got := notes.Filter{Category: "Preference"}.Apply(sampleNotes())
	if len(got) != 2 {
		t.Fatalf("got %d notes, want 2", len(got))
	}
	for _, n := range got {
		if n.Category != "Preference" {
			t.Errorf("unexpected category %q", n.Category)
		}
	}
}

func TestFilter_ContainsIsCaseInsensitive(t *testing.T) {
	got := notes.Filter{Contains: "COFFEE"}.Apply(sampleNotes())
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %v, want just the coffee note", got)
	}
}

func TestFilter_DaysAgo(t *testing.T) {
	now := time.Now().UTC()
	list := []notes.Note{
		{ID: 1, Category: "Observation", Content: "old", Timestamp: now.AddDate(0, 0, -30).Format(time.RFC3339)},
		{ID: 2, Category: "Observation", Content: "recent", Timestamp: now.AddDate(0, 0, -2).Format(time.RFC3339)},
	}

	got := notes.Filter{DaysAgo: 7}.Apply(list)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("got %v, want just the recent note", got)
	}
}

func TestFilter_DaysAgoSkipsUnparseableTimestamps(t *testing.T) {
	list := []notes.Note{
		{ID: 1, Category: "Observation", Content: "undated", Timestamp: "last week sometime"},
	}
	if got := (notes.Filter{DaysAgo: 7}).Apply(list); len(got) != 0 {
		t.Errorf("got %d notes, want 0: an unparseable timestamp cannot satisfy a recency filter", len(got))
	}
}

func TestFilter_OrdersByInstantAcrossOffsets(t *testing.T) {
	// 12:00+02:00 is 10:00Z; the 11:00Z note is the more recent one even
	// though its timestamp string compares lower.
	list := []notes.Note{
		{ID: 1, Category: "Observation", Content: "offset stamp", Timestamp: "2025-01-01T12:00:00+02:00"},
		{ID: 2, Category: "Observation", Content: "utc stamp", Timestamp: "2025-01-01T11:00:00Z"},
	}

	got := notes.Filter{}.Apply(list)
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("order = %d,%d, want 2,1 (compare instants, not strings)", got[0].ID, got[1].ID)
	}
}

func TestFilter_Combined(t *testing.T) {
	got := notes.Filter{Category: "Preference", Contains: "window"}.Apply(sampleNotes())
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("got %v, want just the window-seat note", got)
	}
}

func TestFilter_NoMatch(t *testing.T) {
	if got := (notes.Filter{Category: "Diet"}).Apply(sampleNotes()); len(got) != 0 {
		t.Errorf("got %d notes, want 0", len(got))
	}
}

// ─── FormatByCategory ────────────────────────────────────────────────────────

func TestFormatByCategory_Empty(t *testing.T) {
	if got := notes.FormatByCategory(nil); got != "" {
		t.Errorf("empty input formats as %q, want empty string", got)
	}
}

func TestFormatByCategory_GroupsAndOrders(t *testing.T) {
	got := notes.FormatByCategory(notes.Filter{}.Apply(sampleNotes()))

	want := "### Preference\n" +
		"- [2025-01-03] prefers window seats\n" +
		"- [2025-01-01] likes strong coffee\n" +
		"\n" +
		"### Schedule\n" +
		"- [2025-01-02] gym every Tuesday\n" +
		"\n"
	if got != want {
		t.Errorf("formatted output:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatByCategory_GroupOrderFollowsMostRecent(t *testing.T) {
	// Schedule has the newest note, so its group comes first.
	list := []notes.Note{
		{ID: 1, Category: "Preference", Content: "likes coffee", Timestamp: "2025-01-01T09:00:00Z"},
		{ID: 2, Category: "Schedule", Content: "gym every Tuesday", Timestamp: "2025-02-01T09:00:00Z"},
	}
	got := notes.FormatByCategory(notes.Filter{}.Apply(list))
	if !strings.HasPrefix(got, "### Schedule\n") {
		t.Errorf("output starts with %q, want the Schedule group first", strings.SplitN(got, "\n", 2)[0])
	}
}
