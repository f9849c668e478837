package notes_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keeperhq/keeper/internal/notes"
)

func newTestNotebook(t *testing.T) *notes.Notebook {
	t.Helper()
	return notes.NewNotebook(filepath.Join(t.TempDir(), "notebook.md"))
}

// ─── List / Insert / UpdateContent ───────────────────────────────────────────

func TestNotebook_MissingFileIsEmpty(t *testing.T) {
	nb := newTestNotebook(t)

	list, err := nb.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d notes from a missing file, want 0", len(list))
	}
}

func TestNotebook_InsertRoundTrip(t *testing.T) {
	nb := newTestNotebook(t)

	seed := []notes.Note{
		notes.New("Preference", "likes strong coffee", "2025-01-01T09:00:00Z"),
		notes.New("Schedule", "gym every Tuesday", "2025-01-02T09:00:00Z"),
		notes.New("Observation", "mentioned the garden is doing well", "2025-01-03T09:00:00Z"),
	}
	for i, n := range seed {
		id, err := nb.Insert(n)
		if err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
		if id != int64(i+1) {
			t.Errorf("Insert #%d id = %d, want %d", i, id, i+1)
		}
	}

	list, err := nb.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != len(seed) {
		t.Fatalf("got %d notes, want %d", len(list), len(seed))
	}
	for i, n := range list {
		if n.ID != int64(i+1) {
			t.Errorf("note %d: ID = %d, want %d", i, n.ID, i+1)
		}
		if n.Category != seed[i].Category || n.Content != seed[i].Content || n.Timestamp != seed[i].Timestamp {
			t.Errorf("note %d round-tripped as %+v, want %+v", i, n, seed[i])
		}
	}
}

func TestNotebook_UpdateContent(t *testing.T) {
	nb := newTestNotebook(t)

	if _, err := nb.Insert(notes.New("Preference", "likes coffee", "2025-01-01T09:00:00Z")); err != nil {
		t.Fatal(err)
	}
	if _, err := nb.Insert(notes.New("Schedule", "gym every Tuesday", "2025-01-02T09:00:00Z")); err != nil {
		t.Fatal(err)
	}

	merged := "likes coffee\n\nAdditionally: also drinks espresso"
	if err := nb.UpdateContent(1, merged); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	list, err := nb.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list[0].Content != merged {
		t.Errorf("content = %q, want the merged text", list[0].Content)
	}
	if list[0].Timestamp != "2025-01-01T09:00:00Z" {
		t.Errorf("timestamp = %q, want it untouched", list[0].Timestamp)
	}
	if list[1].Content != "gym every Tuesday" {
		t.Errorf("other note content = %q, want it untouched", list[1].Content)
	}
}

func TestNotebook_UpdateContentUnknownID(t *testing.T) {
	nb := newTestNotebook(t)
	if err := nb.UpdateContent(42, "whatever"); err == nil {
		t.Fatal("expected an error for an unknown note id")
	}
}

func TestNotebook_FileIsReadableMarkdown(t *testing.T) {
	nb := newTestNotebook(t)
	if _, err := nb.Insert(notes.New("Diet", "avoids dairy", "2025-01-01T09:00:00Z")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(nb.Path())
	if err != nil {
		t.Fatalf("reading notebook file: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# Notes\n",
		"<!-- NOTES_JSON: ",
		"## Diet\n",
		"avoids dairy\n",
		"*Added: 2025-01-01T09:00:00Z*",
		"---",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("notebook file missing %q:\n%s", want, text)
		}
	}

	if files, _ := filepath.Glob(nb.Path() + ".*.tmp"); len(files) != 0 {
		t.Errorf("temp files left behind: %v", files)
	}
}

// ─── Fallback parsing of hand-edited files ───────────────────────────────────

func TestNotebook_ParseSectionsWithoutPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.md")
	src := `# Notes

## Diet
Avoids dairy

*Added: 2025-01-02T10:00:00Z*

---

## Schedule
Gym every Tuesday

*Added: 2025-01-03T10:00:00Z*

---

Likes jazz music
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	nb := notes.NewNotebook(path)
	list, err := nb.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d notes, want 3: %+v", len(list), list)
	}

	if list[0].Category != "Diet" || list[0].Content != "Avoids dairy" || list[0].Timestamp != "2025-01-02T10:00:00Z" {
		t.Errorf("note 0 = %+v", list[0])
	}
	if list[1].Category != "Schedule" || list[1].Content != "Gym every Tuesday" {
		t.Errorf("note 1 = %+v", list[1])
	}
	// The headerless trailing section is classified from its content.
	if list[2].Category != "Preference" || list[2].Content != "Likes jazz music" {
		t.Errorf("note 2 = %+v", list[2])
	}
	if list[2].Timestamp == "" {
		t.Error("recovered note without an Added line must be stamped now")
	}
}

func TestNotebook_ParseSectionsRepeatedCategoryKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.md")
	src := `# Notes

## Diet
Avoids dairy

---

## Schedule
Gym every Tuesday

---

## Diet
No caffeine after noon
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := notes.NewNotebook(path).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d notes, want 3", len(list))
	}
	// Document order survives, even with a repeated category.
	wantContents := []string{"Avoids dairy", "Gym every Tuesday", "No caffeine after noon"}
	for i, want := range wantContents {
		if list[i].Content != want {
			t.Errorf("note %d content = %q, want %q", i, list[i].Content, want)
		}
	}
}

func TestNotebook_PayloadWinsOverSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.md")
	// The rendered sections disagree with the payload; the payload is
	// authoritative.
	src := `# Notes

<!-- NOTES_JSON: [{"category":"Diet","content":"avoids dairy","timestamp":"2025-01-01T09:00:00Z"}] -->

## Schedule
Stale rendered section
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := notes.NewNotebook(path).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Category != "Diet" {
		t.Fatalf("got %+v, want the payload note only", list)
	}
}

// ─── Write pipeline over the markdown backend ────────────────────────────────

func TestNotebook_AddPipeline(t *testing.T) {
	nb := newTestNotebook(t)

	out, err := notes.Add(nb, "User likes coffee in the morning", "", "", notes.DefaultPolicy())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if out.Status != notes.StatusInserted {
		t.Fatalf("status = %v, want StatusInserted", out.Status)
	}

	out, err = notes.Add(nb, "User likes coffee in the evening", "", "", notes.DefaultPolicy())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if out.Status != notes.StatusMerged {
		t.Fatalf("status = %v, want StatusMerged", out.Status)
	}

	list, err := nb.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d notes, want 1 after the merge", len(list))
	}
	if !strings.Contains(list[0].Content, "Additionally: ") {
		t.Errorf("merged content = %q", list[0].Content)
	}
}
