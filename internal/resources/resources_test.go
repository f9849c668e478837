package resources

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keeperhq/keeper/internal/notes"
	"github.com/keeperhq/keeper/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(store.Config{
		DBPath:       filepath.Join(dir, "tasks.db"),
		AuditLogPath: filepath.Join(dir, "audit.log"),
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewHandler(s, s.Notebook()), s
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func contentsText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents are %T, want TextResourceContents", contents[0])
	}
	return tc.Text
}

func TestPendingTasksResource_Definition(t *testing.T) {
	h, _ := newTestHandler(t)
	res := h.PendingTasksResource()
	if res.URI != "keeper://tasks/pending" {
		t.Errorf("uri = %q", res.URI)
	}
	if res.MIMEType != "text/plain" {
		t.Errorf("mime = %q", res.MIMEType)
	}
}

func TestHandlePendingTasks(t *testing.T) {
	h, s := newTestHandler(t)
	ctx := context.Background()

	contents, err := h.HandlePendingTasks(ctx, readReq("keeper://tasks/pending"))
	if err != nil {
		t.Fatalf("HandlePendingTasks: %v", err)
	}
	if got := contentsText(t, contents); got != "" {
		t.Errorf("empty store digest = %q, want empty string", got)
	}

	if _, err := s.InsertTask("Pay rent", "2025-01-05", "bills", "monthly", 1); err != nil {
		t.Fatal(err)
	}

	contents, err = h.HandlePendingTasks(ctx, readReq("keeper://tasks/pending"))
	if err != nil {
		t.Fatal(err)
	}
	got := contentsText(t, contents)
	if !strings.Contains(got, "Pay rent") || !strings.Contains(got, "2025-01-05") {
		t.Errorf("digest = %q", got)
	}
}

func TestHandleNotesDigest(t *testing.T) {
	h, s := newTestHandler(t)
	ctx := context.Background()

	if _, err := notes.Add(s.Notebook(), "[Diet] avoids dairy", "", "", notes.DefaultPolicy()); err != nil {
		t.Fatal(err)
	}

	contents, err := h.HandleNotesDigest(ctx, readReq("keeper://notes/digest"))
	if err != nil {
		t.Fatalf("HandleNotesDigest: %v", err)
	}
	got := contentsText(t, contents)
	if !strings.Contains(got, "### Diet") || !strings.Contains(got, "avoids dairy") {
		t.Errorf("digest = %q", got)
	}
}
