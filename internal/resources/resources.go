// Package resources implements Keeper's MCP resources: the startup
// digests the orchestrator injects verbatim into the agent's context.
//
// Resources use URI-based addressing (keeper://...) following MCP
// conventions.
package resources

import (
	"context"
	"fmt"

	"github.com/keeperhq/keeper/internal/notes"
	"github.com/keeperhq/keeper/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler serves the digest resources. Tasks always come from the
// relational store; notes come from whichever backend is configured.
type Handler struct {
	store    *store.Store
	notebook notes.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(s *store.Store, nb notes.Store) *Handler {
	return &Handler{store: s, notebook: nb}
}

// PendingTasksResource returns the resource definition for the
// incomplete-task digest.
func (h *Handler) PendingTasksResource() mcp.Resource {
	return mcp.NewResource(
		"keeper://tasks/pending",
		"Pending Tasks",
		mcp.WithResourceDescription("All incomplete tasks, newest first: id | description | added | due | tags | recurrence"),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandlePendingTasks renders the pending-task digest.
func (h *Handler) HandlePendingTasks(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	digest, err := h.store.TaskDigest()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return textResource(req.Params.URI, digest), nil
}

// NotesDigestResource returns the resource definition for the note
// digest.
func (h *Handler) NotesDigestResource() mcp.Resource {
	return mcp.NewResource(
		"keeper://notes/digest",
		"Notebook Digest",
		mcp.WithResourceDescription("All notes grouped by category, most recent first"),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleNotesDigest renders the note digest.
func (h *Handler) HandleNotesDigest(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := h.notebook.List()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	digest := notes.FormatByCategory(notes.Filter{}.Apply(list))
	return textResource(req.Params.URI, digest), nil
}

func textResource(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}
}

func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
