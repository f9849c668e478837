package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/keeperhq/keeper/internal/notes"
	"github.com/mark3labs/mcp-go/mcp"
)

// WriteNoteTool handles the notebook_write MCP tool. It runs the full
// write pipeline: task-routing guard, classification, similarity-based
// dedup/merge, then the backend write.
type WriteNoteTool struct {
	notebook notes.Store
	policy   notes.Policy
}

// NewWriteNoteTool creates a WriteNoteTool over the configured backend.
func NewWriteNoteTool(nb notes.Store, pol notes.Policy) *WriteNoteTool {
	return &WriteNoteTool{notebook: nb, policy: pol}
}

// Definition returns the MCP tool definition for notebook_write.
func (t *WriteNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("notebook_write",
		mcp.WithDescription(
			"Write a free-form note about the user to the notebook. Notes capture preferences, "+
				"schedules, and observations, NOT tasks (task bookkeeping is rejected and belongs "+
				"in task_db_query). Near-duplicates are declined; similar same-category notes are "+
				"merged into the existing entry.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The note text. A leading [Category] label is honored, e.g. \"[Diet] avoids dairy\""),
		),
		mcp.WithString("category",
			mcp.Description("Explicit category (overrides classification). Conventionally Preference, Schedule, or Observation"),
		),
		mcp.WithString("timestamp",
			mcp.Description("Optional ISO-8601 timestamp for backdating (default: now)"),
		),
	)
}

// Handle processes the notebook_write tool call. Declined writes (task
// content, near-duplicates) are explanations, not errors.
func (t *WriteNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	category := req.GetString("category", "")
	timestamp := req.GetString("timestamp", "")

	outcome, err := notes.Add(t.notebook, text, category, timestamp, t.policy)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error adding note: %v", err)), nil
	}

	return mcp.NewToolResultText(outcome.Message), nil
}

// ReadNotesTool handles the notebook_read MCP tool.
type ReadNotesTool struct {
	notebook notes.Store
}

// NewReadNotesTool creates a ReadNotesTool over the configured backend.
func NewReadNotesTool(nb notes.Store) *ReadNotesTool {
	return &ReadNotesTool{notebook: nb}
}

// Definition returns the MCP tool definition for notebook_read.
func (t *ReadNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("notebook_read",
		mcp.WithDescription(
			"Read notes from the notebook, optionally filtered. Results are grouped by "+
				"category, most recent first within and across groups.",
		),
		mcp.WithString("category",
			mcp.Description("Only notes in this category"),
		),
		mcp.WithString("contains",
			mcp.Description("Only notes whose content contains this substring (case-insensitive)"),
		),
		mcp.WithNumber("days_ago",
			mcp.Description("Only notes from the last N days"),
		),
	)
}

// Handle processes the notebook_read tool call.
func (t *ReadNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := notes.Filter{
		Category: req.GetString("category", ""),
		Contains: req.GetString("contains", ""),
		DaysAgo:  intArg(req, "days_ago", 0),
	}

	list, err := t.notebook.List()
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error reading notes: %v", err)), nil
	}

	matched := filter.Apply(list)
	if len(matched) == 0 {
		return mcp.NewToolResultText("No notes found matching the filter criteria."), nil
	}

	var b strings.Builder
	b.WriteString("Notes")
	if filter.Category != "" {
		fmt.Fprintf(&b, " in category '%s'", filter.Category)
	}
	if filter.Contains != "" {
		fmt.Fprintf(&b, " containing '%s'", filter.Contains)
	}
	if filter.DaysAgo > 0 {
		fmt.Fprintf(&b, " from the last %d days", filter.DaysAgo)
	}
	b.WriteString(":\n\n")
	b.WriteString(notes.FormatByCategory(matched))

	return mcp.NewToolResultText(b.String()), nil
}
