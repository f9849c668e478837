// Package tools implements Keeper's MCP tool handlers.
//
// Expected failures (malformed SQL, duplicate notes, task-like note
// text) are returned as descriptive strings, never as Go errors: the
// conversational layer reads them as content and explains to the user.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keeperhq/keeper/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// QueryTool handles the task_db_query MCP tool: the agent's raw SQL
// access to the task database.
type QueryTool struct {
	store *store.Store
}

// NewQueryTool creates a QueryTool backed by the given store.
func NewQueryTool(s *store.Store) *QueryTool {
	return &QueryTool{store: s}
}

// Definition returns the MCP tool definition for task_db_query.
func (t *QueryTool) Definition() mcp.Tool {
	return mcp.NewTool("task_db_query",
		mcp.WithDescription(
			"Run a SQL query against the task database. The tasks table has columns "+
				"id, description, time_added, time_complete, due, tags, recurrence, points. "+
				"A task is pending while time_complete IS NULL. To complete a RECURRING task, "+
				"first UPDATE time_complete on the existing row, then INSERT a new row with the "+
				"same description and tags and a freshly computed due date; never edit the due "+
				"date in place. Results come back one row per line; an empty result is an empty string.",
		),
		mcp.WithString("sql",
			mcp.Required(),
			mcp.Description("The SQL statement to execute"),
		),
		mcp.WithString("params",
			mcp.Description(`Optional JSON array of positional parameters, e.g. ["bills", 1]`),
		),
	)
}

// Handle processes the task_db_query tool call. SQL errors never
// propagate as tool errors; they come back as an error-describing
// string so the agent can correct itself.
func (t *QueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sqlText := req.GetString("sql", "")
	if sqlText == "" {
		return mcp.NewToolResultError("'sql' is required"), nil
	}

	var args []any
	if raw := req.GetString("params", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("Error: 'params' must be a JSON array: %v", err)), nil
		}
	}

	rows, err := t.store.Execute(sqlText, args...)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error executing query: %v", err)), nil
	}

	return mcp.NewToolResultText(store.FormatRows(rows)), nil
}
