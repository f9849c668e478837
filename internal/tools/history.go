package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/keeperhq/keeper/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryTools serves the conversation history cache to the chat
// adapter. Messages are opaque JSON blobs; the server never inspects
// them. When the adapter handles a single channel it can omit
// conversation_id and get a stable per-process default.
type HistoryTools struct {
	cache     *history.Cache
	defaultID string
}

// NewHistoryTools creates the history tool set over the given cache.
func NewHistoryTools(c *history.Cache) *HistoryTools {
	return &HistoryTools{cache: c, defaultID: uuid.NewString()}
}

func (t *HistoryTools) conversationID(req mcp.CallToolRequest) string {
	if id := req.GetString("conversation_id", ""); id != "" {
		return id
	}
	return t.defaultID
}

// SetDefinition returns the MCP tool definition for history_set.
func (t *HistoryTools) SetDefinition() mcp.Tool {
	return mcp.NewTool("history_set",
		mcp.WithDescription(
			"Replace the stored conversation history wholesale after a completed agent turn. "+
				"Restarts the idle clock: a history not refreshed within the idle window expires as a whole.",
		),
		mcp.WithString("messages",
			mcp.Required(),
			mcp.Description("JSON array of opaque message records"),
		),
		mcp.WithString("conversation_id",
			mcp.Description("Logical conversation/channel ID (default: the per-process conversation)"),
		),
	)
}

// HandleSet processes the history_set tool call.
func (t *HistoryTools) HandleSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("messages", "")
	if raw == "" {
		return mcp.NewToolResultError("'messages' is required"), nil
	}

	var messages []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'messages' must be a JSON array: %v", err)), nil
	}

	t.cache.Set(t.conversationID(req), messages)
	return mcp.NewToolResultText(fmt.Sprintf("History updated (%d messages).", len(messages))), nil
}

// GetDefinition returns the MCP tool definition for history_get.
func (t *HistoryTools) GetDefinition() mcp.Tool {
	return mcp.NewTool("history_get",
		mcp.WithDescription(
			"Get the stored conversation history. Returns an empty array once the idle window "+
				"has elapsed since the last history_set.",
		),
		mcp.WithString("conversation_id",
			mcp.Description("Logical conversation/channel ID (default: the per-process conversation)"),
		),
	)
}

// HandleGet processes the history_get tool call.
func (t *HistoryTools) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	messages := t.cache.Get(t.conversationID(req))
	if messages == nil {
		messages = []json.RawMessage{}
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding history: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ResetDefinition returns the MCP tool definition for history_reset.
func (t *HistoryTools) ResetDefinition() mcp.Tool {
	return mcp.NewTool("history_reset",
		mcp.WithDescription("Discard the stored conversation history immediately."),
		mcp.WithString("conversation_id",
			mcp.Description("Logical conversation/channel ID (default: the per-process conversation)"),
		),
	)
}

// HandleReset processes the history_reset tool call.
func (t *HistoryTools) HandleReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.cache.Reset(t.conversationID(req))
	return mcp.NewToolResultText("History cleared."), nil
}
