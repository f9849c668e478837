// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the concrete store, notebook
// backend, and history cache, and injects them into the tools, prompts,
// and resources. No business logic lives here, only wiring.
package server

import (
	"fmt"
	"time"

	"github.com/keeperhq/keeper/internal/config"
	"github.com/keeperhq/keeper/internal/history"
	"github.com/keeperhq/keeper/internal/notes"
	"github.com/keeperhq/keeper/internal/prompts"
	"github.com/keeperhq/keeper/internal/resources"
	"github.com/keeperhq/keeper/internal/store"
	"github.com/keeperhq/keeper/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the store (database and audit
// log) and must be called on shutdown, typically via defer. It is
// always non-nil and safe to call.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	st, err := store.Open(store.Config{
		DBPath:       cfg.DBPath,
		AuditLogPath: cfg.AuditLogPath,
	})
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() { _ = st.Close() }

	// The two note backends are alternative implementations of the same
	// interface, selected once at construction and never used together.
	var notebook notes.Store
	switch cfg.Backend {
	case config.BackendMarkdown:
		notebook = notes.NewNotebook(cfg.NotebookPath)
	default:
		notebook = st.Notebook()
	}

	policy := notes.Policy{
		RejectThreshold: cfg.RejectThreshold,
		MergeThreshold:  cfg.MergeThreshold,
	}

	cache := history.New(time.Duration(cfg.HistoryIdleWindow))

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"keeper",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	queryTool := tools.NewQueryTool(st)
	s.AddTool(queryTool.Definition(), queryTool.Handle)

	writeTool := tools.NewWriteNoteTool(notebook, policy)
	s.AddTool(writeTool.Definition(), writeTool.Handle)

	readTool := tools.NewReadNotesTool(notebook)
	s.AddTool(readTool.Definition(), readTool.Handle)

	historyTools := tools.NewHistoryTools(cache)
	s.AddTool(historyTools.SetDefinition(), historyTools.HandleSet)
	s.AddTool(historyTools.GetDefinition(), historyTools.HandleGet)
	s.AddTool(historyTools.ResetDefinition(), historyTools.HandleReset)

	// --- Register prompts ---

	briefing := prompts.NewBriefingPrompt()
	s.AddPrompt(briefing.Definition(), briefing.Handle)

	// --- Register resources ---

	handler := resources.NewHandler(st, notebook)
	s.AddResource(handler.PendingTasksResource(), handler.HandlePendingTasks)
	s.AddResource(handler.NotesDigestResource(), handler.HandleNotesDigest)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used when construction fails early.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use Keeper effectively.
func serverInstructions() string {
	return `You have access to Keeper, the user's personal task and notebook backend.

## Session start
Read keeper://tasks/pending and keeper://notes/digest (or invoke the
keeper-briefing prompt) so you know the user's commitments and background
before the first reply.

## Tasks (task_db_query)
- The tasks table: id, description, time_added, time_complete, due, tags,
  recurrence, points. Pending means time_complete IS NULL.
- Add a task with INSERT; complete one by setting time_complete.
- RECURRING tasks: to complete one, set time_complete on the existing row,
  then INSERT a fresh row with the same description and tags and the next
  due date derived from the recurrence rule. Never rewrite the due date of
  the completed row.
- Malformed SQL does not fail the call; the result text describes the
  error. Read it and correct your query.

## Notebook (notebook_write / notebook_read)
- Save durable facts about the user: preferences, schedules, observations.
- Do NOT save task bookkeeping as notes; such text is rejected and must
  go through task_db_query instead.
- Near-duplicate notes are declined; similar notes in the same category
  are merged into the existing entry. The result text tells you which.
- Use a leading [Category] label when the user names one explicitly.

## Conversation history (history_set / history_get / history_reset)
These are for the chat adapter, not for you: the adapter replays history
at the start of each turn and stores it back afterwards. History expires
as a whole after the idle window.`
}
