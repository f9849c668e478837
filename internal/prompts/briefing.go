// Package prompts implements Keeper's MCP prompts.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// BriefingPrompt handles the keeper-briefing MCP prompt. It tells the
// agent to pull both startup digests before the first user turn.
type BriefingPrompt struct{}

// NewBriefingPrompt creates a BriefingPrompt.
func NewBriefingPrompt() *BriefingPrompt {
	return &BriefingPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *BriefingPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("keeper-briefing",
		mcp.WithPromptDescription(
			"Load the user's pending tasks and notebook into context at the start of a conversation.",
		),
	)
}

// Handle processes the keeper-briefing prompt request.
func (p *BriefingPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Keeper session briefing",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Read the resources keeper://tasks/pending and keeper://notes/digest and keep both " +
						"in mind for this conversation.\n\n" +
						"Then:\n" +
						"1. Treat the pending tasks as the user's current commitments\n" +
						"2. Treat the notebook as background knowledge about the user\n" +
						"3. Use task_db_query for task changes and notebook_write for new observations",
				),
			},
		},
	}, nil
}
