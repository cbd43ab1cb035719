// Package tools exposes the Mercury API as MCP tools.
package tools

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"mercury-mcp/internal/mercury"
)

// Handler binds the Mercury client to the MCP tool surface. Every tool is a
// single upstream GET plus formatting; failures from the client are returned
// to the framework untranslated.
type Handler struct {
	client *mercury.Client
	logger zerolog.Logger
}

// NewHandler creates a tool handler backed by the given client.
func NewHandler(client *mercury.Client, logger zerolog.Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger.With().Str("component", "tools").Logger(),
	}
}

// Register adds all Mercury tools to the MCP server.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(listAccountsTool(), h.ListAccounts)
	s.AddTool(getAccountTool(), h.GetAccount)
	s.AddTool(getAccountCardsTool(), h.GetAccountCards)
	s.AddTool(getAccountTransactionsTool(), h.GetAccountTransactions)
	s.AddTool(getTransactionTool(), h.GetTransaction)
	s.AddTool(getStatementsTool(), h.GetStatements)
	s.AddTool(listRecipientsTool(), h.ListRecipients)
	s.AddTool(getRecipientTool(), h.GetRecipient)
}
