package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mercury-mcp/internal/format"
)

var statementFields = []string{
	"id",
	"accountNumber",
	"companyLegalName",
	"periodStart",
	"periodEnd",
	"endingBalance",
	"downloadUrl",
}

func getStatementsTool() mcp.Tool {
	return mcp.NewTool("get_statements",
		mcp.WithDescription("Get statements for a specific Mercury bank account"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the account to get statements for"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// GetStatements returns the statements of an account as indented JSON blocks.
// The transaction count is derived from the embedded transaction list.
func (h *Handler) GetStatements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := request.RequireString("account_id")
	if err != nil {
		return nil, err
	}

	statements, err := h.client.Statements(ctx, accountID)
	if err != nil {
		return nil, err
	}
	h.logger.Info().Str("account_id", accountID).Int("count", len(statements)).Msg("Found statements")

	if len(statements) == 0 {
		return mcp.NewToolResultText("No statements found for this account."), nil
	}

	blocks := make([]string, 0, len(statements))
	for _, statement := range statements {
		picked := format.Pick(statement, statementFields)
		if transactions, ok := statement["transactions"].([]any); ok {
			picked["transactionCount"] = len(transactions)
		}

		text, err := format.Indent(picked)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, text)
	}
	return mcp.NewToolResultText(format.JoinRecords(blocks)), nil
}
