package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mercury-mcp/internal/format"
)

// accountFields is the ordered allow-list of account fields exposed to the
// caller.
var accountFields = []string{
	"id",
	"name",
	"nickname",
	"legalBusinessName",
	"type",
	"kind",
	"status",
	"accountNumber",
	"routingNumber",
	"currentBalance",
	"availableBalance",
	"createdAt",
	"canReceiveTransactions",
}

func listAccountsTool() mcp.Tool {
	return mcp.NewTool("list_accounts",
		mcp.WithDescription("List all Mercury bank accounts"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// ListAccounts returns every account as a flattened text block.
func (h *Handler) ListAccounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accounts, err := h.client.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	h.logger.Info().Int("count", len(accounts)).Msg("Found accounts")

	if len(accounts) == 0 {
		return mcp.NewToolResultText("No accounts found."), nil
	}

	blocks := make([]string, 0, len(accounts))
	for _, account := range accounts {
		blocks = append(blocks, format.Flatten(account, accountFields))
	}
	return mcp.NewToolResultText(format.JoinRecords(blocks)), nil
}

func getAccountTool() mcp.Tool {
	return mcp.NewTool("get_account",
		mcp.WithDescription("Get a specific Mercury bank account"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the account to retrieve"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// GetAccount returns a single account as a flattened text block.
func (h *Handler) GetAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := request.RequireString("account_id")
	if err != nil {
		return nil, err
	}

	account, err := h.client.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(format.Flatten(account, accountFields)), nil
}
