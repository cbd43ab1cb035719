package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mercury-mcp/internal/format"
)

var cardFields = []string{
	"cardId",
	"createdAt",
	"lastFourDigits",
	"nameOnCard",
	"network",
	"status",
	"physicalCardStatus",
}

func getAccountCardsTool() mcp.Tool {
	return mcp.NewTool("get_account_cards",
		mcp.WithDescription("Get all cards associated with a specific Mercury bank account"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the account to get cards for"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// GetAccountCards returns the cards of an account as flattened text blocks.
func (h *Handler) GetAccountCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := request.RequireString("account_id")
	if err != nil {
		return nil, err
	}

	cards, err := h.client.Cards(ctx, accountID)
	if err != nil {
		return nil, err
	}
	h.logger.Info().Str("account_id", accountID).Int("count", len(cards)).Msg("Found cards")

	if len(cards) == 0 {
		return mcp.NewToolResultText("No cards found for this account."), nil
	}

	blocks := make([]string, 0, len(cards))
	for _, card := range cards {
		blocks = append(blocks, format.Flatten(card, cardFields))
	}
	return mcp.NewToolResultText(format.JoinRecords(blocks)), nil
}
