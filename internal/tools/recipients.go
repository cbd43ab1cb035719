package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mercury-mcp/internal/format"
)

var recipientFields = []string{
	"id",
	"name",
	"nickname",
	"status",
	"emails",
	"dateLastPaid",
	"defaultPaymentMethod",
}

// recipientRoutingKeys are the mutually-optional payment routing sub-records,
// passed through whole when present.
var recipientRoutingKeys = []string{
	"electronicRoutingInfo",
	"domesticWireRoutingInfo",
	"internationalWireRoutingInfo",
	"checkInfo",
}

func listRecipientsTool() mcp.Tool {
	return mcp.NewTool("list_recipients",
		mcp.WithDescription("List all Mercury payment recipients"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// ListRecipients returns every recipient as an indented JSON block.
func (h *Handler) ListRecipients(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipients, err := h.client.Recipients(ctx)
	if err != nil {
		return nil, err
	}
	h.logger.Info().Int("count", len(recipients)).Msg("Found recipients")

	if len(recipients) == 0 {
		return mcp.NewToolResultText("No recipients found."), nil
	}

	blocks := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		text, err := format.Indent(pickRecipient(recipient))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, text)
	}
	return mcp.NewToolResultText(format.JoinRecords(blocks)), nil
}

func getRecipientTool() mcp.Tool {
	return mcp.NewTool("get_recipient",
		mcp.WithDescription("Get a specific Mercury payment recipient"),
		mcp.WithString("recipient_id",
			mcp.Required(),
			mcp.Description("The ID of the recipient to retrieve"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// GetRecipient returns a single recipient as indented JSON.
func (h *Handler) GetRecipient(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipientID, err := request.RequireString("recipient_id")
	if err != nil {
		return nil, err
	}

	recipient, err := h.client.Recipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	text, err := format.Indent(pickRecipient(recipient))
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// pickRecipient builds the exposed recipient mapping: the scalar allow-list
// plus whichever routing sub-records the recipient actually has.
func pickRecipient(recipient map[string]any) map[string]any {
	picked := format.Pick(recipient, recipientFields)
	for _, key := range recipientRoutingKeys {
		if info, ok := recipient[key].(map[string]any); ok {
			picked[key] = info
		}
	}
	return picked
}
