package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mercury-mcp/internal/format"
)

// transactionListFields is the condensed allow-list used for listings.
var transactionListFields = []string{
	"id",
	"amount",
	"counterpartyName",
	"counterpartyNickname",
	"kind",
	"status",
	"createdAt",
	"postedAt",
	"note",
	"externalMemo",
	"bankDescription",
	"mercuryCategory",
}

// transactionDetailFields is the exhaustive allow-list for a single
// transaction.
var transactionDetailFields = []string{
	"id",
	"amount",
	"counterpartyId",
	"counterpartyName",
	"counterpartyNickname",
	"kind",
	"status",
	"createdAt",
	"postedAt",
	"estimatedDeliveryDate",
	"failedAt",
	"reasonForFailure",
	"note",
	"externalMemo",
	"bankDescription",
	"mercuryCategory",
	"generalLedgerCodeName",
	"compliantWithReceiptPolicy",
	"hasGeneratedReceipt",
	"dashboardLink",
}

var currencyExchangeFields = []string{
	"convertedFromCurrency",
	"convertedToCurrency",
	"convertedFromAmount",
	"convertedToAmount",
	"exchangeRate",
}

func getAccountTransactionsTool() mcp.Tool {
	return mcp.NewTool("get_account_transactions",
		mcp.WithDescription("Get transactions for a specific Mercury bank account"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the account to get transactions for"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(500),
			mcp.Description("Maximum number of transactions to return (default: 500)"),
		),
		mcp.WithNumber("offset",
			mcp.DefaultNumber(0),
			mcp.Description("Number of transactions to skip (default: 0)"),
		),
		mcp.WithString("order",
			mcp.DefaultString("desc"),
			mcp.Enum("asc", "desc"),
			mcp.Description(`Sort order, either "asc" or "desc" (default: "desc")`),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// GetAccountTransactions returns a transactions listing: a one-line count
// summary followed by flattened per-transaction blocks.
func (h *Handler) GetAccountTransactions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := request.RequireString("account_id")
	if err != nil {
		return nil, err
	}
	limit := request.GetInt("limit", 500)
	offset := request.GetInt("offset", 0)
	order := request.GetString("order", "desc")

	data, err := h.client.Transactions(ctx, accountID, limit, offset, order)
	if err != nil {
		return nil, err
	}

	transactions := listRecords(data, "transactions")
	total, hasTotal := data["total"]
	if !hasTotal {
		total = float64(0)
	}

	h.logger.Info().
		Str("account_id", accountID).
		Int("count", len(transactions)).
		Str("total", format.Value(total)).
		Msg("Found transactions")

	if len(transactions) == 0 {
		return mcp.NewToolResultText("No transactions found for this account."), nil
	}

	blocks := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		block := format.Flatten(tx, transactionListFields)
		if attachments, ok := tx["attachments"].([]any); ok && len(attachments) > 0 {
			block += fmt.Sprintf("\nattachments: %d attachment(s)", len(attachments))
		}
		blocks = append(blocks, block)
	}

	summary := fmt.Sprintf("Showing %d of %s total transactions", len(transactions), format.Value(total))
	return mcp.NewToolResultText(summary + "\n\n" + format.JoinRecords(blocks)), nil
}

func getTransactionTool() mcp.Tool {
	return mcp.NewTool("get_transaction",
		mcp.WithDescription("Get a specific transaction from a Mercury bank account"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the account the transaction belongs to"),
		),
		mcp.WithString("transaction_id",
			mcp.Required(),
			mcp.Description("The ID of the transaction to retrieve"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// GetTransaction returns a single transaction as indented JSON, including
// payment-method details, currency exchange info, and attachments when
// present.
func (h *Handler) GetTransaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := request.RequireString("account_id")
	if err != nil {
		return nil, err
	}
	transactionID, err := request.RequireString("transaction_id")
	if err != nil {
		return nil, err
	}

	tx, err := h.client.Transaction(ctx, accountID, transactionID)
	if err != nil {
		return nil, err
	}

	detail := format.Pick(tx, transactionDetailFields)

	if details, ok := tx["details"].(map[string]any); ok {
		if info := details["debitCardInfo"]; info != nil {
			detail["debitCardInfo"] = info
		}
		if info := details["creditCardInfo"]; info != nil {
			detail["creditCardInfo"] = info
		}
	}

	if exchange, ok := tx["currencyExchangeInfo"].(map[string]any); ok {
		detail["currencyExchangeInfo"] = format.Pick(exchange, currencyExchangeFields)
	}

	if attachments, ok := tx["attachments"].([]any); ok && len(attachments) > 0 {
		lines := make([]string, 0, len(attachments))
		for _, item := range attachments {
			attachment, ok := item.(map[string]any)
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s (%s): %s",
				format.Value(attachment["fileName"]),
				format.Value(attachment["attachmentType"]),
				format.Value(attachment["url"])))
		}
		detail["attachments"] = lines
	}

	text, err := format.Indent(detail)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// listRecords extracts a named array of records from a decoded listing
// response.
func listRecords(data map[string]any, key string) []map[string]any {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	records := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}
