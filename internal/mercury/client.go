// Package mercury is a thin read-only client for the Mercury banking API.
package mercury

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production Mercury API endpoint.
const DefaultBaseURL = "https://api.mercury.com/api/v1"

// Observer receives a record of every upstream API request.
type Observer interface {
	RecordAPIRequest(endpoint, statusCode string, duration time.Duration)
}

// Client issues authenticated GET requests against the Mercury API. Records
// are decoded as-is; the upstream schema is owned by the provider and field
// selection happens in the formatting layer.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithObserver attaches a request observer for telemetry.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient creates a new Mercury API client.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		logger:     logger.With().Str("component", "mercury_client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned when the API responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}

// Accounts returns all accounts.
func (c *Client) Accounts(ctx context.Context) ([]map[string]any, error) {
	c.logger.Info().Msg("Getting accounts from Mercury API")
	return c.getList(ctx, "accounts", "/accounts", "accounts")
}

// Account returns a single account by ID.
func (c *Client) Account(ctx context.Context, accountID string) (map[string]any, error) {
	c.logger.Info().Str("account_id", accountID).Msg("Getting account from Mercury API")
	return c.getObject(ctx, "account", "/account/"+url.PathEscape(accountID), nil)
}

// Cards returns the cards associated with an account.
func (c *Client) Cards(ctx context.Context, accountID string) ([]map[string]any, error) {
	c.logger.Info().Str("account_id", accountID).Msg("Getting cards from Mercury API")
	return c.getList(ctx, "cards", "/account/"+url.PathEscape(accountID)+"/cards", "cards")
}

// Transactions returns the raw transactions listing for an account,
// including the upstream "transactions" array and "total" count.
func (c *Client) Transactions(ctx context.Context, accountID string, limit, offset int, order string) (map[string]any, error) {
	c.logger.Info().
		Str("account_id", accountID).
		Int("limit", limit).
		Int("offset", offset).
		Str("order", order).
		Msg("Getting transactions from Mercury API")

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	query.Set("order", order)
	return c.getObject(ctx, "transactions", "/account/"+url.PathEscape(accountID)+"/transactions", query)
}

// Transaction returns a single transaction for an account.
func (c *Client) Transaction(ctx context.Context, accountID, transactionID string) (map[string]any, error) {
	c.logger.Info().
		Str("account_id", accountID).
		Str("transaction_id", transactionID).
		Msg("Getting transaction from Mercury API")
	path := "/account/" + url.PathEscape(accountID) + "/transaction/" + url.PathEscape(transactionID)
	return c.getObject(ctx, "transaction", path, nil)
}

// Statements returns the statements for an account.
func (c *Client) Statements(ctx context.Context, accountID string) ([]map[string]any, error) {
	c.logger.Info().Str("account_id", accountID).Msg("Getting statements from Mercury API")
	return c.getList(ctx, "statements", "/account/"+url.PathEscape(accountID)+"/statements", "statements")
}

// Recipients returns all recipients.
func (c *Client) Recipients(ctx context.Context) ([]map[string]any, error) {
	c.logger.Info().Msg("Getting recipients from Mercury API")
	return c.getList(ctx, "recipients", "/recipients", "recipients")
}

// Recipient returns a single recipient by ID.
func (c *Client) Recipient(ctx context.Context, recipientID string) (map[string]any, error) {
	c.logger.Info().Str("recipient_id", recipientID).Msg("Getting recipient from Mercury API")
	return c.getObject(ctx, "recipient", "/recipient/"+url.PathEscape(recipientID), nil)
}

// getList fetches an endpoint whose response wraps a named array and returns
// that array, defaulting to empty when the field is absent.
func (c *Client) getList(ctx context.Context, endpoint, path, wrapper string) ([]map[string]any, error) {
	var body map[string]any
	if err := c.get(ctx, endpoint, path, nil, &body); err != nil {
		return nil, err
	}
	return unwrapList(body, wrapper), nil
}

// getObject fetches an endpoint returning a single JSON object.
func (c *Client) getObject(ctx context.Context, endpoint, path string, query url.Values) (map[string]any, error) {
	var body map[string]any
	if err := c.get(ctx, endpoint, path, query, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "error", time.Since(start))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.observe(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

func (c *Client) observe(endpoint, statusCode string, duration time.Duration) {
	if c.observer != nil {
		c.observer.RecordAPIRequest(endpoint, statusCode, duration)
	}
}

// unwrapList extracts a named array of records from a decoded response.
func unwrapList(body map[string]any, wrapper string) []map[string]any {
	raw, ok := body[wrapper].([]any)
	if !ok {
		return []map[string]any{}
	}
	records := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}
