package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"mercury-mcp/internal/config"
	"mercury-mcp/internal/telemetry"
)

func newTestServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()
	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	cfg := config.DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = api.URL

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)
	return New(cfg, zerolog.Nop(), metrics, registry)
}

func newTestClient(t *testing.T, srv *Server) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(srv.MCP())
	if err != nil {
		t.Fatalf("Failed to create in-process client: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Failed to start client: %v", err)
	}
	if _, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "test-client", Version: "0.0.1"},
		},
	}); err != nil {
		t.Fatalf("Failed to initialize client: %v", err)
	}
	return c
}

func TestRegisteredTools(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	c := newTestClient(t, srv)

	list, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("Failed to list tools: %v", err)
	}

	want := map[string]bool{
		"list_accounts":            false,
		"get_account":              false,
		"get_account_cards":        false,
		"get_account_transactions": false,
		"get_transaction":          false,
		"get_statements":           false,
		"list_recipients":          false,
		"get_recipient":            false,
	}
	if len(list.Tools) != len(want) {
		t.Errorf("Expected %d tools, got %d", len(want), len(list.Tools))
	}
	for _, tool := range list.Tools {
		if _, ok := want[tool.Name]; !ok {
			t.Errorf("Unexpected tool %s", tool.Name)
			continue
		}
		want[tool.Name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("Tool %s not registered", name)
		}
	}
}

func TestCallTool_ListAccounts(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accounts": [{"id": "a1", "name": "Checking", "currentBalance": 100.5}]}`))
	})
	c := newTestClient(t, srv)

	result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_accounts"},
	})
	if err != nil {
		t.Fatalf("Failed to call list_accounts: %v", err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("Expected single content item, got %d", len(result.Content))
	}

	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	want := "id: a1\nname: Checking\ncurrentBalance: 100.5"
	if text.Text != want {
		t.Errorf("Expected %q, got %q", want, text.Text)
	}
}

func TestCallTool_UpstreamFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "account not found", http.StatusNotFound)
	})
	c := newTestClient(t, srv)

	result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_account",
			Arguments: map[string]any{"account_id": "bad-id"},
		},
	})
	if err == nil && (result == nil || !result.IsError) {
		t.Fatal("Expected tool call to surface the transport error")
	}
}

func TestOpsHandler_Health(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	rec := httptest.NewRecorder()
	srv.OpsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestOpsHandler_Metrics(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	rec := httptest.NewRecorder()
	srv.OpsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected metrics exposition output")
	}
}
