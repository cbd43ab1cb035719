package format

import (
	"strings"
	"testing"
)

func TestFlatten_AllowListOrder(t *testing.T) {
	record := map[string]any{
		"name":           "Checking",
		"id":             "a1",
		"currentBalance": 100.5,
	}

	got := Flatten(record, []string{"id", "name", "currentBalance"})
	want := "id: a1\nname: Checking\ncurrentBalance: 100.5"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFlatten_DropsAbsentAndNil(t *testing.T) {
	record := map[string]any{
		"id":       "a1",
		"nickname": nil,
	}

	got := Flatten(record, []string{"id", "nickname", "status"})
	if got != "id: a1" {
		t.Errorf("Expected absent and nil fields to be dropped, got %q", got)
	}
	if strings.Contains(got, "nickname") {
		t.Error("Expected nil field to be omitted")
	}
}

func TestFlatten_ValueRendering(t *testing.T) {
	record := map[string]any{
		"amount":  float64(250),
		"active":  true,
		"balance": 100.5,
		"tags":    []any{"a", "b"},
		"info":    map[string]any{"k": "v"},
	}

	tests := []struct {
		key  string
		want string
	}{
		{"amount", "amount: 250"},
		{"active", "active: true"},
		{"balance", "balance: 100.5"},
		{"tags", `tags: ["a","b"]`},
		{"info", `info: {"k":"v"}`},
	}

	for _, tt := range tests {
		got := Flatten(record, []string{tt.key})
		if got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	record := map[string]any{"id": "t1", "amount": 10.25, "status": "sent"}
	keys := []string{"id", "amount", "status"}

	first := Flatten(record, keys)
	for i := 0; i < 10; i++ {
		if got := Flatten(record, keys); got != first {
			t.Fatalf("Expected deterministic output, got %q then %q", first, got)
		}
	}
}

func TestPick(t *testing.T) {
	record := map[string]any{
		"id":     "r1",
		"name":   "Acme",
		"status": nil,
		"extra":  "dropped",
	}

	picked := Pick(record, []string{"id", "name", "status"})
	if len(picked) != 2 {
		t.Fatalf("Expected 2 picked fields, got %d: %v", len(picked), picked)
	}
	if picked["id"] != "r1" || picked["name"] != "Acme" {
		t.Errorf("Unexpected picked values: %v", picked)
	}
	if _, ok := picked["extra"]; ok {
		t.Error("Expected non-allow-listed field to be excluded")
	}
}

func TestJoinRecords(t *testing.T) {
	got := JoinRecords([]string{"a: 1", "b: 2"})
	want := "a: 1\n---\nb: 2"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := JoinRecords([]string{"only"}); got != "only" {
		t.Errorf("Expected single record unchanged, got %q", got)
	}
}

func TestIndent(t *testing.T) {
	got, err := Indent(map[string]any{"id": "s1"})
	if err != nil {
		t.Fatalf("Failed to indent: %v", err)
	}
	want := "{\n  \"id\": \"s1\"\n}"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
