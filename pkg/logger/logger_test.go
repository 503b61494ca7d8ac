package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pos-test", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithTerminalID(context.Background(), "term-1")
	ctx = logg.WithSaleID(ctx, "sale-9")
	logg.Info(ctx, "checkout.committed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["terminal_id"] != "term-1" {
		t.Fatalf("missing terminal_id: %v", entry)
	}
	if entry["sale_id"] != "sale-9" {
		t.Fatalf("missing sale_id: %v", entry)
	}
	if entry["service"] != "pos-test" {
		t.Fatalf("missing service field: %v", entry)
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pos-test", Output: &buf})

	logg.Error(context.Background(), "checkout.failed", nil)

	if !strings.Contains(buf.String(), "stack") {
		t.Fatal("expected stack field on error logs")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	if got := ParseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Fatalf("unexpected level %v", got)
	}
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("unexpected level %v", got)
	}
}
