package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Out: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "level=warn") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, App: "daily-diet", Out: &buf})

	l.With(map[string]any{"request_id": "r-1"}).Error("boom", map[string]any{"status": 500})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["app"] != "daily-diet" || entry["request_id"] != "r-1" || entry["msg"] != "boom" || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if entry["status"] != float64(500) {
		t.Fatalf("expected status 500, got %#v", entry["status"])
	}
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Options{Level: Info, Out: &buf})
	_ = parent.With(map[string]any{"child": true})

	parent.Info("x", nil)
	if strings.Contains(buf.String(), "child") {
		t.Fatalf("parent got child fields: %q", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("") != Info || ParseLevel("nope") != Info {
		t.Fatalf("unexpected ParseLevel results")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected ParseFormat results")
	}
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("expected non-nil logger")
	}

	var buf bytes.Buffer
	l := New(Options{Out: &buf})
	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info("hello", nil)
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("expected logger from context, got %q", buf.String())
	}
}
