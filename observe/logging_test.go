package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jonwraymond/callops/call"
)

func parseLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log line as JSON: %v\nLine: %s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

// TestLogging_RecordsCallAndResult verifies pre and post records on success.
func TestLogging_RecordsCallAndResult(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)
	logging := NewLogging(logger, LevelInfo)

	inner := call.NewFunc(call.Meta{Namespace: "math", Name: "add"}, func(ctx context.Context, args call.Args) (any, error) {
		return 3, nil
	})

	args := call.Positional(1, 2)
	result, err := logging.Wrap(inner).Invoke(context.Background(), args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 3 {
		t.Errorf("expected 3, got %v", result)
	}

	entries := parseLogLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	pre := entries[0]
	if v := pre["msg"]; v != "calling" {
		t.Errorf("expected first msg='calling', got %v", v)
	}
	if v := pre["args"]; v != "(1, 2)" {
		t.Errorf("expected args='(1, 2)', got %v", v)
	}
	if v := pre["call.id"]; v != "math.add" {
		t.Errorf("expected call.id='math.add', got %v", v)
	}

	post := entries[1]
	if v := post["msg"]; v != "call returned" {
		t.Errorf("expected second msg='call returned', got %v", v)
	}
	if v := post["result"]; v != "3" {
		t.Errorf("expected result='3', got %v", v)
	}
}

// TestLogging_RecordsNamedArgs verifies named arguments appear in the call record.
func TestLogging_RecordsNamedArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)
	logging := NewLogging(logger, LevelInfo)

	inner := call.NewFunc(call.Meta{Name: "greet"}, func(ctx context.Context, args call.Args) (any, error) {
		return "hi", nil
	})

	args := call.Positional(1, 2).With("name", "John")
	if _, err := logging.Wrap(inner).Invoke(context.Background(), args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := parseLogLines(t, &buf)
	if v := entries[0]["args"]; v != "(1, 2, name=John)" {
		t.Errorf("expected args='(1, 2, name=John)', got %v", v)
	}
}

// TestLogging_FailureRecordedAtErrorLevel verifies failures log the error
// kind and message, and the error propagates unchanged.
func TestLogging_FailureRecordedAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)
	logging := NewLogging(logger, LevelInfo)

	testErr := errors.New("not found")
	inner := call.NewFunc(call.Meta{Name: "lookup"}, func(ctx context.Context, args call.Args) (any, error) {
		return nil, testErr
	})

	_, err := logging.Wrap(inner).Invoke(context.Background(), call.Positional("key"))
	if !errors.Is(err, testErr) {
		t.Fatalf("expected original error, got %v", err)
	}

	entries := parseLogLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	failure := entries[1]
	if v := failure["level"]; v != "error" {
		t.Errorf("expected failure logged at error level, got %v", v)
	}
	if v := failure["msg"]; v != "call failed" {
		t.Errorf("expected msg='call failed', got %v", v)
	}
	if v := failure["error"]; v != "not found" {
		t.Errorf("expected error='not found', got %v", v)
	}
	if v := failure["error_kind"]; v != "*errors.errorString" {
		t.Errorf("expected error_kind='*errors.errorString', got %v", v)
	}
}

// TestLogging_ConfiguredLevel verifies call records honor the configured level.
func TestLogging_ConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	// Logger admits debug, policy logs at debug.
	logger := NewLoggerWithWriter("debug", &buf)
	logging := NewLogging(logger, LevelDebug)

	inner := call.NewFunc(call.Meta{Name: "quiet"}, func(ctx context.Context, args call.Args) (any, error) {
		return nil, nil
	})

	if _, err := logging.Wrap(inner).Invoke(context.Background(), call.Args{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := parseLogLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	for _, e := range entries {
		if v := e["level"]; v != "debug" {
			t.Errorf("expected debug level, got %v", v)
		}
	}
}

// TestLogging_DebugRecordsFilteredByLogger verifies debug call records are
// dropped when the logger level is info.
func TestLogging_DebugRecordsFilteredByLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)
	logging := NewLogging(logger, LevelDebug)

	inner := call.NewFunc(call.Meta{Name: "quiet"}, func(ctx context.Context, args call.Args) (any, error) {
		return nil, nil
	})

	if _, err := logging.Wrap(inner).Invoke(context.Background(), call.Args{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("expected no output for debug records at info level, got %q", buf.String())
	}
}

// TestLogging_NilLoggerIsSafe verifies a nil logger falls back to noop.
func TestLogging_NilLoggerIsSafe(t *testing.T) {
	logging := NewLogging(nil, LevelInfo)

	inner := call.NewFunc(call.Meta{Name: "plain"}, func(ctx context.Context, args call.Args) (any, error) {
		return "ok", nil
	})

	result, err := logging.Wrap(inner).Invoke(context.Background(), call.Args{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %v", result)
	}
}
