package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log call with its attributes flattened.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// recordSink is shared between a handler and the handlers derived from it
// with WithAttrs, so that component loggers report to the same buffer.
type recordSink struct {
	mu      sync.Mutex
	records []LogRecord
}

// BufferedSlogHandler captures log records in memory.
type BufferedSlogHandler struct {
	sink  *recordSink
	attrs []slog.Attr
	t     testing.TB
}

// NewBufferedSlogHandler returns a handler that also echoes records to t.Log.
func NewBufferedSlogHandler(t testing.TB) *BufferedSlogHandler {
	return &BufferedSlogHandler{sink: &recordSink{}, t: t}
}

// Handle implements slog.Handler
func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.sink.mu.Lock()
	h.sink.records = append(h.sink.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	h.sink.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// Enabled implements slog.Handler. Every level is captured.
func (h *BufferedSlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler
func (h *BufferedSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &BufferedSlogHandler{sink: h.sink, attrs: merged, t: h.t}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *BufferedSlogHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of everything captured so far.
func (h *BufferedSlogHandler) Records() []LogRecord {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	out := make([]LogRecord, len(h.sink.records))
	copy(out, h.sink.records)
	return out
}

// RecordsAt returns the records logged at level.
func (h *BufferedSlogHandler) RecordsAt(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, r := range h.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the first record whose message contains substr.
func (h *BufferedSlogHandler) Find(substr string) (LogRecord, bool) {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, substr) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// Count returns the number of captured records
func (h *BufferedSlogHandler) Count() int {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	return len(h.sink.records)
}

// Clear removes all captured records
func (h *BufferedSlogHandler) Clear() {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.records = nil
}

// NewTestLogger creates a logger with a buffered handler for testing
func NewTestLogger(t testing.TB) (*slog.Logger, *BufferedSlogHandler) {
	handler := NewBufferedSlogHandler(t)
	return slog.New(handler), handler
}

// AssertLogContains fails t unless a record at level contains message.
func AssertLogContains(t testing.TB, h *BufferedSlogHandler, level slog.Level, message string) {
	t.Helper()
	for _, r := range h.RecordsAt(level) {
		if strings.Contains(r.Message, message) {
			return
		}
	}
	t.Errorf("no %s record containing %q", level, message)
	for _, r := range h.Records() {
		t.Logf("  [%s] %s %v", r.Level, r.Message, r.Attrs)
	}
}

// AssertNoErrors fails t if anything was logged at error level.
func AssertNoErrors(t testing.TB, h *BufferedSlogHandler) {
	t.Helper()
	for _, r := range h.RecordsAt(slog.LevelError) {
		t.Errorf("unexpected error log: %s %v", r.Message, r.Attrs)
	}
}
