package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "test", buf)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json", Output: "stdout"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if !l.DebugEnabled() {
		t.Error("expected debug to be enabled from LOG_LEVEL")
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithComponent("asynciter")
	l.Debug("drive finished", Fields(FieldOperation, "collect", FieldElements, 4))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line["message"] != "drive finished" {
		t.Errorf("unexpected message %v", line["message"])
	}
	if line[FieldComponent] != "asynciter" {
		t.Errorf("expected component field, got %v", line[FieldComponent])
	}
	if line[FieldOperation] != "collect" || line[FieldElements] != float64(4) {
		t.Errorf("missing fields in %v", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	if l.DebugEnabled() {
		t.Error("debug should be disabled at warn level")
	}
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	if got := len(decodeLines(t, &buf)); got != 1 {
		t.Errorf("expected 1 line at warn level, got %d", got)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(errors.New("boom")).Error("failed")
	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][FieldError] != "boom" {
		t.Errorf("expected error field, got %v", lines)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithFields(map[string]interface{}{"k": "v"}).Info("x")
	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["k"] != "v" {
		t.Errorf("expected k=v, got %v", lines)
	}
}

func TestWithContext_NoSpan(t *testing.T) {
	l := NewDefault("test")
	if l.WithContext(context.Background()) != l {
		t.Error("expected same logger when ctx carries no span")
	}
}

func TestWithContext_Span(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithContext(ctx).Info("traced")
	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0][FieldTraceID] != span.SpanContext().TraceID().String() {
		t.Errorf("expected trace_id, got %v", lines[0][FieldTraceID])
	}
	if lines[0][FieldSpanID] != span.SpanContext().SpanID().String() {
		t.Errorf("expected span_id, got %v", lines[0][FieldSpanID])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
	if l.DebugEnabled() {
		t.Error("nop logger should not enable debug")
	}
}

func TestInit(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	Init(Config{Level: "debug", Format: "json"})
	if GetGlobalLogger() == prev {
		t.Error("Init should replace the global logger")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected custom global logger")
	}
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	_ = WithComponent("x")
	_ = WithContext(context.Background())
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp on by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"pretty", Config{Level: "info", Format: "pretty"}, false},
		{"bad level", Config{Level: "verbose", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "asyncdemo", &buf)
	l.Info("hello", Fields("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "[ASY][INF]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
	if !strings.Contains(out, "k:v") {
		t.Errorf("expected field rendering, got %q", out)
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("reg")
	Register("custom-component", l)
	defer Unregister("custom-component")
	if Get("custom-component") != l {
		t.Error("expected registered logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	if Get("never-registered") == nil {
		t.Error("expected fallback logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d", len(m))
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("collect", errors.New("x"))
	if m[FieldOperation] != "collect" || m[FieldError] != "x" {
		t.Errorf("unexpected %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("collect", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("unexpected %v", m)
	}
}

func TestMergeWithError(t *testing.T) {
	m := MergeWithError(nil, errors.New("e"))
	if m[FieldError] != "e" {
		t.Errorf("unexpected %v", m)
	}
}
