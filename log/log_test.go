package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.config.level != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.config.level)
	}
	if logger.config.caller {
		t.Error("expected caller info disabled by default")
	}
	if logger.config.format != FormatText {
		t.Errorf("expected default format text, got %v", logger.config.format)
	}
	if !logger.config.pretty {
		t.Error("expected pretty output enabled by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()
	logger2 := Make(&buf, WithLevel(LevelError))
	logger2.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace_BelowDebug(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelDebug))
	logger.Trace("trace message")
	if buf.Len() > 0 {
		t.Error("trace message logged when level is Debug")
	}

	buf.Reset()
	logger2 := Make(&buf, WithLevel(LevelTrace), WithPretty(false))
	logger2.Trace("trace message")

	output := buf.String()
	if !strings.Contains(output, "trace message") {
		t.Error("trace message not logged at Trace level")
	}

	// Trace renders by name, not as a debug offset.
	if !strings.Contains(output, "TRACE") {
		t.Errorf("expected TRACE level name, got: %s", output)
	}
	if strings.Contains(output, "DEBUG-4") {
		t.Errorf("trace level rendered as offset: %s", output)
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	// Must not panic, and must not write anywhere.
	logger.Info("into the void")
	logger.Error("still nothing")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero value Level = %v, want %v", logger.Level(), DefaultLevel)
	}
	if logger.Format() != DefaultFormat {
		t.Errorf("zero value Format = %v, want %v", logger.Format(), DefaultFormat)
	}
}

func TestLogger_Make_WithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON))
	logger.Info("test message", slog.String("key", "value"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if result["msg"] != "test message" {
		t.Errorf("expected msg=test message, got %v", result["msg"])
	}
	if result["key"] != "value" {
		t.Errorf("expected key=value, got %v", result["key"])
	}
}

func TestLogger_Make_WithTimeLayout_SetsLayout(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		contains string
	}{
		{"rfc3339 named", "RFC3339", "T"},
		{"rfc3339 nano named", "RFC3339Nano", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithTimeLayout(tt.format), WithPretty(false))
			logger.Info("test")

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf(
					"expected time format to contain %q, got: %s",
					tt.contains,
					output,
				)
			}
		})
	}
}

func TestLogger_Make_WithTimeLayout_None(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none"), WithPretty(false))
	logger.Info("test")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no timestamp, got: %s", buf.String())
	}
}

func TestLogger_Make_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "source") {
		t.Error("caller info not included when enabled")
	}

	buf.Reset()
	logger2 := Make(&buf, WithCaller(false), WithPretty(false))
	logger2.Info("test message")

	output = buf.String()
	if strings.Contains(output, "source") {
		t.Error("caller info included when disabled")
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var base, wrapped bytes.Buffer

	logger := Make(&base, WithLevel(LevelError))
	logger2 := logger.Wrap(WithOutput(&wrapped), WithLevel(LevelInfo))

	logger2.Info("wrapped message")

	if base.Len() > 0 {
		t.Error("wrapped logger wrote to the base writer")
	}
	if !strings.Contains(wrapped.String(), "wrapped message") {
		t.Error("wrapped logger did not apply the new level")
	}

	// The base logger keeps its original configuration.
	if logger.Level() != LevelError {
		t.Errorf("base level = %v, want %v", logger.Level(), LevelError)
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false)).With(slog.String("component", "test"))
	logger.Info("message")

	if !strings.Contains(buf.String(), "component=test") {
		t.Errorf("expected attribute in output, got: %s", buf.String())
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 16 {
				logger.Info("concurrent")
			}
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "concurrent"); got != 8*16 {
		t.Errorf("got %d messages, want %d", got, 8*16)
	}
}

func TestDefault_Config(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(Make(&buf, WithPretty(false)))

	Config(WithLevel(LevelDebug))
	Debug("default debug")

	if !strings.Contains(buf.String(), "default debug") {
		t.Errorf("package-level logger missed message, got: %s", buf.String())
	}
}
