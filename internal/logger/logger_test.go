package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestSetupFiltersByLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	l := Setup(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "month", "2024-02")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered: %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "month=2024-02") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSetupNilWriter(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	l := Setup(nil, "debug")
	l.Debug("nowhere")
}
