package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := ParseLevel(c.in); got != c.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "console", Output: &buf})
	log.With("component", "movement").WithGroup("jump").Debug("granted", "at", 1.5)

	line := buf.String()
	for _, want := range []string{"DEBUG granted", "  component=movement", "jump.at=1.5"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("expected a trailing newline, got %q", line)
	}
}

func TestLevelFilters(t *testing.T) {
	for _, format := range []string{"console", "text", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: "warn", Format: format, Output: &buf})
			log.Info("hidden")
			log.Warn("shown")
			if strings.Contains(buf.String(), "hidden") {
				t.Fatalf("expected info filtered at warn, got %q", buf.String())
			}
			if !strings.Contains(buf.String(), "shown") {
				t.Fatalf("expected warn logged, got %q", buf.String())
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Format: "json", Output: &buf}).Info("spawned", "kind", "local-player")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"kind":"local-player"`) {
		t.Fatalf("expected a json record, got %q", buf.String())
	}
}
