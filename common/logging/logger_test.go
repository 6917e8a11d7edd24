package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/ledgerline-systems/paddlehook/common/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		if l := New(slog.LevelInfo, format); l == nil || l.Logger == nil {
			t.Errorf("New(info, %q) returned nil logger", format)
		}
	}
}

func TestWithContext(t *testing.T) {
	l := New(slog.LevelInfo, "json")

	// Without a request ID the underlying logger is returned unchanged.
	if got := l.WithContext(context.Background()); got != l.Logger {
		t.Error("expected bare context to return the base logger")
	}

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	if got := l.WithContext(ctx); got == l.Logger {
		t.Error("expected request-id context to return a derived logger")
	}
}
