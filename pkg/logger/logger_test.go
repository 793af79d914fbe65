package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		Init(&Config{Level: tt.level, Format: "text"})
		if !slog.Default().Enabled(context.Background(), tt.enabled) {
			t.Errorf("Level %s: expected %v to be enabled", tt.level, tt.enabled)
		}
	}
}

func TestInitJSONFormat(t *testing.T) {
	Init(&Config{Level: "info", Format: "json"})
	if slog.Default() == nil {
		t.Fatal("Expected default logger to be set")
	}
}

func TestWithContext(t *testing.T) {
	Init(&Config{Level: "info", Format: "text"})

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, UsernameKey, "admin")

	logger := WithContext(ctx)
	if logger == nil {
		t.Fatal("Expected non-nil logger")
	}

	// Empty context should fall back to the default logger
	if WithContext(context.Background()) == nil {
		t.Fatal("Expected non-nil logger for empty context")
	}
}

func TestContextHelpers(t *testing.T) {
	Init(&Config{Level: "debug", Format: "text"})
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-456")

	// Should not panic
	Debug(ctx, "debug message", "key", "value")
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Error(ctx, "error message", "error", "boom")
}
