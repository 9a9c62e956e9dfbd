package logger

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerFields(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	ctx := context.Background()
	logger.Info(ctx, "test message",
		String("k", "v"),
		Int("n", 3),
		Float64("score", 87.5),
		Bool("scored", true),
		Duration("elapsed", 20*time.Millisecond),
		Any("raw", map[string]int{"a": 1}),
	)
}

func TestLoggerNamed(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tc := range cases {
		err := SetLevelString(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SetLevelString(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SetLevelString(%q): %v", tc.in, err)
			continue
		}
		if got := levelVar.Level(); got != tc.want {
			t.Errorf("SetLevelString(%q): level = %v, want %v", tc.in, got, tc.want)
		}
	}
}
