package logger

import (
	"context"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initialization must be safe.
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "test message",
		String("k", "v"),
		Int("n", 3),
		Float64("score", 78.5),
		Bool("degraded", false),
		Duration("took", 5*time.Millisecond))
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("scoring")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	namedLogger.Warn(context.Background(), "degraded item", String("id", "abc"))
}

func TestSetLevelString(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("SetLevelString(%q) returned error: %v", lvl, err)
		}
	}
	if err := SetLevelString("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
