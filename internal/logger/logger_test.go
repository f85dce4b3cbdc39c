package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Debug(t *testing.T) {
	log, err := New("", true)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}

	// Should not panic
	log.Info("test message")
}

func TestNew_Production(t *testing.T) {
	log, err := New("warn", false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn level should be enabled")
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level should be disabled at warn")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestMust(t *testing.T) {
	// Should not panic
	log := Must("debug", true)
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
}
