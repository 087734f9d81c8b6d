package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("dev", "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "production", ""} {
		l, err := New(mode, "warn")
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		if l.SugaredLogger.Desugar().Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("New(%q, warn) enabled info", mode)
		}
	}
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("learner_id", "abc")

	l.Info("promoted", "level", "intermediate")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["learner_id"] != "abc" || fields["level"] != "intermediate" {
		t.Errorf("fields = %v", fields)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.Sync()
}
