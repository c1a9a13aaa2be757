package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		l, err := New("fightledger", env, "")
		if err != nil {
			t.Fatalf("env %s: %v", env, err)
		}
		l.Info("logger ready")
	}
}

func TestNew_Level(t *testing.T) {
	l, err := New("fightledger", "prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at warn level")
	}
	if _, err := New("fightledger", "prod", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
