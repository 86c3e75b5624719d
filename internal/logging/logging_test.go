package logging

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevel(t *testing.T) {
	if NewLogger(false).Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug must be disabled without verbose")
	}
	if !NewLogger(true).Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug must be enabled with verbose")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "defaults", opts: Options{}},
		{name: "json warn", opts: Options{Level: "WARN", Format: "json"}},
		{name: "bad format", opts: Options{Format: "xml"}, wantErr: true},
		{name: "bad level", opts: Options{Level: "loud"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			logger.Infow("test message", "key", "value")
		})
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Errorw("discarded", "n", 1)
	if logger.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("nop logger must not enable any level")
	}
}

func TestWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &Logger{zap.New(core).Sugar()}

	fmt.Fprintf(logger.Writer(), "vtt-invalid-item(line %d): \n%s\n", 3, "bad block")
	fmt.Fprint(logger.Writer(), "\n")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	if want := "vtt-invalid-item(line 3): \nbad block"; entries[0].Message != want {
		t.Errorf("message = %q, want %q", entries[0].Message, want)
	}
}
