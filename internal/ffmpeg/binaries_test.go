package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLookupPrefersEnvironment(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg-custom")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(FFmpegEnv, fake)

	got, err := FFmpegPath()
	if err != nil {
		t.Fatalf("FFmpegPath: %v", err)
	}
	if got != fake {
		t.Errorf("got %q, want %q", got, fake)
	}
}

func TestLookupRejectsMissingOverride(t *testing.T) {
	t.Setenv(FFprobeEnv, filepath.Join(t.TempDir(), "absent"))
	if _, err := FFprobePath(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupFallsBackToPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(FFmpegEnv, "")
	t.Setenv(FFprobeEnv, "")
	t.Setenv("PATH", dir)

	if _, err := Resolve(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with an empty PATH, got %v", err)
	}
	if Available() {
		t.Error("Available must be false without binaries")
	}
}
