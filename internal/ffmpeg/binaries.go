package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const (
	FFmpegEnv  = "VTT2ASS_FFMPEG_PATH"
	FFprobeEnv = "VTT2ASS_FFPROBE_PATH"
)

var ErrNotFound = errors.New("binary not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

// Resolve locates both binaries, preferring the environment overrides over
// PATH.
func Resolve() (BinaryPaths, error) {
	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := FFprobePath()
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func FFmpegPath() (string, error) {
	return lookup(FFmpegEnv, "ffmpeg")
}

func FFprobePath() (string, error) {
	return lookup(FFprobeEnv, "ffprobe")
}

// Available reports whether both binaries can be found.
func Available() bool {
	_, err := Resolve()
	return err == nil
}

func lookup(envVar, name string) (string, error) {
	if path := os.Getenv(envVar); path != "" {
		if !fileExists(path) {
			return "", fmt.Errorf("%w: %s=%s", ErrNotFound, envVar, path)
		}
		return path, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not on PATH (set %s)", ErrNotFound, name, envVar)
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
