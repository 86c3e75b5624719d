package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/vtt2ass/internal/ass"
	"github.com/mgpai22/vtt2ass/internal/vtt"
)

//go:embed sample_config.toml
var sampleConfig string

// Style contains the font used by every generated ASS style.
type Style struct {
	FontName string `toml:"font_name"`
	FontSize int    `toml:"font_size"`
}

// Transcoder contains the placement corrections and script metadata.
type Transcoder struct {
	VerticalOffset   int    `toml:"vertical_offset"`
	HorizontalOffset int    `toml:"horizontal_offset"`
	Title            string `toml:"title"`
}

// Parser controls how malformed cues and input encodings are handled.
type Parser struct {
	ErrorHandling string `toml:"error_handling"` // pass, log or raise
	Encoding      string `toml:"encoding"`       // empty means detect
}

// Output controls how rewritten WebVTT files are saved.
type Output struct {
	Dir            string `toml:"dir"`
	EOL            string `toml:"eol"` // auto, lf, crlf or cr
	Encoding       string `toml:"encoding"`
	IncludeIndexes bool   `toml:"include_indexes"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Style      Style      `toml:"style"`
	Transcoder Transcoder `toml:"transcoder"`
	Parser     Parser     `toml:"parser"`
	Output     Output     `toml:"output"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error; defaults and environment overrides still apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

// TranscoderOptions maps the configuration onto ASS transcoder options.
func (c *Config) TranscoderOptions() ass.Options {
	return ass.Options{
		FontName:         c.Style.FontName,
		FontSize:         c.Style.FontSize,
		VerticalOffset:   c.Transcoder.VerticalOffset,
		HorizontalOffset: c.Transcoder.HorizontalOffset,
		Title:            c.Transcoder.Title,
		Input:            c.OpenOptions(),
	}
}

// OpenOptions maps the parser section onto VTT open options.
func (c *Config) OpenOptions() vtt.OpenOptions {
	// normalize has already rejected unknown policies
	handling, _ := vtt.ParseErrorHandling(c.Parser.ErrorHandling)
	return vtt.OpenOptions{
		Encoding:      c.Parser.Encoding,
		ErrorHandling: handling,
	}
}

// SaveOptions maps the output section onto VTT save options.
func (c *Config) SaveOptions() vtt.SaveOptions {
	return vtt.SaveOptions{
		Encoding:       c.Output.Encoding,
		EOL:            eolSequence(c.Output.EOL),
		IncludeIndexes: c.Output.IncludeIndexes,
	}
}

// OutputPath places name inside the configured output directory, or
// returns it unchanged when none is set.
func (c *Config) OutputPath(name string) string {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return name
	}
	return filepath.Join(c.Output.Dir, filepath.Base(name))
}

func eolSequence(name string) string {
	switch name {
	case "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	case "cr":
		return "\r"
	default:
		return ""
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
