package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	envFontName = "VTT2ASS_FONT_NAME"
	envFontSize = "VTT2ASS_FONT_SIZE"
)

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv(envFontName); ok && strings.TrimSpace(value) != "" {
		c.Style.FontName = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envFontSize); ok && strings.TrimSpace(value) != "" {
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid font size %q", envFontSize, value)
		}
		c.Style.FontSize = size
	}
	return nil
}

func (c *Config) normalize() error {
	c.normalizeStyle()
	c.normalizeParser()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeStyle() {
	c.Style.FontName = strings.TrimSpace(c.Style.FontName)
	c.Transcoder.Title = strings.TrimSpace(c.Transcoder.Title)
}

func (c *Config) normalizeParser() {
	c.Parser.ErrorHandling = strings.ToLower(strings.TrimSpace(c.Parser.ErrorHandling))
	if c.Parser.ErrorHandling == "" {
		c.Parser.ErrorHandling = defaultErrorPolicy
	}
	c.Parser.Encoding = strings.ToLower(strings.TrimSpace(c.Parser.Encoding))
}

func (c *Config) normalizeOutput() error {
	var err error
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	c.Output.EOL = strings.ToLower(strings.TrimSpace(c.Output.EOL))
	if c.Output.EOL == "" {
		c.Output.EOL = "auto"
	}
	c.Output.Encoding = strings.ToLower(strings.TrimSpace(c.Output.Encoding))
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
