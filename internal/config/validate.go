package config

import (
	"fmt"

	"github.com/mgpai22/vtt2ass/internal/logging"
	"github.com/mgpai22/vtt2ass/internal/vtt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStyle(); err != nil {
		return err
	}
	if err := c.validateParser(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStyle() error {
	if c.Style.FontName == "" {
		return fmt.Errorf("style.font_name must not be empty")
	}
	if c.Style.FontSize <= 0 {
		return fmt.Errorf("style.font_size must be positive, got %d", c.Style.FontSize)
	}
	return nil
}

func (c *Config) validateParser() error {
	if _, err := vtt.ParseErrorHandling(c.Parser.ErrorHandling); err != nil {
		return fmt.Errorf("parser.error_handling: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.EOL {
	case "auto", "lf", "crlf", "cr":
	default:
		return fmt.Errorf("output.eol must be one of auto, lf, crlf, cr; got %q", c.Output.EOL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json; got %q", c.Logging.Format)
	}
	return nil
}
