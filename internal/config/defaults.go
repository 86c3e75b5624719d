package config

import "github.com/mgpai22/vtt2ass/internal/ass"

const (
	defaultConfigPath  = "~/.config/vtt2ass/config.toml"
	projectConfigName  = "vtt2ass.toml"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultErrorPolicy = "pass"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Style: Style{
			FontName: ass.DefaultFontName,
			FontSize: ass.DefaultFontSize,
		},
		Transcoder: Transcoder{
			VerticalOffset:   ass.DefaultOffset,
			HorizontalOffset: ass.DefaultOffset,
			Title:            ass.DefaultTitle,
		},
		Parser: Parser{
			ErrorHandling: defaultErrorPolicy,
		},
		Output: Output{
			EOL: "auto",
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
