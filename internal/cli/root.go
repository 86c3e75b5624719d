package cli

import (
	"fmt"

	"github.com/mgpai22/vtt2ass/internal/config"
	"github.com/mgpai22/vtt2ass/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger

	// resolved config location, set once the config has been loaded
	loadedConfigPath string
	configExists     bool
)

var rootCmd = &cobra.Command{
	Use:   "vtt2ass",
	Short: "WebVTT toolkit and ASS subtitle converter",
	Long: `vtt2ass converts WebVTT subtitles into Advanced SubStation Alpha
scripts, keeping caption placement and styling dialogue, song lyrics and
positioned captions differently.

It also shifts, cleans, slices and inspects WebVTT files, exports them to
SRT or TTML, and pulls subtitle tracks out of media containers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["skipConfigLoad"] == "true" {
			defaults := config.Default()
			cfg = &defaults
			logger = logging.NewLogger(verbose)
			return nil
		}

		loaded, path, exists, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		loadedConfigPath, configExists = path, exists
		logger = newLogger(cfg)
		logger.Debugw("Loaded configuration", "path", path, "exists", exists)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ~/.config/vtt2ass/config.toml or ./vtt2ass.toml)")
}

func newLogger(c *config.Config) *logging.Logger {
	level := c.Logging.Level
	if verbose {
		level = "debug"
	}
	l, err := logging.New(logging.Options{Level: level, Format: c.Logging.Format})
	if err != nil {
		return logging.NewLogger(verbose)
	}
	return l
}
