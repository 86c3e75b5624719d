package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mgpai22/vtt2ass/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the vtt2ass configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an annotated sample configuration",
	Annotations: map[string]string{
		"skipConfigLoad": "true",
	},
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().String("path", "", "Where to write the file (default ~/.config/vtt2ass/config.toml)")
	configInitCmd.Flags().Bool("overwrite", false, "Replace an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("config already exists at %s (use --overwrite to replace)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config path: %w", err)
	}

	if err := config.CreateSample(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample config to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	encoded, err := cfg.Encode()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configExists {
		fmt.Fprintf(out, "# loaded from %s\n", loadedConfigPath)
	} else {
		fmt.Fprintf(out, "# %s not found, showing defaults\n", loadedConfigPath)
	}
	fmt.Fprint(out, encoded)
	return nil
}
