package cli

import (
	"fmt"

	"github.com/mgpai22/vtt2ass/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [subtitle_file]",
	Short: "Export subtitles to SRT, TTML or WebVTT",
	Long: `Write the cues of a subtitle file in another exchange format. The
format comes from --format or, when omitted, from the -o extension.
Markup tags are dropped on export.

Examples:
  vtt2ass export episode.vtt --format srt
  vtt2ass export episode.vtt -o episode.ttml
  vtt2ass export episode.srt -o episode.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "", "Output format (srt, ttml, vtt)")
}

func runExport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	formatName, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	if formatName == "" && outputPath == "" {
		return fmt.Errorf("pass --format or an -o path with a subtitle extension")
	}

	var (
		format export.Format
		err    error
	)
	if formatName != "" {
		format, err = export.ParseFormat(formatName)
	} else {
		format, err = export.FormatFromPath(outputPath)
	}
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = outputPathFor(cmd, inputPath, "."+string(format))
	}
	if outputPath == inputPath {
		return fmt.Errorf("output path %s would overwrite the input", outputPath)
	}

	f, err := loadSubtitles(inputPath)
	if err != nil {
		return err
	}

	logger.Infow("Exporting subtitles",
		"input", inputPath,
		"output", outputPath,
		"format", format,
		"cues", f.Len(),
	)

	if format == export.FormatVTT {
		err = f.Save(outputPath, cfg.SaveOptions())
	} else {
		err = export.WriteFile(f, outputPath)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
	return nil
}
