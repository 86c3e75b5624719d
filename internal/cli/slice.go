package cli

import (
	"fmt"

	"github.com/mgpai22/vtt2ass/internal/vtt"
	"github.com/spf13/cobra"
)

var sliceCmd = &cobra.Command{
	Use:   "slice [subtitle_file]",
	Short: "Keep only the cues inside a time window",
	Long: `Keep the cues whose timings satisfy every given bound. Bounds are
strict and use WebVTT timestamps (HH:MM:SS.mmm).

Examples:
  vtt2ass slice episode.vtt --starts-after 00:10:00.000 --ends-before 00:20:00.000
  vtt2ass slice episode.vtt --at 00:05:12.500`,
	Args: cobra.ExactArgs(1),
	RunE: runSlice,
}

func init() {
	rootCmd.AddCommand(sliceCmd)

	sliceCmd.Flags().String("starts-before", "", "Keep cues starting before this time")
	sliceCmd.Flags().String("starts-after", "", "Keep cues starting after this time")
	sliceCmd.Flags().String("ends-before", "", "Keep cues ending before this time")
	sliceCmd.Flags().String("ends-after", "", "Keep cues ending after this time")
	sliceCmd.Flags().String("at", "", "Keep cues visible at this time")
}

func runSlice(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	var opts vtt.SliceOptions
	bounds := []struct {
		flag   string
		target **vtt.Time
	}{
		{"starts-before", &opts.StartsBefore},
		{"starts-after", &opts.StartsAfter},
		{"ends-before", &opts.EndsBefore},
		{"ends-after", &opts.EndsAfter},
	}
	for _, b := range bounds {
		t, err := timeFlag(cmd, b.flag)
		if err != nil {
			return err
		}
		*b.target = t
	}
	at, err := timeFlag(cmd, "at")
	if err != nil {
		return err
	}

	f, err := loadSubtitles(inputPath)
	if err != nil {
		return err
	}

	sliced := f.Slice(opts)
	if at != nil {
		sliced = sliced.At(*at)
	}
	if sliced.Len() == 0 {
		return fmt.Errorf("no cues match the given bounds")
	}

	outputPath := outputPathFor(cmd, inputPath, ".vtt")
	logger.Infow("Slicing subtitles",
		"input", inputPath,
		"output", outputPath,
		"kept", sliced.Len(),
		"total", f.Len(),
	)

	if err := saveSubtitles(sliced, outputPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d of %d cues)\n", outputPath, sliced.Len(), f.Len())
	return nil
}

func timeFlag(cmd *cobra.Command, name string) (*vtt.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return nil, nil
	}
	t, err := vtt.ParseTime(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &t, nil
}
