package cli

import (
	"fmt"
	"time"

	"github.com/mgpai22/vtt2ass/internal/vtt"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Shift or rescale cue timings",
	Long: `Move every cue by a fixed offset and/or rescale timings by a ratio.

The ratio is applied first, then the offset, so converting between frame
rates and re-syncing can be done in one pass.

Examples:
  vtt2ass shift episode.vtt --by 1.5s
  vtt2ass shift episode.vtt --by -800ms -o synced.vtt
  vtt2ass shift episode.vtt --ratio 1.04271`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().Duration("by", 0, "Offset to add to every timing (e.g. 2s, -1m30s, 250ms)")
	shiftCmd.Flags().Float64("ratio", 0, "Scale factor applied to every timing before the offset")
}

func runShift(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	by, _ := cmd.Flags().GetDuration("by")
	ratio, _ := cmd.Flags().GetFloat64("ratio")
	if by == 0 && ratio == 0 {
		return fmt.Errorf("nothing to do: pass --by and/or --ratio")
	}
	if ratio < 0 {
		return fmt.Errorf("invalid ratio %v: must be positive", ratio)
	}

	f, err := loadSubtitles(inputPath)
	if err != nil {
		return err
	}

	f.Shift(vtt.ShiftOptions{
		Milliseconds: int(by / time.Millisecond),
		Ratio:        ratio,
	})

	outputPath := outputPathFor(cmd, inputPath, ".vtt")
	logger.Infow("Shifting subtitles",
		"input", inputPath,
		"output", outputPath,
		"offset", by.String(),
		"ratio", ratio,
		"cues", f.Len(),
	)

	if err := saveSubtitles(f, outputPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
	return nil
}
