package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/ass"
	"github.com/mgpai22/vtt2ass/internal/media"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [media_file]",
	Short: "Extract a subtitle track from a media file",
	Long: `Extract a text subtitle track from a media container (mkv, mp4, ...)
and save it as WebVTT. Requires ffmpeg and ffprobe on PATH or in
VTT2ASS_FFMPEG_PATH / VTT2ASS_FFPROBE_PATH.

Examples:
  vtt2ass extract movie.mkv --list
  vtt2ass extract movie.mkv
  vtt2ass extract movie.mkv --stream 2 -o movie.en.vtt
  vtt2ass extract movie.mkv --ass`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", -1, "Subtitle stream number (default: first text stream)")
	extractCmd.Flags().
		BoolP("list", "l", false, "List subtitle streams and exit")
	extractCmd.Flags().
		Bool("ass", false, "Also convert the extracted track to ASS")
}

func runExtract(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	stream, _ := cmd.Flags().GetInt("stream")
	list, _ := cmd.Flags().GetBool("list")
	toASS, _ := cmd.Flags().GetBool("ass")

	ctx := cmd.Context()
	streams, err := media.ListSubtitleStreams(ctx, mediaPath)
	if err != nil {
		return fmt.Errorf("failed to probe media: %w", err)
	}

	if list {
		fmt.Fprintln(cmd.OutOrStdout(), renderStreams(streams))
		return nil
	}

	selected, err := selectStream(streams, stream)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		if selected.Language != "" {
			base += "." + selected.Language
		}
		outputPath = cfg.OutputPath(base + ".vtt")
	}

	logger.Infow("Extracting subtitles",
		"media", mediaPath,
		"output", outputPath,
		"stream", selected.Position,
		"codec", selected.Codec,
		"language", selected.Language,
	)

	if err := media.ExtractSubtitle(ctx, mediaPath, selected.Position, outputPath); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)

	if toASS {
		opts := cfg.TranscoderOptions()
		opts.Input = openOptions()
		result := ass.ConvertFile(outputPath, opts, logger)
		if result == outputPath {
			return fmt.Errorf("conversion skipped: %s is not a valid WebVTT file", outputPath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
	}

	return nil
}

// picks the requested stream, or the first text stream when position < 0
func selectStream(streams []media.SubtitleStream, position int) (media.SubtitleStream, error) {
	if len(streams) == 0 {
		return media.SubtitleStream{}, fmt.Errorf("no subtitle streams found")
	}
	for _, s := range streams {
		if position < 0 && !s.IsText() {
			continue
		}
		if position >= 0 && s.Position != position {
			continue
		}
		if !s.IsText() {
			return media.SubtitleStream{}, fmt.Errorf(
				"stream %d uses %s, which is not a text subtitle codec",
				s.Position,
				s.Codec,
			)
		}
		return s, nil
	}
	if position >= 0 {
		return media.SubtitleStream{}, fmt.Errorf("subtitle stream %d not found", position)
	}
	return media.SubtitleStream{}, fmt.Errorf("no text subtitle stream found")
}

func renderStreams(streams []media.SubtitleStream) string {
	if len(streams) == 0 {
		return "No subtitle streams found."
	}
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		var flags []string
		if s.Default {
			flags = append(flags, "default")
		}
		if s.Forced {
			flags = append(flags, "forced")
		}
		if !s.IsText() {
			flags = append(flags, "bitmap")
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Position),
			strconv.Itoa(s.Index),
			s.Codec,
			s.Language,
			s.Title,
			strings.Join(flags, ","),
		})
	}
	return renderTable(
		[]string{"Stream", "Index", "Codec", "Language", "Title", "Flags"},
		rows,
		[]columnAlignment{alignRight, alignRight},
	)
}
