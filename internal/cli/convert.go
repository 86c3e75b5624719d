package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/ass"
	"github.com/mgpai22/vtt2ass/internal/export"
	"github.com/mgpai22/vtt2ass/internal/media"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_or_media_file]",
	Short: "Convert WebVTT subtitles to an ASS script",
	Long: `Convert a subtitle file to Advanced SubStation Alpha.

Plain cues use the yellow "dialogue" style, cues mentioning a song use
"song_lyrics", and cues with alignment settings or caption markers get a
style of their own named after the cue. line: and position: cue settings
become pixel margins on a 720x480 frame.

SRT and TTML input is accepted too. Any other file is treated as a media
container and its first text subtitle track (or --stream) is converted.

Examples:
  vtt2ass convert episode.vtt
  vtt2ass convert episode.vtt -o out/episode.ass --font "Noto Sans" --font-size 30
  vtt2ass convert movie.mkv --stream 1`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("font", "", "Font name (default from config, Arial)")
	convertCmd.Flags().Int("font-size", 0, "Font size (default from config, 26)")
	convertCmd.Flags().
		Int("vertical-offset", ass.DefaultOffset, "Pixels added to margins from line: settings")
	convertCmd.Flags().
		Int("horizontal-offset", ass.DefaultOffset, "Pixels added to margins from position: settings")
	convertCmd.Flags().String("title", "", "Script title")
	convertCmd.Flags().
		IntP("stream", "s", -1, "Subtitle stream to convert from a media file (default: first text stream)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	opts := convertOptions(cmd)
	outputPath := outputPathFor(cmd, inputPath, ".ass")

	logger.Infow("Converting subtitles",
		"input", inputPath,
		"output", outputPath,
		"font", opts.FontName,
		"font_size", opts.FontSize,
	)

	source := inputPath
	format, formatErr := export.FormatFromPath(inputPath)
	switch {
	case formatErr != nil:
		extracted, cleanup, err := extractForConversion(cmd.Context(), cmd, inputPath)
		if err != nil {
			return err
		}
		defer cleanup()
		source = extracted

	case format != export.FormatVTT:
		f, err := loadSubtitles(inputPath)
		if err != nil {
			return err
		}
		if err := ass.Build(f.Cues, opts).Save(outputPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
		return nil
	}

	result := ass.ConvertFileTo(source, outputPath, opts, logger)
	if result == source {
		return fmt.Errorf("conversion skipped: %s is missing or not a valid WebVTT file", inputPath)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
	return nil
}

// config values, overridden by flags the user actually set
func convertOptions(cmd *cobra.Command) ass.Options {
	opts := cfg.TranscoderOptions()
	opts.Input = openOptions()
	flags := cmd.Flags()

	if flags.Changed("font") {
		opts.FontName, _ = flags.GetString("font")
	}
	if flags.Changed("font-size") {
		opts.FontSize, _ = flags.GetInt("font-size")
	}
	if flags.Changed("vertical-offset") {
		opts.VerticalOffset, _ = flags.GetInt("vertical-offset")
	}
	if flags.Changed("horizontal-offset") {
		opts.HorizontalOffset, _ = flags.GetInt("horizontal-offset")
	}
	if flags.Changed("title") {
		opts.Title, _ = flags.GetString("title")
	}
	return opts
}

// pulls a text subtitle stream out of a media file into a temp WebVTT file
func extractForConversion(
	ctx context.Context,
	cmd *cobra.Command,
	mediaPath string,
) (string, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	stream, _ := cmd.Flags().GetInt("stream")

	if stream < 0 {
		streams, err := media.ListSubtitleStreams(ctx, mediaPath)
		if err != nil {
			return "", nil, err
		}
		for _, s := range streams {
			if s.IsText() {
				stream = s.Position
				break
			}
		}
		if stream < 0 {
			return "", nil, fmt.Errorf("no text subtitle stream found in %s", mediaPath)
		}
	}

	tempDir, err := os.MkdirTemp("", "vtt2ass-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tempDir) }

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	vttPath := filepath.Join(tempDir, base+".vtt")

	logger.Infow("Extracting subtitle stream", "media", mediaPath, "stream", stream)
	if err := media.ExtractSubtitle(ctx, mediaPath, stream, vttPath); err != nil {
		cleanup()
		return "", nil, err
	}
	return vttPath, cleanup, nil
}
