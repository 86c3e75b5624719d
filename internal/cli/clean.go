package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/vtt"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [subtitle_file]",
	Short: "Strip markup and normalize cue text",
	Long: `Remove markup from cue text and optionally renumber cues.

--tags removes <...> markup, --brackets removes [...] annotations such as
sound descriptions, --keys removes {...} override blocks and --trailing
trims surrounding whitespace. --replace takes old=new pairs and may be
repeated; with --regex the left side is a regular expression.

Examples:
  vtt2ass clean episode.vtt --tags --trailing
  vtt2ass clean episode.vtt --brackets --reindex -o clean.vtt
  vtt2ass clean episode.vtt --replace "colour=color" --replace "\s{2,}= " --regex`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().Bool("tags", false, "Remove <...> markup")
	cleanCmd.Flags().Bool("brackets", false, "Remove [...] annotations")
	cleanCmd.Flags().Bool("keys", false, "Remove {...} blocks")
	cleanCmd.Flags().Bool("trailing", false, "Trim surrounding whitespace")
	cleanCmd.Flags().StringArray("replace", nil, "Replacement as old=new (repeatable)")
	cleanCmd.Flags().Bool("regex", false, "Treat the left side of --replace as a regular expression")
	cleanCmd.Flags().Bool("reindex", false, "Sort cues by time and renumber them from 1")
}

func runClean(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	flags := cmd.Flags()

	var opts vtt.CleanOptions
	opts.Tags, _ = flags.GetBool("tags")
	opts.Brackets, _ = flags.GetBool("brackets")
	opts.Keys, _ = flags.GetBool("keys")
	opts.Trailing, _ = flags.GetBool("trailing")
	pairs, _ := flags.GetStringArray("replace")
	useRegex, _ := flags.GetBool("regex")
	reindex, _ := flags.GetBool("reindex")

	replacements, err := parseReplacements(pairs, useRegex)
	if err != nil {
		return err
	}

	f, err := loadSubtitles(inputPath)
	if err != nil {
		return err
	}

	f.CleanText(opts)
	f.ApplyReplacements(replacements)
	if reindex {
		f.CleanIndexes()
	}

	outputPath := outputPathFor(cmd, inputPath, ".vtt")
	logger.Infow("Cleaning subtitles",
		"input", inputPath,
		"output", outputPath,
		"cues", f.Len(),
		"replacements", len(replacements),
		"reindex", reindex,
	)

	if err := saveSubtitles(f, outputPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
	return nil
}

func parseReplacements(pairs []string, useRegex bool) ([]vtt.Replacement, error) {
	replacements := make([]vtt.Replacement, 0, len(pairs))
	for _, pair := range pairs {
		old, with, ok := strings.Cut(pair, "=")
		if !ok || old == "" {
			return nil, fmt.Errorf("invalid replacement %q: expected old=new", pair)
		}
		if !useRegex {
			replacements = append(replacements, vtt.Replacement{Literal: old, With: with})
			continue
		}
		pattern, err := regexp.Compile(old)
		if err != nil {
			return nil, fmt.Errorf("invalid replacement pattern %q: %w", old, err)
		}
		replacements = append(replacements, vtt.Replacement{Pattern: pattern, With: with})
	}
	return replacements, nil
}
