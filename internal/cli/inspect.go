package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/ass"
	"github.com/mgpai22/vtt2ass/internal/vtt"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "Show the cues of a subtitle file as a table",
	Long: `Print a table of cues with their timings, reading speed and the ASS
style class the converter would assign. ASS scripts are listed with their
styles and dialogue events.

Examples:
  vtt2ass inspect episode.vtt
  vtt2ass inspect episode.vtt --limit 20
  vtt2ass inspect episode.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntP("limit", "n", 0, "Show at most this many rows (0 = all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	limit, _ := cmd.Flags().GetInt("limit")
	out := cmd.OutOrStdout()

	if strings.EqualFold(filepath.Ext(inputPath), ".ass") {
		script, err := ass.ParseFile(inputPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderScript(script, limit))
		return nil
	}

	f, err := loadSubtitles(inputPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderCues(f, limit))
	fmt.Fprintf(out, "%d cues, %s total\n", f.Len(), spanOf(f))
	return nil
}

func renderCues(f *vtt.File, limit int) string {
	cues := f.Cues
	if limit > 0 && len(cues) > limit {
		cues = cues[:limit]
	}

	rows := make([][]string, 0, len(cues))
	for _, cue := range cues {
		rows = append(rows, []string{
			cue.Index,
			cue.Start.String(),
			cue.End.String(),
			strconv.FormatFloat(cue.CharactersPerSecond(), 'f', 1, 64),
			ass.Classify(cue).Kind.String(),
			cue.Position,
			preview(cue.TextWithoutTags()),
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "CPS", "Class", "Settings", "Text"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	)
}

func renderScript(script *ass.Script, limit int) string {
	styleRows := make([][]string, 0, len(script.Styles))
	for _, s := range script.Styles {
		styleRows = append(styleRows, []string{
			s.Name,
			s.FontName,
			strconv.FormatFloat(s.FontSize, 'f', -1, 64),
			s.PrimaryColour,
			strconv.Itoa(s.Alignment),
			strconv.Itoa(s.MarginL),
			strconv.Itoa(s.MarginV),
		})
	}

	events := script.Events
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	eventRows := make([][]string, 0, len(events))
	for _, e := range events {
		eventRows = append(eventRows, []string{
			ass.FormatTime(e.Start),
			ass.FormatTime(e.End),
			e.Style,
			strconv.Itoa(e.MarginL),
			strconv.Itoa(e.MarginV),
			preview(e.PlainText()),
		})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%dx%d)\n", script.Title, script.PlayResX, script.PlayResY)
	sb.WriteString(renderTable(
		[]string{"Style", "Font", "Size", "Colour", "Align", "MarginL", "MarginV"},
		styleRows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight},
	))
	sb.WriteString("\n")
	sb.WriteString(renderTable(
		[]string{"Start", "End", "Style", "MarginL", "MarginV", "Text"},
		eventRows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
	return sb.String()
}

// time from the first start to the last end
func spanOf(f *vtt.File) string {
	if f.Len() == 0 {
		return vtt.Time(0).String()
	}
	first, last := f.Cues[0].Start, f.Cues[0].End
	for _, cue := range f.Cues[1:] {
		if cue.Start.Before(first) {
			first = cue.Start
		}
		if cue.End.After(last) {
			last = cue.End
		}
	}
	return last.Sub(first).String()
}
