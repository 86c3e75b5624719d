package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mgpai22/vtt2ass/internal/export"
	"github.com/mgpai22/vtt2ass/internal/vtt"
	"github.com/spf13/cobra"
)

// loads WebVTT, SRT or TTML input as a cue collection
func loadSubtitles(path string) (*vtt.File, error) {
	f, err := export.ReadFile(path, openOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load subtitles: %w", err)
	}
	return f, nil
}

// parser options from config, with skipped blocks reported through the logger
func openOptions() vtt.OpenOptions {
	opts := cfg.OpenOptions()
	opts.Diagnostics = logger.Writer()
	return opts
}

// resolves the -o flag, defaulting to the input name with ext
func outputPathFor(cmd *cobra.Command, inputPath, ext string) string {
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		return outputPath
	}
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return cfg.OutputPath(base + ext)
}

// writes f as WebVTT unless the destination extension asks for another format
func saveSubtitles(f *vtt.File, outputPath string) error {
	format, err := export.FormatFromPath(outputPath)
	if err != nil || format == export.FormatVTT {
		if err := f.Save(outputPath, cfg.SaveOptions()); err != nil {
			return fmt.Errorf("failed to save subtitles: %w", err)
		}
		return nil
	}
	if err := export.WriteFile(f, outputPath); err != nil {
		return fmt.Errorf("failed to save subtitles: %w", err)
	}
	return nil
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    60,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// single line preview of cue text for tables
func preview(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " / ")
}
