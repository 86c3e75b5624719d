package ass

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseFile reads an ASS script from disk.
func ParseFile(path string) (*Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ASS file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Parse(file)
}

// Parse reads the script info, styles and dialogue events of an ASS
// script. Fields are located through each section's Format line; other
// sections and event types are ignored.
func Parse(r io.Reader) (*Script, error) {
	script := &Script{
		Styles: make([]Style, 0),
		Events: make([]Event, 0),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	section := ""
	var styleColumns, eventColumns []string
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, ";") {
			continue
		}

		if strings.HasPrefix(trimmedLine, "[") &&
			strings.HasSuffix(trimmedLine, "]") {
			section = strings.ToLower(
				strings.TrimSuffix(strings.TrimPrefix(trimmedLine, "["), "]"),
			)
			continue
		}

		key, value, ok := strings.Cut(trimmedLine, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch section {
		case "script info":
			if err := script.setInfo(key, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}

		case "v4+ styles", "v4 styles":
			switch key {
			case "Format":
				styleColumns = splitFormat(value)
			case "Style":
				if styleColumns == nil {
					styleColumns = splitFormat(styleFormat)
				}
				style, err := parseStyle(splitFields(value, len(styleColumns)), styleColumns)
				if err != nil {
					return nil, fmt.Errorf("failed to parse Style at line %d: %w", lineNum, err)
				}
				script.Styles = append(script.Styles, style)
			}

		case "events":
			switch key {
			case "Format":
				eventColumns = splitFormat(value)
				if !hasColumn(eventColumns, "Text") {
					return nil, fmt.Errorf("ASS file missing Text column in Format line")
				}
			case "Dialogue":
				if eventColumns == nil {
					return nil, fmt.Errorf(
						"ASS file missing Format line in [Events] section",
					)
				}
				event, err := parseEvent(splitFields(value, len(eventColumns)), eventColumns)
				if err != nil {
					return nil, fmt.Errorf("failed to parse Dialogue at line %d: %w", lineNum, err)
				}
				script.Events = append(script.Events, event)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASS file: %w", err)
	}

	if eventColumns == nil {
		return nil, fmt.Errorf(
			"ASS file missing Format line in [Events] section",
		)
	}

	return script, nil
}

func (s *Script) setInfo(key, value string) error {
	var err error
	switch key {
	case "Title":
		s.Title = value
	case "PlayResX":
		s.PlayResX, err = strconv.Atoi(value)
	case "PlayResY":
		s.PlayResY, err = strconv.Atoi(value)
	}
	if err != nil {
		return fmt.Errorf("invalid %s %q", key, value)
	}
	return nil
}

func splitFormat(format string) []string {
	columns := strings.Split(format, ",")
	for i, col := range columns {
		columns[i] = strings.TrimSpace(col)
	}
	return columns
}

func hasColumn(columns []string, name string) bool {
	for _, col := range columns {
		if strings.EqualFold(col, name) {
			return true
		}
	}
	return false
}

// splitFields splits on commas, leaving any further commas in the last
// field, which is where ASS keeps free text.
func splitFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}

	parts := make([]string, 0, numFields)
	remaining := content

	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			remaining = ""
			break
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}

	parts = append(parts, remaining)

	return parts
}

// fieldReader collects the first conversion error so parsers can read a
// whole record before checking.
type fieldReader struct {
	err error
}

func (fr *fieldReader) int(column, value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil && fr.err == nil {
		fr.err = fmt.Errorf("invalid %s %q", column, value)
	}
	return n
}

func (fr *fieldReader) float(column, value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil && fr.err == nil {
		fr.err = fmt.Errorf("invalid %s %q", column, value)
	}
	return f
}

func parseStyle(fields, columns []string) (Style, error) {
	if len(fields) < len(columns) {
		return Style{}, fmt.Errorf("expected %d fields, got %d", len(columns), len(fields))
	}

	var style Style
	var fr fieldReader
	for i, column := range columns {
		value := strings.TrimSpace(fields[i])
		switch strings.ToLower(column) {
		case "name":
			style.Name = value
		case "fontname":
			style.FontName = value
		case "fontsize":
			style.FontSize = fr.float(column, value)
		case "primarycolour":
			style.PrimaryColour = value
		case "secondarycolour":
			style.SecondaryColour = value
		case "outlinecolour", "tertiarycolour":
			style.OutlineColour = value
		case "backcolour":
			style.BackColour = value
		case "bold":
			style.Bold = fr.int(column, value)
		case "italic":
			style.Italic = fr.int(column, value)
		case "underline":
			style.Underline = fr.int(column, value)
		case "strikeout":
			style.StrikeOut = fr.int(column, value)
		case "scalex":
			style.ScaleX = fr.float(column, value)
		case "scaley":
			style.ScaleY = fr.float(column, value)
		case "spacing":
			style.Spacing = fr.float(column, value)
		case "angle":
			style.Angle = fr.float(column, value)
		case "borderstyle":
			style.BorderStyle = fr.int(column, value)
		case "outline":
			style.Outline = fr.float(column, value)
		case "shadow":
			style.Shadow = fr.float(column, value)
		case "alignment":
			style.Alignment = fr.int(column, value)
		case "marginl":
			style.MarginL = fr.int(column, value)
		case "marginr":
			style.MarginR = fr.int(column, value)
		case "marginv":
			style.MarginV = fr.int(column, value)
		case "encoding":
			style.Encoding = fr.int(column, value)
		}
	}
	return style, fr.err
}

func parseEvent(fields, columns []string) (Event, error) {
	if len(fields) < len(columns) {
		return Event{}, fmt.Errorf("expected %d fields, got %d", len(columns), len(fields))
	}

	var event Event
	var fr fieldReader
	for i, column := range columns {
		value := fields[i]
		switch strings.ToLower(column) {
		case "layer":
			event.Layer = fr.int(column, value)
		case "start", "end":
			t, err := ParseTime(value)
			if err != nil && fr.err == nil {
				fr.err = err
			}
			if strings.EqualFold(column, "start") {
				event.Start = t
			} else {
				event.End = t
			}
		case "style":
			event.Style = strings.TrimSpace(value)
		case "name", "actor":
			event.Name = strings.TrimSpace(value)
		case "marginl":
			event.MarginL = fr.int(column, value)
		case "marginr":
			event.MarginR = fr.int(column, value)
		case "marginv":
			event.MarginV = fr.int(column, value)
		case "effect":
			event.Effect = value
		case "text":
			event.Text = value
		}
	}
	return event, fr.err
}
