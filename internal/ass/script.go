package ass

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/vtt"
)

// Script is a complete Advanced SubStation Alpha v4+ document.
type Script struct {
	Title    string
	PlayResX int
	PlayResY int
	Styles   []Style
	Events   []Event
}

// Build converts cues into a script. Styles are emitted once per distinct
// name, in the order events first reference them.
func Build(cues []*vtt.Cue, opts Options) *Script {
	script := &Script{
		Title:    opts.title(),
		PlayResX: PlayResX,
		PlayResY: PlayResY,
		Styles:   make([]Style, 0),
		Events:   make([]Event, 0, len(cues)),
	}

	seen := make(map[string]bool)
	for i, cue := range cues {
		class := Classify(cue)
		name := class.StyleName(cue, i+1)
		if !seen[name] {
			seen[name] = true
			script.Styles = append(script.Styles, StyleFor(class, name, opts))
		}

		marginL, marginV := Margins(cue.Position, opts)
		script.Events = append(script.Events, Event{
			Start:   cue.Start,
			End:     cue.End,
			Style:   name,
			Name:    cue.Index,
			MarginL: marginL,
			MarginV: marginV,
			Text:    eventText(cue),
		})
	}

	return script
}

func eventText(cue *vtt.Cue) string {
	text := strings.ReplaceAll(cue.TextWithoutTags(), "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", "\\N")
}

// Style returns the named style, if present.
func (s *Script) Style(name string) (Style, bool) {
	for _, style := range s.Styles {
		if style.Name == name {
			return style, true
		}
	}
	return Style{}, false
}

func (s *Script) header() string {
	var sb strings.Builder
	sb.WriteString("[Script Info]\n")
	sb.WriteString("; This is an Advanced Sub Station Alpha v4+ script.\n")
	sb.WriteString("Title: " + s.Title + "\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n")
	sb.WriteString("PlayResX: " + strconv.Itoa(s.PlayResX) + "\n")
	sb.WriteString("PlayResY: " + strconv.Itoa(s.PlayResY) + "\n")
	sb.WriteString("\n")
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: " + styleFormat + "\n")
	return sb.String()
}

func (s *Script) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

// WriteTo serializes the script.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	writer := bufio.NewWriter(w)
	var written int64

	write := func(line string) error {
		n, err := writer.WriteString(line)
		written += int64(n)
		return err
	}

	if err := write(s.header()); err != nil {
		return written, err
	}
	for _, style := range s.Styles {
		if err := write(style.String() + "\n"); err != nil {
			return written, err
		}
	}
	if err := write("\n\n[Events]\nFormat: " + eventFormat + "\n"); err != nil {
		return written, err
	}
	for _, event := range s.Events {
		if err := write(event.String() + "\n"); err != nil {
			return written, err
		}
	}

	return written, writer.Flush()
}

// Save writes the script to path, creating parent directories.
func (s *Script) Save(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ASS file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := s.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write ASS file: %w", err)
	}
	return file.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}
