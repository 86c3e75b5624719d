package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
	"github.com/mgpai22/vtt2ass/internal/vtt"
)

// represents supported exchange formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatTTML Format = "ttml"
	FormatVTT  Format = "vtt"
)

var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

// ParseFormat accepts a format name with or without a leading dot.
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "srt":
		return FormatSRT, nil
	case "ttml", "xml", "dfxp":
		return FormatTTML, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ToSubtitles copies cues into astisub items. Markup tags are stripped and
// every text line becomes its own astisub line.
func ToSubtitles(f *vtt.File) *astisub.Subtitles {
	subs := astisub.NewSubtitles()
	for i, cue := range f.Cues {
		item := &astisub.Item{
			Index:   i + 1,
			StartAt: clamp(cue.Start),
			EndAt:   clamp(cue.End),
		}
		for _, line := range strings.Split(cue.TextWithoutTags(), "\n") {
			item.Lines = append(item.Lines, astisub.Line{
				Items: []astisub.LineItem{{Text: line}},
			})
		}
		subs.Items = append(subs.Items, item)
	}
	return subs
}

// FromSubtitles builds a VTT file from astisub items.
func FromSubtitles(subs *astisub.Subtitles) *vtt.File {
	cues := make([]*vtt.Cue, 0, len(subs.Items))
	for _, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, line := range item.Lines {
			var sb strings.Builder
			for _, li := range line.Items {
				sb.WriteString(li.Text)
			}
			lines = append(lines, sb.String())
		}

		index := ""
		if item.Index > 0 {
			index = strconv.Itoa(item.Index)
		}
		cues = append(cues, &vtt.Cue{
			Index: index,
			Start: vtt.FromDuration(item.StartAt),
			End:   vtt.FromDuration(item.EndAt),
			Text:  strings.Join(lines, "\n"),
		})
	}
	return vtt.NewFile(cues)
}

// Write encodes the cues of f in the given format.
func Write(f *vtt.File, format Format, w io.Writer) error {
	if f.Len() == 0 {
		return fmt.Errorf("%w: no cues", vtt.ErrInvalidFile)
	}

	subs := ToSubtitles(f)
	var err error
	switch format {
	case FormatSRT:
		err = subs.WriteToSRT(w)
	case FormatTTML:
		err = subs.WriteToTTML(w)
	case FormatVTT:
		err = subs.WriteToWebVTT(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}
	return nil
}

// WriteFile writes f to path, picking the format from the extension.
func WriteFile(f *vtt.File, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", format, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := Write(f, format, file); err != nil {
		return err
	}
	return file.Close()
}

// Read decodes SRT or TTML input into a VTT file.
func Read(r io.Reader, format Format) (*vtt.File, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)
	switch format {
	case FormatSRT:
		subs, err = astisub.ReadFromSRT(r)
	case FormatTTML:
		subs, err = astisub.ReadFromTTML(r)
	case FormatVTT:
		subs, err = astisub.ReadFromWebVTT(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", format, err)
	}
	if len(subs.Items) == 0 {
		return nil, fmt.Errorf("%w: no cues", vtt.ErrInvalidFile)
	}
	return FromSubtitles(subs), nil
}

// ReadFile opens a subtitle file in any supported format. WebVTT goes
// through the native parser so cue settings survive.
func ReadFile(path string, opts vtt.OpenOptions) (*vtt.File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatVTT {
		return vtt.Open(path, opts)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", format, err)
	}
	defer func() {
		_ = file.Close()
	}()

	f, err := Read(file, format)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

func clamp(t vtt.Time) time.Duration {
	if t < 0 {
		return 0
	}
	return t.Duration()
}
