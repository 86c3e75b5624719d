package ass

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/logging"
	"github.com/mgpai22/vtt2ass/internal/vtt"
)

// Options configures the transcoder. Empty font settings and title fall
// back to the package defaults; offsets are used as given, so start from
// DefaultOptions to get the tuned correction.
type Options struct {
	FontName         string
	FontSize         int
	VerticalOffset   int
	HorizontalOffset int
	Title            string

	// Input controls how source files are decoded and parsed.
	Input vtt.OpenOptions
}

func DefaultOptions() Options {
	return Options{
		FontName:         DefaultFontName,
		FontSize:         DefaultFontSize,
		VerticalOffset:   DefaultOffset,
		HorizontalOffset: DefaultOffset,
		Title:            DefaultTitle,
	}
}

func (o Options) fontName() string {
	if o.FontName == "" {
		return DefaultFontName
	}
	return o.FontName
}

func (o Options) fontSize() int {
	if o.FontSize <= 0 {
		return DefaultFontSize
	}
	return o.FontSize
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

// Convert renders a parsed VTT file as an ASS script.
func Convert(f *vtt.File, opts Options) string {
	return Build(f.Cues, opts).String()
}

// OutputPath swaps the extension of path for .ass.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".ass"
}

// ConvertFile converts the VTT file at path to an .ass file next to it and
// returns the new path. Conversion is best-effort: on any failure the
// problem is logged and the input path comes back unchanged.
func ConvertFile(path string, opts Options, logger *logging.Logger) string {
	return ConvertFileTo(path, OutputPath(path), opts, logger)
}

// ConvertFileTo is ConvertFile with an explicit destination.
func ConvertFileTo(path, output string, opts Options, logger *logging.Logger) string {
	if logger == nil {
		logger = logging.Nop()
	}

	f, err := vtt.Open(path, opts.Input)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debugw("File not found", "path", path)
		case errors.Is(err, vtt.ErrInvalidFile):
			logger.Debugw("Not a VTT file", "path", path)
		default:
			logger.Warnw("Skipping subtitle conversion", "path", path, "error", err)
		}
		return path
	}

	script := Build(f.Cues, opts)
	if err := script.Save(output); err != nil {
		logger.Warnw("Failed to write ASS file", "path", output, "error", err)
		return path
	}

	logger.Infow("Converted subtitles",
		"input", path,
		"output", output,
		"cues", len(script.Events),
		"styles", len(script.Styles),
	)
	return output
}
