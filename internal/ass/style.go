package ass

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// reference rendering resolution; margins are computed against it
const (
	PlayResX = 720
	PlayResY = 480
)

const (
	DefaultFontName = "Arial"
	DefaultFontSize = 26
	DefaultTitle    = "converted from vtt"

	// DefaultOffset corrects the vertical placement of converted captions.
	// It was tuned by eye against common players.
	DefaultOffset  = -45
	DefaultMarginV = 10
	DefaultMarginH = 0
)

// colours are &HAABBGGRR
const (
	ColourWhite  = "&H00FFFFFF"
	ColourYellow = "&H0000FFFF"
	ColourBlue   = "&H00FFFF00"

	secondaryColour = "&H0300FFFF"
	outlineColour   = "&H00000000"
	backColour      = "&H02000000"
)

const (
	DialogueStyle   = "dialogue"
	SongLyricsStyle = "song_lyrics"
)

// numpad alignment codes, bottom row
const (
	AlignBottomLeft   = 1
	AlignBottomCenter = 2
	AlignBottomRight  = 3
)

const styleFormat = "Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, " +
	"Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, " +
	"Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"

// Style is one [V4+ Styles] record. Values are built fresh per record and
// never shared between styles.
type Style struct {
	Name            string
	FontName        string
	FontSize        float64
	PrimaryColour   string
	SecondaryColour string
	OutlineColour   string
	BackColour      string
	Bold            int
	Italic          int
	Underline       int
	StrikeOut       int
	ScaleX          float64
	ScaleY          float64
	Spacing         float64
	Angle           float64
	BorderStyle     int
	Outline         float64
	Shadow          float64
	Alignment       int
	MarginL         int
	MarginR         int
	MarginV         int
	Encoding        int
}

// BaseStyle returns the white, bottom-centred style every generated style
// starts from.
func BaseStyle(name, fontName string, fontSize int) Style {
	return Style{
		Name:            name,
		FontName:        fontName,
		FontSize:        float64(fontSize),
		PrimaryColour:   ColourWhite,
		SecondaryColour: secondaryColour,
		OutlineColour:   outlineColour,
		BackColour:      backColour,
		ScaleX:          100,
		ScaleY:          100,
		BorderStyle:     1,
		Outline:         2,
		Shadow:          1,
		Alignment:       AlignBottomCenter,
		Encoding:        1,
	}
}

// StyleFor builds the style a classification refers to.
func StyleFor(c Classification, name string, opts Options) Style {
	style := BaseStyle(name, opts.fontName(), opts.fontSize())
	switch c.Kind {
	case KindDialogue:
		style.PrimaryColour = ColourYellow
	case KindSongLyric:
		style.PrimaryColour = ColourBlue
	case KindCaption:
		style.Alignment = c.Alignment
	}
	return style
}

func (s Style) String() string {
	fields := []string{
		s.Name,
		s.FontName,
		formatNumber(s.FontSize),
		s.PrimaryColour,
		s.SecondaryColour,
		s.OutlineColour,
		s.BackColour,
		strconv.Itoa(s.Bold),
		strconv.Itoa(s.Italic),
		strconv.Itoa(s.Underline),
		strconv.Itoa(s.StrikeOut),
		formatNumber(s.ScaleX),
		formatNumber(s.ScaleY),
		formatNumber(s.Spacing),
		formatNumber(s.Angle),
		strconv.Itoa(s.BorderStyle),
		formatNumber(s.Outline),
		formatNumber(s.Shadow),
		strconv.Itoa(s.Alignment),
		strconv.Itoa(s.MarginL),
		strconv.Itoa(s.MarginR),
		strconv.Itoa(s.MarginV),
		strconv.Itoa(s.Encoding),
	}
	return "Style: " + strings.Join(fields, ",")
}

// CaptionStyleName derives a style name from a cue index. Anything but
// letters and digits becomes an underscore; unnamed cues fall back to
// their 1-based position.
func CaptionStyleName(index string, position int) string {
	if index == "" {
		return fmt.Sprintf("caption_%d", position)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, index)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
