package ass

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/vtt"
)

const eventFormat = "Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

// Event is one Dialogue line of the [Events] section. Text is already in
// ASS form, with line breaks written as \N.
type Event struct {
	Layer   int
	Start   vtt.Time
	End     vtt.Time
	Style   string
	Name    string
	MarginL int
	MarginR int
	MarginV int
	Effect  string
	Text    string
}

func (e Event) String() string {
	return fmt.Sprintf("Dialogue: %d,%s,%s,%s,%s,%d,%d,%d,%s,%s",
		e.Layer,
		FormatTime(e.Start),
		FormatTime(e.End),
		e.Style,
		e.Name,
		e.MarginL,
		e.MarginR,
		e.MarginV,
		e.Effect,
		e.Text,
	)
}

// PlainText turns the event text back into newline separated lines.
func (e Event) PlainText() string {
	text := strings.ReplaceAll(e.Text, "\\N", "\n")
	return strings.ReplaceAll(text, "\\n", "\n")
}

// Margins converts the percentage based line: and position: cue settings
// into pixel margins against the reference resolution. Settings that are
// missing or unparsable keep the defaults.
func Margins(position string, opts Options) (marginL, marginV int) {
	marginL, marginV = DefaultMarginH, DefaultMarginV
	for _, token := range strings.Fields(position) {
		if p, ok := percentSetting(token, "line:"); ok {
			offset := p / 100 * PlayResY
			marginV = int(PlayResY - offset + float64(opts.VerticalOffset))
		}
		if p, ok := percentSetting(token, "position:"); ok {
			offset := p / 100 * PlayResX
			marginL = int(offset + float64(opts.HorizontalOffset))
		}
	}
	return marginL, marginV
}

// percentSetting reads "name:12.5%" and "name:12.5%,start" style tokens.
func percentSetting(token, name string) (float64, bool) {
	_, value, found := strings.Cut(token, name)
	if !found {
		return 0, false
	}
	value, _, _ = strings.Cut(value, ",")
	p, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

// FormatTime renders H:MM:SS.cc. Centiseconds are truncated and the
// leading character of the two digit hour field is dropped, so hours past
// nine keep only their last digit.
func FormatTime(t vtt.Time) string {
	if t < 0 {
		t = 0
	}
	full := fmt.Sprintf("%02d:%02d:%02d.%02d",
		t.Hours(), t.Minutes(), t.Seconds(), t.Milliseconds()/10)
	return full[1:]
}

var timestampRegex = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})(?:\.(\d{1,3}))?$`)

// ParseTime reads an H:MM:SS.cc timestamp.
func ParseTime(s string) (vtt.Time, error) {
	match := timestampRegex.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0, fmt.Errorf("invalid ASS timestamp %q", s)
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])

	millis := 0
	if frac := match[4]; frac != "" {
		// fraction digits are read as decimals of a second
		frac = (frac + "00")[:3]
		millis, _ = strconv.Atoi(frac)
	}
	return vtt.NewTime(hours, minutes, seconds, millis), nil
}
