package vtt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const timestampSeparator = "-->"

var (
	tagRegex     = regexp.MustCompile(`<[^>]*?>`)
	bracketRegex = regexp.MustCompile(`\[[^\]]*?\]`)
	keyRegex     = regexp.MustCompile(`\{[^}]*?\}`)
)

// Cue is a single subtitle display event.
type Cue struct {
	// Index is the cue identifier. Numeric identifiers are kept in their
	// canonical integer form; empty when the source had none.
	Index    string
	Start    Time
	End      Time
	Position string
	Text     string
}

// Replacement is one substitution applied to cue text. Pattern takes
// precedence over Literal when set.
type Replacement struct {
	Literal string
	Pattern *regexp.Regexp
	With    string
}

func NewCue(index string, start, end Time, text, position string) *Cue {
	return &Cue{
		Index:    normalizeIndex(index),
		Start:    start,
		End:      end,
		Position: position,
		Text:     text,
	}
}

func normalizeIndex(index string) string {
	if n, err := strconv.Atoi(strings.TrimSpace(index)); err == nil {
		return strconv.Itoa(n)
	}
	return index
}

func (c *Cue) Duration() Time {
	return c.End.Sub(c.Start)
}

func (c *Cue) TextWithoutTags() string {
	return cleanDelimited(c.Text, '<', '>', tagRegex)
}

func (c *Cue) TextWithoutBrackets() string {
	return cleanDelimited(c.Text, '[', ']', bracketRegex)
}

func (c *Cue) TextWithoutKeys() string {
	return cleanDelimited(c.Text, '{', '}', keyRegex)
}

func (c *Cue) TextWithoutTrailingSpaces() string {
	return strings.TrimSpace(c.Text)
}

// CharactersPerSecond counts visible characters (tags and line breaks
// excluded) over the cue duration. Zero-length cues report 0.
func (c *Cue) CharactersPerSecond() float64 {
	chars := utf8.RuneCountInString(strings.ReplaceAll(c.TextWithoutTags(), "\n", ""))
	ms := c.Duration().Ordinal()
	if ms == 0 {
		return 0
	}
	return float64(chars) / (float64(ms) / 1000)
}

// ApplyReplacements runs the substitutions in order and trims the result.
func (c *Cue) ApplyReplacements(replacements []Replacement) string {
	for _, r := range replacements {
		if r.Pattern != nil {
			c.Text = r.Pattern.ReplaceAllString(c.Text, r.With)
			continue
		}
		if r.Literal == "" {
			continue
		}
		c.Text = strings.ReplaceAll(c.Text, r.Literal, r.With)
	}
	c.Text = strings.TrimSpace(c.Text)
	return c.Text
}

// Shift moves both ends of the cue.
func (c *Cue) Shift(opts ShiftOptions) {
	c.Start.Shift(opts)
	c.End.Shift(opts)
}

// Less orders cues by start, then end.
func (c *Cue) Less(o *Cue) bool {
	if c.Start != o.Start {
		return c.Start < o.Start
	}
	return c.End < o.End
}

// String renders the timing line and text, without the index.
func (c *Cue) String() string {
	position := ""
	if strings.TrimSpace(c.Position) != "" {
		position = " " + c.Position
	}
	return fmt.Sprintf("%s --> %s%s\n%s\n", c.Start, c.End, position, c.Text)
}

// ParseCueString parses a single cue block.
func ParseCueString(source string) (*Cue, error) {
	return ParseCue(splitLinesKeepEnds(source))
}

// ParseCue parses the lines of one cue block. Line terminators may be
// present.
func ParseCue(lines []string) (*Cue, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: expected at least 2 lines, got %d", ErrInvalidItem, len(lines))
	}
	stripped := make([]string, len(lines))
	for i, line := range lines {
		stripped[i] = strings.TrimRight(line, "\r\n")
	}
	stripped[0] = strings.TrimRight(stripped[0], " \t\f\v")

	index := ""
	if !strings.Contains(stripped[0], timestampSeparator) {
		index = stripped[0]
		stripped = stripped[1:]
	}

	start, end, position, err := splitTimestamps(stripped[0])
	if err != nil {
		return nil, err
	}

	startTime, err := ParseTime(start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %w", ErrInvalidItem, err)
	}
	endTime, err := ParseTime(end)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %w", ErrInvalidItem, err)
	}

	body := strings.Join(stripped[1:], "\n")
	return NewCue(index, startTime, endTime, body, position), nil
}

func splitTimestamps(line string) (string, string, string, error) {
	parts := strings.Split(line, timestampSeparator)
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf(
			"%w: expected one %q separator in %q",
			ErrInvalidItem,
			timestampSeparator,
			line,
		)
	}
	start := parts[0]
	end, position, _ := strings.Cut(strings.TrimLeft(parts[1], " \t"), " ")
	return strings.TrimSpace(start), strings.TrimSpace(end), strings.TrimSpace(position), nil
}

// cleanDelimited drops a stray opening or closing delimiter on lines where
// it is unbalanced, then removes every delimited span.
func cleanDelimited(text string, open, closing rune, span *regexp.Regexp) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		opens := strings.Count(line, string(open))
		closes := strings.Count(line, string(closing))
		if opens == 1 && closes == 0 && strings.HasPrefix(line, string(open)) {
			line = line[1:]
		}
		if closes == 1 && opens == 0 && strings.HasSuffix(line, string(closing)) {
			line = line[:len(line)-1]
		}
		lines[i] = line
	}
	return span.ReplaceAllString(strings.Join(lines, "\n"), "")
}

func splitLinesKeepEnds(s string) []string {
	var lines []string
	for len(s) > 0 {
		n := lineLength(s)
		lines = append(lines, s[:n])
		s = s[n:]
	}
	return lines
}

// lineLength returns the length of the first line of s including its
// terminator.
func lineLength(s string) int {
	i := strings.IndexAny(s, "\r\n")
	if i < 0 {
		return len(s)
	}
	if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
		return i + 2
	}
	return i + 1
}
