package vtt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// File is an ordered, mutable collection of cues plus the metadata needed
// to save it again.
type File struct {
	Cues     []*Cue
	Path     string
	Encoding string

	eol string
}

// SliceOptions bounds a Slice. Nil bounds are ignored; all comparisons are
// strict.
type SliceOptions struct {
	StartsBefore *Time
	StartsAfter  *Time
	EndsBefore   *Time
	EndsAfter    *Time
}

// CleanOptions selects the independent text clean-ups of CleanText.
type CleanOptions struct {
	Tags     bool
	Brackets bool
	Keys     bool
	Trailing bool
}

type WriteOptions struct {
	// EOL overrides the file's line terminator when non-empty.
	EOL            string
	IncludeIndexes bool
}

func NewFile(cues []*Cue) *File {
	return &File{Cues: cues, Encoding: DefaultEncoding}
}

func (f *File) Len() int {
	return len(f.Cues)
}

// EOL returns the detected line terminator or the platform default.
func (f *File) EOL() string {
	if f.eol != "" {
		return f.eol
	}
	return defaultEOL()
}

func (f *File) SetEOL(eol string) {
	f.eol = eol
}

// Read parses r and appends its cues. The first detected line terminator
// is kept. A file left without cues is invalid.
func (f *File) Read(r io.Reader, opts ParseOptions) error {
	parser := NewParser(r, opts)
	cues, err := parser.All()
	if f.eol == "" {
		f.eol = parser.EOL()
	}
	f.Cues = append(f.Cues, cues...)
	if err != nil {
		return err
	}
	return f.checkValidLen()
}

// FromString parses an in-memory WebVTT document.
func FromString(source string, opts ParseOptions) (*File, error) {
	f := NewFile(nil)
	if err := f.Read(strings.NewReader(source), opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Slice returns a new File holding the cues that satisfy every bound. The
// cues are shared with f, so edits through the slice show up in f.
func (f *File) Slice(opts SliceOptions) *File {
	clone := &File{Path: f.Path, Encoding: f.Encoding, eol: f.eol}
	for _, cue := range f.Cues {
		if opts.StartsBefore != nil && !cue.Start.Before(*opts.StartsBefore) {
			continue
		}
		if opts.StartsAfter != nil && !cue.Start.After(*opts.StartsAfter) {
			continue
		}
		if opts.EndsBefore != nil && !cue.End.Before(*opts.EndsBefore) {
			continue
		}
		if opts.EndsAfter != nil && !cue.End.After(*opts.EndsAfter) {
			continue
		}
		clone.Cues = append(clone.Cues, cue)
	}
	return clone
}

// At returns the cues visible at t.
func (f *File) At(t Time) *File {
	return f.Slice(SliceOptions{StartsBefore: &t, EndsAfter: &t})
}

func (f *File) Shift(opts ShiftOptions) {
	for _, cue := range f.Cues {
		cue.Shift(opts)
	}
}

// CleanIndexes sorts the cues chronologically and renumbers them from 1.
func (f *File) CleanIndexes() {
	sort.SliceStable(f.Cues, func(i, j int) bool {
		return f.Cues[i].Less(f.Cues[j])
	})
	for i, cue := range f.Cues {
		cue.Index = fmt.Sprint(i + 1)
	}
}

// CleanText applies the selected clean-ups to every cue. Trailing space
// removal always runs last.
func (f *File) CleanText(opts CleanOptions) {
	for _, cue := range f.Cues {
		if opts.Tags {
			cue.Text = cue.TextWithoutTags()
		}
		if opts.Brackets {
			cue.Text = cue.TextWithoutBrackets()
		}
		if opts.Keys {
			cue.Text = cue.TextWithoutKeys()
		}
		if opts.Trailing {
			cue.Text = cue.TextWithoutTrailingSpaces()
		}
	}
}

func (f *File) ApplyReplacements(replacements []Replacement) {
	if len(replacements) == 0 {
		return
	}
	for _, cue := range f.Cues {
		cue.ApplyReplacements(replacements)
	}
}

// Text joins the text of every cue with newlines.
func (f *File) Text() string {
	texts := make([]string, len(f.Cues))
	for i, cue := range f.Cues {
		texts[i] = cue.Text
	}
	return strings.Join(texts, "\n")
}

// Write serializes the file as WebVTT.
func (f *File) Write(w io.Writer, opts WriteOptions) error {
	if err := f.checkValidLen(); err != nil {
		return err
	}
	eol := opts.EOL
	if eol == "" {
		eol = f.EOL()
	}

	writer := bufio.NewWriter(w)
	if _, err := writer.WriteString("WEBVTT" + eol + eol); err != nil {
		return err
	}

	for _, cue := range f.Cues {
		repr := cue.String()
		if eol != "\n" {
			repr = strings.ReplaceAll(repr, "\n", eol)
		}
		if opts.IncludeIndexes && cue.Index != "" {
			if _, err := writer.WriteString(cue.Index + eol); err != nil {
				return err
			}
		}
		if _, err := writer.WriteString(repr); err != nil {
			return err
		}
		// the text may already carry its separating blank line
		if !strings.HasSuffix(repr, eol+eol) {
			if _, err := writer.WriteString(eol); err != nil {
				return err
			}
		}
	}

	return writer.Flush()
}

// String renders the file with its own line terminator. Empty files render
// as an empty string.
func (f *File) String() string {
	var sb strings.Builder
	if err := f.Write(&sb, WriteOptions{}); err != nil {
		return ""
	}
	return sb.String()
}

func (f *File) checkValidLen() error {
	if len(f.Cues) < 1 {
		return fmt.Errorf("%w: no cues", ErrInvalidFile)
	}
	return nil
}
