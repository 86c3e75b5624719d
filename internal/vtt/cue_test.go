package vtt

import (
	"errors"
	"math"
	"regexp"
	"testing"
)

func TestParseCueString(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		wantIndex    string
		wantStart    Time
		wantEnd      Time
		wantPosition string
		wantText     string
	}{
		{
			name:         "index and settings",
			source:       "1\n00:00:01.000 --> 00:00:04.000 align:left line:84%\nHello [Caption]\n",
			wantIndex:    "1",
			wantStart:    NewTime(0, 0, 1, 0),
			wantEnd:      NewTime(0, 0, 4, 0),
			wantPosition: "align:left line:84%",
			wantText:     "Hello [Caption]",
		},
		{
			name:      "no identifier",
			source:    "00:00:05.500 --> 00:00:08.200\nThis is a test.\nWith multiple lines.",
			wantStart: NewTime(0, 0, 5, 500),
			wantEnd:   NewTime(0, 0, 8, 200),
			wantText:  "This is a test.\nWith multiple lines.",
		},
		{
			name:      "numeric identifier is normalized",
			source:    "007\r\n00:00:01,000 --> 00:00:02,000\r\ncomma separators\r\n",
			wantIndex: "7",
			wantStart: NewTime(0, 0, 1, 0),
			wantEnd:   NewTime(0, 0, 2, 0),
			wantText:  "comma separators",
		},
		{
			name:      "opaque identifier",
			source:    "intro-1\n00:00:01.000 --> 00:00:02.000\nhi",
			wantIndex: "intro-1",
			wantStart: NewTime(0, 0, 1, 0),
			wantEnd:   NewTime(0, 0, 2, 0),
			wantText:  "hi",
		},
		{
			name:         "extra spaces around settings",
			source:       "00:00:01.000   -->   00:00:02.000   position:10% line:0%  \nhi",
			wantStart:    NewTime(0, 0, 1, 0),
			wantEnd:      NewTime(0, 0, 2, 0),
			wantPosition: "position:10% line:0%",
			wantText:     "hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, err := ParseCueString(tt.source)
			if err != nil {
				t.Fatalf("ParseCueString: %v", err)
			}
			if cue.Index != tt.wantIndex {
				t.Errorf("index: got %q, want %q", cue.Index, tt.wantIndex)
			}
			if cue.Start != tt.wantStart || cue.End != tt.wantEnd {
				t.Errorf("times: got %s --> %s, want %s --> %s", cue.Start, cue.End, tt.wantStart, tt.wantEnd)
			}
			if cue.Position != tt.wantPosition {
				t.Errorf("position: got %q, want %q", cue.Position, tt.wantPosition)
			}
			if cue.Text != tt.wantText {
				t.Errorf("text: got %q, want %q", cue.Text, tt.wantText)
			}
		})
	}
}

func TestParseCueErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantTime bool
	}{
		{name: "single line", source: "00:00:01.000 --> 00:00:02.000\n"},
		{name: "missing separator", source: "00:00:01.000 xx 00:00:02.000\ntext\n"},
		{name: "two separators", source: "00:00:01.000 --> 00:00:02.000 --> 00:00:03.000\ntext\n"},
		{name: "index only", source: "1\ntext\n"},
		{name: "bad start", source: "00:00:xx.000 --> 00:00:02.000\ntext\n", wantTime: true},
		{name: "bad end", source: "00:00:01.000 --> 00:61:00.000\ntext\n", wantTime: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCueString(tt.source)
			if !errors.Is(err, ErrInvalidItem) {
				t.Fatalf("expected ErrInvalidItem, got %v", err)
			}
			if errors.Is(err, ErrInvalidTimeString) != tt.wantTime {
				t.Errorf("ErrInvalidTimeString match = %v, want %v", !tt.wantTime, tt.wantTime)
			}
		})
	}
}

func TestCueTextCleaners(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		clean func(*Cue) string
		want  string
	}{
		{"tags", "<i>Hello</i> <b>world</b>", (*Cue).TextWithoutTags, "Hello world"},
		{"class tags", "<c.yellow>Hi</c> there", (*Cue).TextWithoutTags, "Hi there"},
		{"voice tag", "<v Roger Bingham>We are in New York City", (*Cue).TextWithoutTags, "We are in New York City"},
		{"stray opener", "<unfinished line", (*Cue).TextWithoutTags, "unfinished line"},
		{"stray closer", "line ends>", (*Cue).TextWithoutTags, "line ends"},
		{"multi-line tags", "<i>one</i>\n<b>two</b>", (*Cue).TextWithoutTags, "one\ntwo"},
		{"brackets", "[Music] hello", (*Cue).TextWithoutBrackets, " hello"},
		{"brackets kept tags", "<i>[door slams]</i>", (*Cue).TextWithoutBrackets, "<i></i>"},
		{"keys", "{\\an8}Top line", (*Cue).TextWithoutKeys, "Top line"},
		{"trailing", "  padded \n", (*Cue).TextWithoutTrailingSpaces, "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue := &Cue{Text: tt.text}
			if got := tt.clean(cue); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCueCharactersPerSecond(t *testing.T) {
	cue := &Cue{Start: 0, End: FromOrdinal(2000), Text: "Hello"}
	if got := cue.CharactersPerSecond(); got != 2.5 {
		t.Errorf("got %v, want 2.5", got)
	}

	cue = &Cue{Start: 0, End: FromOrdinal(1000), Text: "<i>ab</i>\ncd"}
	if got := cue.CharactersPerSecond(); got != 4 {
		t.Errorf("tags and newlines should not count: got %v", got)
	}

	cue = &Cue{Start: FromOrdinal(500), End: FromOrdinal(500), Text: "instant"}
	if got := cue.CharactersPerSecond(); got != 0 || math.IsInf(got, 0) {
		t.Errorf("zero duration: got %v, want 0", got)
	}
}

func TestCueApplyReplacements(t *testing.T) {
	cue := &Cue{Text: "  Hello  colour world  "}
	got := cue.ApplyReplacements([]Replacement{
		{Literal: "colour", With: "color"},
		{Pattern: regexp.MustCompile(`\s{2,}`), With: " "},
	})
	if got != "Hello color world" {
		t.Errorf("got %q", got)
	}
	if cue.Text != got {
		t.Errorf("text not updated in place: %q", cue.Text)
	}
}

func TestCueStringAndOrdering(t *testing.T) {
	cue := &Cue{Start: NewTime(0, 0, 1, 0), End: NewTime(0, 0, 2, 0), Position: "line:10%", Text: "text"}
	if got := cue.String(); got != "00:00:01.000 --> 00:00:02.000 line:10%\ntext\n" {
		t.Errorf("got %q", got)
	}
	cue.Position = "  "
	if got := cue.String(); got != "00:00:01.000 --> 00:00:02.000\ntext\n" {
		t.Errorf("blank position should be omitted, got %q", got)
	}

	a := &Cue{Start: 1000, End: 3000}
	b := &Cue{Start: 1000, End: 2000}
	c := &Cue{Start: 500, End: 9000}
	if !b.Less(a) || a.Less(b) || !c.Less(b) {
		t.Error("cues must order by start, then end")
	}
	if a.Duration() != FromOrdinal(2000) {
		t.Errorf("duration: got %d", a.Duration())
	}
}
