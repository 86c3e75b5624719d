package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mgpai22/vtt2ass/internal/vtt"
)

func sampleFile() *vtt.File {
	return vtt.NewFile([]*vtt.Cue{
		{Index: "1", Start: vtt.NewTime(0, 0, 1, 0), End: vtt.NewTime(0, 0, 4, 0), Position: "align:left", Text: "<i>Hello</i> [Caption]"},
		{Index: "2", Start: vtt.NewTime(0, 0, 5, 0), End: vtt.NewTime(0, 0, 7, 250), Text: "first line\nsecond line"},
	})
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"srt":    FormatSRT,
		".SRT":   FormatSRT,
		"ttml":   FormatTTML,
		".dfxp":  FormatTTML,
		"vtt":    FormatVTT,
		"webvtt": FormatVTT,
	}
	for input, want := range tests {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := FormatFromPath("movie.ass"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestToSubtitles(t *testing.T) {
	subs := ToSubtitles(sampleFile())
	if len(subs.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(subs.Items))
	}
	first := subs.Items[0]
	if first.StartAt != vtt.NewTime(0, 0, 1, 0).Duration() || first.Index != 1 {
		t.Errorf("first item: %+v", first)
	}
	if got := first.Lines[0].Items[0].Text; got != "Hello [Caption]" {
		t.Errorf("tags must be stripped, got %q", got)
	}
	if len(subs.Items[1].Lines) != 2 {
		t.Errorf("expected one astisub line per text line, got %d", len(subs.Items[1].Lines))
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sampleFile(), FormatSRT, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"00:00:01,000 --> 00:00:04,000",
		"00:00:05,000 --> 00:00:07,250",
		"Hello [Caption]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SRT output missing %q:\n%s", want, out)
		}
	}

	back, err := Read(strings.NewReader(out), FormatSRT)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var got []string
	for _, cue := range back.Cues {
		got = append(got, cue.Start.String()+" "+cue.End.String()+" "+cue.Text)
	}
	want := []string{
		"00:00:01.000 00:00:04.000 Hello [Caption]",
		"00:00:05.000 00:00:07.250 first line\nsecond line",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTTML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sampleFile(), FormatTTML, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "<tt") || !strings.Contains(buf.String(), "Hello [Caption]") {
		t.Errorf("unexpected TTML:\n%s", buf.String())
	}
}

func TestWriteErrors(t *testing.T) {
	if err := Write(vtt.NewFile(nil), FormatSRT, &bytes.Buffer{}); !errors.Is(err, vtt.ErrInvalidFile) {
		t.Errorf("expected ErrInvalidFile, got %v", err)
	}
	if err := Write(sampleFile(), Format("stl"), &bytes.Buffer{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "episode.srt")
	if err := WriteFile(sampleFile(), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}

	f, err := ReadFile(path, vtt.OpenOptions{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.Len() != 2 || f.Path != path {
		t.Errorf("got %d cues from %q", f.Len(), f.Path)
	}

	vttPath := filepath.Join(dir, "episode.vtt")
	if err := sampleFile().Save(vttPath, vtt.SaveOptions{EOL: "\n"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	native, err := ReadFile(vttPath, vtt.OpenOptions{})
	if err != nil {
		t.Fatalf("ReadFile vtt: %v", err)
	}
	if native.Cues[0].Position != "align:left" {
		t.Errorf("native parser must keep cue settings, got %q", native.Cues[0].Position)
	}
}
