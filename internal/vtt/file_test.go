package vtt

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode"
)

const sampleVTT = "WEBVTT\n\n" +
	"1\n" +
	"00:00:01.000 --> 00:00:04.000 align:left line:84%\n" +
	"Hello [Caption]\n\n" +
	"2\n" +
	"00:00:05.000 --> 00:00:07.000\n" +
	"Plain dialogue line\n"

func mustParse(t *testing.T, source string) *File {
	t.Helper()
	f, err := FromString(source, ParseOptions{ErrorHandling: ErrorRaise})
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	return f
}

func TestFileWrite(t *testing.T) {
	f := mustParse(t, sampleVTT)

	want := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:04.000 align:left line:84%\n" +
		"Hello [Caption]\n\n" +
		"00:00:05.000 --> 00:00:07.000\n" +
		"Plain dialogue line\n\n"
	if got := f.String(); got != want {
		t.Errorf("String():\n%q\nwant\n%q", got, want)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf, WriteOptions{IncludeIndexes: true}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n\n1\n00:00:01.000") || !strings.Contains(buf.String(), "\n\n2\n00:00:05.000") {
		t.Errorf("indexes missing:\n%s", buf.String())
	}

	buf.Reset()
	if err := f.Write(&buf, WriteOptions{EOL: "\r\n"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(strings.ReplaceAll(buf.String(), "\r\n", ""), "\n") {
		t.Errorf("bare LF left in CRLF output: %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "WEBVTT\r\n\r\n") {
		t.Errorf("header: %q", buf.String())
	}
}

func TestFileRoundTrip(t *testing.T) {
	f := mustParse(t, sampleVTT)

	var buf bytes.Buffer
	if err := f.Write(&buf, WriteOptions{IncludeIndexes: true}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	again := mustParse(t, buf.String())
	if diff := cmp.Diff(f.Cues, again.Cues); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileWriteTextWithTrailingNewline(t *testing.T) {
	f := NewFile([]*Cue{
		{Start: 0, End: 1000, Text: "already separated\n"},
		{Start: 1000, End: 2000, Text: "next"},
	})
	f.SetEOL("\n")
	want := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:01.000\nalready separated\n\n" +
		"00:00:01.000 --> 00:00:02.000\nnext\n\n"
	if got := f.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFileInvalid(t *testing.T) {
	if err := NewFile(nil).Write(&bytes.Buffer{}, WriteOptions{}); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("write of empty file: expected ErrInvalidFile, got %v", err)
	}
	if got := NewFile(nil).String(); got != "" {
		t.Errorf("empty file should render empty, got %q", got)
	}
	if _, err := FromString("WEBVTT\n\n", ParseOptions{}); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("header only: expected ErrInvalidFile, got %v", err)
	}
}

func TestFileSliceSharesCues(t *testing.T) {
	f := mustParse(t, sampleVTT+"\n00:00:08.000 --> 00:00:09.000\nthird\n")

	limit := NewTime(0, 0, 5, 0)
	early := f.Slice(SliceOptions{StartsBefore: &limit})
	if early.Len() != 1 {
		t.Fatalf("expected 1 cue, got %d", early.Len())
	}
	early.Cues[0].Text = "edited"
	if f.Cues[0].Text != "edited" {
		t.Error("slice must share cues with its source")
	}

	// bounds are strict
	late := f.Slice(SliceOptions{StartsAfter: &limit})
	if late.Len() != 1 || late.Cues[0].Text != "third" {
		t.Errorf("StartsAfter: got %d cues", late.Len())
	}

	end := NewTime(0, 0, 7, 0)
	if got := f.Slice(SliceOptions{EndsBefore: &end}).Len(); got != 1 {
		t.Errorf("EndsBefore: got %d cues", got)
	}
	if got := f.Slice(SliceOptions{EndsAfter: &end}).Len(); got != 1 {
		t.Errorf("EndsAfter: got %d cues", got)
	}

	if got := f.At(NewTime(0, 0, 6, 0)); got.Len() != 1 || got.Cues[0].Text != "Plain dialogue line" {
		t.Errorf("At: got %+v", got.Cues)
	}
	if got := f.At(NewTime(0, 0, 4, 500)).Len(); got != 0 {
		t.Errorf("At gap: got %d cues", got)
	}
}

func TestFileShift(t *testing.T) {
	f := mustParse(t, sampleVTT)
	f.Shift(ShiftOptions{Seconds: -2})
	if f.Cues[0].Start.Ordinal() != -1000 || f.Cues[1].End != NewTime(0, 0, 5, 0) {
		t.Errorf("got %s and %s", f.Cues[0].Start, f.Cues[1].End)
	}
}

func TestFileCleanIndexes(t *testing.T) {
	f := NewFile([]*Cue{
		{Index: "a", Start: 3000, End: 4000},
		{Index: "b", Start: 1000, End: 5000},
		{Index: "c", Start: 1000, End: 2000},
	})
	f.CleanIndexes()

	var got []int64
	for i, cue := range f.Cues {
		if want := string(rune('1' + i)); cue.Index != want {
			t.Errorf("cue %d index: got %q, want %q", i, cue.Index, want)
		}
		got = append(got, cue.End.Ordinal())
	}
	if diff := cmp.Diff([]int64{2000, 5000, 4000}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFileCleanText(t *testing.T) {
	f := NewFile([]*Cue{
		{Text: "<i>[Music]</i> {\\an8}Hello  "},
		{Text: "plain"},
	})
	opts := CleanOptions{Tags: true, Brackets: true, Keys: true, Trailing: true}
	f.CleanText(opts)
	first := []string{f.Cues[0].Text, f.Cues[1].Text}
	if diff := cmp.Diff([]string{"Hello", "plain"}, first); diff != "" {
		t.Errorf("clean mismatch (-want +got):\n%s", diff)
	}

	f.CleanText(opts)
	if f.Cues[0].Text != first[0] || f.Cues[1].Text != first[1] {
		t.Error("CleanText must be idempotent")
	}
}

func TestFileApplyReplacementsAndText(t *testing.T) {
	f := NewFile([]*Cue{{Text: "gonna go"}, {Text: "wanna stay"}})
	f.ApplyReplacements([]Replacement{
		{Pattern: regexp.MustCompile(`\b(gon|wan)na\b`), With: "${1}t to"},
	})
	if got := f.Text(); got != "gont to go\nwant to stay" {
		t.Errorf("got %q", got)
	}
}

func TestOpenUTF16(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.vtt")

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(sampleVTT)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Open(path, OpenOptions{ErrorHandling: ErrorRaise})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Encoding != "utf-16le" {
		t.Errorf("encoding: got %q", f.Encoding)
	}
	if f.Len() != 2 || f.Cues[0].Text != "Hello [Caption]" {
		t.Fatalf("unexpected cues: %+v", f.Cues)
	}

	out := filepath.Join(dir, "nested", "output.vtt")
	if err := f.Save(out, SaveOptions{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if DetectEncoding(raw) != DefaultEncoding {
		t.Errorf("saved file should carry no byte order mark")
	}

	reopened, err := Open(out, OpenOptions{Encoding: "utf-16le"})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if diff := cmp.Diff(f.Text(), reopened.Text()); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.vtt"), OpenOptions{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestDetectEncoding(t *testing.T) {
	tests := map[string][]byte{
		"utf-32le": {0xFF, 0xFE, 0x00, 0x00, 'W'},
		"utf-32be": {0x00, 0x00, 0xFE, 0xFF},
		"utf-16le": {0xFF, 0xFE, 'W', 0x00},
		"utf-16be": {0xFE, 0xFF, 0x00, 'W'},
		"utf-8":    []byte("\ufeffWEBVTT"),
	}
	for want, data := range tests {
		if got := DetectEncoding(data); got != want {
			t.Errorf("DetectEncoding(% x) = %q, want %q", data, got, want)
		}
	}
	if got := DetectEncoding([]byte("WEBVTT")); got != DefaultEncoding {
		t.Errorf("no mark: got %q", got)
	}
}
