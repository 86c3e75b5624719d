package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mgpai22/vtt2ass/internal/ffmpeg"
	"github.com/tidwall/gjson"
	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// subtitle stream found in a media container
type SubtitleStream struct {
	// Index is the absolute stream index in the container.
	Index int
	// Position counts subtitle streams only, as used by -map 0:s:N.
	Position int
	Codec    string
	Language string
	Title    string
	Default  bool
	Forced   bool
}

// text based codecs ffmpeg can re-encode as WebVTT
var textCodecs = map[string]bool{
	"webvtt":   true,
	"subrip":   true,
	"srt":      true,
	"ass":      true,
	"ssa":      true,
	"mov_text": true,
	"text":     true,
	"ttml":     true,
}

// IsText reports whether the stream can be converted to WebVTT. Bitmap
// subtitles such as PGS need OCR and are not supported.
func (s SubtitleStream) IsText() bool {
	return textCodecs[s.Codec]
}

func (s SubtitleStream) Label() string {
	parts := []string{fmt.Sprintf("#%d", s.Position)}
	if s.Language != "" {
		parts = append(parts, s.Language)
	}
	if s.Title != "" {
		parts = append(parts, fmt.Sprintf("%q", s.Title))
	}
	parts = append(parts, s.Codec)
	return strings.Join(parts, " ")
}

// ListSubtitleStreams probes path with ffprobe.
func ListSubtitleStreams(ctx context.Context, path string) ([]SubtitleStream, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("media file not found: %s", path)
	}

	ffprobePath, err := ffmpeg.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "s",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseStreams(out.Bytes())
}

func parseStreams(data []byte) ([]SubtitleStream, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse ffprobe output")
	}

	streams := make([]SubtitleStream, 0)
	gjson.GetBytes(data, "streams").ForEach(func(_, stream gjson.Result) bool {
		if codecType := stream.Get("codec_type"); codecType.Exists() && codecType.String() != "subtitle" {
			return true
		}
		streams = append(streams, SubtitleStream{
			Index:    int(stream.Get("index").Int()),
			Position: len(streams),
			Codec:    stream.Get("codec_name").String(),
			Language: stream.Get("tags.language").String(),
			Title:    stream.Get("tags.title").String(),
			Default:  stream.Get("disposition.default").Int() == 1,
			Forced:   stream.Get("disposition.forced").Int() == 1,
		})
		return true
	})
	return streams, nil
}

// ExtractArgs builds the ffmpeg arguments that write subtitle stream
// position of input to output as WebVTT.
func ExtractArgs(input string, position int, output string) []string {
	return ffmpeggo.Input(input).
		Output(output, ffmpeggo.KwArgs{
			"map": fmt.Sprintf("0:s:%d", position),
			"c:s": "webvtt",
			"f":   "webvtt",
		}).
		OverWriteOutput().
		GetArgs()
}

// ExtractSubtitle converts one subtitle stream of a media file to WebVTT.
func ExtractSubtitle(ctx context.Context, input string, position int, output string) error {
	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("media file not found: %s", input)
	}
	if position < 0 {
		return fmt.Errorf("invalid subtitle stream %d", position)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpeg.FFmpegPath()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, ExtractArgs(input, position, output)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if idx := strings.LastIndex(msg, "\n"); idx >= 0 {
			msg = msg[idx+1:]
		}
		return fmt.Errorf("subtitle extraction failed: %w: %s", err, msg)
	}

	return nil
}
