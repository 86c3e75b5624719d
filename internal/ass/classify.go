package ass

import (
	"strings"

	"github.com/mgpai22/vtt2ass/internal/vtt"
)

type Kind int

const (
	KindDialogue Kind = iota
	KindSongLyric
	KindCaption
)

func (k Kind) String() string {
	switch k {
	case KindSongLyric:
		return "song"
	case KindCaption:
		return "caption"
	default:
		return "dialogue"
	}
}

// Classification is computed once per cue. Alignment is only meaningful
// for captions.
type Classification struct {
	Kind      Kind
	Alignment int
}

// Classify decides how a cue is styled. Cue settings mentioning align, or
// text mentioning a caption, win over song lyrics, which win over plain
// dialogue.
func Classify(cue *vtt.Cue) Classification {
	if strings.Contains(cue.Position, "align") ||
		strings.Contains(cue.Text, "Caption") ||
		strings.Contains(cue.Text, "caption") {
		return Classification{Kind: KindCaption, Alignment: captionAlignment(cue.Position)}
	}
	if strings.Contains(cue.Text, "song") || strings.Contains(cue.Text, "Song") {
		return Classification{Kind: KindSongLyric, Alignment: AlignBottomCenter}
	}
	return Classification{Kind: KindDialogue, Alignment: AlignBottomCenter}
}

func captionAlignment(position string) int {
	switch {
	case strings.Contains(position, "align:left"):
		return AlignBottomLeft
	case strings.Contains(position, "align:right"):
		return AlignBottomRight
	default:
		return AlignBottomCenter
	}
}

// StyleName is the style an event of this classification refers to.
func (c Classification) StyleName(cue *vtt.Cue, position int) string {
	switch c.Kind {
	case KindCaption:
		return CaptionStyleName(cue.Index, position)
	case KindSongLyric:
		return SongLyricsStyle
	default:
		return DialogueStyle
	}
}
