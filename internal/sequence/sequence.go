package sequence

import (
	"image"

	"github.com/overtype/typeover/internal/canvas"
	"github.com/overtype/typeover/internal/text"
)

// RevealFrame pairs one rasterized reveal step with the time it stays
// on screen. Frames are produced here and consumed read-only by the
// compositor.
type RevealFrame struct {
	Image    *image.RGBA
	Duration float64 // seconds
}

// OverlaySequence is the ordered reveal animation. After hold extension
// its total duration covers the base video whenever the video outlasts
// the animation.
type OverlaySequence struct {
	Frames []RevealFrame
}

// TotalDuration sums the member frame durations.
func (s *OverlaySequence) TotalDuration() float64 {
	total := 0.0
	for _, f := range s.Frames {
		total += f.Duration
	}
	return total
}

// IndexAt returns the index of the frame whose time window contains t.
// Windows are contiguous and non-overlapping; past the end of the
// animation the last frame keeps applying. Returns -1 for an empty
// sequence.
func (s *OverlaySequence) IndexAt(t float64) int {
	if len(s.Frames) == 0 {
		return -1
	}
	cum := 0.0
	for i, f := range s.Frames {
		cum += f.Duration
		if t < cum {
			return i
		}
	}
	return len(s.Frames) - 1
}

// Params drive one assembly run.
type Params struct {
	FullText      string // wrapped, separator-joined text
	Duration      float64
	FrameSkip     int
	VideoDuration float64
	Canvas        canvas.Params
}

// Build renders one overlay frame per reveal step: prefixes of length
// 1, 1+skip, 1+2*skip, ... each shown for the allocated step duration.
// When the base video outlasts the animation, the last rendered frame
// is appended again, held for the remainder, so the overlay always
// covers the full video. Zero-length text yields an empty sequence and
// the video passes through untouched.
func Build(p Params) *OverlaySequence {
	seq := &OverlaySequence{}

	runes := []rune(p.FullText)
	n := len(runes)
	if n == 0 {
		return seq
	}

	skip := p.FrameSkip
	if skip < 1 {
		skip = 1
	}
	stepDuration := text.StepDuration(p.Duration, n, skip)

	for i := 1; i <= n; i += skip {
		seq.Frames = append(seq.Frames, RevealFrame{
			Image:    canvas.RenderPrefix(string(runes[:i]), p.Canvas),
			Duration: stepDuration,
		})
	}

	if p.VideoDuration > p.Duration {
		last := seq.Frames[len(seq.Frames)-1]
		seq.Frames = append(seq.Frames, RevealFrame{
			Image:    last.Image,
			Duration: p.VideoDuration - p.Duration,
		})
	}

	return seq
}
