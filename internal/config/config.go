package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/overtype/typeover/pkg/types"
)

// RenderOptions defines options for rendering a typewriter overlay onto a video
type RenderOptions struct {
	InputPath  string
	OutputPath string

	// Text is capped at MaxTextChars runes; Duration is the reveal
	// animation length in seconds.
	Text     string
	Duration float64

	FontFamily string
	FontWeight types.FontWeight
	FontSize   int // pixels, at full output resolution

	TextColor        color.NRGBA
	OutlineColor     color.NRGBA
	OutlineThickness int // pixels

	// FrameSkip is how many characters are revealed per generated
	// overlay frame (not per video frame).
	FrameSkip int

	OutputFormat string // "mp4" or "webm"
	FontsConfig  string // optional YAML font table override
	Verbose      bool
}

// Constants for overlay rendering
const (
	// Maximum text length; longer input is truncated, not rejected
	MaxTextChars = 400

	// Overlay canvas scale relative to the processed video size
	OverlayScale = 0.5

	// Wrapping budget
	WrapMargin     = 40  // pixels subtracted from the scaled canvas width
	MinUsableWidth = 100 // floor for the usable wrapping width

	// Processed base video is capped at this height before compositing
	MaxVideoHeight = 720

	// Animation bounds
	MinDuration = 1.0
	MaxDuration = 20.0

	MinFontSize = 20
	MaxFontSize = 100

	MinOutlineThickness = 0
	MaxOutlineThickness = 5

	// Defaults
	DefaultDuration  = 5.0
	DefaultFontSize  = 48
	DefaultFrameSkip = 2
	DefaultFormat    = "mp4"
)

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApplyBounds clamps every field to its documented range. Out-of-range
// values from the presentation layer degrade to the nearest bound
// rather than failing the render.
func (o *RenderOptions) ApplyBounds() {
	if runes := []rune(o.Text); len(runes) > MaxTextChars {
		o.Text = string(runes[:MaxTextChars])
	}
	o.Duration = Clamp(o.Duration, MinDuration, MaxDuration)
	o.FontSize = Clamp(o.FontSize, MinFontSize, MaxFontSize)
	o.OutlineThickness = Clamp(o.OutlineThickness, MinOutlineThickness, MaxOutlineThickness)
	if o.FrameSkip < 1 {
		o.FrameSkip = 1
	}
	if o.FontWeight == "" {
		o.FontWeight = types.FontWeightRegular
	}
	if o.OutputFormat == "" {
		o.OutputFormat = DefaultFormat
	}
}

// ParseHexColor parses "#RRGGBB" or the short "#RGB" form into an
// opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == len(s) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: missing '#' prefix", s)
	}

	if len(hex) == 3 {
		hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #RGB or #RRGGBB", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %v", s, err)
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
