package config

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#ff8000", color.NRGBA{255, 128, 0, 255}},
		{"#abc", color.NRGBA{0xaa, 0xbb, 0xcc, 255}},
	}

	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "FFFFFF", "#FFFF", "#GGGGGG", "#12345"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q) expected error, got nil", in)
		}
	}
}

func TestApplyBoundsClamping(t *testing.T) {
	opts := &RenderOptions{
		Text:             strings.Repeat("x", 500),
		Duration:         100,
		FontSize:         500,
		OutlineThickness: 9,
		FrameSkip:        0,
	}
	opts.ApplyBounds()

	if got := len([]rune(opts.Text)); got != MaxTextChars {
		t.Errorf("Expected text truncated to %d runes, got %d", MaxTextChars, got)
	}
	if opts.Duration != MaxDuration {
		t.Errorf("Expected duration clamped to %v, got %v", MaxDuration, opts.Duration)
	}
	if opts.FontSize != MaxFontSize {
		t.Errorf("Expected font size clamped to %d, got %d", MaxFontSize, opts.FontSize)
	}
	if opts.OutlineThickness != MaxOutlineThickness {
		t.Errorf("Expected outline thickness clamped to %d, got %d", MaxOutlineThickness, opts.OutlineThickness)
	}
	if opts.FrameSkip != 1 {
		t.Errorf("Expected frame skip clamped to 1, got %d", opts.FrameSkip)
	}
}

func TestApplyBoundsDefaults(t *testing.T) {
	opts := &RenderOptions{Text: "hi", Duration: 5, FontSize: 48, FrameSkip: 2}
	opts.ApplyBounds()

	if opts.FontWeight != "regular" {
		t.Errorf("Expected default font weight 'regular', got %q", opts.FontWeight)
	}
	if opts.OutputFormat != DefaultFormat {
		t.Errorf("Expected default output format %q, got %q", DefaultFormat, opts.OutputFormat)
	}
}

func TestClampLowerBound(t *testing.T) {
	if got := Clamp(0.5, MinDuration, MaxDuration); got != MinDuration {
		t.Errorf("Clamp(0.5) = %v, want %v", got, MinDuration)
	}
	if got := Clamp(10, 1, 20); got != 10 {
		t.Errorf("Clamp(10) = %v, want 10", got)
	}
}
