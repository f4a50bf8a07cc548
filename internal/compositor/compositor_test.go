package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/overtype/typeover/internal/sequence"
)

func solidFrame(w, h int, c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img.Pix
}

func solidOverlay(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestRunPassthroughWithEmptyOverlay(t *testing.T) {
	c := &Compositor{Width: 4, Height: 4, FrameRate: 25, Overlay: &sequence.OverlaySequence{}}

	in := append(solidFrame(4, 4, color.RGBA{0, 0, 255, 255}), solidFrame(4, 4, color.RGBA{255, 0, 0, 255})...)
	var out bytes.Buffer

	if err := c.Run(bytes.NewReader(in), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !bytes.Equal(in, out.Bytes()) {
		t.Error("Empty overlay must pass base frames through unchanged")
	}
}

func TestRunCompositesOpaqueOverlay(t *testing.T) {
	// Half-scale solid red overlay covers the full 4x4 frame after
	// upscaling; opaque alpha replaces every base pixel.
	red := color.RGBA{255, 0, 0, 255}
	seq := &sequence.OverlaySequence{Frames: []sequence.RevealFrame{
		{Image: solidOverlay(2, 2, red), Duration: 10},
	}}
	c := &Compositor{Width: 4, Height: 4, FrameRate: 25, Overlay: seq}

	in := solidFrame(4, 4, color.RGBA{0, 0, 255, 255})
	var out bytes.Buffer

	if err := c.Run(bytes.NewReader(in), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.Bytes()
	if len(got) != len(in) {
		t.Fatalf("Output length %d, want %d", len(got), len(in))
	}
	// Allow a little slack for fixed-point rounding in the scaler.
	for i := 0; i < len(got); i += 4 {
		if got[i] < 250 || got[i+1] > 5 || got[i+2] > 5 {
			t.Fatalf("Pixel %d = (%d,%d,%d), want solid red", i/4, got[i], got[i+1], got[i+2])
		}
	}
}

func TestRunTransparentOverlayKeepsBase(t *testing.T) {
	seq := &sequence.OverlaySequence{Frames: []sequence.RevealFrame{
		{Image: image.NewRGBA(image.Rect(0, 0, 2, 2)), Duration: 10},
	}}
	c := &Compositor{Width: 4, Height: 4, FrameRate: 25, Overlay: seq}

	in := solidFrame(4, 4, color.RGBA{0, 0, 255, 255})
	var out bytes.Buffer

	if err := c.Run(bytes.NewReader(in), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !bytes.Equal(in, out.Bytes()) {
		t.Error("Fully transparent overlay must leave base frames unchanged")
	}
}

func TestRunSelectsOverlayFrameByTime(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	seq := &sequence.OverlaySequence{Frames: []sequence.RevealFrame{
		{Image: solidOverlay(2, 2, red), Duration: 1},   // t in [0, 1)
		{Image: solidOverlay(2, 2, green), Duration: 1}, // t in [1, 2)
	}}
	// 1 fps: frame 0 at t=0 (red), frame 1 at t=1 (green)
	c := &Compositor{Width: 2, Height: 2, FrameRate: 1, Overlay: seq}

	base := solidFrame(2, 2, color.RGBA{0, 0, 255, 255})
	in := append(append([]byte{}, base...), base...)
	var out bytes.Buffer

	if err := c.Run(bytes.NewReader(in), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.Bytes()
	if got[0] < 250 || got[1] > 5 {
		t.Errorf("First frame should be red, got (%d,%d,%d)", got[0], got[1], got[2])
	}
	second := got[len(base):]
	if second[0] > 5 || second[1] < 250 {
		t.Errorf("Second frame should be green, got (%d,%d,%d)", second[0], second[1], second[2])
	}
}

func TestRunDropsTrailingPartialFrame(t *testing.T) {
	c := &Compositor{Width: 4, Height: 4, FrameRate: 25, Overlay: &sequence.OverlaySequence{}}

	full := solidFrame(4, 4, color.RGBA{0, 0, 255, 255})
	in := append(append([]byte{}, full...), full[:10]...)
	var out bytes.Buffer

	if err := c.Run(bytes.NewReader(in), &out); err != nil {
		t.Fatalf("Run failed on partial trailing frame: %v", err)
	}
	if out.Len() != len(full) {
		t.Errorf("Expected exactly one full frame out, got %d bytes", out.Len())
	}
}
