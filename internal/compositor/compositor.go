package compositor

import (
	"image"
	"image/draw"
	"io"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"github.com/overtype/typeover/internal/sequence"
)

// Compositor blends an overlay sequence onto a decoded base frame
// stream. Overlay frames arrive at reduced scale and are upscaled here
// with a Catmull-Rom filter so the text stays smooth at full
// resolution.
type Compositor struct {
	Width     int     // processed base video width
	Height    int     // processed base video height
	FrameRate float64 // native frame rate of the base video
	Overlay   *sequence.OverlaySequence
}

// Run reads raw RGBA frames from r until EOF, composites the overlay
// frame covering each frame's playback time, and writes the combined
// frames to w. With an empty overlay the stream passes through
// unchanged. Consecutive base frames usually share an overlay frame, so
// the upscaled image is cached until the reveal advances.
func (c *Compositor) Run(r io.Reader, w io.Writer) error {
	frameSize := c.Width * c.Height * 4
	buf := make([]byte, frameSize)
	bounds := image.Rect(0, 0, c.Width, c.Height)

	var scaled *image.RGBA
	scaledIdx := -1

	for frameIdx := 0; ; frameIdx++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				// end of stream; a trailing partial frame is dropped
				return nil
			}
			return errors.Wrap(err, "failed to read decoded frame")
		}

		if len(c.Overlay.Frames) > 0 {
			t := float64(frameIdx) / c.FrameRate
			idx := c.Overlay.IndexAt(t)
			if idx != scaledIdx {
				src := c.Overlay.Frames[idx].Image
				scaled = image.NewRGBA(bounds)
				xdraw.CatmullRom.Scale(scaled, bounds, src, src.Bounds(), xdraw.Src, nil)
				scaledIdx = idx
			}

			frame := &image.RGBA{Pix: buf, Stride: c.Width * 4, Rect: bounds}
			draw.Draw(frame, bounds, scaled, image.Point{}, draw.Over)
		}

		if _, err := w.Write(buf); err != nil {
			return errors.Wrap(err, "failed to write composed frame")
		}
	}
}
