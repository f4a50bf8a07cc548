package canvas

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/overtype/typeover/internal/text"
)

// Params describe one overlay canvas. Width, Height and FontSize are
// already at the reduced overlay scale.
type Params struct {
	Width            int
	Height           int
	FontSize         int
	Face             font.Face
	TextColor        color.NRGBA
	OutlineColor     color.NRGBA
	OutlineThickness int
}

// RenderPrefix rasterizes the revealed text prefix onto a transparent
// canvas. Each line is centered horizontally, the block of lines
// vertically. Whitespace-only lines are not drawn but still advance the
// cursor by half the font size, so the vertical rhythm stays stable
// while a blank line is being revealed.
//
// The outline is produced by drawing the line repeatedly at every
// offset in the [-K, K]^2 square around the fill position. Corners come
// out slightly rounded at K > 1; that is the intended look, not a true
// geometric stroke.
func RenderPrefix(prefix string, p Params) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	if prefix == "" {
		return img
	}

	lines := strings.Split(prefix, text.Separator)

	totalHeight := 0
	for _, line := range lines {
		totalHeight += lineHeight(p.Face, line, p.FontSize)
	}

	// Placement uses integer division throughout.
	y := (p.Height - totalHeight) / 2

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			y += p.FontSize / 2
			continue
		}

		bounds, _ := font.BoundString(p.Face, line)
		lineWidth := (bounds.Max.X - bounds.Min.X).Ceil()
		x := (p.Width - lineWidth) / 2

		k := p.OutlineThickness
		for dx := -k; dx <= k; dx++ {
			for dy := -k; dy <= k; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				drawLine(img, p.Face, line, x+dx, y+dy, bounds, p.OutlineColor)
			}
		}
		drawLine(img, p.Face, line, x, y, bounds, p.TextColor)

		y += (bounds.Max.Y - bounds.Min.Y).Ceil()
	}

	return img
}

// lineHeight is the ink height of the rendered line, or half the font
// size for whitespace-only lines.
func lineHeight(face font.Face, line string, fontSize int) int {
	if strings.TrimSpace(line) == "" {
		return fontSize / 2
	}
	bounds, _ := font.BoundString(face, line)
	return (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// drawLine anchors the string's ink box at (x, y). BoundString bounds
// are relative to a zero dot, so the dot is the target position minus
// the box's minimum corner.
func drawLine(dst *image.RGBA, face font.Face, line string, x, y int, bounds fixed.Rectangle26_6, c color.NRGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y).Sub(bounds.Min),
	}
	d.DrawString(line)
}
