package text

import (
	"strings"

	"github.com/overtype/typeover/internal/config"
)

// Separator joins wrapped lines. Reveal prefixes are sliced across it,
// and the canvas renderer splits on it again.
const Separator = "\n"

// WrapParams describe the canvas the wrapped text has to fit.
type WrapParams struct {
	CanvasWidth int // scaled overlay width in pixels
	FontSize    int // scaled font size in pixels
	MaxChars    int
}

// Wrap truncates text to MaxChars runes, greedily wraps words against an
// estimated per-line character budget, and joins the lines with
// Separator. The joined text is truncated once more: wrapping may add
// separators that push it back over budget.
//
// The budget is a heuristic, not real glyph metrics: the average glyph
// is assumed to be half the font size wide. Full metrics are only
// available after rasterization, which happens per reveal step.
func Wrap(raw string, p WrapParams) string {
	runes := []rune(raw)
	if len(runes) > p.MaxChars {
		runes = runes[:p.MaxChars]
	}

	lines := wrapWords(string(runes), LineBudget(p))

	joined := strings.Join(lines, Separator)
	if jr := []rune(joined); len(jr) > p.MaxChars {
		joined = string(jr[:p.MaxChars])
	}
	return joined
}

// LineBudget returns the maximum characters per wrapped line for the
// given canvas: usable width after a fixed margin, divided by the
// estimated average glyph width, never below one character.
func LineBudget(p WrapParams) int {
	usable := p.CanvasWidth - config.WrapMargin
	if usable < config.MinUsableWidth {
		usable = config.MinUsableWidth
	}

	avg := p.FontSize / 2
	if avg < 1 {
		avg = 1
	}

	budget := usable / avg
	if budget < 1 {
		budget = 1
	}
	return budget
}

// wrapWords is a greedy word wrap on rune counts. A word longer than
// the budget gets its own line; words are never split.
func wrapWords(s string, budget int) []string {
	words := strings.Fields(s)

	var lines []string
	var cur string
	curLen := 0

	for _, w := range words {
		wl := len([]rune(w))
		switch {
		case curLen == 0:
			cur, curLen = w, wl
		case curLen+1+wl <= budget:
			cur += " " + w
			curLen += 1 + wl
		default:
			lines = append(lines, cur)
			cur, curLen = w, wl
		}
	}
	if curLen > 0 {
		lines = append(lines, cur)
	}
	return lines
}
