package typeover

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/overtype/typeover/internal/canvas"
	"github.com/overtype/typeover/internal/compositor"
	"github.com/overtype/typeover/internal/config"
	"github.com/overtype/typeover/internal/ffmpeg"
	"github.com/overtype/typeover/internal/fontlib"
	"github.com/overtype/typeover/internal/sequence"
	"github.com/overtype/typeover/internal/system"
	"github.com/overtype/typeover/internal/text"
)

// RenderOptions defines options for rendering a typewriter overlay
// onto a video.
type RenderOptions = config.RenderOptions

// ErrEmptyInput reports a missing or zero-byte source video. It is
// detected before probing so a corrupt upload fails fast instead of
// surfacing as a mid-pipeline decode error.
var ErrEmptyInput = errors.New("input video file is empty or corrupted")

// GetSupportedFontFamilies returns the built-in font family names.
func GetSupportedFontFamilies() []string {
	return fontlib.DefaultTable().Families()
}

// GetSupportedFormats returns the supported output container formats.
func GetSupportedFormats() []string {
	return ffmpeg.GetSupportedFormats()
}

// Render runs the full pipeline: wrap the text, build the reveal
// sequence, composite it over the base video and re-encode at the
// source frame rate. Out-of-range option values are clamped, not
// rejected. Any failure past the input check is wrapped as a single
// "video generation failed" error and no partial output file survives.
func Render(opts *RenderOptions) error {
	opts.ApplyBounds()

	info, err := os.Stat(opts.InputPath)
	if err != nil || info.Size() == 0 {
		return ErrEmptyInput
	}

	opts.OutputPath = ensureOutputPath(opts.OutputPath, opts.OutputFormat)

	if opts.Verbose {
		system.LogResourceStats()
	}

	if err := render(opts); err != nil {
		os.Remove(opts.OutputPath)
		return errors.Wrap(err, "video generation failed")
	}
	return nil
}

func render(opts *RenderOptions) error {
	proc := ffmpeg.NewProcessor(opts.Verbose)

	meta, err := proc.GetVideoMetadata(opts.InputPath)
	if err != nil {
		return err
	}

	if opts.Verbose {
		log.Printf("Video metadata: Duration=%.2fs, Resolution=%dx%d, FPS=%.2f, Codec=%s, Audio=%v\n",
			meta.Duration, meta.Width, meta.Height, meta.FrameRate, meta.Codec, meta.HasAudio)
	}

	width, height := boundedSize(meta.Width, meta.Height)

	// The overlay renders at half scale; the compositor scales it back
	// up per frame.
	overlayWidth := int(float64(width) * config.OverlayScale)
	overlayHeight := int(float64(height) * config.OverlayScale)
	scaledFontSize := int(float64(opts.FontSize) * config.OverlayScale)

	table := fontlib.DefaultTable()
	if opts.FontsConfig != "" {
		table, err = fontlib.LoadTable(opts.FontsConfig)
		if err != nil {
			return err
		}
	}

	face, usedFallback := fontlib.NewResolver(table).Face(opts.FontFamily, opts.FontWeight, scaledFontSize)
	if usedFallback && opts.Verbose {
		log.Printf("Font %q (%s) unavailable, using the embedded fallback font\n",
			opts.FontFamily, opts.FontWeight)
	}

	fullText := text.Wrap(opts.Text, text.WrapParams{
		CanvasWidth: overlayWidth,
		FontSize:    scaledFontSize,
		MaxChars:    config.MaxTextChars,
	})

	seq := sequence.Build(sequence.Params{
		FullText:      fullText,
		Duration:      opts.Duration,
		FrameSkip:     opts.FrameSkip,
		VideoDuration: meta.Duration,
		Canvas: canvas.Params{
			Width:            overlayWidth,
			Height:           overlayHeight,
			FontSize:         scaledFontSize,
			Face:             face,
			TextColor:        opts.TextColor,
			OutlineColor:     opts.OutlineColor,
			OutlineThickness: opts.OutlineThickness,
		},
	})

	if opts.Verbose {
		log.Printf("Overlay sequence: %d frames, %.2fs total, canvas %dx%d\n",
			len(seq.Frames), seq.TotalDuration(), overlayWidth, overlayHeight)
	}

	comp := &compositor.Compositor{
		Width:     width,
		Height:    height,
		FrameRate: meta.FrameRate,
		Overlay:   seq,
	}

	decodeR, decodeW := io.Pipe()
	encodeR, encodeW := io.Pipe()

	var g errgroup.Group
	g.Go(func() error {
		defer decodeW.Close()
		return proc.StreamFrames(opts.InputPath, width, height, decodeW)
	})
	g.Go(func() error {
		defer decodeR.Close()
		defer encodeW.Close()
		return comp.Run(decodeR, encodeW)
	})
	g.Go(func() error {
		defer encodeR.Close()
		return proc.EncodeFrames(opts.InputPath, opts.OutputPath, width, height,
			meta.RawFrameRate, meta.HasAudio, opts.OutputFormat, encodeR)
	})

	return g.Wait()
}

// boundedSize caps the processed video at MaxVideoHeight, preserving
// the aspect ratio. Dimensions are forced even for yuv420p.
func boundedSize(w, h int) (int, int) {
	if h > config.MaxVideoHeight {
		w = int(float64(w) * float64(config.MaxVideoHeight) / float64(h))
		h = config.MaxVideoHeight
	}
	return w - w%2, h - h%2
}

// ensureOutputPath creates the output directory and fixes the file
// extension to match the container format.
func ensureOutputPath(path, format string) string {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			// Log error but continue - the actual file operation will fail if needed
			log.Printf("Warning: failed to create directory %s: %v", dir, err)
		}
	}

	ext := ffmpeg.GetCodecSettings(format).FileExtension
	if !strings.HasSuffix(strings.ToLower(path), ext) {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}
	return path
}
