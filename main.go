package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/overtype/typeover/internal/config"
	"github.com/overtype/typeover/pkg/typeover"
	"github.com/overtype/typeover/pkg/types"
)

var (
	rootCmd = &cobra.Command{
		Use:   "typeover",
		Short: "A tool for animating typewriter-style text over video",
		Long: `typeover renders a block of text progressively over a video with a
typewriter effect: outlined, centered text is revealed a few characters
at a time and composited onto the source frames.

Examples:
  # Reveal a caption over 5 seconds
  typeover render -i input.mp4 -o output.mp4 -t "Hello, world" -d 5

  # Bold yellow text with a thick black outline
  typeover render -i input.mp4 -o output.mp4 -t "Big news" \
    --font-weight bold --text-color '#FFD700' --outline-thickness 4`,
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render a typewriter text overlay onto a video",
		Long: fmt.Sprintf(`Render a typewriter text overlay onto a video.

Text is capped at %d characters; the animation duration is bounded to
%.0f-%.0f seconds. Built-in font families:
%s
Unavailable fonts degrade to an embedded fallback instead of failing.

Example:
  typeover render -i input.mp4 -o output.mp4 -t "Hello" -d 5 --font-family "DejaVu Sans"`,
			config.MaxTextChars, config.MinDuration, config.MaxDuration,
			formatSupportedFamilies()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &typeover.RenderOptions{}

			opts.InputPath, _ = cmd.Flags().GetString("input")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.Text, _ = cmd.Flags().GetString("text")
			opts.Duration, _ = cmd.Flags().GetFloat64("duration")
			opts.FontFamily, _ = cmd.Flags().GetString("font-family")
			fontWeight, _ := cmd.Flags().GetString("font-weight")
			opts.FontWeight = types.FontWeight(fontWeight)
			opts.FontSize, _ = cmd.Flags().GetInt("font-size")
			opts.OutlineThickness, _ = cmd.Flags().GetInt("outline-thickness")
			opts.FrameSkip, _ = cmd.Flags().GetInt("frame-skip")
			opts.OutputFormat, _ = cmd.Flags().GetString("format")
			opts.FontsConfig, _ = cmd.Flags().GetString("fonts-config")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			if opts.InputPath == "" || opts.OutputPath == "" {
				return fmt.Errorf("input path and output path are required")
			}

			textColor, _ := cmd.Flags().GetString("text-color")
			outlineColor, _ := cmd.Flags().GetString("outline-color")

			var err error
			if opts.TextColor, err = config.ParseHexColor(textColor); err != nil {
				return err
			}
			if opts.OutlineColor, err = config.ParseHexColor(outlineColor); err != nil {
				return err
			}

			if err := typeover.Render(opts); err != nil {
				return err
			}

			fmt.Printf("Created %s\n", opts.OutputPath)
			return nil
		},
	}
)

func formatSupportedFamilies() string {
	var sb strings.Builder
	for _, family := range typeover.GetSupportedFontFamilies() {
		sb.WriteString(fmt.Sprintf("- %s\n", family))
	}
	return sb.String()
}

func init() {
	renderCmd.Flags().StringP("input", "i", "", "Input video file")
	renderCmd.Flags().StringP("output", "o", "", "Output video path")
	renderCmd.Flags().StringP("text", "t", "", "Text to animate (max 400 characters)")
	renderCmd.Flags().Float64P("duration", "d", config.DefaultDuration, "Animation duration in seconds (1-20)")
	renderCmd.Flags().String("font-family", "DejaVu Sans", "Font family")
	renderCmd.Flags().String("font-weight", "regular", "Font weight (regular, bold, italic)")
	renderCmd.Flags().Int("font-size", config.DefaultFontSize, "Font size in pixels (20-100)")
	renderCmd.Flags().String("text-color", "#FFFFFF", "Text color (#RRGGBB)")
	renderCmd.Flags().String("outline-color", "#000000", "Outline color (#RRGGBB)")
	renderCmd.Flags().Int("outline-thickness", 2, "Outline thickness in pixels (0-5)")
	renderCmd.Flags().Int("frame-skip", config.DefaultFrameSkip, "Characters revealed per overlay frame")
	renderCmd.Flags().String("format", config.DefaultFormat,
		fmt.Sprintf("Output format (%s)", strings.Join(typeover.GetSupportedFormats(), ", ")))
	renderCmd.Flags().String("fonts-config", "", "YAML file overriding the font table")
	renderCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	renderCmd.MarkFlagRequired("input")
	renderCmd.MarkFlagRequired("output")
	renderCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(renderCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
