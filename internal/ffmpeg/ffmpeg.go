package ffmpeg

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/overtype/typeover/internal/system"
)

type CodecSettings struct {
	VideoCodec      string
	AudioCodec      string
	ContainerFormat string
	FileExtension   string
	OutputKwArgs    ffmpeg.KwArgs
}

var codecPresets = map[string]CodecSettings{
	"mp4": {
		VideoCodec:      "libx264",
		AudioCodec:      "aac",
		ContainerFormat: "mp4",
		FileExtension:   ".mp4",
		OutputKwArgs: ffmpeg.KwArgs{
			"preset":   "medium",
			"crf":      18,
			"movflags": "+faststart",
		},
	},
	"webm": {
		VideoCodec:      "libvpx-vp9",
		AudioCodec:      "libopus",
		ContainerFormat: "webm",
		FileExtension:   ".webm",
		OutputKwArgs: ffmpeg.KwArgs{
			"crf":      24,
			"b:v":      "0",
			"row-mt":   1,
			"cpu-used": 2,
		},
	},
}

func GetCodecSettings(outputFormat string) CodecSettings {
	if settings, ok := codecPresets[outputFormat]; ok {
		return settings
	}
	// Default to mp4 if format not specified or invalid
	return codecPresets["mp4"]
}

// GetSupportedFormats returns the output container formats.
func GetSupportedFormats() []string {
	formats := make([]string, 0, len(codecPresets))
	for f := range codecPresets {
		formats = append(formats, f)
	}
	return formats
}

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration     float64
	Width        int
	Height       int
	Codec        string
	FrameRate    float64 // frames per second
	RawFrameRate string  // "30000/1001" form, passed straight back to ffmpeg
	HasAudio     bool
}

// Processor wraps FFmpeg functionality
type Processor struct {
	verbose bool
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
	}
}

// GetVideoMetadata retrieves metadata about a video file
func (p *Processor) GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error probing video: %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, fmt.Errorf("no streams found in video")
	}

	var videoStream map[string]interface{}
	hasAudio := false
	for _, stream := range streams {
		s := stream.(map[string]interface{})
		switch s["codec_type"].(string) {
		case "video":
			if videoStream == nil {
				videoStream = s
			}
		case "audio":
			hasAudio = true
		}
	}

	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found")
	}

	rawRate, _ := videoStream["r_frame_rate"].(string)
	frameRate := parseFrameRate(rawRate)
	if frameRate <= 0 {
		rawRate = "30/1"
		frameRate = 30
	}

	var duration float64

	// First try video stream duration
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}

	// If stream duration is not available, try format duration
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}

	// If still no duration found, try calculating from frames and frame rate
	if duration == 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil && frameRate > 0 {
				duration = frames / frameRate
			}
		}
	}

	if duration == 0 {
		return nil, fmt.Errorf("could not determine video duration")
	}

	width := int(videoStream["width"].(float64))
	height := int(videoStream["height"].(float64))
	codec := videoStream["codec_name"].(string)

	return &VideoMetadata{
		Duration:     duration,
		Width:        width,
		Height:       height,
		Codec:        codec,
		FrameRate:    frameRate,
		RawFrameRate: rawRate,
		HasAudio:     hasAudio,
	}, nil
}

// parseFrameRate converts ffprobe's "num/den" rate into a float.
func parseFrameRate(raw string) float64 {
	nums := strings.Split(raw, "/")
	if len(nums) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(nums[0], 64)
	den, err2 := strconv.ParseFloat(nums[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

// StreamFrames decodes the input video into a raw RGBA frame stream at
// the given size and writes it to w, one width*height*4 byte frame at a
// time. The caller owns closing w.
func (p *Processor) StreamFrames(inputPath string, width, height int, w io.Writer) error {
	stream := ffmpeg.Input(inputPath).
		Output("pipe:", ffmpeg.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "rgba",
			"vf":      fmt.Sprintf("scale=%d:%d", width, height),
		}).
		WithOutput(w)

	if p.verbose {
		log.Printf("FFmpeg decode command: %s\n", stream.String())
	}

	if err := stream.Run(); err != nil {
		return errors.Wrap(err, "rawvideo decode failed")
	}
	return nil
}

// EncodeFrames reads composed raw RGBA frames from r and writes the
// final video file at the source frame rate. When the source video has
// an audio stream it is mapped through and re-encoded with the
// container's audio codec.
func (p *Processor) EncodeFrames(inputPath, outputPath string, width, height int, rawFrameRate string, hasAudio bool, outputFormat string, r io.Reader) error {
	settings := GetCodecSettings(outputFormat)

	video := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"format":     "rawvideo",
		"pix_fmt":    "rgba",
		"video_size": fmt.Sprintf("%dx%d", width, height),
		"framerate":  rawFrameRate,
	})

	outputKwargs := ffmpeg.KwArgs{
		"c:v":     settings.VideoCodec,
		"pix_fmt": "yuv420p",
		"r":       rawFrameRate,
		"threads": system.OptimalThreadCount(),
	}
	for k, v := range settings.OutputKwArgs {
		outputKwargs[k] = v
	}

	var stream *ffmpeg.Stream
	if hasAudio {
		audio := ffmpeg.Input(inputPath).Get("a")
		outputKwargs["c:a"] = settings.AudioCodec
		stream = ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputPath, outputKwargs)
	} else {
		stream = video.Output(outputPath, outputKwargs)
	}

	stream = stream.OverWriteOutput().WithInput(r)

	if p.verbose {
		log.Printf("FFmpeg encode command: %s\n", stream.String())
		stream = stream.ErrorToStdOut()
	}

	if err := stream.Run(); err != nil {
		return errors.Wrap(err, "video encode failed")
	}
	return nil
}
