package ffmpeg

import "testing"

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"25/1", 25},
		{"30/1", 30},
		{"0/0", 0},
		{"garbage", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := parseFrameRate(c.in); got != c.want {
			t.Errorf("parseFrameRate(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	// NTSC rate
	got := parseFrameRate("30000/1001")
	if got < 29.96 || got > 29.98 {
		t.Errorf("parseFrameRate(30000/1001) = %v, want ~29.97", got)
	}
}

func TestGetCodecSettings(t *testing.T) {
	if s := GetCodecSettings("webm"); s.VideoCodec != "libvpx-vp9" {
		t.Errorf("webm video codec = %q, want libvpx-vp9", s.VideoCodec)
	}
	if s := GetCodecSettings("mp4"); s.VideoCodec != "libx264" {
		t.Errorf("mp4 video codec = %q, want libx264", s.VideoCodec)
	}
	// Unknown formats default to mp4
	if s := GetCodecSettings("avi"); s.ContainerFormat != "mp4" {
		t.Errorf("Unknown format should default to mp4, got %q", s.ContainerFormat)
	}
}
