package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProbeFormat and ProbeStream mirror the parts of ffprobe's JSON output we read.
type ProbeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	FormatLong string            `json:"format_long_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	NbStreams  int               `json:"nb_streams"`
	Tags       map[string]string `json:"tags"`
}

type ProbeStream struct {
	Index            int               `json:"index"`
	CodecType        string            `json:"codec_type"`
	CodecName        string            `json:"codec_name"`
	CodecLong        string            `json:"codec_long_name"`
	SampleFmt        string            `json:"sample_fmt"`
	SampleRate       string            `json:"sample_rate"`
	Channels         int               `json:"channels"`
	ChannelLayout    string            `json:"channel_layout"`
	BitsPerSample    int               `json:"bits_per_sample"`
	BitsPerRawSample string            `json:"bits_per_raw_sample"`
	Duration         string            `json:"duration"`
	BitRate          string            `json:"bit_rate"`
	Tags             map[string]string `json:"tags"`
}

type ProbeOutput struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

// ProbeResult is the audio metadata reported for one file.
type ProbeResult struct {
	Duration      float64    `json:"duration"`
	SampleRate    int        `json:"sample_rate"`
	Channels      int        `json:"channels"`
	Codec         string     `json:"codec"`
	BitRate       *int64     `json:"bit_rate,omitempty"`
	BitsPerSample int        `json:"bits_per_sample,omitempty"`
	FormatName    string     `json:"format_name,omitempty"`
	Tags          *AudioTags `json:"tags,omitempty"`
}

// AudioTags are the descriptive tags embedded in the file, when any.
type AudioTags struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Year   int    `json:"year,omitempty"`
	Track  int    `json:"track,omitempty"`
}

// String is "Artist - Title", or whichever of the two is set.
func (t AudioTags) String() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Artist
	}
}

// Empty reports whether no tag carries a value.
func (t AudioTags) Empty() bool {
	return t == AudioTags{}
}

const (
	oneKilobyte      = 1024
	oneMegabyte      = oneKilobyte * 1024
	oneGigabyte      = oneMegabyte * 1024
	oneMegabitPerSec = 1000000
	oneKilobitPerSec = 1000
)

func (p *ProbeOutput) AudioStream() *ProbeStream {
	for i := range p.Streams {
		if strings.EqualFold(p.Streams[i].CodecType, "audio") {
			return &p.Streams[i]
		}
	}
	return nil
}

// Result extracts a ProbeResult from the first audio stream. Duration,
// sample rate and channel count are required; bitrate is optional.
func (p *ProbeOutput) Result() (*ProbeResult, error) {
	stream := p.AudioStream()
	if stream == nil {
		return nil, fmt.Errorf("%w: no audio stream", ErrUnsupportedFormat)
	}

	duration, ok := parsePositiveFloat(p.Format.Duration)
	if !ok {
		duration, ok = parsePositiveFloat(stream.Duration)
	}
	if !ok {
		return nil, fmt.Errorf("%w: could not determine duration", ErrUnsupportedFormat)
	}

	sampleRate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate))
	if err != nil || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: could not determine sample rate", ErrUnsupportedFormat)
	}
	if stream.Channels <= 0 {
		return nil, fmt.Errorf("%w: could not determine channel count", ErrUnsupportedFormat)
	}

	result := &ProbeResult{
		Duration:      duration,
		SampleRate:    sampleRate,
		Channels:      stream.Channels,
		Codec:         stream.CodecName,
		BitsPerSample: stream.BitsPerSample,
		FormatName:    p.Format.FormatName,
	}
	if result.BitsPerSample == 0 {
		if raw, err := strconv.Atoi(strings.TrimSpace(stream.BitsPerRawSample)); err == nil && raw > 0 {
			result.BitsPerSample = raw
		}
	}
	if br, ok := parseBitRate(p.Format.BitRate); ok {
		result.BitRate = &br
	} else if br, ok := parseBitRate(stream.BitRate); ok {
		result.BitRate = &br
	}
	return result, nil
}

func parsePositiveFloat(s string) (float64, bool) {
	v := ParseDuration(s)
	return v, v > 0
}

func parseBitRate(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "00:00"
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func FormatBitrate(bitrate *int64) string {
	if bitrate == nil {
		return ""
	}
	b := float64(*bitrate)
	if b >= oneMegabitPerSec {
		return fmt.Sprintf("%.1f Mbps", b/oneMegabitPerSec)
	}
	if b >= oneKilobitPerSec {
		return fmt.Sprintf("%.1f Kbps", b/oneKilobitPerSec)
	}
	return fmt.Sprintf("%.0f bps", b)
}

func FormatSampleRate(sampleRate int) string {
	if sampleRate <= 0 {
		return ""
	}
	return fmt.Sprintf("%d Hz", sampleRate)
}

func FormatChannels(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d ch", channels)
	}
}

func ParseDuration(durationStr string) float64 {
	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" || durationStr == "N/A" {
		return 0
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0
	}
	return duration
}

func FormatSize(bytes int64) string {
	if bytes < oneKilobyte {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < oneMegabyte {
		return fmt.Sprintf("%.1f KB", float64(bytes)/oneKilobyte)
	}
	if bytes < oneGigabyte {
		return fmt.Sprintf("%.1f MB", float64(bytes)/oneMegabyte)
	}
	return fmt.Sprintf("%.1f GB", float64(bytes)/oneGigabyte)
}
