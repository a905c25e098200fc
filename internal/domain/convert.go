package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

type OverwritePolicy string

const (
	OverwriteFail    OverwritePolicy = "fail"
	OverwriteSkip    OverwritePolicy = "skip"
	OverwriteReplace OverwritePolicy = "overwrite"
)

func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch p := OverwritePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case OverwriteFail, OverwriteSkip, OverwriteReplace:
		return p, nil
	case "":
		return OverwriteFail, nil
	default:
		return "", fmt.Errorf("%w: unknown overwrite policy %q (want fail, skip or overwrite)", ErrInvalidRequest, s)
	}
}

const (
	wavExtension = ".wav"

	minSampleRate = 8000
	maxSampleRate = 384000
	maxChannels   = 8
)

var pcmCodecs = map[int]string{
	16: "pcm_s16le",
	24: "pcm_s24le",
	32: "pcm_s32le",
}

// ConvertRequest describes the target of a convert job. Zero SampleRate,
// Channels or BitDepth preserve the source value.
type ConvertRequest struct {
	SampleRate    int             `json:"sample_rate,omitempty" toml:"sample_rate"`
	Channels      int             `json:"channels,omitempty" toml:"channels"`
	BitDepth      int             `json:"bit_depth,omitempty" toml:"bit_depth"`
	OutputPath    string          `json:"output_path,omitempty" toml:"-"`
	OutputDir     string          `json:"output_dir,omitempty" toml:"output_dir"`
	Overwrite     OverwritePolicy `json:"overwrite" toml:"overwrite"`
	KeepContainer bool            `json:"keep_container,omitempty" toml:"keep_container"`
}

func (r *ConvertRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: missing convert parameters", ErrInvalidRequest)
	}
	if r.SampleRate != 0 && (r.SampleRate < minSampleRate || r.SampleRate > maxSampleRate) {
		return fmt.Errorf("%w: sample rate %d outside %d-%d", ErrInvalidRequest, r.SampleRate, minSampleRate, maxSampleRate)
	}
	if r.Channels < 0 || r.Channels > maxChannels {
		return fmt.Errorf("%w: channel count %d outside 0-%d", ErrInvalidRequest, r.Channels, maxChannels)
	}
	if r.BitDepth != 0 {
		if _, ok := pcmCodecs[r.BitDepth]; !ok {
			return fmt.Errorf("%w: bit depth must be one of 16, 24, 32", ErrInvalidRequest)
		}
	}
	if _, err := ParseOverwritePolicy(string(r.Overwrite)); err != nil {
		return err
	}
	return nil
}

// Policy returns the overwrite policy, defaulting to fail.
func (r *ConvertRequest) Policy() OverwritePolicy {
	if r.Overwrite == "" {
		return OverwriteFail
	}
	return r.Overwrite
}

// OutputPathFor derives where input's converted file goes: OutputPath when
// set, otherwise <OutputDir or input dir>/<sanitized stem><ext>.
func (r *ConvertRequest) OutputPathFor(input string) string {
	if r.OutputPath != "" {
		return filepath.Clean(r.OutputPath)
	}
	dir := r.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if strings.TrimSpace(stem) == "" {
		stem = "audio"
	}

	outExt := wavExtension
	if r.KeepContainer && ext != "" {
		outExt = ext
	}
	return filepath.Join(dir, SanitizeFilename(stem+outExt))
}

func (r *ConvertRequest) TargetIsWAV(input string) bool {
	return strings.EqualFold(filepath.Ext(r.OutputPathFor(input)), wavExtension)
}

// PCMCodec returns the little-endian signed PCM encoder for bitDepth.
func PCMCodec(bitDepth int) (string, error) {
	codec, ok := pcmCodecs[bitDepth]
	if !ok {
		return "", fmt.Errorf("%w: bit depth must be one of 16, 24, 32", ErrInvalidRequest)
	}
	return codec, nil
}

// NearestPCMDepth rounds a source bit depth up to a supported PCM depth.
// Unknown depths map to 16.
func NearestPCMDepth(bits int) int {
	switch {
	case bits <= 0:
		return 16
	case bits <= 16:
		return 16
	case bits <= 24:
		return 24
	default:
		return 32
	}
}

// TranscodeParams is what the transcoder adapter receives for one file.
// Zero SampleRate or Channels leave the source value untouched; an empty
// Codec lets the tool pick the container's default encoder.
type TranscodeParams struct {
	SampleRate int
	Channels   int
	Codec      string
	Overwrite  bool
}
