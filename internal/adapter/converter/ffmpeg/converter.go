package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port"
)

const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"

	// killGrace is how long a terminated tool gets before it is killed.
	killGrace = 3 * time.Second
)

var (
	ErrEmptyPath   = fmt.Errorf("%w: empty path", domain.ErrInvalidRequest)
	ErrInvalidPath = fmt.Errorf("%w: path contains NUL byte", domain.ErrInvalidRequest)
)

type Converter struct {
	ffmpegPath  string
	ffprobePath string
	searchDirs  []string
}

// NewConverter wires the ffmpeg and ffprobe binaries. Empty names fall back
// to the defaults; searchDirs are tried when a bare name is not on PATH.
func NewConverter(ffmpegPath, ffprobePath string, searchDirs ...string) port.MediaConverter {
	return newConverter(ffmpegPath, ffprobePath, searchDirs...)
}

func newConverter(ffmpegPath, ffprobePath string, searchDirs ...string) *Converter {
	if strings.TrimSpace(ffmpegPath) == "" {
		ffmpegPath = DefaultFFmpeg
	}
	if strings.TrimSpace(ffprobePath) == "" {
		ffprobePath = DefaultFFprobe
	}
	return &Converter{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		searchDirs:  searchDirs,
	}
}

// CheckToolchain resolves both binaries and pins their absolute paths. It
// must run before the converter is shared between goroutines.
func (c *Converter) CheckToolchain() error {
	ffmpegPath, err := c.resolve(c.ffmpegPath)
	if err != nil {
		return err
	}
	ffprobePath, err := c.resolve(c.ffprobePath)
	if err != nil {
		return err
	}
	c.ffmpegPath = ffmpegPath
	c.ffprobePath = ffprobePath
	return nil
}

func (c *Converter) resolve(name string) (string, error) {
	return Locate(name, c.searchDirs)
}

// Locate finds an executable by name on PATH, then in searchDirs. Names
// containing a separator are only checked as given.
func Locate(name string, searchDirs []string) (string, error) {
	path, err := exec.LookPath(name)
	if err == nil {
		return path, nil
	}
	if !strings.ContainsRune(name, filepath.Separator) {
		for _, dir := range searchDirs {
			if p, lookErr := exec.LookPath(filepath.Join(dir, name)); lookErr == nil {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s not found or not executable: %v", domain.ErrToolchainMissing, name, err)
}

// Version returns the first line of `binary -version`.
func Version(ctx context.Context, binary string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, "-hide_banner", "-version")
	terminateOnCancel(cmd)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s -version: %w", filepath.Base(binary), err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

func (c *Converter) Probe(ctx context.Context, inputPath string) (*domain.ProbeResult, error) {
	if err := validatePath(inputPath); err != nil {
		return nil, fmt.Errorf("invalid input path: %w", err)
	}

	args := []string{
		"-v", "error",
		"-hide_banner",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		toolPath(inputPath),
	}
	cmd := exec.CommandContext(ctx, c.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	terminateOnCancel(cmd)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffprobe: %w: %v", domain.ErrCancelled, ctx.Err())
		}
		return nil, classifyFailure("ffprobe", err, stderr.String(), "")
	}

	var output domain.ProbeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, fmt.Errorf("ffprobe: %w: parse output: %v", domain.ErrToolInvocationFailed, err)
	}
	return output.Result()
}

func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string, params domain.TranscodeParams) error {
	if err := validatePath(inputPath); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if err := validatePath(outputPath); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %v", domain.ErrCancelled, err)
	}

	_, statErr := os.Stat(outputPath)
	existed := statErr == nil

	cmd := exec.CommandContext(ctx, c.ffmpegPath, buildConvertArgs(inputPath, outputPath, params)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	terminateOnCancel(cmd)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			// A killed encode leaves a truncated file behind. Nothing was
			// written when the process never started.
			if cmd.Process != nil && (!existed || params.Overwrite) {
				_ = os.Remove(outputPath)
			}
			return fmt.Errorf("ffmpeg: %w: %v", domain.ErrCancelled, ctx.Err())
		}
		return classifyFailure("ffmpeg", err, stderr.String(), outputPath)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("ffmpeg: %w: no output written to %s", domain.ErrToolInvocationFailed, outputPath)
	}
	return nil
}

func buildConvertArgs(inputPath, outputPath string, params domain.TranscodeParams) []string {
	overwrite := "-n"
	if params.Overwrite {
		overwrite = "-y"
	}
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-loglevel", "error",
		overwrite,
		"-i", toolPath(inputPath),
		"-vn",
	}
	if params.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(params.Channels))
	}
	if params.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(params.SampleRate))
	}
	if params.Codec != "" {
		args = append(args, "-c:a", params.Codec)
	}
	return append(args, toolPath(outputPath))
}

// toolPath forces the file protocol so names containing ':' or starting
// with '-' are never read as a protocol or an option.
func toolPath(p string) string {
	return "file:" + p
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	return nil
}

func terminateOnCancel(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = killGrace
}

var (
	unreadableMarkers  = []string{"no such file or directory", "permission denied", "is a directory"}
	unsupportedMarkers = []string{
		"invalid data found when processing input",
		"could not find codec parameters",
		"does not contain any stream",
		"unknown format",
		"decoder not found",
		"not currently supported",
		"output file does not contain any stream",
	}
	writeMarkers = []string{"no space left on device", "disk quota exceeded", "read-only file system", "file too large"}
)

// classifyFailure maps a failed tool run to a domain error using the
// diagnostics the tool printed. Messages naming outputPath are write errors.
func classifyFailure(tool string, runErr error, stderr, outputPath string) error {
	detail := lastLine(stderr)
	if detail == "" {
		detail = runErr.Error()
	}

	if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, os.ErrNotExist) {
		return fmt.Errorf("%s: %w: %s", tool, domain.ErrToolchainMissing, detail)
	}

	lower := strings.ToLower(stderr)
	mentionsOutput := func() bool {
		if outputPath == "" {
			return false
		}
		for _, line := range strings.Split(stderr, "\n") {
			l := strings.ToLower(line)
			if !strings.Contains(line, outputPath) {
				continue
			}
			for _, m := range unreadableMarkers {
				if strings.Contains(l, m) {
					return true
				}
			}
		}
		return false
	}

	var kind error
	switch {
	case strings.Contains(lower, "already exists"):
		kind = domain.ErrOutputExists
	case containsAny(lower, writeMarkers):
		kind = domain.ErrOutputWriteFailed
	case mentionsOutput():
		kind = domain.ErrOutputWriteFailed
	case containsAny(lower, unreadableMarkers):
		kind = domain.ErrFileUnreadable
	case containsAny(lower, unsupportedMarkers):
		kind = domain.ErrUnsupportedFormat
	default:
		kind = domain.ErrToolInvocationFailed
	}
	return fmt.Errorf("%s: %w: %s", tool, kind, detail)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

var _ port.MediaConverter = (*Converter)(nil)
