// Package validation screens input files before they reach the toolchain.
package validation

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port"
)

// audioMIMETypes are containers the toolchain can read audio from.
var audioMIMETypes = map[string]bool{
	"audio/mpeg":      true,
	"audio/ogg":       true,
	"application/ogg": true,
	"audio/wav":       true,
	"audio/wave":      true,
	"audio/x-wav":     true,
	"audio/flac":      true,
	"audio/x-flac":    true,
	"audio/aiff":      true,
	"audio/mp4":       true,
	"audio/aac":       true,
	"audio/basic":     true,
	"audio/x-caf":     true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"video/avi":       true,
}

// notAudioPrefixes are detections that can never carry an audio stream.
var notAudioPrefixes = []string{
	"text/",
	"image/",
	"font/",
	"application/pdf",
	"application/zip",
	"application/x-gzip",
	"application/x-rar-compressed",
	"application/wasm",
	"application/json",
	"audio/midi",
}

// magicBytesBufferSize is the number of bytes read for content detection.
const magicBytesBufferSize = 512

// DetectContent sniffs the MIME type from the first bytes of reader and
// rewinds it. Empty input reports "application/octet-stream" with n == 0.
func DetectContent(reader io.ReadSeeker) (mime string, n int, err error) {
	buf := make([]byte, magicBytesBufferSize)
	n, err = io.ReadFull(reader, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", 0, err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", 0, err
	}
	if n == 0 {
		return "application/octet-stream", 0, nil
	}

	buf = buf[:n]
	mime = detectCustomMagicBytes(buf)
	if mime == "" {
		mime = http.DetectContentType(buf)
		if i := strings.IndexByte(mime, ';'); i != -1 {
			mime = mime[:i]
		}
	}
	return mime, n, nil
}

// IsAudio reports whether mime is a container the toolchain reads audio from.
func IsAudio(mime string) bool {
	return audioMIMETypes[mime]
}

// IsNotAudio reports whether mime is a type that can never hold audio.
// Unrecognized binary data is neither audio nor not-audio.
func IsNotAudio(mime string) bool {
	for _, p := range notAudioPrefixes {
		if strings.HasPrefix(mime, p) {
			return true
		}
	}
	return false
}

// detectCustomMagicBytes handles audio containers http.DetectContentType
// misses or reports generically.
func detectCustomMagicBytes(buf []byte) string {
	if len(buf) < 4 {
		return ""
	}

	// Matroska/WebM: EBML header
	if buf[0] == 0x1A && buf[1] == 0x45 && buf[2] == 0xDF && buf[3] == 0xA3 {
		return "video/webm"
	}

	if string(buf[:4]) == "fLaC" {
		return "audio/flac"
	}

	if string(buf[:4]) == "OggS" {
		return "audio/ogg"
	}

	if buf[0] == 'I' && buf[1] == 'D' && buf[2] == '3' {
		return "audio/mpeg"
	}

	// ADTS AAC: sync word 0xFFF with layer bits 00
	if buf[0] == 0xFF && buf[1]&0xF6 == 0xF0 {
		return "audio/aac"
	}

	// MPEG audio frame sync without ID3
	if buf[0] == 0xFF && buf[1]&0xE0 == 0xE0 {
		return "audio/mpeg"
	}

	if len(buf) >= 12 {
		// RIFF....WAVE
		if string(buf[0:4]) == "RIFF" && string(buf[8:12]) == "WAVE" {
			return "audio/wav"
		}
		// FORM....AIFF / AIFC
		if string(buf[0:4]) == "FORM" && (string(buf[8:12]) == "AIFF" || string(buf[8:12]) == "AIFC") {
			return "audio/aiff"
		}
		// ISO BMFF: [size]["ftyp"][brand]
		if string(buf[4:8]) == "ftyp" {
			switch string(buf[8:12]) {
			case "M4A ", "M4B ", "M4P ", "F4A ":
				return "audio/mp4"
			case "qt  ":
				return "video/quicktime"
			default:
				return "video/mp4"
			}
		}
	}

	// Core Audio Format
	if string(buf[:4]) == "caff" {
		return "audio/x-caf"
	}

	return ""
}

type Checker struct{}

func NewChecker() port.InputValidator {
	return Checker{}
}

// CheckInput opens path and rejects it when it is unreadable, empty, or
// sniffs as a type that cannot contain audio.
func (Checker) CheckInput(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrFileUnreadable, path)
	}

	mime, n, err := DetectContent(f)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s is empty", domain.ErrUnsupportedFormat, path)
	}
	if IsNotAudio(mime) {
		return fmt.Errorf("%w: %s looks like %s", domain.ErrUnsupportedFormat, path, mime)
	}
	return nil
}

var _ port.InputValidator = Checker{}
