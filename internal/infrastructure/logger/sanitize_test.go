package logger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForLog_CleanInputIsReturnedAsIs(t *testing.T) {
	inputs := []string{
		"",
		"/music/album/01 - intro.flac",
		"C:\\Users\\me\\Music\\take 2.wav",
		"/music/Beyoncé/Déjà Vu.m4a",
		"/音楽/曲.ogg",
		"/music/🎵 mix.mp3",
		`/music/"quoted" & <tagged>.aiff`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, SanitizeForLog(in))
			allocs := testing.AllocsPerRun(10, func() { _ = SanitizeForLog(in) })
			assert.Zero(t, allocs)
		})
	}
}

func TestSanitizeForLog_EscapesControls(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "newline", input: "a\nb", expected: `a\nb`},
		{name: "carriage return", input: "a\rb", expected: `a\rb`},
		{name: "tab", input: "a\tb", expected: `a\tb`},
		{name: "NUL", input: "a\x00b", expected: `a\x00b`},
		{name: "ESC", input: "\x1b[2J", expected: `\x1b[2J`},
		{name: "DEL", input: "a\x7fb", expected: `a\x7fb`},
		{name: "C1 next line", input: "a\u0085b", expected: `a\x85b`},
		{name: "C1 CSI", input: "\u009b31mred", expected: `\x9b31mred`},
		{name: "unicode around a control", input: "曲\n.flac", expected: `曲\n.flac`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeForLog(tt.input))
		})
	}
}

func TestSanitizeForLog_EveryControlIsEscaped(t *testing.T) {
	for r := rune(0); r < 0x100; r++ {
		if !(r < 0x20 || (r >= 0x7f && r <= 0x9f)) {
			continue
		}
		got := SanitizeForLog(string(r))
		assert.True(t, strings.HasPrefix(got, `\`), "U+%04X gave %q", r, got)
		assert.NotContains(t, got, string(r), "U+%04X left in output", r)
	}
}

func TestSanitizeForLog_KeepsRunnerLinesSingle(t *testing.T) {
	path := "/music/a.flac\n2026/01/02 03:04:05 ERROR: batch 1: forged entry"
	msg := "ffprobe: unsupported_format: Invalid data\r\nfound when processing input"

	line := fmt.Sprintf("batch %s: %s %s: %s", "b-1", "probe", SanitizeForLog(path), SanitizeForLog(msg))

	assert.NotContains(t, line, "\n")
	assert.NotContains(t, line, "\r")
	assert.Contains(t, line, `/music/a.flac\n2026/01/02`)
	assert.Contains(t, line, `Invalid data\r\nfound`)
}
