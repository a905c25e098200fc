package domain

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxFilenameLength is the common filesystem limit in bytes.
const maxFilenameLength = 255

// dangerousChars are replaced in derived output filenames.
var dangerousChars = map[rune]bool{
	'"':  true,
	'\\': true,
	'/':  true,
	':':  true,
	'*':  true,
	'?':  true,
	'<':  true,
	'>':  true,
	'|':  true,
}

// SanitizeFilename makes a single path element safe to create on any
// filesystem: separators, shell-hostile and control characters become
// underscores, Unicode is kept, and the name is truncated to 255 bytes
// keeping its extension.
func SanitizeFilename(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))

	for _, r := range name {
		if r < 32 || r == 127 || dangerousChars[r] {
			sb.WriteRune('_')
			continue
		}
		sb.WriteRune(r)
	}

	result := strings.TrimSpace(sb.String())
	if strings.Trim(result, "_.") == "" {
		return "audio" + filepath.Ext(result)
	}
	if len(result) > maxFilenameLength {
		result = truncatePreservingExtension(result)
	}
	return result
}

func truncatePreservingExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || len(ext) >= maxFilenameLength {
		return truncateToBytes(name, maxFilenameLength)
	}
	base := name[:len(name)-len(ext)]
	return truncateToBytes(base, maxFilenameLength-len(ext)) + ext
}

// truncateToBytes cuts s to at most maxBytes without splitting a rune.
func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
