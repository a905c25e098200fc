package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

var audioExts = map[string]bool{
	".mp3": true, ".wav": true, ".ogg": true, ".flac": true,
	".aac": true, ".m4a": true, ".wma": true, ".opus": true,
	".aif": true, ".aiff": true, ".alac": true, ".ape": true,
	".wv": true, ".mka": true, ".caf": true, ".ac3": true,
}

// IsAudioFile reports whether filename carries a known audio extension.
func IsAudioFile(filename string) bool {
	return audioExts[strings.ToLower(filepath.Ext(filename))]
}

// AudioExtensions lists the recognized extensions, for help text.
func AudioExtensions() []string {
	exts := make([]string, 0, len(audioExts))
	for ext := range audioExts {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
