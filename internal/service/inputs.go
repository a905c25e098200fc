package service

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/infrastructure/logger"
)

var ErrNoInputs = errors.New("no input files")

// CollectInputs expands command line arguments into the ordered list of
// files to process. Directories contribute their audio files, sorted by
// name, descending into subdirectories only when recursive is set. Files
// and paths that cannot be stat'ed are passed through so the batch reports
// them. Duplicates are dropped, keeping the first occurrence.
func CollectInputs(args []string, recursive bool) ([]string, error) {
	var inputs []string
	seen := make(map[string]struct{})
	add := func(p string) {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		inputs = append(inputs, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			add(arg)
			continue
		}

		files, err := audioFilesIn(arg, recursive)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			logger.Warn.Printf("no audio files in %s", logger.SanitizeForLog(arg))
		}
		for _, f := range files {
			add(f)
		}
	}

	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	return inputs, nil
}

func audioFilesIn(dir string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			logger.Warn.Printf("skip %s: %v", logger.SanitizeForLog(path), err)
			return nil
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && domain.IsAudioFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
