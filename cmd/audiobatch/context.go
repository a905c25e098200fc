package main

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bnema/audiobatch/config"
	"github.com/bnema/audiobatch/internal/adapter/converter/ffmpeg"
	"github.com/bnema/audiobatch/internal/adapter/fingerprint"
	"github.com/bnema/audiobatch/internal/adapter/lock"
	"github.com/bnema/audiobatch/internal/adapter/storage/jsonfile"
	sqlitestore "github.com/bnema/audiobatch/internal/adapter/storage/sqlite"
	"github.com/bnema/audiobatch/internal/adapter/tags"
	"github.com/bnema/audiobatch/internal/adapter/validation"
	"github.com/bnema/audiobatch/internal/infrastructure/logger"
	"github.com/bnema/audiobatch/internal/port"
	"github.com/bnema/audiobatch/internal/service"
)

type commandContext struct {
	configFlag  string
	verboseFlag bool
	workersFlag int

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if c.workersFlag > 0 {
			cfg.Runner.Workers = c.workersFlag
		}
		if err := cfg.EnsureDataDir(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		if path != "" {
			logger.Debug.Printf("loaded config from %s", path)
		}
	})
	return c.config, c.configErr
}

// openHistory returns nil when history is disabled. A SQLite database
// that cannot be opened falls back to the JSON file store.
func openHistory(cfg *config.Config) (port.HistoryStore, error) {
	switch cfg.History.Backend {
	case config.HistoryNone:
		return nil, nil
	case config.HistoryJSON:
		return jsonfile.NewStore(cfg.DataDir)
	}

	store, err := sqlitestore.NewStore(cfg.DataDir)
	if err == nil {
		return store, nil
	}
	logger.Warn.Printf("open history database: %v; using %s", err, filepath.Join(cfg.DataDir, "history.json"))
	return jsonfile.NewStore(cfg.DataDir)
}

func newConverter(cfg *config.Config) port.MediaConverter {
	return ffmpeg.NewConverter(cfg.Tools.FFmpeg, cfg.Tools.FFprobe, cfg.Tools.SearchDirs...)
}

// newRunner wires the runner for one batch. The returned close func
// releases the history store.
func newRunner(cfg *config.Config, events service.EventPublisher) (*service.Runner, func(), error) {
	history, err := openHistory(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {}
	if history != nil {
		closeFn = func() { _ = history.Close() }
	}

	var fp port.Fingerprinter
	if cfg.Runner.Fingerprint {
		fp = fingerprint.New()
	}

	runner := service.NewRunner(
		newConverter(cfg),
		validation.NewChecker(),
		history,
		lock.NewDirLocker(filepath.Join(cfg.DataDir, "locks"), cfg.LockTimeout()),
		fp,
		events,
		cfg.Runner.Workers,
	)
	if cfg.Runner.ReadTags {
		runner.WithTagReader(tags.NewReader())
	}
	return runner, closeFn, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
