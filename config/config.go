package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bnema/audiobatch/internal/domain"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	HistorySQLite = "sqlite"
	HistoryJSON   = "json"
	HistoryNone   = "none"

	maxWorkers = 64
)

// Tools locates the external binaries.
type Tools struct {
	FFmpeg     string   `toml:"ffmpeg"`
	FFprobe    string   `toml:"ffprobe"`
	SearchDirs []string `toml:"search_dirs"`
}

type Runner struct {
	// Workers is the pool size. 0 picks one from the CPU count.
	Workers            int  `toml:"workers"`
	Fingerprint        bool `toml:"fingerprint"`
	ReadTags           bool `toml:"read_tags"`
	LockTimeoutSeconds int  `toml:"lock_timeout_seconds"`
}

type History struct {
	Backend   string `toml:"backend"`
	ListLimit int    `toml:"list_limit"`
}

type Config struct {
	DataDir string                `toml:"data_dir"`
	Tools   Tools                 `toml:"tools"`
	Runner  Runner                `toml:"runner"`
	History History               `toml:"history"`
	Convert domain.ConvertRequest `toml:"convert"`
}

// Default returns the built-in configuration. The convert target is
// 48 kHz mono 16-bit PCM.
func Default() Config {
	return Config{
		DataDir: defaultDataDir(),
		Tools: Tools{
			FFmpeg:     "ffmpeg",
			FFprobe:    "ffprobe",
			SearchDirs: []string{"/opt/homebrew/bin", "/usr/local/bin"},
		},
		Runner: Runner{
			ReadTags:           true,
			LockTimeoutSeconds: 30,
		},
		History: History{
			Backend:   HistorySQLite,
			ListLimit: 20,
		},
		Convert: domain.ConvertRequest{
			SampleRate: 48000,
			Channels:   1,
			BitDepth:   16,
			Overwrite:  domain.OverwriteFail,
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (or
// the default location), and AUDIOBATCH_* environment overrides, in that
// order. It returns the config file path that was read, or "" when none.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	} else {
		resolvedPath = ""
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigPath prefers an explicit path, then AUDIOBATCH_CONFIG, then
// the default location. Only the default location may be absent.
func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv("AUDIOBATCH_CONFIG")
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(defaultPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, !info.IsDir(), nil
}

// DefaultConfigPath returns where the config file is looked up when no
// path is given.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return expandPath(filepath.Join(dir, "audiobatch", "config.toml"))
	}
	return expandPath("~/.config/audiobatch/config.toml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "audiobatch")
	}
	return "~/.local/share/audiobatch"
}

func (c *Config) applyEnv() error {
	c.Tools.FFmpeg = getEnv("AUDIOBATCH_FFMPEG", c.Tools.FFmpeg)
	c.Tools.FFprobe = getEnv("AUDIOBATCH_FFPROBE", c.Tools.FFprobe)
	c.DataDir = getEnv("AUDIOBATCH_DATA_DIR", c.DataDir)
	c.History.Backend = getEnv("AUDIOBATCH_HISTORY", c.History.Backend)

	workers, err := strconv.Atoi(getEnv("AUDIOBATCH_WORKERS", strconv.Itoa(c.Runner.Workers)))
	if err != nil {
		return fmt.Errorf("invalid AUDIOBATCH_WORKERS: %w", err)
	}
	c.Runner.Workers = workers
	return nil
}

func (c *Config) normalize() error {
	c.History.Backend = strings.ToLower(strings.TrimSpace(c.History.Backend))
	c.Convert.Overwrite = domain.OverwritePolicy(strings.ToLower(strings.TrimSpace(string(c.Convert.Overwrite))))

	var err error
	if c.DataDir, err = expandPath(c.DataDir); err != nil {
		return err
	}
	if c.Convert.OutputDir, err = expandPath(c.Convert.OutputDir); err != nil {
		return err
	}
	return nil
}

// Validate checks value ranges after all sources have been applied.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must be set")
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" || strings.TrimSpace(c.Tools.FFprobe) == "" {
		return errors.New("tools.ffmpeg and tools.ffprobe must be set")
	}
	if c.Runner.Workers < 0 || c.Runner.Workers > maxWorkers {
		return fmt.Errorf("runner.workers must be between 0 and %d, got %d", maxWorkers, c.Runner.Workers)
	}
	if c.Runner.LockTimeoutSeconds < 0 {
		return fmt.Errorf("runner.lock_timeout_seconds must not be negative, got %d", c.Runner.LockTimeoutSeconds)
	}
	switch c.History.Backend {
	case HistorySQLite, HistoryJSON, HistoryNone:
	default:
		return fmt.Errorf("history.backend must be sqlite, json or none, got %q", c.History.Backend)
	}
	if err := c.Convert.Validate(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return nil
}

func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Runner.LockTimeoutSeconds) * time.Second
}

// EnsureDataDir creates the directory holding history and lock files.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory %q: %w", c.DataDir, err)
	}
	return nil
}

// SampleConfig returns a commented config file with every default spelled out.
func SampleConfig() string {
	return sampleConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
