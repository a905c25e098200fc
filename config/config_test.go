package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/audiobatch/internal/domain"
)

// isolate points every lookup location at a temp dir so the developer's
// own config and environment never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{
		"AUDIOBATCH_CONFIG", "AUDIOBATCH_FFMPEG", "AUDIOBATCH_FFPROBE",
		"AUDIOBATCH_WORKERS", "AUDIOBATCH_DATA_DIR", "AUDIOBATCH_HISTORY",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, path, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, path)
	assert.Equal(t, filepath.Join(dir, "data", "audiobatch"), cfg.DataDir)
	assert.Equal(t, "ffmpeg", cfg.Tools.FFmpeg)
	assert.Equal(t, "ffprobe", cfg.Tools.FFprobe)
	assert.Equal(t, []string{"/opt/homebrew/bin", "/usr/local/bin"}, cfg.Tools.SearchDirs)
	assert.Equal(t, 0, cfg.Runner.Workers)
	assert.Equal(t, HistorySQLite, cfg.History.Backend)
	assert.Equal(t, 48000, cfg.Convert.SampleRate)
	assert.Equal(t, 1, cfg.Convert.Channels)
	assert.Equal(t, 16, cfg.Convert.BitDepth)
	assert.Equal(t, domain.OverwriteFail, cfg.Convert.Overwrite)
	assert.Equal(t, "30s", cfg.LockTimeout().String())
}

func TestLoad_DefaultLocation(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", "audiobatch", "config.toml")
	writeConfig(t, path, "[runner]\nworkers = 3\n")

	cfg, got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 3, cfg.Runner.Workers)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeConfig(t, path, `
data_dir = "~/state"

[tools]
ffmpeg = "/opt/ff/ffmpeg"

[history]
backend = "JSON"

[convert]
sample_rate = 0
channels = 2
bit_depth = 24
overwrite = "Skip"
output_dir = "~/converted"
keep_container = true
`)

	cfg, got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, got)
	assert.Equal(t, filepath.Join(dir, "state"), cfg.DataDir)
	assert.Equal(t, "/opt/ff/ffmpeg", cfg.Tools.FFmpeg)
	assert.Equal(t, "ffprobe", cfg.Tools.FFprobe)
	assert.Equal(t, HistoryJSON, cfg.History.Backend)
	assert.Equal(t, 0, cfg.Convert.SampleRate)
	assert.Equal(t, 2, cfg.Convert.Channels)
	assert.Equal(t, 24, cfg.Convert.BitDepth)
	assert.Equal(t, domain.OverwriteSkip, cfg.Convert.Overwrite)
	assert.Equal(t, filepath.Join(dir, "converted"), cfg.Convert.OutputDir)
	assert.True(t, cfg.Convert.KeepContainer)
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "env.toml")
	writeConfig(t, path, "[runner]\nfingerprint = true\n")
	t.Setenv("AUDIOBATCH_CONFIG", path)

	cfg, got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.True(t, cfg.Runner.Fingerprint)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.toml")
	writeConfig(t, path, "[runner]\nworkers = 2\n[tools]\nffmpeg = \"from-file\"\n")
	t.Setenv("AUDIOBATCH_WORKERS", "6")
	t.Setenv("AUDIOBATCH_FFMPEG", "/env/ffmpeg")
	t.Setenv("AUDIOBATCH_FFPROBE", "/env/ffprobe")
	t.Setenv("AUDIOBATCH_DATA_DIR", filepath.Join(dir, "envdata"))
	t.Setenv("AUDIOBATCH_HISTORY", "none")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Runner.Workers)
	assert.Equal(t, "/env/ffmpeg", cfg.Tools.FFmpeg)
	assert.Equal(t, "/env/ffprobe", cfg.Tools.FFprobe)
	assert.Equal(t, filepath.Join(dir, "envdata"), cfg.DataDir)
	assert.Equal(t, HistoryNone, cfg.History.Backend)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{name: "malformed toml", content: "data_dir = [", wantErr: "parse config"},
		{name: "unknown key", content: "[runner]\nworkerz = 2\n", wantErr: "parse config"},
		{name: "negative workers", content: "[runner]\nworkers = -1\n", wantErr: "runner.workers"},
		{name: "too many workers", content: "[runner]\nworkers = 500\n", wantErr: "runner.workers"},
		{name: "bad backend", content: "[history]\nbackend = \"redis\"\n", wantErr: "history.backend"},
		{name: "bad bit depth", content: "[convert]\nbit_depth = 20\n", wantErr: "convert"},
		{name: "bad overwrite", content: "[convert]\noverwrite = \"maybe\"\n", wantErr: "overwrite policy"},
		{name: "bad sample rate", content: "[convert]\nsample_rate = 100\n", wantErr: "sample rate"},
		{name: "negative lock timeout", content: "[runner]\nlock_timeout_seconds = -5\n", wantErr: "lock_timeout_seconds"},
		{name: "non-numeric workers env", env: map[string]string{"AUDIOBATCH_WORKERS": "many"}, wantErr: "AUDIOBATCH_WORKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "c.toml")
			writeConfig(t, path, tt.content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, _, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, _, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err) || strings.Contains(err.Error(), "stat config"))
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	isolate(t)

	var parsed Config
	require.NoError(t, toml.NewDecoder(strings.NewReader(SampleConfig())).DisallowUnknownFields().Decode(&parsed))

	def := Default()
	assert.Equal(t, def.Tools, parsed.Tools)
	assert.Equal(t, def.Runner, parsed.Runner)
	assert.Equal(t, def.History, parsed.History)
	assert.Equal(t, def.Convert, parsed.Convert)
}

func TestEnsureDataDir(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.DataDir = filepath.Join(dir, "a", "b")

	require.NoError(t, cfg.EnsureDataDir())
	assert.DirExists(t, cfg.DataDir)
}
