package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/bnema/audiobatch/config"
	"github.com/bnema/audiobatch/internal/adapter/converter/ffmpeg"
	"github.com/bnema/audiobatch/internal/adapter/report"
)

type check struct {
	name   string
	ok     bool
	detail string
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that ffmpeg, ffprobe and the data directory are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			checks := []check{
				toolCheck(cmd, "ffmpeg", cfg.Tools.FFmpeg, cfg.Tools.SearchDirs),
				toolCheck(cmd, "ffprobe", cfg.Tools.FFprobe, cfg.Tools.SearchDirs),
				dataDirCheck(cfg),
				historyCheck(cfg),
			}
			configDetail := ctx.configPath
			if configDetail == "" {
				configDetail = "none (built-in defaults)"
			}

			colorize := report.ShouldColorize(cmd.OutOrStdout())
			rows := [][]string{{"config", "", configDetail}}
			failed := 0
			for _, c := range checks {
				state := "OK"
				if !c.ok {
					state = "MISSING"
					failed++
				}
				if colorize {
					state = statusColor(c.ok, state)
				}
				rows = append(rows, []string{c.name, state, c.detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Table([]string{"Check", "Status", "Detail"}, rows, nil))
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}

func toolCheck(cmd *cobra.Command, label, name string, searchDirs []string) check {
	path, err := ffmpeg.Locate(name, searchDirs)
	if err != nil {
		return check{name: label, detail: err.Error()}
	}
	version, err := ffmpeg.Version(cmd.Context(), path)
	if err != nil {
		return check{name: label, detail: fmt.Sprintf("%s: %v", path, err)}
	}
	return check{name: label, ok: true, detail: fmt.Sprintf("%s (%s)", path, version)}
}

func dataDirCheck(cfg *config.Config) check {
	probe, err := os.CreateTemp(cfg.DataDir, ".doctor-*")
	if err != nil {
		return check{name: "data dir", detail: fmt.Sprintf("%s not writable: %v", cfg.DataDir, err)}
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())
	return check{name: "data dir", ok: true, detail: cfg.DataDir}
}

func historyCheck(cfg *config.Config) check {
	if cfg.History.Backend == config.HistoryNone {
		return check{name: "history", ok: true, detail: "disabled"}
	}
	store, err := openHistory(cfg)
	if err != nil {
		return check{name: "history", detail: err.Error()}
	}
	_ = store.Close()
	file := "history.db"
	if cfg.History.Backend == config.HistoryJSON {
		file = "history.json"
	}
	return check{name: "history", ok: true, detail: fmt.Sprintf("%s (%s)", cfg.History.Backend, filepath.Join(cfg.DataDir, file))}
}

func statusColor(ok bool, s string) string {
	if ok {
		return text.Colors{text.FgGreen}.Sprint(s)
	}
	return text.Colors{text.FgRed}.Sprint(s)
}
