package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bnema/audiobatch/internal/adapter/report"
	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/infrastructure/logger"
	"github.com/bnema/audiobatch/internal/service"
)

type outputOptions struct {
	format     string
	reportPath string
	quiet      bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Output format: text, json or html")
	cmd.Flags().StringVar(&o.reportPath, "report", "", "Also write the report to this file (format from extension)")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "Do not print per-file progress")
}

// runBatch executes jobs, prints progress to stderr and the report to
// stdout, and turns an incomplete outcome into exit code 2.
func runBatch(cmd *cobra.Command, ctx *commandContext, jobs []domain.FileJob, opts outputOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	bus := service.NewEventBus()
	runner, closeRunner, err := newRunner(cfg, bus)
	if err != nil {
		return err
	}
	defer closeRunner()

	stderr := cmd.ErrOrStderr()
	var events chan service.Event
	var wg sync.WaitGroup
	if !opts.quiet {
		events = bus.SubscribeBuffered(service.AllBatches, service.EventsPerBatch(len(jobs)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			printProgress(stderr, events, report.ShouldColorize(stderr))
		}()
	}

	outcome, err := runner.Run(cmd.Context(), jobs)
	if events != nil {
		bus.Unsubscribe(service.AllBatches, events)
		wg.Wait()
	}
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	if err := report.Render(cmd.Context(), stdout, outcome, format, report.ShouldColorize(stdout)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if opts.reportPath != "" {
		if err := writeReport(cmd.Context(), opts.reportPath, outcome); err != nil {
			return err
		}
		logger.Info.Printf("report written to %s", logger.SanitizeForLog(opts.reportPath))
	}

	if outcome.Cancelled {
		fmt.Fprintln(stderr, "batch cancelled")
	}
	if !outcome.OK() {
		return &exitError{code: exitPartial}
	}
	return nil
}

func writeReport(ctx context.Context, path string, outcome *domain.BatchOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.Render(ctx, f, outcome, formatForPath(path), false); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

func formatForPath(path string) report.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return report.FormatJSON
	case ".html", ".htm":
		return report.FormatHTML
	default:
		return report.FormatText
	}
}

// printProgress writes one line per finished file until events is closed.
func printProgress(w io.Writer, events <-chan service.Event, colorize bool) {
	for ev := range events {
		if ev.Type != service.EventJobFinished {
			continue
		}
		line := fmt.Sprintf("[%d/%d] %-9s %s", ev.Done, ev.Total, report.StatusLabel(ev.Status, colorize), ev.InputPath)
		if ev.Message != "" {
			line += ": " + firstLine(ev.Message)
		}
		fmt.Fprintln(w, line)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
