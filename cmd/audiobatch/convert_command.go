package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/audiobatch/config"
	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/service"
)

type convertFlags struct {
	recursive     bool
	outDir        string
	output        string
	sampleRate    int
	channels      int
	bitDepth      int
	overwrite     string
	keepContainer bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags
	var out outputOptions
	defaults := config.Default().Convert

	cmd := &cobra.Command{
		Use:   "convert <path>...",
		Short: "Convert audio files to PCM WAV",
		Long: `Convert transcodes each file with ffmpeg. Unset flags fall back to the
[convert] section of the config file; 0 keeps the source value.

Existing outputs are never replaced unless --overwrite=overwrite is given.
With --overwrite=skip they are left alone and reported as skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cmd, cfg.Convert)
			if err != nil {
				return err
			}

			inputs, err := service.CollectInputs(args, flags.recursive)
			if err != nil {
				return err
			}
			if req.OutputPath != "" && len(inputs) > 1 {
				return errors.New("--output can only be used with a single input file; use --out-dir")
			}
			return runBatch(cmd, ctx, domain.NewJobs(inputs, domain.OperationConvert, req), out)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.recursive, "recursive", "r", false, "Descend into subdirectories")
	f.StringVarP(&flags.outDir, "out-dir", "o", "", "Directory for converted files (default: next to each input)")
	f.StringVar(&flags.output, "output", "", "Exact output file (single input only)")
	f.IntVar(&flags.sampleRate, "sample-rate", defaults.SampleRate, "Target sample rate in Hz (0 keeps the source rate)")
	f.IntVar(&flags.channels, "channels", defaults.Channels, "Target channel count (0 keeps the source layout)")
	f.IntVar(&flags.bitDepth, "bit-depth", defaults.BitDepth, "PCM bit depth: 16, 24 or 32 (0 keeps the source depth)")
	f.StringVar(&flags.overwrite, "overwrite", string(defaults.Overwrite), "When the output exists: fail, skip or overwrite")
	f.BoolVar(&flags.keepContainer, "keep-container", defaults.KeepContainer, "Keep the input's container instead of writing WAV")
	out.register(cmd)
	return cmd
}

// request merges explicitly set flags over the configured defaults.
func (f *convertFlags) request(cmd *cobra.Command, base domain.ConvertRequest) (*domain.ConvertRequest, error) {
	req := base
	changed := cmd.Flags().Changed

	if changed("sample-rate") {
		req.SampleRate = f.sampleRate
	}
	if changed("channels") {
		req.Channels = f.channels
	}
	if changed("bit-depth") {
		req.BitDepth = f.bitDepth
	}
	if changed("keep-container") {
		req.KeepContainer = f.keepContainer
	}
	if changed("out-dir") {
		req.OutputDir = f.outDir
	}
	if changed("overwrite") {
		policy, err := domain.ParseOverwritePolicy(f.overwrite)
		if err != nil {
			return nil, err
		}
		req.Overwrite = policy
	}
	req.OutputPath = f.output

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	return &req, nil
}
