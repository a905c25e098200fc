package main

import (
	"github.com/spf13/cobra"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/service"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var recursive bool
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "probe <path>...",
		Short: "Report duration, sample rate, channels and codec of audio files",
		Long: `Probe inspects each file with ffprobe. Directories contribute the audio
files they contain; pass --recursive to descend into subdirectories.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := service.CollectInputs(args, recursive)
			if err != nil {
				return err
			}
			return runBatch(cmd, ctx, domain.NewJobs(inputs, domain.OperationProbe, nil), out)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	out.register(cmd)
	return cmd
}
