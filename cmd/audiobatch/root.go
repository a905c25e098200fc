package main

import (
	"github.com/spf13/cobra"

	"github.com/bnema/audiobatch/internal/infrastructure/logger"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "audiobatch",
		Short:         "Probe and batch-convert audio files with ffmpeg",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Configure(cmd.ErrOrStderr(), ctx.verboseFlag)
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verboseFlag, "verbose", "v", false, "Log progress details to stderr")
	rootCmd.PersistentFlags().IntVarP(&ctx.workersFlag, "workers", "w", 0, "Number of files processed in parallel (0 uses the configured value)")

	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
