package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbkclanna/relgate/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "relgate",
		Short:         "Release decision gate for multi-package repositories",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", ".", "Directory inside the project")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log git queries and classification details to stderr")

	cmd.AddCommand(
		newInitCmd(),
		newCheckCmd(),
		newVersionCmd(),
		newStatusCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// loggerFor builds the logger selected by the --verbose flag.
func loggerFor(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(verbose, cmd.ErrOrStderr())
}
