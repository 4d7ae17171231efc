package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/langcenter/apps/di"
	"github.com/trezcool/langcenter/core"
	logsvc "github.com/trezcool/langcenter/services/logger"
)

// newContainerFunc builds the dependencies of a command. Tests swap it for a config-free one.
var newContainerFunc = func(logOut io.Writer) (*di.Container, error) {
	conf, err := core.NewConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}
	return di.New(conf, logOut)
}

func newRootCmd(out io.Writer) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "langcenter-admin",
		Short:         "Language Center admin tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logsvc.SetLevel(logLevel)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "sets the log level")
	rootCmd.AddCommand(newExportCmd(), newImportCmd())
	return rootCmd
}
