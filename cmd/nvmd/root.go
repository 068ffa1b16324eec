package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd/internal/home"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/version"
)

func newRootCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + "\n" + messages.RootAfter + "\n")
	cmd.AddCommand(
		newCurrentCmd(),
		newListCmd(),
		newUseCmd(logger),
		newWhichCmd(),
		newPackagesCmd(logger),
	)
	return cmd
}

// resolvePaths locates the configuration root from the environment.
func resolvePaths() (home.Paths, error) {
	root, err := home.Root(getenv)
	if err != nil {
		return home.Paths{}, err
	}
	return home.DefaultPaths(root), nil
}

// currentVersion resolves the version in effect for the working directory.
func currentVersion(paths home.Paths) (version.Resolution, error) {
	wd, err := getwd()
	if err != nil {
		return version.Resolution{}, err
	}
	return version.Resolve(wd, paths.Root)
}
