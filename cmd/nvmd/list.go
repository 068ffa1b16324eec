package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
	"github.com/nvmd-desktop/nvmd/internal/terminal"
	"github.com/nvmd-desktop/nvmd/internal/version"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     messages.ListUse,
		Aliases: []string{messages.ListAlias},
		Short:   messages.ListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths()
			if err != nil {
				return err
			}
			versions, err := version.ListInstalled(paths.InstalledDir(), platform.Current())
			if err != nil {
				return err
			}
			res, _ := currentVersion(paths)

			out := cmd.ErrOrStderr()
			green := color.New(color.FgGreen)
			if !terminal.IsTerminalWriter(out) {
				green.DisableColor()
			}
			for _, v := range versions {
				if v == res.Version {
					_, _ = fmt.Fprintln(out, green.Sprintf(messages.VersionCurrentFmt, v))
					continue
				}
				_, _ = fmt.Fprintf(out, messages.VersionLineFmt, v)
			}
			return nil
		},
	}
}
