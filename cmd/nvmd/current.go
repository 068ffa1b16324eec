package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.CurrentUse,
		Short: messages.CurrentShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths()
			if err != nil {
				return err
			}
			res, err := currentVersion(paths)
			if !res.Resolved() {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.VersionLineFmt, res.Version)
			return nil
		},
	}
}
