package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
	"github.com/nvmd-desktop/nvmd/internal/version"
)

func newWhichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.WhichUse,
		Short: messages.WhichShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := version.Normalize(args[0])
			if err != nil {
				return err
			}
			paths, err := resolvePaths()
			if err != nil {
				return err
			}
			dir := filepath.Join(paths.InstalledDir(), v)
			if platform.Current().NestedBin() {
				dir = filepath.Join(dir, "bin")
			}
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf(messages.VersionNotInstalled, v)
			}
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), dir)
			return nil
		},
	}
}
