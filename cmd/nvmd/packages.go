package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/packages"
)

func newPackagesCmd(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   messages.PackagesUse,
		Short: messages.PackagesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths()
			if err != nil {
				return err
			}
			ledger, err := packages.LoadLedger(paths.PackagesPath)
			if errors.Is(err, packages.ErrMalformedLedger) {
				logger.Warn(messages.LogLedgerMalformed, "path", paths.PackagesPath, "err", err)
			} else if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			if len(ledger) == 0 {
				_, _ = fmt.Fprintln(out, messages.PackagesEmpty)
				return nil
			}
			for _, name := range ledger.Names() {
				_, _ = fmt.Fprintf(out, messages.PackageLineFmt, name, strings.Join(ledger[name], ", "))
			}
			return nil
		},
	}
}
