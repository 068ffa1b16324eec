package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/nvmd-desktop/nvmd/internal/home"
	"github.com/nvmd-desktop/nvmd/internal/identity"
	"github.com/nvmd-desktop/nvmd/internal/logging"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
	"github.com/nvmd-desktop/nvmd/internal/shim"
	"github.com/nvmd-desktop/nvmd/internal/terminal"
)

var (
	getwd  = os.Getwd
	getenv = os.Getenv

	executeFunc = execute
	runShimFunc = runShim
)

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the management CLI with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd(logging.New(stderr, getenv(logging.EnvLevel)))
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 0 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain routes the invocation by the name the binary was called under: the launcher's own
// name runs the management CLI, anything else is dispatched to the selected runtime.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stderr, messages.DispatchMissingArgv0)
		exit(1)
		return
	}

	name := identity.Identify(args[0], platform.Current())
	if !identity.IsLauncher(name) {
		exit(runShimFunc(name, args[1:], stdout, stderr))
		return
	}

	if err := executeFunc(args, stdout, stderr); err != nil {
		printError(stderr, err)
		exit(1)
	}
}

// runShim dispatches name to the selected runtime and returns the exit code.
func runShim(name string, args []string, stdout io.Writer, stderr io.Writer) int {
	logger := logging.New(stderr, getenv(logging.EnvLevel))
	root, err := home.Root(getenv)
	if err != nil {
		logger.Error(messages.LogDispatchFailed, "command", name, "err", err)
		_, _ = fmt.Fprintf(stdout, messages.CommandNotFoundFmt, name)
		return 0
	}
	return shim.New(home.DefaultPaths(root), getwd, logger).Run(name, args)
}

func printError(w io.Writer, err error) {
	c := color.New(color.FgRed)
	if !terminal.IsTerminalWriter(w) {
		c.DisableColor()
	}
	_, _ = c.Fprintf(w, messages.ErrorPrefixFmt, err)
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	meta := []string{}
	if Commit != "" && Commit != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if BuildDate != "" && BuildDate != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}
