// Package shim runs an invocation of the launcher under a logical command name: it resolves the
// runtime version, then either dispatches to the versioned binary or runs a global package
// operation that keeps the ledger current.
package shim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nvmd-desktop/nvmd/internal/dispatch"
	"github.com/nvmd-desktop/nvmd/internal/home"
	"github.com/nvmd-desktop/nvmd/internal/identity"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/packages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
	"github.com/nvmd-desktop/nvmd/internal/version"
)

// Shim holds the collaborators of one invocation.
type Shim struct {
	Paths      home.Paths
	Platform   platform.Platform
	Sys        dispatch.System
	Versions   version.System
	Dispatcher dispatch.Dispatcher
	// Runner runs npm and corepack when their result needs bookkeeping. It must wait for the
	// child, so it is never a process-replacing launcher.
	Runner packages.Runner
	Getwd  func() (string, error)
	Logger *log.Logger
}

// New returns a Shim wired to the real system.
func New(paths home.Paths, getwd func() (string, error), logger *log.Logger) Shim {
	d := dispatch.New(logger)
	return Shim{
		Paths:      paths,
		Platform:   d.Platform,
		Sys:        d.Sys,
		Versions:   version.RealSystem{},
		Dispatcher: d,
		Runner:     dispatch.NewSpawnLauncher(d.Sys),
		Getwd:      getwd,
		Logger:     logger,
	}
}

// Run executes the invocation and returns the process exit code.
// Any failure to find or start the target is reported as "<name>: command not found" on stdout
// with exit code 0.
func (s Shim) Run(name string, args []string) int {
	wd := s.workDir()
	res := s.resolve(wd)
	if !res.Resolved() {
		s.logger().Debug(messages.LogUnresolvedVersion, "command", name)
		return s.notFound(name)
	}
	s.logger().Debug(messages.LogResolvedVersion, "version", res.Version, "source", res.Source, "path", res.Path)

	binaryDir := dispatch.BinaryDir(s.Paths.Root, res.Version, s.Platform)
	env := s.Sys.Environ()

	m := packages.Manager{
		Paths:     s.Paths,
		Version:   res.Version,
		BinaryDir: binaryDir,
		Env:       env,
		Platform:  s.Platform,
		Runner:    s.Runner,
		WorkDir:   wd,
		Logger:    s.Logger,
	}

	code, err := s.launch(m, name, args)
	return s.exitCode(name, code, err)
}

func (s Shim) launch(m packages.Manager, name string, args []string) (int, error) {
	switch {
	case identity.IsPackageManager(name):
		if op := packages.Classify(args); op.Intercepted() {
			return s.managed(m, name, args, func() (int, error) { return m.Run(op, args) })
		}
	case identity.IsCorepack(name):
		if op, ok := packages.ClassifyCorepack(args); ok {
			return s.managed(m, name, args, func() (int, error) { return m.RunCorepack(op, args) })
		}
	}
	return s.Dispatcher.Dispatch(m.BinaryDir, name, args, m.Env)
}

// managed runs a command that needs bookkeeping after it exits, so it is spawned through Runner
// instead of replacing the process.
func (s Shim) managed(m packages.Manager, name string, args []string, run func() (int, error)) (int, error) {
	if _, err := s.Dispatcher.Prepare(m.BinaryDir, name, args, m.Env); err != nil {
		if errors.Is(err, dispatch.ErrCommandNotFound) {
			return 0, err
		}
		return 1, err
	}
	return run()
}

func (s Shim) workDir() string {
	if s.Getwd == nil {
		return ""
	}
	dir, err := s.Getwd()
	if err != nil {
		s.logger().Debug(messages.LogUnresolvedVersion, "err", err)
		return ""
	}
	return dir
}

func (s Shim) resolve(wd string) version.Resolution {
	sys := s.Versions
	if sys == nil {
		sys = version.RealSystem{}
	}
	res, err := version.ResolveWithSystem(sys, wd, s.Paths.Root)
	if err != nil {
		s.logger().Warn(messages.LogUnresolvedVersion, "err", err)
	}
	return res
}

func (s Shim) exitCode(name string, code int, err error) int {
	switch {
	case err == nil:
		return code
	case errors.Is(err, dispatch.ErrCommandNotFound):
		return s.notFound(name)
	case errors.Is(err, dispatch.ErrAbnormalExit):
		s.logger().Debug(messages.LogDispatchFailed, "command", name, "err", err)
		return code
	default:
		s.logger().Error(messages.LogDispatchFailed, "command", name, "err", err)
		return code
	}
}

func (s Shim) notFound(name string) int {
	_, _ = fmt.Fprintf(s.Sys.Stdout(), messages.CommandNotFoundFmt, name)
	return 0
}

func (s Shim) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
