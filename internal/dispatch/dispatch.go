package dispatch

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nvmd-desktop/nvmd/internal/identity"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
)

// ErrCommandNotFound signals that the target could not be found or started.
// Callers report it as "<name>: command not found" and exit 0.
var ErrCommandNotFound = errors.New(messages.DispatchCommandNotFound)

// ErrAbnormalExit signals that a spawned child did not exit normally.
var ErrAbnormalExit = errors.New(messages.DispatchAbnormalExit)

// BinaryDir returns the directory holding the executables of version.
// POSIX runtimes nest them under bin; Windows runtimes keep them in the version root.
func BinaryDir(configRoot string, version string, p platform.Platform) string {
	if p.NestedBin() {
		return p.Join(configRoot, "versions", version, "bin")
	}
	return p.Join(configRoot, "versions", version)
}

// Dispatcher launches the versioned binary for a logical command.
type Dispatcher struct {
	Sys      System
	Launcher Launcher
	Platform platform.Platform
	Logger   *log.Logger
}

// New returns a Dispatcher for the running platform, replacing the process where possible.
func New(logger *log.Logger) Dispatcher {
	p := platform.Current()
	sys := RealSystem{}
	return Dispatcher{
		Sys:      sys,
		Launcher: NewLauncher(p, sys),
		Platform: p,
		Logger:   logger,
	}
}

// Dispatch builds the command for logicalName inside binaryDir and launches it.
// It returns the child's exit code. When the launcher replaces the process, Dispatch only
// returns on failure.
func (d Dispatcher) Dispatch(binaryDir string, logicalName string, rawArgs []string, env []string) (int, error) {
	if d.Launcher == nil {
		return 1, errors.New(messages.DispatchLauncherRequired)
	}
	cmd, err := d.Prepare(binaryDir, logicalName, rawArgs, env)
	if err != nil {
		if errors.Is(err, ErrCommandNotFound) {
			return 0, err
		}
		return 1, err
	}

	d.logger().Debug(messages.LogDispatch, "path", cmd.Path, "args", cmd.Args[1:])
	code, err := d.Launcher.Launch(cmd)
	if err != nil {
		d.logger().Debug(messages.LogDispatchFailed, "command", logicalName, "err", err)
	}
	return code, err
}

// Prepare builds the command for logicalName and checks that the runtime and the target exist.
// A missing executable yields ErrCommandNotFound.
func (d Dispatcher) Prepare(binaryDir string, logicalName string, rawArgs []string, env []string) (Command, error) {
	if d.Sys == nil {
		return Command{}, errors.New(messages.DispatchSystemRequired)
	}
	cmd := BuildCommand(binaryDir, logicalName, rawArgs, env, d.Platform)
	for _, required := range cmd.requiredPaths() {
		if err := d.checkExists(required); err != nil {
			d.logger().Debug(messages.LogDispatchFailed, "command", logicalName, "err", err)
			return Command{}, fmt.Errorf(messages.WrapFmt, ErrCommandNotFound, err)
		}
	}
	return cmd, nil
}

func (d Dispatcher) checkExists(path string) error {
	if _, err := d.Sys.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.DispatchTargetMissingFmt, path)
		}
		return fmt.Errorf(messages.DispatchCheckTargetFmt, path, err)
	}
	return nil
}

func (d Dispatcher) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

// Command is a fully built child invocation.
type Command struct {
	// Path is the executable that is started.
	Path string
	// Target is the executable the user asked for. It equals Path for the runtime itself.
	Target string
	// Args is the full argument vector, Args[0] included.
	Args []string
	Env  []string
}

func (c Command) requiredPaths() []string {
	if c.Path == c.Target {
		return []string{c.Path}
	}
	return []string{c.Path, c.Target}
}

// BuildCommand returns the child invocation for logicalName. Auxiliary executables such as the
// package manager are runtime scripts, so they are run as `<binaryDir>/node <target> args...`.
// rawArgs are forwarded verbatim.
func BuildCommand(binaryDir string, logicalName string, rawArgs []string, env []string, p platform.Platform) Command {
	runtimePath := RuntimePath(binaryDir, p)
	childEnv := PrependPath(env, binaryDir, p)

	if identity.IsRuntime(logicalName) {
		args := make([]string, 0, len(rawArgs)+1)
		args = append(args, runtimePath)
		args = append(args, rawArgs...)
		return Command{Path: runtimePath, Target: runtimePath, Args: args, Env: childEnv}
	}

	target := p.Join(binaryDir, logicalName)
	args := make([]string, 0, len(rawArgs)+2)
	args = append(args, runtimePath, target)
	args = append(args, rawArgs...)
	return Command{Path: runtimePath, Target: target, Args: args, Env: childEnv}
}

// RuntimePath returns the runtime executable inside binaryDir.
func RuntimePath(binaryDir string, p platform.Platform) string {
	return p.Join(binaryDir, identity.RuntimeName+p.ExeSuffix())
}
