package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
)

// Launcher starts a built Command and reports the child's exit code.
type Launcher interface {
	Launch(cmd Command) (int, error)
}

// NewLauncher selects process replacement when the platform supports it and
// spawn-and-wait otherwise.
func NewLauncher(p platform.Platform, sys System) Launcher {
	if p.CanReplaceProcess() {
		return ExecLauncher{}
	}
	return NewSpawnLauncher(sys)
}

var replaceProcessFn = replaceProcess

// ExecLauncher replaces the current process image with the child. The child inherits stdio
// and its exit code becomes the launcher's own. Launch only returns when the replacement fails.
type ExecLauncher struct{}

// Launch replaces the current process with cmd.
func (ExecLauncher) Launch(cmd Command) (int, error) {
	if err := replaceProcessFn(cmd.Path, cmd.Args, cmd.Env); err != nil {
		return 0, fmt.Errorf(messages.WrapFmt, ErrCommandNotFound, fmt.Errorf(messages.DispatchExecFailedFmt, cmd.Path, err))
	}
	return 0, nil
}

// SpawnLauncher starts the child, waits for it, and returns its exit code.
type SpawnLauncher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewSpawnLauncher returns a SpawnLauncher wired to the system's stdio.
func NewSpawnLauncher(sys System) SpawnLauncher {
	return SpawnLauncher{Stdin: sys.Stdin(), Stdout: sys.Stdout(), Stderr: sys.Stderr()}
}

// Launch runs cmd to completion. A child that cannot start yields ErrCommandNotFound; a child
// that terminates abnormally yields ErrAbnormalExit with exit code 1.
func (l SpawnLauncher) Launch(cmd Command) (int, error) {
	child := newChild(cmd)
	child.Stdin = l.Stdin
	child.Stdout = l.Stdout
	child.Stderr = l.Stderr
	return wait(cmd, child.Run())
}

// Output runs cmd to completion with stdout redirected to out. Stdin and stderr are inherited.
func (l SpawnLauncher) Output(cmd Command, out io.Writer) (int, error) {
	child := newChild(cmd)
	child.Stdin = l.Stdin
	child.Stdout = out
	child.Stderr = l.Stderr
	return wait(cmd, child.Run())
}

func newChild(cmd Command) *exec.Cmd {
	child := exec.Command(cmd.Path, cmd.Args[1:]...)
	child.Args = cmd.Args
	child.Env = cmd.Env
	return child
}

func wait(cmd Command, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, fmt.Errorf(messages.WrapFmt, ErrAbnormalExit, fmt.Errorf(messages.DispatchAbnormalExitFmt, cmd.Path, err))
	}
	return 0, fmt.Errorf(messages.WrapFmt, ErrCommandNotFound, fmt.Errorf(messages.DispatchStartFailedFmt, cmd.Path, err))
}
