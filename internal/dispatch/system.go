package dispatch

import (
	"io"
	"os"
)

// System abstracts OS operations needed by dispatch.
// The interface is package-local so tests can run in parallel without shared global state.
type System interface {
	Environ() []string
	Stat(name string) (os.FileInfo, error)
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// Stat returns file info for name, following symlinks.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Stdin returns the standard input reader.
func (RealSystem) Stdin() io.Reader {
	return os.Stdin
}

// Stdout returns the standard output writer.
func (RealSystem) Stdout() io.Writer {
	return os.Stdout
}

// Stderr returns the standard error writer.
func (RealSystem) Stderr() io.Writer {
	return os.Stderr
}
