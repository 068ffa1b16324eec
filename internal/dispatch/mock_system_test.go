package dispatch

import (
	"bytes"
	"io"
	"os"
	"strings"
)

// testSystem provides a mock System for unit tests.
//
// Fallback behavior:
//   - Environ: returns an empty environment so tests never depend on the host PATH.
//   - Stat: falls back to RealSystem so tests can use t.TempDir() fixtures.
//   - Stdio: in-memory buffers.
type testSystem struct {
	RealSystem

	EnvironFunc func() []string
	StatFunc    func(name string) (os.FileInfo, error)

	in  strings.Reader
	out bytes.Buffer
	err bytes.Buffer
}

func (s *testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return nil
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}

func (s *testSystem) Stdin() io.Reader  { return &s.in }
func (s *testSystem) Stdout() io.Writer { return &s.out }
func (s *testSystem) Stderr() io.Writer { return &s.err }

// recordingLauncher captures the command instead of starting it.
type recordingLauncher struct {
	got  []Command
	code int
	err  error
}

func (l *recordingLauncher) Launch(cmd Command) (int, error) {
	l.got = append(l.got, cmd)
	return l.code, l.err
}
