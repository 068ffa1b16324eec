package shim

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/nvmd-desktop/nvmd/internal/dispatch"
)

// testSystem provides a mock dispatch.System for unit tests.
//
// Fallback behavior:
//   - Environ: a fixed PATH so assertions stay host independent.
//   - Stat: falls back to os.Stat so tests can use t.TempDir() fixtures.
//   - Stdio: in-memory buffers.
type testSystem struct {
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
	return []string{"PATH=/usr/bin"}
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return os.Stat(name)
}

func (s *testSystem) Stdin() io.Reader  { return &s.in }
func (s *testSystem) Stdout() io.Writer { return &s.out }
func (s *testSystem) Stderr() io.Writer { return &s.err }

// testLauncher records commands instead of starting them. It serves as both the dispatch
// launcher and the package runner.
type testLauncher struct {
	LaunchFunc func(cmd dispatch.Command) (int, error)

	globalRoot string
	launched   []dispatch.Command
}

func (l *testLauncher) Launch(cmd dispatch.Command) (int, error) {
	l.launched = append(l.launched, cmd)
	if l.LaunchFunc != nil {
		return l.LaunchFunc(cmd)
	}
	return 0, nil
}

func (l *testLauncher) Output(_ dispatch.Command, out io.Writer) (int, error) {
	_, err := io.WriteString(out, l.globalRoot+"\n")
	return 0, err
}

// testVersions provides a mock version.System.
type testVersions struct {
	ReadFileFunc func(name string) ([]byte, error)
}

func (v testVersions) ReadFile(name string) ([]byte, error) {
	if v.ReadFileFunc != nil {
		return v.ReadFileFunc(name)
	}
	return os.ReadFile(name)
}
