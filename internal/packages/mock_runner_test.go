package packages

import (
	"io"

	"github.com/nvmd-desktop/nvmd/internal/dispatch"
)

// testRunner provides a mock Runner for unit tests.
//
// Fallback behavior:
//   - Launch: records the command and exits 0.
//   - Output: writes globalRoot followed by a newline and exits 0.
type testRunner struct {
	LaunchFunc func(cmd dispatch.Command) (int, error)
	OutputFunc func(cmd dispatch.Command, out io.Writer) (int, error)

	globalRoot string
	launched   []dispatch.Command
	queried    []dispatch.Command
}

func (r *testRunner) Launch(cmd dispatch.Command) (int, error) {
	r.launched = append(r.launched, cmd)
	if r.LaunchFunc != nil {
		return r.LaunchFunc(cmd)
	}
	return 0, nil
}

func (r *testRunner) Output(cmd dispatch.Command, out io.Writer) (int, error) {
	r.queried = append(r.queried, cmd)
	if r.OutputFunc != nil {
		return r.OutputFunc(cmd, out)
	}
	_, err := io.WriteString(out, r.globalRoot+"\n")
	return 0, err
}
