//go:build windows

package dispatch

import (
	"fmt"
	"runtime"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// replaceProcess is unavailable on Windows; NewLauncher selects SpawnLauncher there.
func replaceProcess(string, []string, []string) error {
	return fmt.Errorf(messages.DispatchUnsupportedPlatFmt, runtime.GOOS)
}
