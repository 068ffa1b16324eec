package packages

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nvmd-desktop/nvmd/internal/dispatch"
	"github.com/nvmd-desktop/nvmd/internal/identity"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
)

// Runner runs built commands to completion.
// dispatch.SpawnLauncher satisfies it.
type Runner interface {
	Launch(cmd dispatch.Command) (int, error)
	Output(cmd dispatch.Command, out io.Writer) (int, error)
}

var rootArgs = []string{"root", "-g"}

// GlobalRoot asks the package manager of the selected runtime for its global package directory.
// The answer is captured in tempPath, which is overwritten on every call.
func GlobalRoot(runner Runner, binaryDir string, env []string, tempPath string, p platform.Platform) (string, error) {
	file, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf(messages.PackagesCreateTempFileFmt, tempPath, err)
	}
	cmd := dispatch.BuildCommand(binaryDir, identity.PackageManagerName, rootArgs, env, p)
	code, runErr := runner.Output(cmd, file)
	if err := file.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return "", fmt.Errorf(messages.PackagesRootDiscoveryFmt, runErr)
	}
	if code != 0 {
		return "", fmt.Errorf(messages.PackagesRootDiscoveryFmt, fmt.Errorf(messages.PackagesRootExitFmt, code))
	}

	data, err := os.ReadFile(tempPath)
	if err != nil {
		return "", fmt.Errorf(messages.PackagesRootDiscoveryFmt, err)
	}
	root := strings.TrimSpace(strings.Replace(string(data), "\n", "", 1))
	if root == "" {
		return "", fmt.Errorf(messages.PackagesRootDiscoveryFmt, errors.New(messages.PackagesRootEmpty))
	}
	return root, nil
}
