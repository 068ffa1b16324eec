//go:build !windows

package dispatch

import "golang.org/x/sys/unix"

var unixExec = unix.Exec

// replaceProcess replaces the current process with the target binary.
func replaceProcess(path string, args []string, env []string) error {
	return unixExec(path, args, env)
}
