// Package testutil provides filesystem fixtures shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable POSIX shell script and returns its path.
// t is the active test; dir is the output directory; name is the file name; body follows the shebang.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return WriteScript(t, dir, name, fmt.Sprintf("exit %d", exitCode))
}

// InstallRuntime lays out a fake runtime version: binDir is created and receives a `node` stub
// plus one stub per extra name. It returns binDir.
func InstallRuntime(t *testing.T, binDir string, names ...string) string {
	t.Helper()
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("create runtime dir: %v", err)
	}
	for _, name := range append([]string{"node"}, names...) {
		WriteStubWithExit(t, binDir, name, 0)
	}
	return binDir
}
