// Package home resolves the nvmd configuration root and the well-known files inside it.
package home

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// EnvHome and EnvLegacyDir name the variables that locate the configuration root.
const (
	EnvHome      = "NVMD_HOME"
	EnvLegacyDir = "NVMD_DIR"
)

// DefaultDirName is the configuration root directory name under the user's home.
const DefaultDirName = ".nvmd"

var homeDir = homedir.Dir

// Paths holds resolved paths for files and directories under the configuration root.
type Paths struct {
	Root         string
	BinDir       string
	VersionsDir  string
	DefaultPath  string
	PackagesPath string
	TempPath     string
	SettingPath  string
	ProjectsPath string
	GroupsPath   string
}

// DefaultPaths returns the well-known paths for a configuration root.
func DefaultPaths(root string) Paths {
	return Paths{
		Root:         root,
		BinDir:       filepath.Join(root, "bin"),
		VersionsDir:  filepath.Join(root, "versions"),
		DefaultPath:  filepath.Join(root, "default"),
		PackagesPath: filepath.Join(root, "packages.json"),
		TempPath:     filepath.Join(root, "temp.txt"),
		SettingPath:  filepath.Join(root, "setting.json"),
		ProjectsPath: filepath.Join(root, "projects.json"),
		GroupsPath:   filepath.Join(root, "groups.json"),
	}
}

// Root resolves the configuration root from the environment, falling back to ~/.nvmd.
func Root(getenv func(string) string) (string, error) {
	for _, key := range []string{EnvHome, EnvLegacyDir} {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value, nil
		}
	}
	dir, err := homeDir()
	if err != nil {
		return "", fmt.Errorf(messages.HomeResolveFailedFmt, err)
	}
	return filepath.Join(dir, DefaultDirName), nil
}
