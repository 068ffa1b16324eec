// Package version resolves which installed runtime version applies to an invocation.
package version

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// ProjectMarker is the project-local version file read from the working directory.
const ProjectMarker = ".nvmdrc"

// GlobalMarker is the default-version file under the configuration root.
const GlobalMarker = "default"

// Source identifies where a resolved version came from.
type Source string

// Resolution sources.
const (
	SourceNone    Source = ""
	SourceProject Source = "project"
	SourceGlobal  Source = "global"
)

// Resolution is the outcome of version resolution. An empty Version means unresolved.
type Resolution struct {
	Version string
	Source  Source
	Path    string
}

// Resolved reports whether a version was found.
func (r Resolution) Resolved() bool {
	return r.Version != ""
}

// System abstracts the filesystem reads needed by resolution.
type System interface {
	ReadFile(name string) ([]byte, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Resolve returns the effective version for workingDir and configRoot.
func Resolve(workingDir string, configRoot string) (Resolution, error) {
	return ResolveWithSystem(RealSystem{}, workingDir, configRoot)
}

// ResolveWithSystem returns the project marker's content when it is non-empty and otherwise the
// global marker's content. The global marker is never read when the project marker wins.
// A marker that cannot be read for reasons other than absence is reported as an error alongside
// whatever the remaining markers yielded.
func ResolveWithSystem(sys System, workingDir string, configRoot string) (Resolution, error) {
	var errs []error

	projectPath := filepath.Join(workingDir, ProjectMarker)
	project, err := readMarker(sys, projectPath)
	if err != nil {
		errs = append(errs, err)
	}
	if project != "" {
		return Resolution{Version: project, Source: SourceProject, Path: projectPath}, nil
	}

	globalPath := filepath.Join(configRoot, GlobalMarker)
	global, err := readMarker(sys, globalPath)
	if err != nil {
		errs = append(errs, err)
	}
	if global != "" {
		return Resolution{Version: global, Source: SourceGlobal, Path: globalPath}, errors.Join(errs...)
	}
	return Resolution{}, errors.Join(errs...)
}

// readMarker returns the trimmed content of a marker file. A missing file reads as empty.
func readMarker(sys System, path string) (string, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf(messages.VersionReadMarkerFmt, path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
