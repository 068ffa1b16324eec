// Package project maintains projects.json and groups.json, the registries of directories pinned
// to a runtime version that the desktop application displays.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// ErrMalformedRegistry reports a projects.json that could not be decoded.
var ErrMalformedRegistry = errors.New(messages.ProjectMalformed)

// Project is one registry entry. Version holds a runtime version, or a group name for projects
// that follow a group.
type Project struct {
	Active   bool   `json:"active"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Version  string `json:"version,omitempty"`
	CreateAt string `json:"createAt,omitempty"`
	UpdateAt string `json:"updateAt,omitempty"`
}

var now = time.Now

// Load reads the registry. A missing or empty file yields no projects. An undecodable file
// yields no projects and ErrMalformedRegistry.
func Load(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.ProjectReadFailedFmt, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf(messages.MalformedFileFmt, ErrMalformedRegistry, path, err)
	}
	return projects, nil
}

// Upsert records that dir uses version. Entries are matched by path; a new entry is inserted
// first and named after the directory. A malformed registry is logged and replaced.
func Upsert(registryPath string, dir string, version string, logger *log.Logger) (Project, error) {
	projects, err := Load(registryPath)
	if errors.Is(err, ErrMalformedRegistry) {
		loggerOrDefault(logger).Warn(messages.LogProjectsMalformed, "path", registryPath, "err", err)
	} else if err != nil {
		return Project{}, err
	}
	stamp := now().Format(time.RFC3339)

	for i := range projects {
		if projects[i].Path == dir {
			projects[i].Version = version
			projects[i].UpdateAt = stamp
			return projects[i], save(registryPath, projects)
		}
	}

	p := Project{
		Active:   true,
		Name:     filepath.Base(dir),
		Path:     dir,
		Version:  version,
		CreateAt: stamp,
		UpdateAt: stamp,
	}
	projects = append([]Project{p}, projects...)
	return p, save(registryPath, projects)
}

func save(path string, projects []Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.ProjectEncodeFailedFmt, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf(messages.ProjectWriteFailedFmt, path, err)
	}
	return nil
}

func loggerOrDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
