package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// ErrMalformedGroups reports a groups.json that could not be decoded.
var ErrMalformedGroups = errors.New(messages.GroupMalformed)

// Group is a named set of projects sharing one runtime version, managed by the desktop
// application.
type Group struct {
	Name     string   `json:"name"`
	Desc     *string  `json:"desc"`
	Projects []string `json:"projects"`
	Version  *string  `json:"version"`
}

// PinnedVersion returns the group's runtime version and whether one is set.
func (g Group) PinnedVersion() (string, bool) {
	if g.Version == nil {
		return "", false
	}
	v := strings.TrimSpace(*g.Version)
	return v, v != ""
}

// Groups is the content of groups.json.
type Groups []Group

// LoadGroups reads groups.json. A missing or empty file yields no groups. An undecodable file
// yields no groups and ErrMalformedGroups.
func LoadGroups(path string) (Groups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.GroupReadFailedFmt, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	var groups Groups
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf(messages.MalformedFileFmt, ErrMalformedGroups, path, err)
	}
	return groups, nil
}

// Find returns the group called name.
func (g Groups) Find(name string) (Group, bool) {
	i := slices.IndexFunc(g, func(group Group) bool { return group.Name == name })
	if i < 0 {
		return Group{}, false
	}
	return g[i], true
}

// JoinGroup adds dir to the projects of the group called name and saves groups.json. Unknown
// groups and existing members are left unchanged. A malformed file is logged and left alone.
func JoinGroup(path string, name string, dir string, logger *log.Logger) error {
	groups, err := LoadGroups(path)
	if errors.Is(err, ErrMalformedGroups) {
		loggerOrDefault(logger).Warn(messages.LogGroupsMalformed, "path", path, "err", err)
		return nil
	}
	if err != nil {
		return err
	}

	i := slices.IndexFunc(groups, func(group Group) bool { return group.Name == name })
	if i < 0 || slices.Contains(groups[i].Projects, dir) {
		return nil
	}
	groups[i].Projects = append(groups[i].Projects, dir)

	for j := range groups {
		if groups[j].Projects == nil {
			groups[j].Projects = []string{}
		}
	}
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.GroupEncodeFailedFmt, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf(messages.GroupWriteFailedFmt, path, err)
	}
	return nil
}
