package version

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/nvmd-desktop/nvmd/internal/identity"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
)

// Normalize strips an optional "v" prefix and validates raw as X.Y.Z.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	parsed, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return "", fmt.Errorf(messages.InvalidVersionFmt, raw, err)
	}
	return parsed.String(), nil
}

// RuntimeBinary returns the runtime executable of version inside installedDir.
func RuntimeBinary(installedDir string, version string, p platform.Platform) string {
	if p.NestedBin() {
		return filepath.Join(installedDir, version, "bin", identity.RuntimeName)
	}
	return filepath.Join(installedDir, version, identity.RuntimeName+p.ExeSuffix())
}

// IsInstalled reports whether version has a runtime executable inside installedDir.
func IsInstalled(installedDir string, version string, p platform.Platform) bool {
	info, err := os.Stat(RuntimeBinary(installedDir, version, p))
	return err == nil && !info.IsDir()
}

// ListInstalled returns installed versions in installedDir, newest first.
// Entries that are not X.Y.Z directories or lack a runtime executable are ignored.
func ListInstalled(installedDir string, p platform.Platform) ([]string, error) {
	entries, err := os.ReadDir(installedDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.ListVersionsFailed, installedDir, err)
	}

	parsed := make([]*semver.Version, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := semver.StrictNewVersion(entry.Name())
		if err != nil {
			continue
		}
		if !IsInstalled(installedDir, entry.Name(), p) {
			continue
		}
		parsed = append(parsed, v)
	}
	sort.Sort(sort.Reverse(semver.Collection(parsed)))

	versions := make([]string, 0, len(parsed))
	for _, v := range parsed {
		versions = append(versions, v.Original())
	}
	return versions, nil
}

// WriteMarker writes version to a marker file.
func WriteMarker(path string, version string) error {
	if err := os.WriteFile(path, []byte(version), 0o644); err != nil {
		return fmt.Errorf(messages.WriteMarkerFailed, path, err)
	}
	return nil
}
