package packages

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// ManifestFile is the npm package manifest name.
const ManifestFile = "package.json"

var errUnsupportedBin = errors.New(messages.PackagesUnsupportedBin)

// Manifest holds the package.json fields used to discover binaries.
type Manifest struct {
	Name string          `json:"name"`
	Bin  json.RawMessage `json:"bin"`
}

// ReadManifest reads <globalRoot>/<pkg>/package.json.
func ReadManifest(globalRoot string, pkg string) (Manifest, error) {
	return ReadManifestDir(filepath.Join(globalRoot, filepath.FromSlash(pkg)))
}

// ReadManifestDir reads the package.json of the package rooted at dir.
func ReadManifestDir(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf(messages.PackagesParseManifestFmt, path, err)
	}
	return m, nil
}

// BinNames returns the command names the manifest declares.
// A string "bin" installs one command named after the package (its unscoped part), falling back
// to pkg when the manifest has no name; an object "bin" installs one command per key.
func (m Manifest) BinNames(pkg string) ([]string, error) {
	raw := strings.TrimSpace(string(m.Bin))
	if raw == "" || raw == "null" {
		return nil, nil
	}

	var single string
	if err := json.Unmarshal(m.Bin, &single); err == nil {
		name := m.Name
		if name == "" {
			name = pkg
		}
		if name == "" {
			return nil, nil
		}
		return []string{unscoped(name)}, nil
	}

	var multiple map[string]string
	if err := json.Unmarshal(m.Bin, &multiple); err != nil {
		return nil, errUnsupportedBin
	}
	names := make([]string, 0, len(multiple))
	for name := range multiple {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func unscoped(name string) string {
	if strings.HasPrefix(name, "@") {
		if _, rest, ok := strings.Cut(name, "/"); ok {
			return rest
		}
	}
	return name
}
