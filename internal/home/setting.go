package home

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// Setting mirrors the desktop application's setting.json. Only fields the launcher uses are decoded.
type Setting struct {
	Directory string `json:"directory,omitempty"`
	Mirror    string `json:"mirror,omitempty"`
}

// LoadSetting reads setting.json. A missing file yields a zero Setting.
func LoadSetting(path string) (Setting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Setting{}, nil
		}
		return Setting{}, fmt.Errorf(messages.SettingReadFailedFmt, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return Setting{}, nil
	}
	var setting Setting
	if err := json.Unmarshal(data, &setting); err != nil {
		return Setting{}, fmt.Errorf(messages.SettingParseFailedFmt, path, err)
	}
	return setting, nil
}

// InstalledDir returns the directory holding installed versions, honoring setting.json.
// An unreadable setting falls back to the default versions directory.
func (p Paths) InstalledDir() string {
	setting, err := LoadSetting(p.SettingPath)
	if err != nil || strings.TrimSpace(setting.Directory) == "" {
		return p.VersionsDir
	}
	return setting.Directory
}
