package dispatch

import (
	"strings"

	"github.com/nvmd-desktop/nvmd/internal/platform"
)

// PrependPath returns a copy of env whose search path starts with dir.
// Every PATH entry is rewritten; when none exists one is appended.
func PrependPath(env []string, dir string, p platform.Platform) []string {
	out := make([]string, 0, len(env)+1)
	found := false
	for _, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !p.PathEnvKey(key) {
			out = append(out, kv)
			continue
		}
		found = true
		out = append(out, key+"="+joinSearchPath(dir, value, p))
	}
	if !found {
		out = append(out, "PATH="+dir)
	}
	return out
}

func joinSearchPath(dir string, existing string, p platform.Platform) string {
	if existing == "" {
		return dir
	}
	return dir + p.ListSeparator() + existing
}
